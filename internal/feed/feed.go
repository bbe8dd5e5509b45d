package feed

// View is the active calendar scope.
type View string

const (
	ViewGeneral  View = "general"
	ViewPersonal View = "personal"
)

// Kind discriminates the two display item variants.
type Kind string

const (
	KindEvent Kind = "event"
	KindTask  Kind = "task"
)

// Fixed display colors, one per item variant.
const (
	colorGeneralEvent  = "#3788d8"
	colorPersonalEvent = "#33a00e"
	colorTask          = "#f0ad4e"
)

// Event is a calendar event as the backend returns it. Timestamps are
// passed through to the renderer untouched, in the backend's
// "2006-01-02T15:04" form.
type Event struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Place        string `json:"place"`
	Notes        string `json:"notes"`
	CalendarType View   `json:"calendar_type"`
}

// Task is a point-in-time item, rendered without an end time.
type Task struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
	AssigneeID int64  `json:"assignee_id"`
}

// Feed is the combined payload of the feed endpoint.
type Feed struct {
	Events []Event `json:"events"`
	Tasks  []Task  `json:"tasks"`
}

// Item is the render-ready union of an event or a task. Exactly one of
// Event/Task is set, matching Kind.
type Item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
	Color string `json:"color"`
	Kind  Kind   `json:"kind"`

	Event *EventDetails `json:"event,omitempty"`
	Task  *TaskDetails  `json:"task,omitempty"`
}

// EventDetails carries the event-only fields of an Item.
type EventDetails struct {
	Place        string `json:"place"`
	Notes        string `json:"notes"`
	CalendarType View   `json:"calendar_type"`
}

// TaskDetails carries the task-only fields of an Item.
type TaskDetails struct {
	Status     string `json:"status"`
	AssigneeID int64  `json:"assignee_id"`
}

// Merge normalizes a feed into display items for the given view. Events
// whose calendar type does not match the view are dropped; tasks appear
// only under the general view. Events come first, then tasks. The result
// is rebuilt from scratch on every call.
func Merge(f Feed, view View) []Item {
	items := make([]Item, 0, len(f.Events)+len(f.Tasks))
	for _, e := range f.Events {
		if e.CalendarType != view {
			continue
		}
		items = append(items, Item{
			ID:    e.ID,
			Title: e.Title,
			Start: e.StartTime,
			End:   e.EndTime,
			Color: eventColor(e.CalendarType),
			Kind:  KindEvent,
			Event: &EventDetails{
				Place:        e.Place,
				Notes:        e.Notes,
				CalendarType: e.CalendarType,
			},
		})
	}
	if view != ViewGeneral {
		return items
	}
	for _, t := range f.Tasks {
		items = append(items, Item{
			ID:    t.ID,
			Title: t.Title,
			Start: t.DueDate,
			Color: colorTask,
			Kind:  KindTask,
			Task: &TaskDetails{
				Status:     t.Status,
				AssigneeID: t.AssigneeID,
			},
		})
	}
	return items
}

func eventColor(t View) string {
	if t == ViewGeneral {
		return colorGeneralEvent
	}
	return colorPersonalEvent
}
