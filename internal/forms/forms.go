// Package forms validates creation form input locally. A form with missing
// mandatory fields never reaches the wire.
package forms

import (
	"strings"

	"teamcal/internal/backend"
	"teamcal/internal/feed"
)

const missedValue = "missed value"

// EventForm collects the event-create fields. Start and CalendarType are
// preset from the clicked slot and the active view.
type EventForm struct {
	Title        string
	Start        string
	End          string
	Place        string
	Notes        string
	CalendarType feed.View
}

// Validate returns a field->message map, or nil when the form is valid.
func (f *EventForm) Validate() map[string]string {
	errs := make(map[string]string)
	requireField(errs, "title", f.Title)
	requireField(errs, "start_time", f.Start)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Draft converts the form into the create request body.
func (f *EventForm) Draft() backend.EventDraft {
	return backend.EventDraft{
		Title:        strings.TrimSpace(f.Title),
		StartTime:    f.Start,
		EndTime:      f.End,
		Place:        f.Place,
		Notes:        f.Notes,
		CalendarType: f.CalendarType,
	}
}

// TaskForm collects the task-create fields. DueDate is preset from the
// clicked slot; Status defaults to "pending" when left empty.
type TaskForm struct {
	Title      string
	DueDate    string
	Status     string
	AssigneeID int64
}

// Validate returns a field->message map, or nil when the form is valid.
func (f *TaskForm) Validate() map[string]string {
	errs := make(map[string]string)
	requireField(errs, "title", f.Title)
	requireField(errs, "due_date", f.DueDate)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Draft converts the form into the create request body.
func (f *TaskForm) Draft() backend.TaskDraft {
	status := f.Status
	if status == "" {
		status = "pending"
	}
	return backend.TaskDraft{
		Title:      strings.TrimSpace(f.Title),
		DueDate:    f.DueDate,
		Status:     status,
		AssigneeID: f.AssigneeID,
	}
}

func requireField(errs map[string]string, name string, value string) {
	if strings.TrimSpace(value) == "" {
		errs[name] = missedValue
	}
}
