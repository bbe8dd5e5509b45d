package backend

import "teamcal/internal/feed"

// Role of the authenticated account.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
)

// Identity is fetched once per session and read-only afterwards.
type Identity struct {
	Role Role `json:"role"`
}

// Employee is an assignable account of the owner's company.
type Employee struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// EventDraft is the event-create request body.
type EventDraft struct {
	Title        string    `json:"title"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Place        string    `json:"place"`
	Notes        string    `json:"notes"`
	CalendarType feed.View `json:"calendar_type"`
}

// TaskDraft is the task-create request body.
type TaskDraft struct {
	Title      string `json:"title"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
	AssigneeID int64  `json:"assignee_id"`
}
