package app

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"teamcal/internal/backend"
	"teamcal/internal/feed"
	"teamcal/internal/forms"
	"teamcal/internal/gate"
)

const (
	defaultEventStartHour = "T10:00"
	defaultTaskDueHour    = "T17:00"
	dateLayout            = "2006-01-02"
)

// API is the backend surface the controller needs.
type API interface {
	Me(ctx context.Context) (backend.Identity, error)
	Employees(ctx context.Context) ([]backend.Employee, error)
	Feed(ctx context.Context) (feed.Feed, error)
	CreateEvent(ctx context.Context, draft backend.EventDraft) (feed.Event, error)
	CreateTask(ctx context.Context, draft backend.TaskDraft) (feed.Task, error)
	DeleteEvent(ctx context.Context, id int64) error
	Logout(ctx context.Context) error
}

// Notifier is the rendering widget boundary. Refetch is called after every
// state change a renderer must observe.
type Notifier interface {
	Refetch()
}

// Confirmer asks the user to approve a destructive action. Deletion never
// proceeds without a positive answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ModalMode is the creation modal state: closed, or open in one of the two
// form modes.
type ModalMode string

const (
	ModalClosed ModalMode = "closed"
	ModalEvent  ModalMode = "event"
	ModalTask   ModalMode = "task"
)

// ModalSnapshot is a consistent read of the creation modal.
type ModalSnapshot struct {
	Mode      ModalMode
	OfferTask bool
	EventForm forms.EventForm
	TaskForm  forms.TaskForm
}

// App orchestrates the calendar interactions: it consults the gate before
// every affordance, drives the feed merger and keeps the modal and detail
// panel state. Identity and view are single-writer; all reads go through
// the mutex.
type App struct {
	api      API
	merger   *feed.Merger
	notifier Notifier
	confirm  Confirmer

	mu        sync.Mutex
	view      feed.View
	identity  backend.Identity
	employees []backend.Employee

	modal     ModalMode
	offerTask bool
	eventForm forms.EventForm
	taskForm  forms.TaskForm

	panel *feed.Item
}

func New(api API, notifier Notifier, confirm Confirmer) *App {
	a := &App{
		api:      api,
		notifier: notifier,
		confirm:  confirm,
		view:     feed.ViewGeneral,
		modal:    ModalClosed,
	}
	a.merger = feed.NewMerger(api, a.View)
	return a
}

// Start fetches the identity once for the session. Owners also load the
// employee list used for the task assignee options; a failure there is
// logged and tolerated.
func (a *App) Start(ctx context.Context) error {
	identity, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	log.WithField("role", identity.Role).Info("session started")

	var employees []backend.Employee
	if identity.Role == backend.RoleOwner {
		employees, err = a.api.Employees(ctx)
		if err != nil {
			log.WithError(err).Error("failed to fetch employees")
		}
	}

	a.mu.Lock()
	a.identity = identity
	a.employees = employees
	a.mu.Unlock()
	return nil
}

// View returns the active calendar scope.
func (a *App) View() feed.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Role returns the session role.
func (a *App) Role() backend.Role {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity.Role
}

// Employees returns the assignee options loaded at session start.
func (a *App) Employees() []backend.Employee {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]backend.Employee(nil), a.employees...)
}

// Items returns the latest merged snapshot.
func (a *App) Items() []feed.Item {
	return a.merger.Items()
}

// Refresh refetches the feed and notifies the renderer. A refresh
// superseded by a newer one is dropped silently.
func (a *App) Refresh(ctx context.Context) error {
	if _, err := a.merger.Refresh(ctx); err != nil {
		if errors.Is(err, feed.ErrSupersededFetch) {
			return nil
		}
		return err
	}
	a.notifier.Refetch()
	return nil
}

// NavigationChanged switches the active view and refetches. Navigation
// itself is always permitted.
func (a *App) NavigationChanged(ctx context.Context, view feed.View) error {
	a.mu.Lock()
	a.view = view
	a.mu.Unlock()
	return a.Refresh(ctx)
}

// SlotClicked handles a click on an empty calendar slot. When creation is
// permitted the modal opens in event mode, pre-populated from the clicked
// date and the active view; otherwise it is a no-op.
func (a *App) SlotClicked(date time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	aff := gate.FormAffordances(a.view, a.identity.Role)
	if !aff.CanCreate {
		log.WithField("view", a.view).WithField("role", a.identity.Role).
			Debug("creation denied")
		return
	}

	day := date.Format(dateLayout)
	a.modal = ModalEvent
	a.offerTask = aff.OfferTask
	a.eventForm = forms.EventForm{
		Start:        day + defaultEventStartHour,
		CalendarType: aff.CalendarType,
	}
	a.taskForm = forms.TaskForm{
		DueDate: day + defaultTaskDueHour,
	}
}

// ItemClicked opens the read-only detail panel for an existing item when
// the gate permits it; otherwise it is a no-op.
func (a *App) ItemClicked(item feed.Item) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !gate.CanInteract(a.view, a.identity.Role, item.Kind) {
		log.WithField("view", a.view).WithField("role", a.identity.Role).
			Debug("interaction denied")
		return
	}
	a.panel = &item
}

// Panel returns the open detail panel item, if any.
func (a *App) Panel() (feed.Item, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.panel == nil {
		return feed.Item{}, false
	}
	return *a.panel, true
}

// CanDelete reports whether the open panel offers deletion. Only events
// have a delete path.
func (a *App) CanDelete() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.panel != nil && a.panel.Kind == feed.KindEvent
}

// ClosePanel dismisses the detail panel.
func (a *App) ClosePanel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.panel = nil
}

// Modal returns a consistent snapshot of the creation modal.
func (a *App) Modal() ModalSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ModalSnapshot{
		Mode:      a.modal,
		OfferTask: a.offerTask,
		EventForm: a.eventForm,
		TaskForm:  a.taskForm,
	}
}

// SwitchModal toggles between the event and task forms while the modal is
// open. Switching to task mode is refused when the task option is
// suppressed for the current view and role.
func (a *App) SwitchModal(mode ModalMode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.modal == ModalClosed || mode == ModalClosed {
		return
	}
	if mode == ModalTask && !a.offerTask {
		return
	}
	a.modal = mode
}

// SetEventForm stores edited event form fields.
func (a *App) SetEventForm(form forms.EventForm) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.eventForm = form
}

// SetTaskForm stores edited task form fields.
func (a *App) SetTaskForm(form forms.TaskForm) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.taskForm = form
}

// CancelModal closes the creation modal without submitting.
func (a *App) CancelModal() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.modal = ModalClosed
}

// OutsideClick dismisses whichever surfaces are open.
func (a *App) OutsideClick() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.modal = ModalClosed
	a.panel = nil
}

// SubmitCreate validates and submits the active form. Local validation
// failures are returned as a field->message map and never reach the wire.
// On success the modal closes and the feed is refetched; on any error the
// modal stays open for correction.
func (a *App) SubmitCreate(ctx context.Context) (map[string]string, error) {
	a.mu.Lock()
	mode := a.modal
	eventForm := a.eventForm
	taskForm := a.taskForm
	a.mu.Unlock()

	switch mode {
	case ModalEvent:
		if errs := eventForm.Validate(); errs != nil {
			return errs, nil
		}
		if _, err := a.api.CreateEvent(ctx, eventForm.Draft()); err != nil {
			log.WithError(err).Error("failed to create event")
			return nil, err
		}
	case ModalTask:
		if errs := taskForm.Validate(); errs != nil {
			return errs, nil
		}
		if _, err := a.api.CreateTask(ctx, taskForm.Draft()); err != nil {
			log.WithError(err).Error("failed to create task")
			return nil, err
		}
	default:
		return nil, nil
	}

	a.mu.Lock()
	a.modal = ModalClosed
	a.mu.Unlock()
	return nil, a.Refresh(ctx)
}

// RequestDelete deletes the event shown in the detail panel after an
// interactive confirmation. Without a confirmation no request is issued.
// Tasks have no delete path. On failure the panel stays open and state is
// unchanged.
func (a *App) RequestDelete(ctx context.Context) error {
	a.mu.Lock()
	panel := a.panel
	a.mu.Unlock()

	if panel == nil || panel.Kind != feed.KindEvent {
		return nil
	}
	if !a.confirm.Confirm("Are you sure you want to delete this event?") {
		return nil
	}
	if err := a.api.DeleteEvent(ctx, panel.ID); err != nil {
		log.WithError(err).Error("failed to delete event")
		return err
	}

	a.mu.Lock()
	a.panel = nil
	a.mu.Unlock()
	return a.Refresh(ctx)
}

// Logout ends the backend session and terminates the local one regardless
// of the request outcome.
func (a *App) Logout(ctx context.Context) error {
	return a.api.Logout(ctx)
}
