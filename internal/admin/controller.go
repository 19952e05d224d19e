package admin

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/techfest-api/internal/models"
)

// State tracks where the controller is in the submission workflow.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

// Sentinel results for submission attempts. ErrInvalidForm carries no field
// detail; the per-field messages live in the dialog's error map.
var (
	ErrInvalidForm        = errors.New("form has validation errors")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

const (
	createdMessage      = "Event created successfully!"
	updatedMessage      = "Event updated successfully!"
	deletedMessage      = "Event deleted successfully!"
	createFailedMessage = "Failed to create event. Please try again."
	updateFailedMessage = "Failed to update event. Please try again."
	deleteFailedMessage = "Failed to delete event. Please try again."
	fixErrorsMessage    = "Please fix the errors in the form"
)

// EventAPI is the write surface the controller needs. *Client satisfies it.
type EventAPI interface {
	CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, input models.EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// Dialog is an open create-or-edit surface: the working copy plus its error
// map and visibility flag. The controller only ever closes it on success.
type Dialog struct {
	Form   *Form
	Errors FieldErrors
	Open   bool
}

// NewDialog opens a dialog around a working copy.
func NewDialog(form *Form) *Dialog {
	return &Dialog{Form: form, Errors: FieldErrors{}, Open: true}
}

// ConfirmDialog is an open delete confirmation for one event.
type ConfirmDialog struct {
	EventID string
	Open    bool
}

// Controller drives the create, update and delete workflows. Like the rest
// of the console it is confined to a single goroutine; the in-flight guard
// exists to reject re-entrant submissions from repeated user actions, not to
// synchronise threads.
type Controller struct {
	api    EventAPI
	list   *ListView
	notify Notifier
	logger *zap.Logger
	clock  func() time.Time

	state      State
	submitting bool
}

// NewController builds a controller. A nil notifier or logger is replaced
// with a no-op.
func NewController(api EventAPI, list *ListView, notify Notifier, logger *zap.Logger) *Controller {
	if notify == nil {
		notify = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:    api,
		list:   list,
		notify: notify,
		logger: logger,
		clock:  time.Now,
	}
}

// WithClock overrides the time source. Used by tests to pin the past-date rule.
func (c *Controller) WithClock(clock func() time.Time) *Controller {
	c.clock = clock
	return c
}

// State returns the controller's current workflow state.
func (c *Controller) State() State { return c.state }

// Create validates the dialog's working copy and, if clean, submits it as a
// new event. On success the catalogue is refreshed before the dialog closes;
// on any failure the dialog stays open with the form data intact.
func (c *Controller) Create(ctx context.Context, d *Dialog) error {
	return c.submit(ctx, d, func(ctx context.Context, input models.EventInput) error {
		_, err := c.api.CreateEvent(ctx, input)
		return err
	}, createdMessage, createFailedMessage)
}

// Update validates the dialog's working copy and, if clean, submits it as a
// replacement for the identified event. Same success and failure behaviour
// as Create.
func (c *Controller) Update(ctx context.Context, id string, d *Dialog) error {
	return c.submit(ctx, d, func(ctx context.Context, input models.EventInput) error {
		_, err := c.api.UpdateEvent(ctx, id, input)
		return err
	}, updatedMessage, updateFailedMessage)
}

func (c *Controller) submit(ctx context.Context, d *Dialog, call func(context.Context, models.EventInput) error, okMsg, failMsg string) error {
	if c.submitting {
		return ErrSubmissionInFlight
	}

	c.state = StateValidating
	d.Errors = Validate(d.Form, c.clock())
	if !d.Errors.Valid() {
		c.state = StateIdle
		c.notify.Error(fixErrorsMessage)
		return ErrInvalidForm
	}

	c.submitting = true
	c.state = StateSubmitting
	defer func() {
		c.submitting = false
		c.state = StateIdle
	}()

	if err := call(ctx, d.Form.ToInput()); err != nil {
		c.logger.Error("event submission failed", zap.Error(err))
		c.notify.Error(failMsg)
		return err
	}

	c.notify.Success(okMsg)
	// Refresh before closing so the caller never sees a stale list behind a
	// closed dialog. A failed refresh still closes; it notified on its own.
	_ = c.list.Load(ctx)
	d.Open = false
	return nil
}

// Delete removes the event named by the confirmation dialog. No form
// validation applies. On failure the confirmation stays open.
func (c *Controller) Delete(ctx context.Context, d *ConfirmDialog) error {
	if c.submitting {
		return ErrSubmissionInFlight
	}
	c.submitting = true
	c.state = StateSubmitting
	defer func() {
		c.submitting = false
		c.state = StateIdle
	}()

	if err := c.api.DeleteEvent(ctx, d.EventID); err != nil {
		c.logger.Error("event delete failed", zap.Error(err), zap.String("event_id", d.EventID))
		c.notify.Error(deleteFailedMessage)
		return err
	}

	c.notify.Success(deletedMessage)
	_ = c.list.Load(ctx)
	d.Open = false
	return nil
}

// SetField applies a field edit to the dialog and clears that field's stale
// error on success, then runs the fee policy so payment requirements track
// the fee as it changes.
func (c *Controller) SetField(d *Dialog, path string, value interface{}) error {
	if err := d.Form.SetField(path, value); err != nil {
		return err
	}
	d.Errors.Clear(errorKeyFor(path))
	if path == "registrationFees.solo" {
		ApplyFeeChange(d.Form, d.Errors)
	}
	return nil
}

// errorKeyFor maps a field path to the key its validation message is stored
// under. Paths without validation rules map to themselves; clearing a key
// that was never set is a no-op.
func errorKeyFor(path string) string {
	switch path {
	case "title":
		return FieldName
	case "registrationFees.solo":
		return FieldSoloFee
	case "registrationFees.team":
		return FieldTeamFee
	case "teamSize.max":
		return FieldMaxTeamSize
	default:
		return path
	}
}
