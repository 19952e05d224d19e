package admin

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/techfest-api/internal/models"
)

// Notifier surfaces one-shot user-facing notifications (toasts).
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier drops all notifications.
type NopNotifier struct{}

// Success implements Notifier.
func (NopNotifier) Success(string) {}

// Error implements Notifier.
func (NopNotifier) Error(string) {}

// EventLister fetches the event catalogue. *Client satisfies it.
type EventLister interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

const loadFailedMessage = "Failed to fetch events. Please try again."

// ListView holds the fetched catalogue and answers local search queries.
type ListView struct {
	api    EventLister
	notify Notifier
	logger *zap.Logger

	events []models.Event
	loaded bool
}

// NewListView builds a catalogue view. A nil notifier or logger is replaced
// with a no-op.
func NewListView(api EventLister, notify Notifier, logger *zap.Logger) *ListView {
	if notify == nil {
		notify = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListView{api: api, notify: notify, logger: logger}
}

// Load fetches the catalogue and replaces the held list. On failure the
// previous list is kept, the user is notified once, and the error is returned
// for the caller to inspect.
func (v *ListView) Load(ctx context.Context) error {
	events, err := v.api.ListEvents(ctx)
	if err != nil {
		v.logger.Error("fetch events failed", zap.Error(err))
		v.notify.Error(loadFailedMessage)
		return err
	}
	for i := range events {
		events[i].ApplyDefaults()
	}
	v.events = events
	v.loaded = true
	return nil
}

// Loaded reports whether at least one fetch has succeeded.
func (v *ListView) Loaded() bool { return v.loaded }

// Events returns the currently held catalogue in server order.
func (v *ListView) Events() []models.Event {
	return v.events
}

// Filter returns the events whose title, description, location or type
// contains the term, case-insensitively. An empty or blank term returns the
// whole list. Filtering is local and never re-fetches.
func (v *ListView) Filter(term string) []models.Event {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return v.events
	}
	matched := make([]models.Event, 0, len(v.events))
	for _, e := range v.events {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Description), needle) ||
			strings.Contains(strings.ToLower(e.Location), needle) ||
			strings.Contains(strings.ToLower(string(e.EventType)), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}
