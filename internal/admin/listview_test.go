package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/techfest-api/internal/models"
)

type stubLister struct {
	events []models.Event
	err    error
}

func (s *stubLister) ListEvents(context.Context) ([]models.Event, error) {
	return s.events, s.err
}

func catalogue() []models.Event {
	return []models.Event{
		{ID: "1", Title: "Robo Soccer", Description: "Robots play football", Location: "Arena", EventType: models.EventTypeCompetition},
		{ID: "2", Title: "Paper Talk", Description: "Research presentations", Location: "Seminar Hall", EventType: models.EventTypeTechnical},
		{ID: "3", Title: "Treasure Hunt", Description: "Campus-wide puzzle chase", Location: "Open Grounds", EventType: models.EventTypeNonTechnical},
	}
}

func TestLoadStoresCatalogueWithDefaults(t *testing.T) {
	view := NewListView(&stubLister{events: catalogue()}, nil, nil)

	require.NoError(t, view.Load(context.Background()))
	assert.True(t, view.Loaded())
	require.Len(t, view.Events(), 3)
	assert.Equal(t, models.DefaultCapacity, view.Events()[0].Capacity, "defaults applied on receipt")
}

func TestLoadFailureNotifiesAndKeepsPreviousList(t *testing.T) {
	lister := &stubLister{events: catalogue()}
	notify := &recordingNotifier{}
	view := NewListView(lister, notify, nil)
	require.NoError(t, view.Load(context.Background()))

	lister.err = errors.New("boom")
	err := view.Load(context.Background())

	require.Error(t, err)
	assert.Len(t, view.Events(), 3, "stale list beats an empty screen")
	assert.Equal(t, []string{loadFailedMessage}, notify.errors)
}

func TestFilterMatchesAcrossFieldsCaseInsensitively(t *testing.T) {
	view := NewListView(&stubLister{events: catalogue()}, nil, nil)
	require.NoError(t, view.Load(context.Background()))

	tests := []struct {
		term string
		want []string
	}{
		{"robo", []string{"1"}},
		{"SEMINAR", []string{"2"}},
		{"puzzle", []string{"3"}},
		{"technical", []string{"2", "3"}},
		{"", []string{"1", "2", "3"}},
		{"   ", []string{"1", "2", "3"}},
		{"nomatch", []string{}},
	}
	for _, tt := range tests {
		got := view.Filter(tt.term)
		ids := make([]string, 0, len(got))
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, tt.want, ids, "term %q", tt.term)
	}
}

func TestFilterPreservesServerOrder(t *testing.T) {
	view := NewListView(&stubLister{events: catalogue()}, nil, nil)
	require.NoError(t, view.Load(context.Background()))

	got := view.Filter("e")
	require.NotEmpty(t, got)
	last := ""
	for _, e := range got {
		assert.Greater(t, e.ID, last)
		last = e.ID
	}
}
