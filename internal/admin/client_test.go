package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/techfest-api/internal/models"
	appErrors "github.com/noah-isme/techfest-api/pkg/errors"
)

func TestClientListEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "listing is public")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []models.Event{{ID: "1", Title: "Robo Soccer"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api", nil, server.Client())
	events, err := client.ListEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Robo Soccer", events[0].Title)
}

func TestClientCreateEventSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input models.EventInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Hackathon", input.Title)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": models.Event{ID: "ev-9", Title: input.Title},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api", StaticToken("secret-token"), server.Client())
	event, err := client.CreateEvent(context.Background(), models.EventInput{Title: "Hackathon"})

	require.NoError(t, err)
	assert.Equal(t, "ev-9", event.ID)
}

func TestClientSurfacesEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    appErrors.ErrNotFound.Code,
				"message": "event not found",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api", nil, server.Client())
	_, err := client.GetEvent(context.Background(), "missing")

	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "event not found", appErr.Message)
}

func TestClientDeleteEventHandlesNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/events/ev-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api", StaticToken("secret-token"), server.Client())
	assert.NoError(t, client.DeleteEvent(context.Background(), "ev-1"))
}

func TestClientHonoursContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	client := NewClient(server.URL+"/api", nil, server.Client())
	_, err := client.ListEvents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
