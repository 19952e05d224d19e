package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/techfest-api/internal/middleware"
	"github.com/noah-isme/techfest-api/internal/models"
	"github.com/noah-isme/techfest-api/internal/service"
	appErrors "github.com/noah-isme/techfest-api/pkg/errors"
)

type stubEventService struct {
	events    []models.Event
	event     *models.Event
	err       error
	lastActor *models.JWTClaims
	lastMeta  models.RequestMeta
	deletedID string
}

func (s *stubEventService) List(context.Context) ([]models.Event, error) {
	return s.events, s.err
}

func (s *stubEventService) Get(_ context.Context, id string) (*models.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) Create(_ context.Context, input models.EventInput, actor *models.JWTClaims, meta models.RequestMeta) (*models.Event, error) {
	s.lastActor = actor
	s.lastMeta = meta
	if s.err != nil {
		return nil, s.err
	}
	return &models.Event{ID: "ev-new", Title: input.Title}, nil
}

func (s *stubEventService) Update(_ context.Context, id string, input models.EventInput, actor *models.JWTClaims, meta models.RequestMeta) (*models.Event, error) {
	s.lastActor = actor
	if s.err != nil {
		return nil, s.err
	}
	return &models.Event{ID: id, Title: input.Title}, nil
}

func (s *stubEventService) Delete(_ context.Context, id string, actor *models.JWTClaims, meta models.RequestMeta) error {
	s.deletedID = id
	s.lastActor = actor
	return s.err
}

type stubExportService struct {
	result *service.ExportResult
	err    error
	format service.ExportFormat
}

func (s *stubExportService) Render(_ context.Context, format service.ExportFormat) (*service.ExportResult, error) {
	s.format = format
	return s.result, s.err
}

type envelopeBody struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

func newTestContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var env envelopeBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

func eventPayload() models.EventInput {
	return models.EventInput{
		Title:       "Robo Soccer",
		Description: "Autonomous robots compete in a five-a-side soccer match.",
		Date:        "2026-04-01",
		Location:    "Main Auditorium",
		EventType:   models.EventTypeCompetition,
		Image:       "https://cdn.example.org/events/robo-soccer.png",
		TeamSize:    models.TeamSize{Min: 1, Max: 1},
		Capacity:    60,
	}
}

func TestEventHandlerList(t *testing.T) {
	svc := &stubEventService{events: []models.Event{{ID: "ev-1", Title: "Robo Soccer"}}}
	h := NewEventHandler(svc, nil)

	c, recorder := newTestContext(t, http.MethodGet, "/api/events", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	env := decodeEnvelope(t, recorder)
	var events []models.Event
	require.NoError(t, json.Unmarshal(env.Data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Robo Soccer", events[0].Title)
}

func TestEventHandlerListFailure(t *testing.T) {
	svc := &stubEventService{err: appErrors.ErrInternal}
	h := NewEventHandler(svc, nil)

	c, recorder := newTestContext(t, http.MethodGet, "/api/events", nil)
	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	env := decodeEnvelope(t, recorder)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrInternal.Code, env.Error.Code)
}

func TestEventHandlerCreate(t *testing.T) {
	svc := &stubEventService{}
	h := NewEventHandler(svc, nil)

	c, recorder := newTestContext(t, http.MethodPost, "/api/events", eventPayload())
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	c.Request.Header.Set("User-Agent", "console/1.0")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, svc.lastActor)
	assert.Equal(t, "admin-1", svc.lastActor.UserID)
	assert.Equal(t, "console/1.0", svc.lastMeta.UserAgent)
}

func TestEventHandlerCreateRejectsMalformedJSON(t *testing.T) {
	h := NewEventHandler(&stubEventService{}, nil)

	c, recorder := newTestContext(t, http.MethodPost, "/api/events", nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader([]byte("{not json")))
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	env := decodeEnvelope(t, recorder)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)
}

func TestEventHandlerUpdate(t *testing.T) {
	svc := &stubEventService{}
	h := NewEventHandler(svc, nil)

	c, recorder := newTestContext(t, http.MethodPut, "/api/events/ev-1", eventPayload())
	c.Params = gin.Params{{Key: "id", Value: "ev-1"}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	env := decodeEnvelope(t, recorder)
	var event models.Event
	require.NoError(t, json.Unmarshal(env.Data, &event))
	assert.Equal(t, "ev-1", event.ID)
}

func TestEventHandlerDelete(t *testing.T) {
	svc := &stubEventService{}
	h := NewEventHandler(svc, nil)

	c, recorder := newTestContext(t, http.MethodDelete, "/api/events/ev-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "ev-1"}}
	h.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "ev-1", svc.deletedID)
	assert.Empty(t, recorder.Body.Bytes())
}

func TestEventHandlerGetNotFound(t *testing.T) {
	svc := &stubEventService{err: appErrors.Clone(appErrors.ErrNotFound, "event not found")}
	h := NewEventHandler(svc, nil)

	c, recorder := newTestContext(t, http.MethodGet, "/api/events/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestEventHandlerExportDefaultsToCSV(t *testing.T) {
	export := &stubExportService{result: &service.ExportResult{
		Content:     []byte("Title\n"),
		ContentType: "text/csv",
		Filename:    "events.csv",
	}}
	h := NewEventHandler(&stubEventService{}, export)

	c, recorder := newTestContext(t, http.MethodGet, "/api/events/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, service.ExportFormatCSV, export.format)
	assert.Equal(t, "text/csv", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "events.csv")
}

func TestEventHandlerExportPDF(t *testing.T) {
	export := &stubExportService{result: &service.ExportResult{
		Content:     []byte("%PDF-1.4"),
		ContentType: "application/pdf",
		Filename:    "events.pdf",
	}}
	h := NewEventHandler(&stubEventService{}, export)

	c, recorder := newTestContext(t, http.MethodGet, "/api/events/export?format=pdf", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, service.ExportFormatPDF, export.format)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
}
