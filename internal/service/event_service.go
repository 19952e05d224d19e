package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/techfest-api/internal/models"
	appErrors "github.com/noah-isme/techfest-api/pkg/errors"
)

const (
	eventResource     = "event"
	eventListCacheKey = "events:list"
)

type eventStore interface {
	List(ctx context.Context) ([]models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// EventService orchestrates catalogue CRUD with caching and auditing.
type EventService struct {
	repo      eventStore
	cache     *CacheService
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
	clock     func() time.Time
}

// NewEventService builds an EventService with sane defaults.
func NewEventService(repo eventStore, cache *CacheService, audit auditLogger, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		repo:      repo,
		cache:     cache,
		audit:     audit,
		validator: validate,
		logger:    logger,
		cacheTTL:  cacheTTL,
		clock:     func() time.Time { return time.Now() },
	}
}

// WithClock overrides the reference clock. Intended for tests.
func (s *EventService) WithClock(clock func() time.Time) *EventService {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// List returns every catalogue event, served from cache when warm.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	var cached []models.Event
	if hit, _ := s.cache.Get(ctx, eventListCacheKey, &cached); hit {
		return cached, nil
	}

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	for i := range events {
		events[i].ApplyDefaults()
	}

	if err := s.cache.Set(ctx, eventListCacheKey, events, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache event list", zap.Error(err))
	}
	return events, nil
}

// Get returns a single event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event id is required")
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	event.ApplyDefaults()
	return event, nil
}

// Create validates and persists a new event, then drops the list cache.
func (s *EventService) Create(ctx context.Context, input models.EventInput, actor *models.JWTClaims, meta models.RequestMeta) (*models.Event, error) {
	if err := s.checkInput(input); err != nil {
		return nil, err
	}

	event := inputToEvent(input)
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}

	s.invalidateList(ctx)
	s.emitAudit(ctx, actor, models.AuditActionEventCreate, created.ID, nil, created, meta)
	return created, nil
}

// Update validates and replaces an existing event, then drops the list cache.
func (s *EventService) Update(ctx context.Context, id string, input models.EventInput, actor *models.JWTClaims, meta models.RequestMeta) (*models.Event, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event id is required")
	}
	if err := s.checkInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}

	event := inputToEvent(input)
	event.ID = id
	event.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}

	s.invalidateList(ctx)
	s.emitAudit(ctx, actor, models.AuditActionEventUpdate, updated.ID, existing, updated, meta)
	return updated, nil
}

// Delete removes an event and drops the list cache.
func (s *EventService) Delete(ctx context.Context, id string, actor *models.JWTClaims, meta models.RequestMeta) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "event id is required")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}

	s.invalidateList(ctx)
	s.emitAudit(ctx, actor, models.AuditActionEventDelete, id, existing, nil, meta)
	return nil
}

// checkInput enforces the catalogue invariants on the server side. The admin
// console performs the same checks before submitting; this is the backstop for
// other clients.
func (s *EventService) checkInput(input models.EventInput) error {
	if err := s.validator.Struct(input); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	day, err := time.ParseInLocation(models.DateLayout, input.Date, time.Local)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}
	now := s.clock()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return appErrors.Clone(appErrors.ErrValidation, "event date cannot be in the past")
	}

	if input.RegistrationFees.Solo < 0 || input.RegistrationFees.Team < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "registration fees must be non-negative")
	}
	if input.IsTeamEvent && (input.TeamSize.Max < 2 || input.TeamSize.Max > 10) {
		return appErrors.Clone(appErrors.ErrValidation, "team size must be between 2 and 10")
	}

	if input.QRCode != "" {
		if _, err := url.ParseRequestURI(input.QRCode); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "qr code must be a valid URL")
		}
	}
	if input.RegistrationFees.Paid() {
		if input.QRCode == "" {
			return appErrors.Clone(appErrors.ErrValidation, "qr code is required for paid events")
		}
		if input.UPIID == "" {
			return appErrors.Clone(appErrors.ErrValidation, "upi id is required for paid events")
		}
	}
	return nil
}

func (s *EventService) invalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, eventListCacheKey); err != nil {
		s.logger.Warn("failed to invalidate event list cache", zap.Error(err))
	}
}

func (s *EventService) emitAudit(ctx context.Context, actor *models.JWTClaims, action, eventID string, oldEvent, newEvent *models.Event, meta models.RequestMeta) {
	if s.audit == nil {
		return
	}
	var userID *string
	if actor != nil {
		userID = &actor.UserID
	}
	var oldValues, newValues []byte
	if oldEvent != nil {
		oldValues, _ = json.Marshal(oldEvent)
	}
	if newEvent != nil {
		newValues, _ = json.Marshal(newEvent)
	}
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   eventResource,
		ResourceID: &eventID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record event audit", zap.Error(err))
	}
}

func inputToEvent(input models.EventInput) *models.Event {
	event := &models.Event{
		Title:            input.Title,
		Description:      input.Description,
		Date:             input.Date,
		Location:         input.Location,
		EventType:        input.EventType,
		RegistrationFees: input.RegistrationFees,
		Image:            input.Image,
		QRCode:           input.QRCode,
		UPIID:            input.UPIID,
		IsTeamEvent:      input.IsTeamEvent,
		TeamSize:         input.TeamSize,
		Capacity:         input.Capacity,
		Prizes:           input.Prizes,
		Rules:            input.Rules,
		Requirements:     input.Requirements,
		AboutContent:     input.AboutContent,
		DetailsContent:   input.DetailsContent,
		Coordinators:     input.Coordinators,
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		IsActive:         input.IsActive,
	}
	event.ApplyDefaults()
	return event
}
