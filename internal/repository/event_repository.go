package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/techfest-api/internal/models"
)

const eventColumns = `id, title, description, date, location, event_type, registration_fees,
image, qr_code, upi_id, is_team_event, team_size, capacity, prizes, rules,
requirements, about_content, details_content, coordinators, start_time, end_time,
is_active, created_at, updated_at`

// EventRepository provides persistence for catalogue events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns all events ordered by date, newest rows last.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events ORDER BY date ASC, created_at ASC", eventColumns)

	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindByID fetches a single event.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)

	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return &event, nil
}

// Create inserts a new event and returns the stored row.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	now := time.Now().UTC()
	event.ID = uuid.NewString()
	event.CreatedAt = now
	event.UpdatedAt = now

	const query = `INSERT INTO events (
	id, title, description, date, location, event_type, registration_fees,
	image, qr_code, upi_id, is_team_event, team_size, capacity, prizes, rules,
	requirements, about_content, details_content, coordinators, start_time, end_time,
	is_active, created_at, updated_at
) VALUES (
	:id, :title, :description, :date, :location, :event_type, :registration_fees,
	:image, :qr_code, :upi_id, :is_team_event, :team_size, :capacity, :prizes, :rules,
	:requirements, :about_content, :details_content, :coordinators, :start_time, :end_time,
	:is_active, :created_at, :updated_at
)`

	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// Update replaces the mutable columns of an existing event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	event.UpdatedAt = time.Now().UTC()

	const query = `UPDATE events SET
	title = :title,
	description = :description,
	date = :date,
	location = :location,
	event_type = :event_type,
	registration_fees = :registration_fees,
	image = :image,
	qr_code = :qr_code,
	upi_id = :upi_id,
	is_team_event = :is_team_event,
	team_size = :team_size,
	capacity = :capacity,
	prizes = :prizes,
	rules = :rules,
	requirements = :requirements,
	about_content = :about_content,
	details_content = :details_content,
	coordinators = :coordinators,
	start_time = :start_time,
	end_time = :end_time,
	is_active = :is_active,
	updated_at = :updated_at
WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return nil, fmt.Errorf("update event %s: %w", event.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update event %s: %w", event.ID, err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return event, nil
}

// Delete removes an event row.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
