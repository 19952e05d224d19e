package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/techfest-api/internal/models"
)

// UserRepository provides persistence for back-office accounts and auditing.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail loads a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, active, last_login, last_login_ip, created_at, updated_at
FROM users WHERE email = $1`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, active, last_login, last_login_ip, created_at, updated_at
FROM users WHERE id = $1`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordLogin stamps the user row and appends a login history entry.
func (r *UserRepository) RecordLogin(ctx context.Context, userID, ip string, ts time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin login transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		"UPDATE users SET last_login = $1, last_login_ip = $2, updated_at = $1 WHERE id = $3",
		ts, ip, userID,
	); err != nil {
		return fmt.Errorf("stamp last login: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO login_history (id, user_id, ip, created_at) VALUES ($1, $2, $3, $4)",
		uuid.NewString(), userID, ip, ts,
	); err != nil {
		return fmt.Errorf("append login history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit login record: %w", err)
	}
	return nil
}

// LoginHistory returns the most recent login entries for the user, oldest first.
func (r *UserRepository) LoginHistory(ctx context.Context, userID string, limit int) ([]models.LoginRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	const query = `SELECT id, user_id, ip, created_at FROM (
	SELECT id, user_id, ip, created_at FROM login_history
	WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
) recent ORDER BY created_at ASC`

	var records []models.LoginRecord
	if err := r.db.SelectContext(ctx, &records, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list login history: %w", err)
	}
	return records, nil
}

// CreateAuditLog persists an audit trail record.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, old_values, new_values, ip_address, user_agent, created_at)
VALUES (:id, :user_id, :action, :resource, :resource_id, :old_values, :new_values, :ip_address, :user_agent, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
