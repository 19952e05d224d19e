package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/techfest-api/internal/models"
)

var userColumnNames = []string{
	"id", "email", "password_hash", "full_name", "role", "active",
	"last_login", "last_login_ip", "created_at", "updated_at",
}

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("admin@example.org").
		WillReturnRows(sqlmock.NewRows(userColumnNames).AddRow(
			"admin-1", "admin@example.org", "$2a$10$hash", "Fest Admin", "ADMIN", true,
			nil, "", now, now,
		))

	user, err := repo.FindByEmail(context.Background(), "admin@example.org")

	require.NoError(t, err)
	assert.Equal(t, "admin-1", user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Nil(t, user.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailNotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("ghost@example.org").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@example.org")

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryRecordLogin(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	ts := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET last_login = $1, last_login_ip = $2, updated_at = $1 WHERE id = $3")).
		WithArgs(ts, "10.0.0.1", "admin-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO login_history (id, user_id, ip, created_at) VALUES ($1, $2, $3, $4)")).
		WithArgs(sqlmock.AnyArg(), "admin-1", "10.0.0.1", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RecordLogin(context.Background(), "admin-1", "10.0.0.1", ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryRecordLoginRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	ts := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET last_login = $1, last_login_ip = $2, updated_at = $1 WHERE id = $3")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	require.Error(t, repo.RecordLogin(context.Background(), "admin-1", "10.0.0.1", ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryLoginHistory(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	base := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM \\(").
		WithArgs("admin-1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ip", "created_at"}).
			AddRow("lh-1", "admin-1", "10.0.0.1", base.Add(-time.Hour)).
			AddRow("lh-2", "admin-1", "10.0.0.2", base))

	records, err := repo.LoginHistory(context.Background(), "admin-1", 5)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "10.0.0.1", records[0].IP)
	assert.True(t, records[0].Timestamp.Before(records[1].Timestamp), "oldest first")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryLoginHistoryDefaultLimit(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM \\(").
		WithArgs("admin-1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ip", "created_at"}))

	_, err := repo.LoginHistory(context.Background(), "admin-1", 0)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateAuditLog(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	log := &models.AuditLog{Action: models.AuditActionLogin, Resource: "auth"}
	require.NoError(t, repo.CreateAuditLog(context.Background(), log))

	assert.NotEmpty(t, log.ID, "identifier assigned when absent")
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
