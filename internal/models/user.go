package models

import "time"

// UserRole represents the available roles for route guarding.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
)

// User represents a back-office account stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	LastLoginIP  string     `db:"last_login_ip" json:"last_login_ip,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// LoginRecord is a single entry in a user's login history.
type LoginRecord struct {
	ID        string    `db:"id" json:"-"`
	UserID    string    `db:"user_id" json:"-"`
	IP        string    `db:"ip" json:"ip"`
	Timestamp time.Time `db:"created_at" json:"timestamp"`
}

// LoginHistory is the login auditing view served to the back office.
type LoginHistory struct {
	LastLogin    *time.Time    `json:"lastLogin"`
	LastLoginIP  string        `json:"lastLoginIp"`
	LoginHistory []LoginRecord `json:"loginHistory"`
}
