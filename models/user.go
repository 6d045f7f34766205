package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a field representative (MR) account. Admin logins are configured
// out of band and never stored here.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	MRID         string    `json:"mr_id" db:"mr_id"`
	FirstName    *string   `json:"first_name" db:"first_name"`
	LastName     *string   `json:"last_name" db:"last_name"`
	Team         *string   `json:"team" db:"team"`
	Zone         *string   `json:"zone" db:"zone"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (User) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		mr_id TEXT UNIQUE NOT NULL,
		first_name TEXT,
		last_name TEXT,
		team TEXT,
		zone TEXT,
		password_hash TEXT,
		role TEXT DEFAULT 'mr' CHECK (role IN ('mr', 'admin')),
		is_active BOOLEAN DEFAULT true,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_users_mr_id ON users(mr_id);
	CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
	`
}
