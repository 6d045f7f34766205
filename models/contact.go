package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is one entry in the customer directory. The schedule pipeline reads
// this table generically (column discovery by keyword), so renaming a column
// here does not break enrichment as long as it still resembles a phone,
// segment or name column.
type Contact struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ContactID    string    `json:"contact_id" db:"contact_id"`
	CustomerName *string   `json:"customer_name" db:"customer_name"`
	Phone        *string   `json:"phone" db:"phone"`
	Segment      *string   `json:"segment" db:"segment"`
	Locality     *string   `json:"locality" db:"locality"`
	Latitude     *float64  `json:"latitude" db:"latitude"`
	Longitude    *float64  `json:"longitude" db:"longitude"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

func (Contact) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		contact_id TEXT UNIQUE NOT NULL,
		customer_name TEXT,
		phone TEXT,
		segment TEXT,
		locality TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_contacts_contact_id ON contacts(contact_id);
	CREATE INDEX IF NOT EXISTS idx_contacts_segment ON contacts(segment);
	`
}
