package models

import (
	"time"
)

// Schedule is a planned visit in the forward-looking master_schedule table.
// Dates are stored as YYYY-MM-DD text; normalization happens at the HTTP
// boundary, the storage layer compares them as opaque strings.
type Schedule struct {
	ID             int64     `json:"id" db:"id"`
	ActivityID     string    `json:"activity_id" db:"activity_id"`
	MRID           string    `json:"mr_id" db:"mr_id"`
	Date           string    `json:"date" db:"date"`
	Status         string    `json:"status" db:"status"`
	CustomerID     *string   `json:"customer_id" db:"customer_id"`
	CustomerName   *string   `json:"customer_name" db:"customer_name"`
	Team           *string   `json:"team" db:"team"`
	Zone           *string   `json:"zone" db:"zone"`
	ActivityType   *string   `json:"activity_type" db:"activity_type"`
	Locality       *string   `json:"locality" db:"locality"`
	Latitude       *float64  `json:"latitude" db:"latitude"`
	Longitude      *float64  `json:"longitude" db:"longitude"`
	StartTime      *string   `json:"start_time" db:"start_time"`
	EndTime        *string   `json:"end_time" db:"end_time"`
	DurationMin    *int      `json:"duration_min" db:"duration_min"`
	DistanceKM     *float64  `json:"distance_km" db:"distance_km"`
	ContactPerson  *string   `json:"contact_person" db:"contact_person"`
	CustomerStatus *string   `json:"customer_status" db:"customer_status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func (Schedule) TableName() string {
	return "master_schedule"
}

func (Schedule) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS master_schedule (
		id BIGSERIAL PRIMARY KEY,
		activity_id TEXT NOT NULL,
		mr_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT DEFAULT 'Planned',
		customer_id TEXT,
		customer_name TEXT,
		team TEXT,
		zone TEXT,
		activity_type TEXT,
		locality TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		start_time TEXT,
		end_time TEXT,
		duration_min INTEGER,
		distance_km DOUBLE PRECISION,
		contact_person TEXT,
		customer_status TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_master_schedule_mr_date ON master_schedule(mr_id, date);
	CREATE INDEX IF NOT EXISTS idx_master_schedule_activity_id ON master_schedule(activity_id);
	CREATE INDEX IF NOT EXISTS idx_master_schedule_date ON master_schedule(date);
	`
}

// Activity is a completed-visit log row. It mirrors the schedule columns but
// carries activity_status instead of status; the pipeline renames it before
// merging.
type Activity struct {
	ID             int64     `json:"id" db:"id"`
	ActivityID     string    `json:"activity_id" db:"activity_id"`
	MRID           string    `json:"mr_id" db:"mr_id"`
	Date           string    `json:"date" db:"date"`
	ActivityStatus string    `json:"activity_status" db:"activity_status"`
	CustomerID     *string   `json:"customer_id" db:"customer_id"`
	CustomerName   *string   `json:"customer_name" db:"customer_name"`
	ActivityType   *string   `json:"activity_type" db:"activity_type"`
	Locality       *string   `json:"locality" db:"locality"`
	Latitude       *float64  `json:"latitude" db:"latitude"`
	Longitude      *float64  `json:"longitude" db:"longitude"`
	StartTime      *string   `json:"start_time" db:"start_time"`
	EndTime        *string   `json:"end_time" db:"end_time"`
	DurationMin    *int      `json:"duration_min" db:"duration_min"`
	DistanceKM     *float64  `json:"distance_km" db:"distance_km"`
	LoggedAt       time.Time `json:"logged_at" db:"logged_at"`
}

func (Activity) TableName() string {
	return "activities"
}

func (Activity) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS activities (
		id BIGSERIAL PRIMARY KEY,
		activity_id TEXT NOT NULL,
		mr_id TEXT NOT NULL,
		date TEXT NOT NULL,
		activity_status TEXT DEFAULT 'Completed',
		customer_id TEXT,
		customer_name TEXT,
		activity_type TEXT,
		locality TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		start_time TEXT,
		end_time TEXT,
		duration_min INTEGER,
		distance_km DOUBLE PRECISION,
		logged_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_activities_mr_date ON activities(mr_id, date);
	CREATE INDEX IF NOT EXISTS idx_activities_activity_id ON activities(activity_id);
	`
}
