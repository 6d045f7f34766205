package services

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// ScheduleService assembles the daily visit view out of the planned schedule,
// the completed-activity log and the contact directory. Every call re-fetches
// from scratch; there is no cross-request state.
type ScheduleService struct {
	db *sql.DB
}

func NewScheduleService(db *sql.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// scanGeneric reads all rows into string maps keyed by column name. The
// pipeline treats most columns as opaque passthrough, so rows are loaded
// without a fixed struct.
func scanGeneric(rows *sql.Rows) ([]string, []map[string]string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result []map[string]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = values[i].String
		}
		result = append(result, row)
	}
	return columns, result, rows.Err()
}

func (s *ScheduleService) queryVisits(table string, scope Scope, date string) ([]Visit, error) {
	query := `SELECT * FROM ` + table + ` WHERE date = $1`
	args := []interface{}{date}
	if !scope.All() {
		query += ` AND mr_id = $2`
		args = append(args, scope.MRID())
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %v", ErrUnavailable, table, err)
	}
	defer rows.Close()

	_, raw, err := scanGeneric(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, table, err)
	}

	visits := make([]Visit, 0, len(raw))
	for _, row := range raw {
		// The activity log names its status column differently; fold it into
		// the canonical field before the merge ever sees the row.
		if status, ok := row["activity_status"]; ok {
			row["status"] = status
			delete(row, "activity_status")
		}
		visits = append(visits, visitFromRow(row))
	}
	return visits, nil
}

// FetchVisits runs the two source lookups for one scope and date. Dates are
// compared exactly as stored; normalization is the caller's job.
func (s *ScheduleService) FetchVisits(scope Scope, date string) (scheduleRows, activityRows []Visit, err error) {
	scheduleRows, err = s.queryVisits("master_schedule", scope, date)
	if err != nil {
		return nil, nil, err
	}
	activityRows, err = s.queryVisits("activities", scope, date)
	if err != nil {
		return nil, nil, err
	}
	return scheduleRows, activityRows, nil
}

// LoadContacts reads the whole contact directory generically. A failure here
// is logged and degraded to an empty set: the read path prefers fallback
// values over a failed schedule response.
func (s *ScheduleService) LoadContacts() ContactSet {
	rows, err := s.db.Query(`SELECT * FROM contacts`)
	if err != nil {
		log.Printf("[SCHEDULE] contacts load failed, enriching with fallbacks: %v", err)
		return ContactSet{}
	}
	defer rows.Close()

	columns, raw, err := scanGeneric(rows)
	if err != nil {
		log.Printf("[SCHEDULE] contacts scan failed, enriching with fallbacks: %v", err)
		return ContactSet{}
	}
	return ContactSet{Columns: columns, Rows: raw}
}

// DailySchedule is the full pipeline: fetch both sources, merge with activity
// precedence, enrich from the contact directory.
func (s *ScheduleService) DailySchedule(scope Scope, date string) ([]Visit, error) {
	scheduleRows, activityRows, err := s.FetchVisits(scope, date)
	if err != nil {
		return nil, err
	}

	merged := Merge(activityRows, scheduleRows)
	if len(merged) == 0 {
		return merged, nil
	}

	return Enrich(merged, s.LoadContacts()), nil
}

// UpdateStatus sets the status of one activity in both backing tables inside
// a single transaction, so the two sources cannot drift apart. NotFound means
// neither table knew the identifier.
func (s *ScheduleService) UpdateStatus(activityID, status string) error {
	activityID = strings.TrimSpace(activityID)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin status update: %v", ErrUnavailable, err)
	}

	scheduleRes, err := tx.Exec(`UPDATE master_schedule SET status = $1 WHERE activity_id = $2`, status, activityID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: updating master_schedule: %v", ErrUnavailable, err)
	}
	activityRes, err := tx.Exec(`UPDATE activities SET activity_status = $1 WHERE activity_id = $2`, status, activityID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: updating activities: %v", ErrUnavailable, err)
	}

	scheduleCount, _ := scheduleRes.RowsAffected()
	activityCount, _ := activityRes.RowsAffected()
	if scheduleCount == 0 && activityCount == 0 {
		tx.Rollback()
		return fmt.Errorf("%w: activity %q", ErrNotFound, activityID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing status update: %v", ErrUnavailable, err)
	}
	return nil
}
