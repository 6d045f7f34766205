package services

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GeneratorService rebuilds the forward-looking master schedule from the
// contact directory. The previous plan is treated as a snapshot and replaced
// wholesale, the same way the spreadsheet-era tooling overwrote its sheet.
type GeneratorService struct {
	db *sql.DB
}

func NewGeneratorService(db *sql.DB) *GeneratorService {
	return &GeneratorService{db: db}
}

var activityTypes = []string{"Doctor Visit", "Pharmacy Call", "Hospital Round", "Stockist Meeting"}

type generatorMR struct {
	mrID string
	team string
	zone string
}

type generatorContact struct {
	contactID string
	name      string
	segment   string
	locality  string
	latitude  float64
	longitude float64
}

func (g *GeneratorService) loadMRs() ([]generatorMR, error) {
	rows, err := g.db.Query(`SELECT mr_id, COALESCE(team, 'General'), COALESCE(zone, 'North') FROM users WHERE role = 'mr' AND is_active = true ORDER BY mr_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: loading users: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var mrs []generatorMR
	for rows.Next() {
		var mr generatorMR
		if err := rows.Scan(&mr.mrID, &mr.team, &mr.zone); err != nil {
			return nil, fmt.Errorf("%w: scanning users: %v", ErrUnavailable, err)
		}
		mrs = append(mrs, mr)
	}
	return mrs, rows.Err()
}

func (g *GeneratorService) loadContacts() ([]generatorContact, error) {
	rows, err := g.db.Query(`SELECT contact_id, COALESCE(customer_name, ''), COALESCE(segment, 'General'), COALESCE(locality, ''), COALESCE(latitude, 0), COALESCE(longitude, 0) FROM contacts ORDER BY contact_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: loading contacts: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var contacts []generatorContact
	for rows.Next() {
		var ct generatorContact
		if err := rows.Scan(&ct.contactID, &ct.name, &ct.segment, &ct.locality, &ct.latitude, &ct.longitude); err != nil {
			return nil, fmt.Errorf("%w: scanning contacts: %v", ErrUnavailable, err)
		}
		contacts = append(contacts, ct)
	}
	return contacts, rows.Err()
}

// GenerateSchedule plans visits for every active MR over the next `days`
// days and replaces the current master schedule with them. Returns the number
// of planned visits.
func (g *GeneratorService) GenerateSchedule(days int) (int, error) {
	if days <= 0 {
		days = 7
	}

	mrs, err := g.loadMRs()
	if err != nil {
		return 0, err
	}
	contacts, err := g.loadContacts()
	if err != nil {
		return 0, err
	}
	if len(mrs) == 0 || len(contacts) == 0 {
		return 0, nil
	}

	tx, err := g.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: begin generate: %v", ErrUnavailable, err)
	}

	// Snapshot semantics: the old plan goes away entirely.
	if _, err := tx.Exec(`DELETE FROM master_schedule`); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("%w: clearing master_schedule: %v", ErrUnavailable, err)
	}

	insert := `INSERT INTO master_schedule
		(activity_id, mr_id, date, status, customer_id, customer_name, team, zone,
		 activity_type, locality, latitude, longitude, start_time, end_time,
		 duration_min, distance_km, contact_person, customer_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	today := time.Now()
	total := 0

	for _, mr := range mrs {
		for d := 0; d < days; d++ {
			date := today.AddDate(0, 0, d).Format("2006-01-02")
			status := "Planned"
			if d == 0 {
				status = "Pending"
			}

			picks := rand.Perm(len(contacts))
			visitCount := 3 + rand.Intn(3)
			if visitCount > len(contacts) {
				visitCount = len(contacts)
			}

			// Day starts at 09:30; each visit gets 20-45 minutes plus a
			// 15-45 minute travel gap.
			clock := 9*60 + 30
			for i := 0; i < visitCount; i++ {
				ct := contacts[picks[i]]
				duration := 20 + rand.Intn(26)
				start := fmt.Sprintf("%02d:%02d", clock/60, clock%60)
				end := fmt.Sprintf("%02d:%02d", (clock+duration)/60, (clock+duration)%60)

				customerStatus := "Regular"
				if i < 2 {
					customerStatus = "Key"
				}
				contactPerson := ct.name
				if ct.segment == "Hospital" {
					contactPerson = "Reception"
				}

				// Jitter coordinates so markers for shared locations do not
				// overlap perfectly on the map.
				const jitter = 0.0005
				lat := ct.latitude + (rand.Float64()*2-1)*jitter
				lon := ct.longitude + (rand.Float64()*2-1)*jitter

				_, err := tx.Exec(insert,
					fmt.Sprintf("SMART_%s_%s", mr.mrID, uuid.New().String()[:8]),
					mr.mrID, date, status, ct.contactID, ct.name, mr.team, mr.zone,
					activityTypes[rand.Intn(len(activityTypes))], ct.locality, lat, lon,
					start, end, duration,
					float64(int((1.0+rand.Float64()*14.0)*100))/100,
					contactPerson, customerStatus,
				)
				if err != nil {
					tx.Rollback()
					return 0, fmt.Errorf("%w: inserting planned visit: %v", ErrUnavailable, err)
				}

				total++
				clock += duration + 15 + rand.Intn(31)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing generated schedule: %v", ErrUnavailable, err)
	}
	return total, nil
}
