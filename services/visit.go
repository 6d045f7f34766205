package services

import "errors"

// Sentinel errors surfaced by the schedule pipeline. Handlers translate these
// to HTTP status codes; nothing in this package retries.
var (
	ErrUnavailable = errors.New("data source unavailable")
	ErrNotFound    = errors.New("record not found")
)

// Scope selects whose visits a query covers. The "admin means everyone"
// convention lives at the HTTP boundary; by the time a Scope reaches this
// package the decision is already made.
type Scope struct {
	mrID string
	all  bool
}

// ForMR scopes a query to a single representative (exact mr_id match).
func ForMR(mrID string) Scope {
	return Scope{mrID: mrID}
}

// AllMRs scopes a query to every representative.
func AllMRs() Scope {
	return Scope{all: true}
}

func (s Scope) All() bool {
	return s.all
}

func (s Scope) MRID() string {
	return s.mrID
}

// Visit is one scheduled or completed customer interaction. The pipeline only
// reasons about the named fields; everything else a source row carries rides
// along in Extra untouched.
type Visit struct {
	ActivityID   string
	MRID         string
	Date         string
	CustomerID   string
	CustomerName string
	Status       string
	Phone        string
	Segment      string
	Extra        map[string]string
}

// Record flattens the visit into a single map for serialization. Missing
// scalars come out as empty strings, never null.
func (v Visit) Record() map[string]string {
	record := make(map[string]string, len(v.Extra)+8)
	for k, val := range v.Extra {
		record[k] = val
	}
	record["activity_id"] = v.ActivityID
	record["mr_id"] = v.MRID
	record["date"] = v.Date
	record["customer_id"] = v.CustomerID
	record["customer_name"] = v.CustomerName
	record["status"] = v.Status
	record["phone"] = v.Phone
	record["segment"] = v.Segment
	return record
}

// visitFromRow pulls the known fields out of a generic row map and keeps the
// rest as passthrough.
func visitFromRow(row map[string]string) Visit {
	v := Visit{Extra: make(map[string]string)}
	for col, val := range row {
		switch col {
		case "activity_id":
			v.ActivityID = val
		case "mr_id":
			v.MRID = val
		case "date":
			v.Date = val
		case "customer_id":
			v.CustomerID = val
		case "customer_name":
			v.CustomerName = val
		case "status":
			v.Status = val
		default:
			v.Extra[col] = val
		}
	}
	return v
}

// Merge concatenates completed-activity rows ahead of planned-schedule rows
// and deduplicates by activity_id, keeping the first occurrence. Activity data
// therefore wins whenever both sources carry the same identifier. Rows without
// an activity_id are never collapsed into each other.
func Merge(activityRows, scheduleRows []Visit) []Visit {
	merged := make([]Visit, 0, len(activityRows)+len(scheduleRows))
	seen := make(map[string]struct{}, len(activityRows)+len(scheduleRows))

	for _, rows := range [][]Visit{activityRows, scheduleRows} {
		for _, v := range rows {
			if v.ActivityID == "" {
				merged = append(merged, v)
				continue
			}
			if _, dup := seen[v.ActivityID]; dup {
				continue
			}
			seen[v.ActivityID] = struct{}{}
			merged = append(merged, v)
		}
	}

	return merged
}
