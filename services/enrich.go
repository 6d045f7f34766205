package services

import "strings"

// Fallback values applied when a contact lookup fails or a column cannot be
// resolved at all.
const (
	FallbackPhone   = "N/A"
	FallbackSegment = "General"
)

// ContactSet is a generically-loaded view of the contact directory. The
// directory's column names are not fixed by any schema, so the enricher
// discovers them by keyword instead of assuming them.
type ContactSet struct {
	Columns []string
	Rows    []map[string]string
}

// contactIDColumn is the one column the join actually requires; it is matched
// by name (case-insensitive), not by keyword.
const contactIDColumn = "contact_id"

// Keyword lists for column discovery, in priority order. The first column
// containing a keyword wins for the whole batch.
var (
	phoneKeywords   = []string{"phone", "mobile", "contact", "tel", "cell", "number"}
	segmentKeywords = []string{"segment", "category", "type", "group", "class"}
	nameKeywords    = []string{"contact_name", "name", "customer_name"}
)

// contactMapping is the resolved semantic-field -> source-column table,
// computed once per contact set.
type contactMapping struct {
	idCol      string
	phoneCol   string
	segmentCol string
	nameCol    string
}

func resolveColumn(columns []string, keywords []string) string {
	for _, kw := range keywords {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(strings.TrimSpace(col)), kw) {
				return col
			}
		}
	}
	return ""
}

func resolveMapping(columns []string) contactMapping {
	m := contactMapping{
		phoneCol:   resolveColumn(columns, phoneKeywords),
		segmentCol: resolveColumn(columns, segmentKeywords),
		nameCol:    resolveColumn(columns, nameKeywords),
	}
	for _, col := range columns {
		if strings.EqualFold(strings.TrimSpace(col), contactIDColumn) {
			m.idCol = col
			break
		}
	}
	return m
}

// Enrich fills phone, segment and (when missing) customer_name on each visit
// by joining customer_id against the contact directory. It never fails a
// batch: unresolved columns and unmatched customers degrade to the fallback
// literals, and an already-present customer_name is never overwritten.
func Enrich(visits []Visit, contacts ContactSet) []Visit {
	if len(visits) == 0 {
		return visits
	}

	mapping := resolveMapping(contacts.Columns)

	// Without a usable join key on the contact side, every row falls back.
	if mapping.idCol == "" || len(contacts.Rows) == 0 {
		for i := range visits {
			visits[i].Phone = FallbackPhone
			visits[i].Segment = FallbackSegment
		}
		return visits
	}

	index := make(map[string]map[string]string, len(contacts.Rows))
	for _, row := range contacts.Rows {
		id := strings.TrimSpace(row[mapping.idCol])
		if id == "" {
			continue
		}
		if _, exists := index[id]; !exists {
			index[id] = row
		}
	}

	for i := range visits {
		visits[i].Phone = FallbackPhone
		visits[i].Segment = FallbackSegment

		contact, ok := index[strings.TrimSpace(visits[i].CustomerID)]
		if !ok {
			continue
		}
		if mapping.phoneCol != "" && contact[mapping.phoneCol] != "" {
			visits[i].Phone = contact[mapping.phoneCol]
		}
		if mapping.segmentCol != "" && contact[mapping.segmentCol] != "" {
			visits[i].Segment = contact[mapping.segmentCol]
		}
		if visits[i].CustomerName == "" && mapping.nameCol != "" {
			visits[i].CustomerName = contact[mapping.nameCol]
		}
	}

	return visits
}
