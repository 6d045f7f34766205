package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func contactSet(columns []string, rows ...map[string]string) ContactSet {
	return ContactSet{Columns: columns, Rows: rows}
}

func TestEnrichResolvesPhoneAndSegment(t *testing.T) {
	visits := []Visit{{ActivityID: "X1", CustomerID: "C1"}}
	contacts := contactSet(
		[]string{"contact_id", "phone", "segment"},
		map[string]string{"contact_id": "C1", "phone": "555-1234", "segment": "Key"},
	)

	enriched := Enrich(visits, contacts)

	assert.Equal(t, "555-1234", enriched[0].Phone)
	assert.Equal(t, "Key", enriched[0].Segment)
}

func TestEnrichFallbackWhenNoMatch(t *testing.T) {
	visits := []Visit{
		{ActivityID: "X1", CustomerID: "C_UNKNOWN"},
		{ActivityID: "X2", CustomerID: ""},
	}
	contacts := contactSet(
		[]string{"contact_id", "phone", "segment"},
		map[string]string{"contact_id": "C1", "phone": "555-1234", "segment": "Key"},
	)

	enriched := Enrich(visits, contacts)

	for _, v := range enriched {
		assert.Equal(t, FallbackPhone, v.Phone)
		assert.Equal(t, FallbackSegment, v.Segment)
	}
}

func TestEnrichFallbackWhenContactsEmpty(t *testing.T) {
	visits := []Visit{{ActivityID: "X1", CustomerID: "C1"}}

	enriched := Enrich(visits, ContactSet{})

	assert.Equal(t, FallbackPhone, enriched[0].Phone)
	assert.Equal(t, FallbackSegment, enriched[0].Segment)
}

func TestEnrichFallbackWhenJoinKeyMissing(t *testing.T) {
	visits := []Visit{{ActivityID: "X1", CustomerID: "C1"}}
	// Phone-like column exists but there is no contact_id to join on
	contacts := contactSet(
		[]string{"customer_ref", "phone"},
		map[string]string{"customer_ref": "C1", "phone": "555-1234"},
	)

	enriched := Enrich(visits, contacts)

	assert.Equal(t, FallbackPhone, enriched[0].Phone)
	assert.Equal(t, FallbackSegment, enriched[0].Segment)
}

func TestEnrichEmptyValueFallsBack(t *testing.T) {
	visits := []Visit{{ActivityID: "X1", CustomerID: "C1"}}
	contacts := contactSet(
		[]string{"contact_id", "phone", "segment"},
		map[string]string{"contact_id": "C1", "phone": "", "segment": "Key"},
	)

	enriched := Enrich(visits, contacts)

	assert.Equal(t, FallbackPhone, enriched[0].Phone)
	assert.Equal(t, "Key", enriched[0].Segment)
}

func TestEnrichNeverOverwritesCustomerName(t *testing.T) {
	visits := []Visit{
		{ActivityID: "X1", CustomerID: "C1", CustomerName: "City Hospital"},
		{ActivityID: "X2", CustomerID: "C1"},
	}
	contacts := contactSet(
		[]string{"contact_id", "contact_name", "phone"},
		map[string]string{"contact_id": "C1", "contact_name": "Dr. Mehta", "phone": "555-1234"},
	)

	enriched := Enrich(visits, contacts)

	assert.Equal(t, "City Hospital", enriched[0].CustomerName, "existing name must not be clobbered")
	assert.Equal(t, "Dr. Mehta", enriched[1].CustomerName, "missing name is backfilled")
}

func TestEnrichColumnDiscoveryIsFuzzy(t *testing.T) {
	visits := []Visit{{ActivityID: "X1", CustomerID: "C1"}}
	contacts := contactSet(
		[]string{"Contact_ID", " Mobile Number ", "Customer Category"},
		map[string]string{"Contact_ID": "C1", " Mobile Number ": "98250-11111", "Customer Category": "Platinum"},
	)

	enriched := Enrich(visits, contacts)

	assert.Equal(t, "98250-11111", enriched[0].Phone)
	assert.Equal(t, "Platinum", enriched[0].Segment)
}

func TestResolveColumnKeywordPriority(t *testing.T) {
	// "tel_office" contains a lower-priority keyword than "mobile"; the
	// keyword order decides, not the column order.
	col := resolveColumn([]string{"tel_office", "mobile"}, phoneKeywords)
	assert.Equal(t, "mobile", col)

	// Within one keyword, the first matching column wins.
	col = resolveColumn([]string{"phone_home", "phone_work"}, phoneKeywords)
	assert.Equal(t, "phone_home", col)

	assert.Equal(t, "", resolveColumn([]string{"address", "city"}, phoneKeywords))
}

func TestEnrichUnresolvedColumnAffectsWholeBatch(t *testing.T) {
	visits := []Visit{
		{ActivityID: "X1", CustomerID: "C1"},
		{ActivityID: "X2", CustomerID: "C2"},
	}
	// No segment-like column at all
	contacts := contactSet(
		[]string{"contact_id", "phone"},
		map[string]string{"contact_id": "C1", "phone": "555-1234"},
		map[string]string{"contact_id": "C2", "phone": "555-5678"},
	)

	enriched := Enrich(visits, contacts)

	assert.Equal(t, "555-1234", enriched[0].Phone)
	assert.Equal(t, FallbackSegment, enriched[0].Segment)
	assert.Equal(t, FallbackSegment, enriched[1].Segment)
}

// The concrete end-to-end scenario: duplicate activity across both sources
// plus a directory hit.
func TestMergeAndEnrichScenario(t *testing.T) {
	scheduleRows := []Visit{
		{ActivityID: "X1", MRID: "MR_1", Date: "2026-01-29", CustomerID: "C1", Status: "Pending"},
	}
	activityRows := []Visit{
		{ActivityID: "X1", MRID: "MR_1", Date: "2026-01-29", CustomerID: "C1", Status: "Completed"},
	}
	contacts := contactSet(
		[]string{"contact_id", "phone", "segment"},
		map[string]string{"contact_id": "C1", "phone": "555-1234", "segment": "Key"},
	)

	enriched := Enrich(Merge(activityRows, scheduleRows), contacts)

	assert.Len(t, enriched, 1)
	assert.Equal(t, "Completed", enriched[0].Status)
	assert.Equal(t, "555-1234", enriched[0].Phone)
	assert.Equal(t, "Key", enriched[0].Segment)
}

func TestEnrichIsDeterministic(t *testing.T) {
	contacts := contactSet(
		[]string{"contact_id", "phone", "segment"},
		map[string]string{"contact_id": "C1", "phone": "555-1234", "segment": "Key"},
	)

	run := func() []Visit {
		visits := []Visit{
			{ActivityID: "X1", CustomerID: "C1"},
			{ActivityID: "X2", CustomerID: "C9"},
		}
		return Enrich(Merge(nil, visits), contacts)
	}

	assert.Equal(t, run(), run(), "identical inputs must produce identical output sequences")
}
