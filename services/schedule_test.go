package services

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	scheduleCols = []string{"id", "activity_id", "mr_id", "date", "status", "customer_id", "customer_name", "start_time"}
	activityCols = []string{"id", "activity_id", "mr_id", "date", "activity_status", "customer_id", "customer_name", "start_time"}
	contactCols  = []string{"id", "contact_id", "customer_name", "phone", "segment"}
)

func newServiceWithMock(t *testing.T) (*ScheduleService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewScheduleService(db), mock, func() { db.Close() }
}

func TestFetchVisitsFiltersByMR(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM master_schedule WHERE date = $1 AND mr_id = $2`)).
		WithArgs("2026-01-29", "MR_1").
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow("1", "X1", "MR_1", "2026-01-29", "Pending", "C1", "City Hospital", "09:30"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM activities WHERE date = $1 AND mr_id = $2`)).
		WithArgs("2026-01-29", "MR_1").
		WillReturnRows(sqlmock.NewRows(activityCols))

	scheduleRows, activityRows, err := service.FetchVisits(ForMR("MR_1"), "2026-01-29")

	require.NoError(t, err)
	assert.Len(t, scheduleRows, 1)
	assert.Empty(t, activityRows)
	assert.Equal(t, "X1", scheduleRows[0].ActivityID)
	assert.Equal(t, "09:30", scheduleRows[0].Extra["start_time"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchVisitsAllMRsSkipsFilter(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM master_schedule WHERE date = $1`)).
		WithArgs("2026-01-29").
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow("1", "X1", "MR_1", "2026-01-29", "Pending", "C1", "", "09:30").
			AddRow("2", "X2", "MR_2", "2026-01-29", "Planned", "C2", "", "11:00"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM activities WHERE date = $1`)).
		WithArgs("2026-01-29").
		WillReturnRows(sqlmock.NewRows(activityCols))

	scheduleRows, _, err := service.FetchVisits(AllMRs(), "2026-01-29")

	require.NoError(t, err)
	assert.Len(t, scheduleRows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchVisitsRenamesActivityStatus(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM master_schedule WHERE date = $1 AND mr_id = $2`)).
		WillReturnRows(sqlmock.NewRows(scheduleCols))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM activities WHERE date = $1 AND mr_id = $2`)).
		WillReturnRows(sqlmock.NewRows(activityCols).
			AddRow("1", "X1", "MR_1", "2026-01-29", "Completed", "C1", "", "09:30"))

	_, activityRows, err := service.FetchVisits(ForMR("MR_1"), "2026-01-29")

	require.NoError(t, err)
	require.Len(t, activityRows, 1)
	assert.Equal(t, "Completed", activityRows[0].Status)
	assert.NotContains(t, activityRows[0].Extra, "activity_status")
}

func TestFetchVisitsUnavailableStore(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM master_schedule`)).
		WillReturnError(assert.AnError)

	_, _, err := service.FetchVisits(ForMR("MR_1"), "2026-01-29")

	// A dead store is an error, never an empty result
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDailySchedulePipeline(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM master_schedule WHERE date = $1 AND mr_id = $2`)).
		WithArgs("2026-01-29", "MR_1").
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow("1", "X1", "MR_1", "2026-01-29", "Pending", "C1", "", "09:30").
			AddRow("2", "X2", "MR_1", "2026-01-29", "Planned", "C2", "", "11:00"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM activities WHERE date = $1 AND mr_id = $2`)).
		WithArgs("2026-01-29", "MR_1").
		WillReturnRows(sqlmock.NewRows(activityCols).
			AddRow("7", "X1", "MR_1", "2026-01-29", "Completed", "C1", "", "09:42"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM contacts`)).
		WillReturnRows(sqlmock.NewRows(contactCols).
			AddRow("1", "C1", "City Hospital", "555-1234", "Key"))

	visits, err := service.DailySchedule(ForMR("MR_1"), "2026-01-29")

	require.NoError(t, err)
	require.Len(t, visits, 2)

	// X1: the completed-activity copy wins and gets directory data
	assert.Equal(t, "X1", visits[0].ActivityID)
	assert.Equal(t, "Completed", visits[0].Status)
	assert.Equal(t, "555-1234", visits[0].Phone)
	assert.Equal(t, "Key", visits[0].Segment)
	assert.Equal(t, "City Hospital", visits[0].CustomerName)

	// X2: no directory match, fallback literals
	assert.Equal(t, "X2", visits[1].ActivityID)
	assert.Equal(t, FallbackPhone, visits[1].Phone)
	assert.Equal(t, FallbackSegment, visits[1].Segment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyScheduleEmptySkipsContacts(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM master_schedule WHERE date = $1 AND mr_id = $2`)).
		WillReturnRows(sqlmock.NewRows(scheduleCols))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM activities WHERE date = $1 AND mr_id = $2`)).
		WillReturnRows(sqlmock.NewRows(activityCols))
	// No contacts query expected: the enricher is not invoked on an empty set

	visits, err := service.DailySchedule(ForMR("MR_1"), "2026-01-29")

	require.NoError(t, err)
	assert.Empty(t, visits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusUpdatesBothSources(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE master_schedule SET status = $1 WHERE activity_id = $2`)).
		WithArgs("Done", "X1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE activities SET activity_status = $1 WHERE activity_id = $2`)).
		WithArgs("Done", "X1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := service.UpdateStatus(" X1 ", "Done")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE master_schedule`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE activities`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := service.UpdateStatus("NOPE", "Done")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusStoreFailure(t *testing.T) {
	service, mock, cleanup := newServiceWithMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE master_schedule`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := service.UpdateStatus("X1", "Done")

	assert.ErrorIs(t, err, ErrUnavailable)
}
