package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// completedFilter matches the statuses the dashboard counts as done.
const completedFilter = `lower(trim(status)) IN ('done', 'completed')`

// mrFilter appends an mr_id condition unless the caller asked for all MRs
// (empty or the admin sentinel).
func mrFilter(query string, args []interface{}, mrID string) (string, []interface{}) {
	scope := scopeFor(mrID)
	if mrID == "" || scope.All() {
		return query, args
	}
	query += ` AND mr_id = $` + strconv.Itoa(len(args)+1)
	args = append(args, mrID)
	return query, args
}

// monthRange returns the first and last date of a month as stored-format
// strings.
func monthRange(year, month int) (string, string) {
	start := fmt.Sprintf("%04d-%02d-01", year, month)
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	end := fmt.Sprintf("%04d-%02d-%02d", year, month, lastDay)
	return start, end
}

func parseMonthYear(c *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return 0, 0, false
	}
	return month, year, true
}

// GetActivityReport returns per-day activity counts plus totals for a date
// range. Counts are deduplicated by activity_id.
func GetActivityReport(c *gin.Context) {
	startDate := normalizeDate(c.Query("start_date"))
	endDate := normalizeDate(c.Query("end_date"))
	mrID := c.Query("mr_id")

	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	log.Printf("[ACTIVITY REPORT] start=%s, end=%s, mr_id=%s", startDate, endDate, mrID)

	dailyQuery := `
		SELECT date,
		       COUNT(DISTINCT activity_id) AS activity_count,
		       COUNT(DISTINCT activity_id) FILTER (WHERE ` + completedFilter + `) AS completed_activity_count
		FROM master_schedule
		WHERE date >= $1 AND date <= $2`
	args := []interface{}{startDate, endDate}
	dailyQuery, args = mrFilter(dailyQuery, args, mrID)
	dailyQuery += ` GROUP BY date ORDER BY date`

	rows, err := DB.Query(dailyQuery, args...)
	if err != nil {
		log.Printf("[ACTIVITY REPORT ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity report"})
		return
	}
	defer rows.Close()

	daily := []gin.H{}
	for rows.Next() {
		var date string
		var count, completed int
		if err := rows.Scan(&date, &count, &completed); err != nil {
			continue
		}
		daily = append(daily, gin.H{
			"date":                     date,
			"activity_count":           count,
			"completed_activity_count": completed,
		})
	}

	totalQuery := `
		SELECT COUNT(DISTINCT activity_id),
		       COUNT(DISTINCT activity_id) FILTER (WHERE ` + completedFilter + `)
		FROM master_schedule
		WHERE date >= $1 AND date <= $2`
	totalArgs := []interface{}{startDate, endDate}
	totalQuery, totalArgs = mrFilter(totalQuery, totalArgs, mrID)

	var total, completed int
	if err := DB.QueryRow(totalQuery, totalArgs...).Scan(&total, &completed); err != nil {
		total, completed = 0, 0
	}

	c.JSON(http.StatusOK, gin.H{
		"data":                 daily,
		"total_activities":     total,
		"completed_activities": completed,
	})
}

// GetComplianceReport lists, per customer, how many distinct days they were
// visited in a month.
func GetComplianceReport(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	mrID := c.Query("mr_id")
	startDate, endDate := monthRange(year, month)

	query := `
		SELECT customer_name, COUNT(DISTINCT date) AS visit_count
		FROM master_schedule
		WHERE date >= $1 AND date <= $2 AND customer_name IS NOT NULL AND customer_name <> ''`
	args := []interface{}{startDate, endDate}
	query, args = mrFilter(query, args, mrID)
	query += ` GROUP BY customer_name ORDER BY customer_name`

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("[COMPLIANCE REPORT ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load compliance report"})
		return
	}
	defer rows.Close()

	label := fmt.Sprintf("%s %d", time.Month(month), year)
	result := []gin.H{}
	srNo := 0
	for rows.Next() {
		var name string
		var visits int
		if err := rows.Scan(&name, &visits); err != nil {
			continue
		}
		srNo++
		result = append(result, gin.H{
			"sr_no":            srNo,
			"customer_name":    name,
			"visit_count":      visits,
			"monthly_range":    label,
			"compliance_dates": visits,
		})
	}

	c.JSON(http.StatusOK, result)
}

var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// GetCustomerBehaviourReport pivots a month of visits per customer by day of
// week.
func GetCustomerBehaviourReport(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	mrID := c.Query("mr_id")
	startDate, endDate := monthRange(year, month)

	query := `
		SELECT customer_name, date
		FROM master_schedule
		WHERE date >= $1 AND date <= $2 AND customer_name IS NOT NULL AND customer_name <> ''`
	args := []interface{}{startDate, endDate}
	query, args = mrFilter(query, args, mrID)

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("[BEHAVIOUR REPORT ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customer behaviour report"})
		return
	}
	defer rows.Close()

	pivot := map[string]map[string]int{}
	for rows.Next() {
		var name, date string
		if err := rows.Scan(&name, &date); err != nil {
			continue
		}
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			// Legacy rows in other date formats are skipped rather than
			// miscounted.
			continue
		}
		if pivot[name] == nil {
			pivot[name] = map[string]int{}
		}
		pivot[name][day.Weekday().String()]++
	}

	names := make([]string, 0, len(pivot))
	for name := range pivot {
		names = append(names, name)
	}
	sort.Strings(names)

	result := []gin.H{}
	for i, name := range names {
		row := gin.H{"sr_no": i + 1, "customer_name": name}
		total := 0
		for _, day := range weekdays {
			row[day] = pivot[name][day]
			total += pivot[name][day]
		}
		row["total_activities"] = total
		result = append(result, row)
	}

	c.JSON(http.StatusOK, result)
}

// GetTravelReport sums travelled distance per day for a month.
func GetTravelReport(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	mrID := c.Query("mr_id")
	startDate, endDate := monthRange(year, month)

	query := `
		SELECT date, SUM(COALESCE(distance_km, 0))
		FROM master_schedule
		WHERE date >= $1 AND date <= $2`
	args := []interface{}{startDate, endDate}
	query, args = mrFilter(query, args, mrID)
	query += ` GROUP BY date ORDER BY date`

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("[TRAVEL REPORT ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load travel report"})
		return
	}
	defer rows.Close()

	result := []gin.H{}
	srNo := 0
	for rows.Next() {
		var date string
		var distance float64
		if err := rows.Scan(&date, &distance); err != nil {
			continue
		}
		srNo++
		result = append(result, gin.H{
			"sr_no":              srNo,
			"date":               date,
			"travel_distance_km": math.Round(distance*100) / 100,
		})
	}

	c.JSON(http.StatusOK, result)
}
