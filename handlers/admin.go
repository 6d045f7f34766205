package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetMRs returns the MR dropdown list for the admin dashboard.
func GetMRs(c *gin.Context) {
	query := `SELECT mr_id, COALESCE(first_name, ''), COALESCE(last_name, '')
	          FROM users WHERE role = 'mr' AND is_active = true ORDER BY mr_id`

	rows, err := DB.Query(query)
	if err != nil {
		log.Printf("[GET MRS ERROR] %v", err)
		// Dropdown failures should not break the dashboard
		c.JSON(http.StatusOK, []gin.H{})
		return
	}
	defer rows.Close()

	result := []gin.H{}
	for rows.Next() {
		var mrID, first, last string
		if err := rows.Scan(&mrID, &first, &last); err != nil {
			continue
		}
		displayName := strings.TrimSpace(first + " " + last)
		if displayName == "" {
			displayName = mrID
		}
		result = append(result, gin.H{"mr_id": mrID, "display_name": displayName})
	}

	c.JSON(http.StatusOK, result)
}

// browsableTables whitelists what /admin/table may read. The users projection
// leaves the password hash out.
var browsableTables = map[string]string{
	"users":           `SELECT id, mr_id, first_name, last_name, team, zone, role, is_active, created_at FROM users`,
	"contacts":        `SELECT * FROM contacts`,
	"master_schedule": `SELECT * FROM master_schedule`,
	"activities":      `SELECT * FROM activities`,
}

// GetTableData returns one page of a known table for the admin data browser.
func GetTableData(c *gin.Context) {
	tableName := strings.ToLower(c.Param("table"))
	baseQuery, ok := browsableTables[tableName]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown table"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM ` + tableName).Scan(&total); err != nil {
		log.Printf("[ADMIN TABLE ERROR] %s: %v", tableName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count rows"})
		return
	}

	rows, err := DB.Query(baseQuery+` ORDER BY 1 LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		log.Printf("[ADMIN TABLE ERROR] %s: %v", tableName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read table"})
		return
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read table"})
		return
	}

	data := []map[string]string{}
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			continue
		}
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = values[i].String
		}
		data = append(data, row)
	}

	log.Printf("[ADMIN TABLE] %s | page=%d, size=%d, returned=%d, total=%d",
		tableName, page, pageSize, len(data), total)

	c.JSON(http.StatusOK, gin.H{
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GenerateSchedule rebuilds the forward plan for every MR.
func GenerateSchedule(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	count, err := generator.GenerateSchedule(days)
	if err != nil {
		log.Printf("[GENERATE SCHEDULE ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate schedule"})
		return
	}

	if count == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No schedule generated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule generated", "planned_visits": count})
}
