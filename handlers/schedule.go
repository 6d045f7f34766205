package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yasshp/Mr-System/services"
)

// adminSentinel in the mr_id position means "no MR filter". It is resolved
// into a query scope right here; nothing below the handler compares strings
// against it.
const adminSentinel = "admin"

func scopeFor(mrID string) services.Scope {
	if strings.EqualFold(mrID, adminSentinel) {
		return services.AllMRs()
	}
	return services.ForMR(mrID)
}

// GetDailySchedule returns the merged, enriched visit list for one MR and day.
func GetDailySchedule(c *gin.Context) {
	mrID := c.Param("mr_id")
	date := normalizeDate(c.Param("date"))

	log.Printf("[SCHEDULE GET] Requested for mr_id='%s', date='%s'", mrID, date)

	visits, err := scheduleService.DailySchedule(scopeFor(mrID), date)
	if err != nil {
		log.Printf("[SCHEDULE GET ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
		return
	}

	records := make([]map[string]string, 0, len(visits))
	for _, v := range visits {
		records = append(records, v.Record())
	}

	log.Printf("[SCHEDULE GET] Returning %d visits", len(records))
	c.JSON(http.StatusOK, records)
}

// UpdateStatus mutates one activity's status (drag & drop + buttons on the
// board).
func UpdateStatus(c *gin.Context) {
	var req struct {
		ActivityID string `json:"activity_id" binding:"required"`
		Status     string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	log.Printf("[STATUS PUT] activity_id='%s', status='%s'", req.ActivityID, req.Status)

	if err := scheduleService.UpdateStatus(req.ActivityID, req.Status); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Activity ID '%s' not found", req.ActivityID)})
			return
		}
		log.Printf("[STATUS PUT ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Task %s updated to %s", req.ActivityID, req.Status)})
}
