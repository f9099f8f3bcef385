package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arnavshah/staffing-api-go/pkg/database"
)

// GetRun returns a stored run owned by the calling API key
func (h *Handler) GetRun(c *gin.Context) {
	apiKey := currentKey(c)
	if apiKey == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	var run database.ScheduleRun
	err := h.DB.Where("id = ? AND key_id = ?", c.Param("id"), apiKey.ID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch run"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run": run, "result": json.RawMessage(run.Result)})
}

// ListRuns returns the most recent runs, optionally for one key
func (h *Handler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	limit = min(limit, 200)

	q := h.DB.Order("created_at desc").Limit(limit)
	if keyID := c.Query("key_id"); keyID != "" {
		q = q.Where("key_id = ?", keyID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var runs []database.ScheduleRun
	if err := q.Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
