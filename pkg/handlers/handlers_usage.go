package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/staffing-api-go/pkg/database"
)

const (
	defaultUsageWindow = 30
	maxUsageWindow     = 90
)

// usageDay is one calendar day of a key's activity; days without requests
// are reported with zero counts
type usageDay struct {
	Date         string  `json:"date"`
	Requests     int     `json:"requests"`
	Employees    int     `json:"employees"`
	Shifts       int     `json:"shifts"`
	Infeasible   int     `json:"infeasible"`
	AvgEmployees float64 `json:"avg_employees"`
}

type usageTotals struct {
	Requests       int     `json:"requests"`
	Employees      int     `json:"employees"`
	Shifts         int     `json:"shifts"`
	Infeasible     int     `json:"infeasible"`
	InfeasibleRate float64 `json:"infeasible_rate"`
	BusiestDay     string  `json:"busiest_day,omitempty"`
}

// GetMyUsage returns the authenticated key's activity for each day of the
// window (?days=, default 30), newest first, with totals and what is left of
// today's allowance
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKey := currentKey(c)
	if apiKey == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	window := defaultUsageWindow
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxUsageWindow {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
			return
		}
		window = n
	}

	today, err := time.Parse(time.DateOnly, usageDate())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve the usage date"})
		return
	}
	oldest := today.AddDate(0, 0, -(window - 1)).Format(time.DateOnly)

	var rows []database.APIUsage
	if err := h.DB.Where("key_id = ? AND date >= ?", apiKey.ID, oldest).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}
	byDate := make(map[string]database.APIUsage, len(rows))
	for _, u := range rows {
		byDate[u.Date] = u
	}

	days := make([]usageDay, 0, window)
	var totals usageTotals
	busiest := 0
	for i := range window {
		date := today.AddDate(0, 0, -i).Format(time.DateOnly)
		u := byDate[date]
		day := usageDay{
			Date:       date,
			Requests:   u.RequestCount,
			Employees:  u.TotalEmployees,
			Shifts:     u.TotalShifts,
			Infeasible: u.Infeasible,
		}
		if day.Requests > 0 {
			day.AvgEmployees = float64(day.Employees) / float64(day.Requests)
		}
		if day.Requests > busiest {
			busiest = day.Requests
			totals.BusiestDay = date
		}
		totals.Requests += day.Requests
		totals.Employees += day.Employees
		totals.Shifts += day.Shifts
		totals.Infeasible += day.Infeasible
		days = append(days, day)
	}
	if totals.Requests > 0 {
		totals.InfeasibleRate = float64(totals.Infeasible) / float64(totals.Requests)
	}

	used := days[0].Requests
	c.JSON(http.StatusOK, gin.H{
		"key_name":   apiKey.Name,
		"rate_limit": apiKey.RateLimit,
		"today": gin.H{
			"date":      days[0].Date,
			"requests":  used,
			"remaining": max(apiKey.RateLimit-used, 0),
		},
		"days":   days,
		"totals": totals,
	})
}
