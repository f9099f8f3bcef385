package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// ValidateInput checks a scheduling request without running the solver
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Employees) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one employee is required",
		})
		return
	}

	if err := input.Requirements.Validate(); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	if err := models.ValidateEmployees(input.EmployeePointers()); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	// Roles nobody can fill make the week infeasible before any search
	var uncovered []string
	for _, role := range input.Requirements.Roles() {
		if input.Requirements.CriticalMinimums[role] == 0 {
			continue
		}
		holders := 0
		for i := range input.Employees {
			if input.Employees[i].HasRole(role) {
				holders++
			}
		}
		if holders < input.Requirements.CriticalMinimums[role] {
			uncovered = append(uncovered, role)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":           true,
		"uncovered_roles": uncovered,
		"stats": gin.H{
			"employee_count": len(input.Employees),
			"role_count":     len(input.Requirements.CriticalMinimums),
			"open_hours":     len(input.Requirements.WorkHours.Hours()),
		},
	})
}
