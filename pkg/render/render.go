// Package render turns a solved schedule into CSV, JSON-friendly and
// terminal output.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// Names replaces employees with their names, keeping the day/hour/role layout
func Names(schedule models.ShiftSchedule) map[string]map[int]map[string][]string {
	out := make(map[string]map[int]map[string][]string, len(schedule))
	for day, hours := range schedule {
		h := make(map[int]map[string][]string, len(hours))
		for hour, roles := range hours {
			r := make(map[string][]string, len(roles))
			for role, emps := range roles {
				names := make([]string, len(emps))
				for i, e := range emps {
					names[i] = e.Name
				}
				r[role] = names
			}
			h[hour] = r
		}
		out[day] = h
	}
	return out
}

// WriteCSV writes one row per employee-hour: day, hour, role, employee.
// Rows follow week order, then hour, role and employee name.
func WriteCSV(w io.Writer, schedule models.ShiftSchedule) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"day", "hour", "role", "employee"}); err != nil {
		return err
	}
	for _, day := range models.Week {
		for _, hour := range schedule.SortedHours(day) {
			roles := schedule[day][hour]
			for _, role := range sortedKeys(roles) {
				for _, name := range sortedNames(roles[role]) {
					if err := writer.Write([]string{day, strconv.Itoa(hour), role, name}); err != nil {
						return err
					}
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

var (
	dayStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	hourStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// Text renders the schedule one line per hour, e.g. "9:00 - (Cashier) Alice"
func Text(schedule models.ShiftSchedule) string {
	var b strings.Builder
	for _, day := range models.Week {
		if _, ok := schedule[day]; !ok {
			continue
		}
		b.WriteString(dayStyle.Render(day + ":"))
		b.WriteString("\n")
		for _, hour := range schedule.SortedHours(day) {
			roles := schedule[day][hour]
			var parts []string
			for _, role := range sortedKeys(roles) {
				for _, name := range sortedNames(roles[role]) {
					parts = append(parts, fmt.Sprintf("(%s) %s", role, name))
				}
			}
			line := strings.Join(parts, ", ")
			if line == "" {
				line = emptyStyle.Render("unstaffed")
			}
			b.WriteString(hourStyle.Render(fmt.Sprintf("%d:00", hour)))
			b.WriteString(" - ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Hours renders weekly totals per employee with shortfalls flagged
func Hours(employees []*models.Employee, weekly map[string]int, shortfalls []models.Shortfall) string {
	short := make(map[string]models.Shortfall, len(shortfalls))
	for _, s := range shortfalls {
		short[s.Employee] = s
	}
	var b strings.Builder
	for _, e := range employees {
		line := fmt.Sprintf("%s: %dh (min %d, max %d)", e.Name, weekly[e.Name], e.MinHours, e.MaxHours)
		if s, ok := short[e.Name]; ok {
			line += emptyStyle.Render(fmt.Sprintf(" short %dh", s.Missing))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func sortedKeys(roles map[string][]*models.Employee) []string {
	keys := make([]string, 0, len(roles))
	for k := range roles {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedNames(emps []*models.Employee) []string {
	names := make([]string, len(emps))
	for i, e := range emps {
		names[i] = e.Name
	}
	slices.Sort(names)
	return names
}
