// Package loader reads employee and requirement records and rejects
// malformed ones before they reach the scheduler.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// ErrMalformed is wrapped by every parse failure
var ErrMalformed = errors.New("malformed input")

// Employee CSV columns
const (
	colName      = "Name"
	colHours     = "Hours Available"
	colMinHours  = "Min Hours"
	colMaxHours  = "Max Hours"
	colRoles     = "Roles"
	colDaysOff   = "Days Off"
	colMinimum   = "Critical Minimums"
	colSchedHrs  = "Scheduling Hours"
	colShiftLens = "ShiftLengths"
)

// ParseEmployees reads employees from CSV with the columns
// Name, Hours Available, Min Hours, Max Hours, Roles and an optional Days Off
func ParseEmployees(r io.Reader) ([]*models.Employee, error) {
	reader, cols, err := openCSV(r, colName, colHours, colMinHours, colMaxHours, colRoles)
	if err != nil {
		return nil, err
	}

	var employees []*models.Employee
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, row, err)
		}

		avail, err := parseRange(field(record, cols, colHours))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: hours available: %v", ErrMalformed, row, err)
		}
		minHours, err := strconv.Atoi(field(record, cols, colMinHours))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: min hours: %v", ErrMalformed, row, err)
		}
		maxHours, err := strconv.Atoi(field(record, cols, colMaxHours))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: max hours: %v", ErrMalformed, row, err)
		}

		var daysOff []string
		for _, d := range splitList(field(record, cols, colDaysOff)) {
			daysOff = append(daysOff, normalizeDay(d))
		}

		emp := &models.Employee{
			Name:         field(record, cols, colName),
			Availability: avail,
			MinHours:     minHours,
			MaxHours:     maxHours,
			Roles:        splitList(field(record, cols, colRoles)),
			DaysOff:      daysOff,
		}
		if err := emp.Validate(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, row, err)
		}
		employees = append(employees, emp)
	}

	if err := models.ValidateEmployees(employees); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return employees, nil
}

// ParseRequirements reads one row per role with the columns Roles,
// Critical Minimums, Scheduling Hours and ShiftLengths. Every row must name
// the same hours and shift lengths.
func ParseRequirements(r io.Reader) (*models.EmployerRequirements, error) {
	reader, cols, err := openCSV(r, colRoles, colMinimum, colSchedHrs, colShiftLens)
	if err != nil {
		return nil, err
	}

	reqs := &models.EmployerRequirements{CriticalMinimums: make(map[string]int)}
	first := true
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, row, err)
		}

		role := field(record, cols, colRoles)
		count, err := strconv.Atoi(field(record, cols, colMinimum))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: critical minimum: %v", ErrMalformed, row, err)
		}
		hours, err := parseRange(field(record, cols, colSchedHrs))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: scheduling hours: %v", ErrMalformed, row, err)
		}
		lengths, err := parseRange(field(record, cols, colShiftLens))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: shift lengths: %v", ErrMalformed, row, err)
		}
		shift := models.ShiftLengths{Min: lengths.Start, Max: lengths.End}

		if first {
			reqs.WorkHours, reqs.ShiftLengths = hours, shift
			first = false
		} else if hours != reqs.WorkHours || shift != reqs.ShiftLengths {
			return nil, fmt.Errorf("%w: row %d: hours and shift lengths differ from earlier rows", ErrMalformed, row)
		}
		if _, dup := reqs.CriticalMinimums[role]; dup {
			return nil, fmt.Errorf("%w: row %d: role %s listed twice", ErrMalformed, row, role)
		}
		reqs.CriticalMinimums[role] = count
	}

	if err := reqs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return reqs, nil
}

// LoadEmployeesFile parses an employee CSV file
func LoadEmployeesFile(path string) ([]*models.Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseEmployees(f)
}

// LoadRequirementsFile parses requirements from a CSV or YAML file, picked by extension
func LoadRequirementsFile(path string) (*models.EmployerRequirements, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseRequirementsYAML(f)
	default:
		return ParseRequirements(f)
	}
}

func openCSV(r io.Reader, required ...string) (*csv.Reader, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading header: %v", ErrMalformed, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, nil, fmt.Errorf("%w: missing column %q", ErrMalformed, c)
		}
	}
	return reader, cols, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseRange reads "start-end"
func parseRange(s string) (models.HourRange, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return models.HourRange{}, fmt.Errorf("%q is not in start-end form", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return models.HourRange{}, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return models.HourRange{}, err
	}
	return models.HourRange{Start: a, End: b}, nil
}

// splitList splits a comma separated cell, dropping quotes and blanks
func splitList(s string) []string {
	s = strings.ReplaceAll(s, `"`, "")
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeDay(d string) string {
	if d == "" {
		return d
	}
	d = strings.ToLower(d)
	return strings.ToUpper(d[:1]) + d[1:]
}
