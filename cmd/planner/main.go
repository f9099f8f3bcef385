// Command planner builds a weekly schedule from employee and requirement files
// and prints it to stdout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arnavshah/staffing-api-go/pkg/loader"
	"github.com/arnavshah/staffing-api-go/pkg/logging"
	"github.com/arnavshah/staffing-api-go/pkg/models"
	"github.com/arnavshah/staffing-api-go/pkg/render"
	"github.com/arnavshah/staffing-api-go/pkg/scheduler"
)

// Exit codes
const (
	exitOK         = 0
	exitError      = 1
	exitUsage      = 2
	exitInfeasible = 3
)

func main() {
	os.Exit(cli(os.Args[1:], os.Stdout, os.Stderr))
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	employeesPath := fs.String("employees", "employees.csv", "employee CSV file")
	requirementsPath := fs.String("requirements", "requirements.csv", "requirements CSV or YAML file")
	format := fs.String("format", "text", "output format: text, csv or json")
	maxSteps := fs.Int("max-steps", 2_000_000, "search node limit, 0 for unlimited")
	timeout := fs.Duration("timeout", 30*time.Second, "search time limit")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	switch *format {
	case "text", "csv", "json":
	default:
		fmt.Fprintf(stderr, "planner: unknown format %q\n", *format)
		return exitUsage
	}

	logger, err := logging.New(*logLevel, "text", stderr)
	if err != nil {
		fmt.Fprintf(stderr, "planner: %v\n", err)
		return exitUsage
	}

	employees, err := loader.LoadEmployeesFile(*employeesPath)
	if err != nil {
		fmt.Fprintf(stderr, "planner: %v\n", err)
		return exitError
	}
	reqs, err := loader.LoadRequirementsFile(*requirementsPath)
	if err != nil {
		fmt.Fprintf(stderr, "planner: %v\n", err)
		return exitError
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := scheduler.Plan(ctx, employees, reqs, scheduler.Options{MaxSteps: *maxSteps, Logger: logger})
	if err != nil {
		fmt.Fprintf(stderr, "planner: %v\n", err)
		var infeasible *scheduler.InfeasibleError
		if errors.As(err, &infeasible) {
			for _, c := range infeasible.Conflicts {
				fmt.Fprintf(stderr, "  %s %d:00 %s: %s\n", c.Day, c.Hour, c.Role, strings.Join(c.Reasons, "; "))
			}
		}
		if errors.Is(err, scheduler.ErrInfeasible) || errors.Is(err, scheduler.ErrBudgetExceeded) {
			return exitInfeasible
		}
		return exitError
	}

	if err := write(stdout, *format, employees, res); err != nil {
		fmt.Fprintf(stderr, "planner: %v\n", err)
		return exitError
	}
	return exitOK
}

func write(w io.Writer, format string, employees []*models.Employee, res *scheduler.Result) error {
	switch format {
	case "text":
		_, err := fmt.Fprint(w, render.Text(res.Schedule), render.Hours(employees, res.Aggregates.WeeklyHours, res.Shortfalls))
		return err
	case "csv":
		return render.WriteCSV(w, res.Schedule)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models.ScheduleResponse{
			Status:        models.StatusScheduled,
			Schedule:      render.Names(res.Schedule),
			WeeklyHours:   res.Aggregates.WeeklyHours,
			Shortfalls:    res.Shortfalls,
			FairnessScore: res.FairnessScore,
			Stats:         res.Stats,
		})
	}
	return fmt.Errorf("unknown format %q", format)
}
