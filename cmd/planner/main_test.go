package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

func writeInputs(t *testing.T, employees string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	emp := filepath.Join(dir, "employees.csv")
	req := filepath.Join(dir, "requirements.csv")
	require.NoError(t, os.WriteFile(emp, []byte(employees), 0o600))
	require.NoError(t, os.WriteFile(req, []byte("Roles,Critical Minimums,Scheduling Hours,ShiftLengths\nCashier,1,9-10,1-1\n"), 0o600))
	return emp, req
}

const header = "Name,Hours Available,Min Hours,Max Hours,Roles,Days Off\n"

func TestCLICSV(t *testing.T) {
	emp, req := writeInputs(t, header+"Alice,9-17,0,7,Cashier,\n")
	var stdout, stderr bytes.Buffer

	code := cli([]string{"-employees", emp, "-requirements", req, "-format", "csv"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	require.Contains(t, stdout.String(), "Monday,9,Cashier,Alice")
	require.Contains(t, stdout.String(), "Sunday,9,Cashier,Alice")
}

func TestCLIJSON(t *testing.T) {
	emp, req := writeInputs(t, header+"Alice,9-17,0,7,Cashier,\n")
	var stdout, stderr bytes.Buffer

	code := cli([]string{"-employees", emp, "-requirements", req, "-format", "json"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var resp models.ScheduleResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	require.Equal(t, models.StatusScheduled, resp.Status)
	require.Equal(t, 7, resp.WeeklyHours["Alice"])
}

func TestCLIText(t *testing.T) {
	emp, req := writeInputs(t, header+"Alice,9-17,0,7,Cashier,\n")
	var stdout, stderr bytes.Buffer

	code := cli([]string{"-employees", emp, "-requirements", req}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	require.Contains(t, stdout.String(), "(Cashier) Alice")
	require.Contains(t, stdout.String(), "Alice: 7h")
}

func TestCLIInfeasible(t *testing.T) {
	emp, req := writeInputs(t, header+"Alice,9-17,0,7,Cashier,Monday\n")
	var stdout, stderr bytes.Buffer

	code := cli([]string{"-employees", emp, "-requirements", req}, &stdout, &stderr)
	require.Equal(t, exitInfeasible, code)
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "Monday 9:00 Cashier: 1 employees had the day off")
}

func TestCLIErrors(t *testing.T) {
	emp, req := writeInputs(t, header+"Alice,9-17,0,7,Cashier,\n")
	var stdout, stderr bytes.Buffer

	require.Equal(t, exitUsage, cli([]string{"-bogus"}, &stdout, &stderr))
	require.Equal(t, exitError, cli([]string{"-employees", "missing.csv", "-requirements", req}, &stdout, &stderr))
	require.Equal(t, exitUsage, cli([]string{"-employees", emp, "-requirements", req, "-format", "xml"}, &stdout, &stderr))
	require.Equal(t, exitUsage, cli([]string{"-employees", emp, "-requirements", req, "-log-level", "loud"}, &stdout, &stderr))
}
