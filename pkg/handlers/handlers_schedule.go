package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/staffing-api-go/pkg/database"
	"github.com/arnavshah/staffing-api-go/pkg/loader"
	"github.com/arnavshah/staffing-api-go/pkg/models"
	"github.com/arnavshah/staffing-api-go/pkg/render"
	"github.com/arnavshah/staffing-api-go/pkg/scheduler"
)

// defaultSolveTimeout applies when no limit was configured
const defaultSolveTimeout = 10 * time.Second

// Exporter stores a rendered schedule and returns the key it was written under
type Exporter interface {
	Put(ctx context.Context, runID, ext, contentType string, body []byte) (string, error)
}

// planOutcome is one finished scheduling run, successful or not
type planOutcome struct {
	result   *scheduler.Result
	response models.ScheduleResponse
	code     int
	elapsed  time.Duration
}

// ScheduleJSON handles the JSON-based scheduling request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employees := input.EmployeePointers()
	out, err := h.plan(c, employees, &input.Requirements, input.MaxSteps, input.TimeoutSeconds)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.recordRun(c, employees, out, "")
	c.JSON(out.code, out.response)
}

// ScheduleCSV handles CSV file uploads for scheduling. The requirements file
// may also be YAML, picked by its .yaml/.yml extension.
func (h *Handler) ScheduleCSV(c *gin.Context) {
	empFile, _ := c.FormFile("employees_file")
	reqFile, _ := c.FormFile("requirements_file")
	if empFile == nil || reqFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employees_file and requirements_file are required"})
		return
	}

	employees, err := parseUpload(empFile, loader.ParseEmployees)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parseReqs := loader.ParseRequirements
	switch strings.ToLower(filepath.Ext(reqFile.Filename)) {
	case ".yaml", ".yml":
		parseReqs = loader.ParseRequirementsYAML
	}
	reqs, err := parseUpload(reqFile, parseReqs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.plan(c, employees, reqs, 0, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if out.result == nil {
		h.recordRun(c, employees, out, "")
		c.JSON(out.code, out.response)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteCSV(&buf, out.result.Schedule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render schedule"})
		return
	}

	resp := gin.H{"csv": buf.String(), "run_id": out.response.RunID}
	exportKey := h.export(c.Request.Context(), out.response.RunID, buf.Bytes())
	if exportKey != "" {
		resp["export_key"] = exportKey
	}
	if len(out.response.Shortfalls) > 0 {
		resp["shortfalls"] = out.response.Shortfalls
	}

	h.recordRun(c, employees, out, exportKey)
	c.JSON(http.StatusOK, resp)
}

func parseUpload[T any](fh *multipart.FileHeader, parse func(r io.Reader) (T, error)) (T, error) {
	f, err := fh.Open()
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return parse(f)
}

// plan runs the solver under the request's limits, capped by the server's.
// Only invalid input is returned as an error; search failures become a 422
// outcome.
func (h *Handler) plan(c *gin.Context, employees []*models.Employee, reqs *models.EmployerRequirements, maxSteps, timeoutSeconds int) (*planOutcome, error) {
	runID := database.NewRunID()
	logger := h.logger().With("run_id", runID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout(timeoutSeconds))
	defer cancel()

	start := time.Now()
	res, err := scheduler.Plan(ctx, employees, reqs, scheduler.Options{
		MaxSteps: h.maxSteps(maxSteps),
		Logger:   logger,
	})
	elapsed := time.Since(start)

	if errors.Is(err, scheduler.ErrInvalidInput) {
		logger.Info("rejected scheduling input", "error", err)
		return nil, err
	}

	out := &planOutcome{
		result:   res,
		response: models.ScheduleResponse{RunID: runID},
		elapsed:  elapsed,
	}
	var searchErr *scheduler.SearchError
	if errors.As(err, &searchErr) {
		out.response.Stats = searchErr.Stats
	}

	switch {
	case err == nil:
		out.code = http.StatusOK
		out.response.Status = models.StatusScheduled
		out.response.Schedule = render.Names(res.Schedule)
		out.response.WeeklyHours = res.Aggregates.WeeklyHours
		out.response.Shortfalls = res.Shortfalls
		out.response.FairnessScore = res.FairnessScore
		out.response.Stats = res.Stats
	case errors.Is(err, scheduler.ErrInfeasible):
		out.code = http.StatusUnprocessableEntity
		out.response.Status = models.StatusInfeasible
		out.response.Error = err.Error()
		var infeasible *scheduler.InfeasibleError
		if errors.As(err, &infeasible) {
			out.response.Conflicts = infeasible.Conflicts
		}
	case errors.Is(err, scheduler.ErrBudgetExceeded):
		out.code = http.StatusUnprocessableEntity
		out.response.Status = models.StatusBudgetExceeded
		out.response.Error = err.Error()
	default:
		out.code = http.StatusInternalServerError
		out.response.Status = models.StatusError
		out.response.Error = err.Error()
	}

	logger.Info("scheduling run finished",
		"status", out.response.Status,
		"employees", len(employees),
		"nodes", out.response.Stats.Nodes,
		"backtracks", out.response.Stats.Backtracks,
		"elapsed", elapsed)
	h.metrics().ObserveSolve(out.response.Status, elapsed, out.response.Stats)
	h.metrics().ObserveShortfalls(len(out.response.Shortfalls))
	return out, nil
}

func (h *Handler) maxSteps(requested int) int {
	limit := h.Limits.MaxSteps
	if requested > 0 && (limit == 0 || requested < limit) {
		return requested
	}
	return limit
}

func (h *Handler) timeout(requestedSeconds int) time.Duration {
	limit := h.Limits.Timeout
	if limit <= 0 {
		limit = defaultSolveTimeout
	}
	if requested := time.Duration(requestedSeconds) * time.Second; requested > 0 && requested < limit {
		return requested
	}
	return limit
}

// export copies the CSV to object storage, returning "" when disabled or failed
func (h *Handler) export(ctx context.Context, runID string, body []byte) string {
	if h.Exporter == nil {
		return ""
	}
	key, err := h.Exporter.Put(ctx, runID, "csv", "text/csv", body)
	if err != nil {
		h.logger().Warn("schedule export failed", "run_id", runID, "error", err)
		return ""
	}
	return key
}

// recordRun stores the run and bumps the caller's usage counters
func (h *Handler) recordRun(c *gin.Context, employees []*models.Employee, out *planOutcome, exportKey string) {
	apiKey := currentKey(c)
	if apiKey == nil {
		return
	}

	shifts := 0
	if out.result != nil {
		shifts = len(out.result.Schedule.Shifts())
	}
	h.RecordUsage(c, apiKey.ID, len(employees), shifts, out.result == nil)

	body, err := json.Marshal(out.response)
	if err != nil {
		h.logger().Error("could not encode run", "run_id", out.response.RunID, "error", err)
		return
	}
	run := database.ScheduleRun{
		ID:            out.response.RunID,
		KeyID:         apiKey.ID,
		Status:        out.response.Status,
		Employees:     len(employees),
		Shifts:        shifts,
		Shortfalls:    len(out.response.Shortfalls),
		Nodes:         out.response.Stats.Nodes,
		Backtracks:    out.response.Stats.Backtracks,
		DurationMs:    out.elapsed.Milliseconds(),
		FairnessScore: out.response.FairnessScore,
		ExportKey:     exportKey,
		Result:        string(body),
	}
	if err := h.DB.Create(&run).Error; err != nil {
		h.logger().Error("could not store run", "run_id", run.ID, "error", err)
	}
}

func currentKey(c *gin.Context) *database.APIKey {
	raw, exists := c.Get("apiKey")
	if !exists {
		return nil
	}
	return raw.(*database.APIKey)
}

func usageDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, keyID uint, employeeCount, shiftCount int, failed bool) {
	infeasible := 0
	if failed {
		infeasible = 1
	}

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	err := h.DB.WithContext(c.Request.Context()).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("request_count + ?", 1),
			"total_employees": gorm.Expr("total_employees + ?", employeeCount),
			"total_shifts":    gorm.Expr("total_shifts + ?", shiftCount),
			"infeasible":      gorm.Expr("infeasible + ?", infeasible),
		}),
	}).Create(&database.APIUsage{
		KeyID:          keyID,
		Date:           usageDate(),
		RequestCount:   1,
		TotalEmployees: employeeCount,
		TotalShifts:    shiftCount,
		Infeasible:     infeasible,
	}).Error
	if err != nil {
		h.logger().Error("could not record usage", "key_id", keyID, "error", err)
	}
}
