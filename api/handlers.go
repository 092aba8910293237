/*
handlers.go - HTTP API handlers for the attestation system

PURPOSE:
  Exposes record submission and the aggregation engine via REST. Handles
  HTTP request/response and JSON serialization, and delegates everything
  algorithmic to the engine package.

ENDPOINTS:
  Submission:
    POST /api/events            Submit a departure/arrival attestation
    GET  /api/events            List raw events
    GET  /api/events/{id}       One event
    POST /api/reports           Submit a daily activity report
    GET  /api/reports           List raw reports
    GET  /api/reports/{id}      One report

  Aggregation:
    GET  /api/groups            Grouped records (list/detail views)
    GET  /api/summaries         Monthly summary rows (report views)
    GET  /api/summaries/export  Summary rows as a CSV artifact

  Dev:
    POST /api/seed              Load the demo dataset

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (missing date bounds)
  - 404: Record not found
  - 500: Store failures

SECURITY NOTE:
  No authentication middleware. Auth and session handling are an
  external collaborator's concern, not this service's.

SEE ALSO:
  - dto.go:    request/response shapes
  - server.go: router setup and middleware
  - seed.go:   demo dataset
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fieldops/attest-engine/engine"
	"github.com/fieldops/attest-engine/export"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  engine.RecordStore
	Engine *engine.Engine
}

// NewHandler creates a handler over the given store.
func NewHandler(store engine.RecordStore) *Handler {
	return &Handler{
		Store:  store,
		Engine: engine.New(store),
	}
}

// =============================================================================
// SUBMISSION HANDLERS
// =============================================================================

// SubmitEvent stores one attestation.
func (h *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req SubmitEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	eventType := engine.EventType(req.Type)
	if eventType != engine.Departure && eventType != engine.Arrival {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid event type %q (use departure or arrival)", req.Type), nil)
		return
	}

	ev := engine.CheckEvent{
		ID:               engine.EventID(req.ID),
		Identity:         engine.Identity{Name: req.Name, Base: req.Base, Phone: req.Phone},
		Type:             eventType,
		Timestamp:        req.Timestamp,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
		AlcoholReading:   req.AlcoholReading,
		AbnormalFlag:     req.AbnormalFlag,
		ChecklistResults: req.ChecklistResults,
	}

	// Only the variant-consistent odometer field is stored.
	switch eventType {
	case engine.Departure:
		ev.OdometerStart = req.OdometerStart
	case engine.Arrival:
		ev.OdometerEnd = req.OdometerEnd
	}

	if err := h.Store.PutEvent(r.Context(), ev); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store event", err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// ListEvents returns all stored events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.ListEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}
	if events == nil {
		events = []engine.CheckEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent returns one event by ID.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := engine.EventID(chi.URLParam(r, "id"))
	ev, err := h.Store.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get event", err)
		return
	}
	if ev == nil {
		writeError(w, http.StatusNotFound, "Event not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// SubmitReport stores one daily report.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report := engine.DailyReport{
		ID:        engine.ReportID(req.ID),
		Identity:  engine.Identity{Name: req.Name, Base: req.Base, Phone: req.Phone},
		WorkDate:  req.WorkDate,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Fields:    req.Fields,
	}

	if err := h.Store.PutReport(r.Context(), report); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store report", err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// ListReports returns all stored reports.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Store.ListReports(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}
	if reports == nil {
		reports = []engine.DailyReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}

// GetReport returns one report by ID.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := engine.ReportID(chi.URLParam(r, "id"))
	report, err := h.Store.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get report", err)
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "Report not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// =============================================================================
// AGGREGATION HANDLERS
// =============================================================================

// queryFromRequest builds an engine.Query from URL parameters. Malformed
// date parameters surface as a 400 rather than silently matching nothing.
func queryFromRequest(r *http.Request) (engine.Query, error) {
	var q engine.Query

	if raw := r.URL.Query().Get("from"); raw != "" {
		day, ok := engine.ParseDay(raw)
		if !ok {
			return q, fmt.Errorf("invalid from date %q (use YYYY-MM-DD)", raw)
		}
		q.From = day
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		day, ok := engine.ParseDay(raw)
		if !ok {
			return q, fmt.Errorf("invalid to date %q (use YYYY-MM-DD)", raw)
		}
		q.To = day
	}

	q.Filter = engine.Filter{
		Base:  r.URL.Query().Get("base"),
		Name:  r.URL.Query().Get("name"),
		Phone: r.URL.Query().Get("phone"),
	}
	return q, nil
}

// GetGroups returns grouped records for list/detail views.
func (h *Handler) GetGroups(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	groups, err := h.Engine.Groups(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to run query", err)
		return
	}

	dtos := make([]GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, toGroupDTO(g))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSummaries returns aggregated monthly rows for report views.
func (h *Handler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, ok := h.runSummaries(w, r)
	if !ok {
		return
	}

	dtos := make([]SummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, toSummaryDTO(s))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ExportSummaries streams the summary rows as a CSV artifact.
func (h *Handler) ExportSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, ok := h.runSummaries(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="monthly_summary.csv"`)
	if err := export.WriteSummariesCSV(w, summaries); err != nil {
		// Headers are already gone; the aggregation itself stays valid.
		return
	}
}

func (h *Handler) runSummaries(w http.ResponseWriter, r *http.Request) ([]engine.MonthlySummary, bool) {
	q, err := queryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return nil, false
	}

	summaries, err := h.Engine.Summaries(r.Context(), q)
	if err != nil {
		if engine.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Both from and to dates are required", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to run query", err)
		}
		return nil, false
	}
	return summaries, true
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
