/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal engine types from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: uses these types
*/
package api

import (
	"github.com/fieldops/attest-engine/engine"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SubmitEventRequest is the body for POST /api/events.
type SubmitEventRequest struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Base             string            `json:"base"`
	Phone            string            `json:"phone"`
	Type             string            `json:"type"` // "departure" or "arrival"
	Timestamp        string            `json:"timestamp"`
	OdometerStart    *int64            `json:"odometer_start,omitempty"`
	OdometerEnd      *int64            `json:"odometer_end,omitempty"`
	AlcoholReading   string            `json:"alcohol_reading,omitempty"`
	AbnormalFlag     bool              `json:"abnormal_flag,omitempty"`
	ChecklistResults map[string]string `json:"checklist_results,omitempty"`
}

// SubmitReportRequest is the body for POST /api/reports. Fields carries
// the raw financial/free-form payload under whatever names the
// submission path uses.
type SubmitReportRequest struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Base     string         `json:"base"`
	Phone    string         `json:"phone"`
	WorkDate string         `json:"work_date"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GroupDTO is one identity's raw records for list/detail views.
type GroupDTO struct {
	Key     string               `json:"key"`
	Name    string               `json:"name"`
	Base    string               `json:"base"`
	Phone   string               `json:"phone"`
	Events  []engine.CheckEvent  `json:"events"`
	Reports []engine.DailyReport `json:"reports"`
}

// SummaryDTO is one MonthlySummary row for report views. Financial
// totals are serialized as strings to preserve decimal precision.
type SummaryDTO struct {
	Name       string `json:"name"`
	Base       string `json:"base"`
	Phone      string `json:"phone"`
	PeriodFrom string `json:"period_from"`
	PeriodTo   string `json:"period_to"`

	WorkDays      int   `json:"work_days"`
	TotalDistance int64 `json:"total_distance"`
	EventCount    int   `json:"event_count"`
	ReportCount   int   `json:"report_count"`

	MissingDeparture []string `json:"missing_departure"`
	MissingArrival   []string `json:"missing_arrival"`

	TotalSales  string `json:"total_sales"`
	TotalCost   string `json:"total_cost"`
	TotalProfit string `json:"total_profit"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toGroupDTO(g engine.Group) GroupDTO {
	return GroupDTO{
		Key:     string(g.Key),
		Name:    g.Identity.Name,
		Base:    g.Identity.Base,
		Phone:   g.Identity.Phone,
		Events:  g.Events,
		Reports: g.Reports,
	}
}

func toSummaryDTO(s engine.MonthlySummary) SummaryDTO {
	return SummaryDTO{
		Name:             s.Identity.Name,
		Base:             s.Identity.Base,
		Phone:            s.Identity.Phone,
		PeriodFrom:       s.PeriodFrom.String(),
		PeriodTo:         s.PeriodTo.String(),
		WorkDays:         s.WorkDays,
		TotalDistance:    s.TotalDistance,
		EventCount:       s.EventCount,
		ReportCount:      s.ReportCount,
		MissingDeparture: daysToStrings(s.MissingDeparture),
		MissingArrival:   daysToStrings(s.MissingArrival),
		TotalSales:       s.TotalSales.String(),
		TotalCost:        s.TotalCost.String(),
		TotalProfit:      s.TotalProfit.String(),
	}
}

func daysToStrings(days []engine.Day) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
