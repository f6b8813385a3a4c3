package controllers

import (
	"log/slog"
	"net/http"

	h "eventgather/internal/delivery/http/helpers"
	"eventgather/internal/delivery/http/middleware"
	"eventgather/internal/domain"
)

// ReportRequest is the request body for POST /reports. event_id is optional.
type ReportRequest struct {
	Reason  string  `json:"reason"`
	EventID *string `json:"event_id"`
}

type ReportController struct {
	Logger  *slog.Logger
	Service domain.ReportService
}

func NewReportController(logger *slog.Logger, svc domain.ReportService) *ReportController {
	return &ReportController{
		Logger:  logger,
		Service: svc,
	}
}

// File godoc
// @Summary File a report
// @Description Files a complaint from the authenticated participant, optionally about a specific event.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReportRequest true "Report data"
// @Success 201 {object} helpers.APIResponse "data contains the filed report"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /reports [post]
func (c *ReportController) File(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req ReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	report := &domain.Report{
		ReporterID: p.SubjectID,
		EventID:    req.EventID,
		Reason:     req.Reason,
	}
	filed, err := c.Service.File(r.Context(), report)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "report filed", filed)
}

// List godoc
// @Summary List reports
// @Description Supervisor-only review of all filed reports.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the reports"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Router /reports [get]
func (c *ReportController) List(w http.ResponseWriter, r *http.Request) {
	reports, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if reports == nil {
		reports = []*domain.Report{}
	}
	h.WriteSuccess(w, http.StatusOK, "reports retrieved", reports)
}
