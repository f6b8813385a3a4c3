package controllers

import (
	"log/slog"
	"net/http"

	h "eventgather/internal/delivery/http/helpers"
	"eventgather/internal/delivery/http/middleware"
	"eventgather/internal/domain"
)

// DecisionRequest is the request body for PUT /supervisors/managers/{managerID}/decision.
type DecisionRequest struct {
	Approve *bool `json:"approve"`
}

// SupervisorController handles the manager approval endpoints.
type SupervisorController struct {
	Logger  *slog.Logger
	Service domain.ManagerService
}

func NewSupervisorController(logger *slog.Logger, svc domain.ManagerService) *SupervisorController {
	return &SupervisorController{
		Logger:  logger,
		Service: svc,
	}
}

// ListPendingManagers godoc
// @Summary List undecided manager applications
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the pending managers"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Router /supervisors/managers/pending [get]
func (c *SupervisorController) ListPendingManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := c.Service.ListPending(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if managers == nil {
		managers = []*domain.Manager{}
	}
	h.WriteSuccess(w, http.StatusOK, "pending managers retrieved", managers)
}

// DecideManager godoc
// @Summary Approve or deny a manager application
// @Description Records the decision. On approval a temporary password is generated and mailed to the manager. A second decision on the same application comes back with success=false.
// @Tags supervisors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param managerID path string true "Manager ID"
// @Param body body DecisionRequest true "Decision"
// @Success 200 {object} helpers.APIResponse "data contains the decided manager"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Router /supervisors/managers/{managerID}/decision [put]
func (c *SupervisorController) DecideManager(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req DecisionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Approve == nil {
		h.WriteError(w, http.StatusBadRequest, "approve must be a boolean")
		return
	}
	decided, err := c.Service.Decide(r.Context(), r.PathValue("managerID"), p.SubjectID, *req.Approve)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "decision recorded", decided)
}
