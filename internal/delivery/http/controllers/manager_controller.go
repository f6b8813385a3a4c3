package controllers

import (
	"log/slog"
	"net/http"

	h "eventgather/internal/delivery/http/helpers"
	"eventgather/internal/domain"
)

// ManagerSignUpRequest is the request body for POST /managers.
type ManagerSignUpRequest struct {
	LocalName string         `json:"local_name"`
	Email     string         `json:"email"`
	LocalType string         `json:"local_type"`
	Address   domain.Address `json:"address"`
	Photos    []string       `json:"photos"`
}

type ManagerController struct {
	Logger  *slog.Logger
	Service domain.ManagerService
}

func NewManagerController(logger *slog.Logger, svc domain.ManagerService) *ManagerController {
	return &ManagerController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up a venue manager
// @Description Registers a manager application. The account stays unusable until a supervisor approves it; credentials are generated and mailed on approval.
// @Tags managers
// @Accept json
// @Produce json
// @Param body body ManagerSignUpRequest true "Manager application"
// @Success 201 {object} helpers.APIResponse "data contains the pending manager"
// @Failure 400 {object} helpers.APIResponse
// @Router /managers [post]
func (c *ManagerController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req ManagerSignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m := &domain.Manager{
		LocalName: req.LocalName,
		Email:     req.Email,
		LocalType: domain.LocalType(req.LocalType),
		Address:   req.Address,
		Photos:    req.Photos,
	}
	created, err := c.Service.SignUp(r.Context(), m)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "manager application submitted", created)
}
