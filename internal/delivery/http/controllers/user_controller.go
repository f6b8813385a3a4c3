package controllers

import (
	"log/slog"
	"net/http"

	h "eventgather/internal/delivery/http/helpers"
	"eventgather/internal/delivery/http/middleware"
	"eventgather/internal/domain"
)

// UserController serves the caller's own profile, whichever directory the
// token's role points at.
type UserController struct {
	Logger       *slog.Logger
	Participants domain.ParticipantRepository
	Managers     domain.ManagerRepository
	Supervisors  domain.SupervisorRepository
}

func NewUserController(
	logger *slog.Logger,
	participants domain.ParticipantRepository,
	managers domain.ManagerRepository,
	supervisors domain.SupervisorRepository,
) *UserController {
	return &UserController{
		Logger:       logger,
		Participants: participants,
		Managers:     managers,
		Supervisors:  supervisors,
	}
}

// GetMe godoc
// @Summary Get the current account
// @Description Returns the authenticated caller's profile from the directory matching their role.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var profile any
	var err error
	switch p.Role {
	case domain.RoleParticipant:
		profile, err = c.Participants.GetByID(r.Context(), p.SubjectID)
	case domain.RoleManager:
		profile, err = c.Managers.GetByID(r.Context(), p.SubjectID)
	case domain.RoleSupervisor:
		profile, err = c.Supervisors.GetByID(r.Context(), p.SubjectID)
	default:
		h.WriteError(w, http.StatusUnauthorized, "unknown role")
		return
	}
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "profile retrieved", profile)
}
