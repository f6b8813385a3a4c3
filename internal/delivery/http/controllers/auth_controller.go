package controllers

import (
	"log/slog"
	"net/http"
	"time"

	h "eventgather/internal/delivery/http/helpers"
	"eventgather/internal/domain"
)

// SignUpRequest is the request body for POST /auth/signup. Exactly one of
// password or external_id must be set.
type SignUpRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	BirthDate  string `json:"birth_date"`
	Password   string `json:"password"`
	ExternalID string `json:"external_id"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload for POST /auth/login.
type LoginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	Role      domain.Role `json:"role"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up a new participant
// @Description Registers a participant with either a password or an external identity, never both. Sends a welcome email.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} helpers.APIResponse "data contains the created participant"
// @Failure 400 {object} helpers.APIResponse
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p := &domain.Participant{
		Name:     req.Name,
		Surname:  req.Surname,
		Username: req.Username,
		Email:    req.Email,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid birth_date, expected YYYY-MM-DD")
			return
		}
		p.BirthDate = birthDate
	}

	created, err := c.Service.SignUpParticipant(r.Context(), p, req.Password, req.ExternalID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "participant registered", created)
}

// Login godoc
// @Summary Log in
// @Description Authenticates with email and password across participants, managers, and supervisors, and returns a JWT carrying the matched role.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, and role"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, role, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "login successful", LoginResponse{Token: token, TokenType: "Bearer", Role: role})
}
