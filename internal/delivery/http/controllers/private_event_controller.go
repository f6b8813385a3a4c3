package controllers

import (
	"log/slog"
	"net/http"

	"eventgather/internal/delivery/http/helpers"
	"eventgather/internal/delivery/http/middleware"
	"eventgather/internal/domain"
)

// PrivateEventController handles the invitation-only event endpoints.
type PrivateEventController struct {
	Logger  *slog.Logger
	Service domain.PrivateEventService
}

func NewPrivateEventController(logger *slog.Logger, svc domain.PrivateEventService) *PrivateEventController {
	return &PrivateEventController{
		Logger:  logger,
		Service: svc,
	}
}

// PrivateEventRequest is the request body for POST /private-events and
// PUT /private-events/{eventID}. Dates accept RFC 3339 or YYYY-MM-DD.
type PrivateEventRequest struct {
	InitDate    string         `json:"initDate"`
	EndDate     string         `json:"endDate"`
	Description string         `json:"description"`
	Cost        float64        `json:"cost"`
	Address     domain.Address `json:"address"`
	Photos      []string       `json:"photos"`
}

// InviteRequest is the request body for PUT /private-events/{eventID}/invite.
// Each entry is a username or an email address.
type InviteRequest struct {
	Users []string `json:"users"`
}

// RespondRequest is the request body for PUT /private-events/{eventID}/responde.
type RespondRequest struct {
	Accept *bool `json:"accept"`
}

// MyPrivateEventsData is the payload for GET /private-events: the caller's
// created events and the events they are invited to, as disjoint lists.
type MyPrivateEventsData struct {
	Created []*domain.PrivateEvent `json:"created"`
	Invited []*domain.PrivateEvent `json:"invited"`
}

// PrivateEventDetailData is the payload for GET /private-events/{eventID}.
type PrivateEventDetailData struct {
	Event        *domain.PrivateEvent  `json:"event"`
	Participants []*domain.InviteEntry `json:"participants"`
}

func (req *PrivateEventRequest) toDomain(w http.ResponseWriter) (*domain.PrivateEvent, bool) {
	initDate, err := parseEventDate(req.InitDate)
	if err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid initDate")
		return nil, false
	}
	endDate, err := parseEventDate(req.EndDate)
	if err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid endDate")
		return nil, false
	}
	return &domain.PrivateEvent{
		InitDate:    initDate,
		EndDate:     endDate,
		Description: req.Description,
		Cost:        req.Cost,
		Address:     req.Address,
		Photos:      req.Photos,
	}, true
}

// ListMine godoc
// @Summary List my private events
// @Description Returns the authenticated participant's created private events and the ones they are invited to, as two disjoint lists.
// @Tags private-events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains created and invited"
// @Failure 401 {object} helpers.APIResponse
// @Router /private-events [get]
func (c *PrivateEventController) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	created, invited, err := c.Service.ListMine(r.Context(), p.SubjectID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if created == nil {
		created = []*domain.PrivateEvent{}
	}
	if invited == nil {
		invited = []*domain.PrivateEvent{}
	}
	helpers.WriteSuccess(w, http.StatusOK, "private events retrieved", MyPrivateEventsData{Created: created, Invited: invited})
}

// Get godoc
// @Summary Get a private event
// @Description Returns the event and its participant list. Only the creator or a listed participant may read it; anyone else gets success=false.
// @Tags private-events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains event and participants"
// @Failure 401 {object} helpers.APIResponse
// @Router /private-events/{eventID} [get]
func (c *PrivateEventController) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	event, participants, err := c.Service.Get(r.Context(), r.PathValue("eventID"), p.SubjectID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if participants == nil {
		participants = []*domain.InviteEntry{}
	}
	helpers.WriteSuccess(w, http.StatusOK, "private event retrieved", PrivateEventDetailData{Event: event, Participants: participants})
}

// Create godoc
// @Summary Create a private event
// @Description Creates an invitation-only event owned by the caller. Rejects endDate before initDate and start dates in the past.
// @Tags private-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PrivateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /private-events [post]
func (c *PrivateEventController) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req PrivateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event, valid := req.toDomain(w)
	if !valid {
		return
	}
	event.CreatorID = p.SubjectID

	created, err := c.Service.Create(r.Context(), event)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusCreated, "private event created", created)
}

// Invite godoc
// @Summary Invite participants to a private event
// @Description Owner-only. Resolves each entry in users by email or username and appends pending invitations. All-or-nothing: one unknown identifier fails the whole call. Re-inviting someone already listed is a no-op.
// @Tags private-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body InviteRequest true "Usernames or emails to invite"
// @Success 200 {object} helpers.APIResponse "data contains the participant list"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /private-events/{eventID}/invite [put]
func (c *PrivateEventController) Invite(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req InviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entries, err := c.Service.Invite(r.Context(), r.PathValue("eventID"), p.SubjectID, req.Users)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, "invitations sent", entries)
}

// Respond godoc
// @Summary Respond to a private event invitation
// @Description Invitee-only. accept=true accepts, accept=false declines. Responding without a pending invitation comes back with success=false.
// @Tags private-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body RespondRequest true "Decision"
// @Success 200 {object} helpers.APIResponse "data contains the updated invitation entry"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /private-events/{eventID}/responde [put]
func (c *PrivateEventController) Respond(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req RespondRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Accept == nil {
		helpers.WriteError(w, http.StatusBadRequest, "accept must be a boolean")
		return
	}
	entry, err := c.Service.Respond(r.Context(), r.PathValue("eventID"), p.SubjectID, *req.Accept)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, "response recorded", entry)
}

// Update godoc
// @Summary Edit a private event
// @Description Owner-only full overwrite of dates, address, cost, and description. Photos are not editable here.
// @Tags private-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body PrivateEventRequest true "New event data"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /private-events/{eventID} [put]
func (c *PrivateEventController) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req PrivateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event, valid := req.toDomain(w)
	if !valid {
		return
	}
	updated, err := c.Service.Update(r.Context(), r.PathValue("eventID"), p.SubjectID, event)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, "private event updated", updated)
}

// Delete godoc
// @Summary Delete a private event
// @Description Owner-only. Removes the event and its participant list.
// @Tags private-events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /private-events/{eventID} [delete]
func (c *PrivateEventController) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), r.PathValue("eventID"), p.SubjectID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, "private event deleted", nil)
}
