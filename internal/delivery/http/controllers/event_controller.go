package controllers

import (
	"log/slog"
	"net/http"

	"eventgather/internal/delivery/http/helpers"
	"eventgather/internal/delivery/http/middleware"
	"eventgather/internal/domain"
)

// EventRequest is the request body for POST /events and PUT /events/{eventID}.
type EventRequest struct {
	Name        string         `json:"name"`
	InitDate    string         `json:"initDate"`
	EndDate     string         `json:"endDate"`
	Description string         `json:"description"`
	Cost        float64        `json:"cost"`
	Address     domain.Address `json:"address"`
	Photos      []string       `json:"photos"`
}

// EventListData is the payload for GET /events.
type EventListData struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// EventController handles the public venue event endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

func (req *EventRequest) toDomain(w http.ResponseWriter) (*domain.Event, bool) {
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
	return &domain.Event{
		Name:        req.Name,
		InitDate:    initDate,
		EndDate:     endDate,
		Description: req.Description,
		Cost:        req.Cost,
		Address:     req.Address,
		Photos:      req.Photos,
	}, true
}

// List godoc
// @Summary List public events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 401 {object} helpers.APIResponse
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	events, total, err := c.Service.List(r.Context(), p)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteSuccess(w, http.StatusOK, "events retrieved", EventListData{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// Get godoc
// @Summary Get a public event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.Get(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, "event retrieved", event)
}

// Create godoc
// @Summary Create a public event
// @Description Approved managers only. Unapproved managers get success=false.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event, valid := req.toDomain(w)
	if !valid {
		return
	}
	created, err := c.Service.Create(r.Context(), p.SubjectID, event)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusCreated, "event created", created)
}

// Update godoc
// @Summary Edit a public event
// @Description Only the manager that created the event may edit it.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body EventRequest true "New event data"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
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
	helpers.WriteSuccess(w, http.StatusOK, "event updated", updated)
}

// Delete godoc
// @Summary Delete a public event
// @Description Only the manager that created the event may delete it.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), r.PathValue("eventID"), p.SubjectID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, "event deleted", nil)
}
