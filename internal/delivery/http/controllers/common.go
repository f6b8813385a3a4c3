package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventgather/internal/delivery/http/helpers"
	"eventgather/internal/domain"
)

// eventDateLayouts are the accepted formats for date fields in request
// bodies: full RFC 3339 timestamps or bare dates.
var eventDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseEventDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// decodeJSON decodes the request body into dst. On failure it writes 400 and
// returns false. Field presence is enforced upstream by the middleware.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeServiceError translates a service error into the response contract:
// domain rejections become 200 success=false with a stable message, bad
// credentials become 401, anything unexpected is logged and becomes 500.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEndBeforeStart):
		helpers.WriteBusinessRejection(w, "You can't end an event before it started")
	case errors.Is(err, domain.ErrNotOwner):
		helpers.WriteBusinessRejection(w, "you are not the owner of this event")
	case errors.Is(err, domain.ErrNotInvited):
		helpers.WriteBusinessRejection(w, "you were not invited to this event")
	case errors.Is(err, domain.ErrAlreadyResponded):
		helpers.WriteBusinessRejection(w, "you already responded to this invitation")
	case errors.Is(err, domain.ErrParticipantNotFound):
		helpers.WriteBusinessRejection(w, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteBusinessRejection(w, "access denied")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteBusinessRejection(w, "not found")
	case errors.Is(err, domain.ErrAlreadyDecided):
		helpers.WriteBusinessRejection(w, "this signup has already been decided")
	case errors.Is(err, domain.ErrNotApproved):
		helpers.WriteBusinessRejection(w, "your account has not been approved yet")
	case errors.Is(err, domain.ErrVersionConflict):
		helpers.WriteBusinessRejection(w, "the event was modified concurrently, please retry")
	case errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteBusinessRejection(w, "email already in use")
	case errors.Is(err, domain.ErrDuplicateUsername):
		helpers.WriteBusinessRejection(w, "username already in use")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteBusinessRejection(w, strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "))
	case errors.Is(err, domain.ErrInvalidCredentials):
		helpers.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
