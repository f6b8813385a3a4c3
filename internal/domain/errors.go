package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers match
// these with errors.Is to pick the right response shape.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotOwner is returned when an owner-only operation is attempted by
	// someone other than the event's creator.
	ErrNotOwner = errors.New("caller is not the event owner")

	// ErrNotInvited is returned when a caller responds to an event they have
	// no invitation entry for.
	ErrNotInvited = errors.New("caller is not invited to this event")

	// ErrAlreadyResponded is returned when an invitation entry is already in a
	// terminal state (accepted or denied).
	ErrAlreadyResponded = errors.New("invitation already answered")

	// ErrParticipantNotFound is returned when an invite identifier resolves to
	// no participant. The whole invite operation fails without mutation.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrAlreadyDecided is returned when a supervisor decides on a manager
	// signup that already has a decision recorded.
	ErrAlreadyDecided = errors.New("manager signup already decided")

	// ErrNotApproved is returned when an unapproved manager attempts an
	// operation reserved for approved managers.
	ErrNotApproved = errors.New("manager is not approved")

	// ErrVersionConflict is returned when an optimistic update loses the race
	// against a concurrent writer.
	ErrVersionConflict = errors.New("concurrent modification")

	// ErrInvalidInput is returned for requests that are well-formed but
	// semantically invalid (e.g. inviting the event creator).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateEmail is returned when an email is already registered.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrDuplicateUsername is returned when a username is already registered.
	ErrDuplicateUsername = errors.New("username already in use")

	// ErrInvalidCredentials is returned on failed login attempts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
