package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventgather/internal/delivery/http/controllers"
	"eventgather/internal/delivery/http/middleware"
	"eventgather/internal/domain"
)

// Controllers groups the route handlers the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	PrivateEvent *controllers.PrivateEventController
	Manager      *controllers.ManagerController
	Supervisor   *controllers.SupervisorController
	Event        *controllers.EventController
	Report       *controllers.ReportController
}

// chain applies the wrappers to h from right to left, so the first wrapper
// listed is the outermost and runs first.
func chain(h http.HandlerFunc, wrappers ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(wrappers) - 1; i >= 0; i-- {
		h = wrappers[i](h)
	}
	return h
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(verifier domain.TokenVerifier, c Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	participant := middleware.RequireRoles(domain.RoleParticipant)
	manager := middleware.RequireRoles(domain.RoleManager)
	supervisor := middleware.RequireRoles(domain.RoleSupervisor)

	// Auth
	mux.HandleFunc("POST /v1/auth/signup", chain(c.Auth.SignUp,
		middleware.RequireFields("name", "surname", "username", "email")))
	mux.HandleFunc("POST /v1/auth/login", chain(c.Auth.Login,
		middleware.RequireFields("email", "password")))
	mux.HandleFunc("GET /v1/users/me", chain(c.User.GetMe, auth))

	// Private events
	mux.HandleFunc("GET /v1/private-events", chain(c.PrivateEvent.ListMine, auth, participant))
	mux.HandleFunc("GET /v1/private-events/{eventID}", chain(c.PrivateEvent.Get, auth, participant))
	mux.HandleFunc("POST /v1/private-events", chain(c.PrivateEvent.Create,
		auth, participant, middleware.RequireFields("initDate", "endDate", "description")))
	mux.HandleFunc("PUT /v1/private-events/{eventID}/invite", chain(c.PrivateEvent.Invite,
		auth, participant, middleware.RequireFields("users")))
	mux.HandleFunc("PUT /v1/private-events/{eventID}/responde", chain(c.PrivateEvent.Respond,
		auth, participant, middleware.RequireFields("accept")))
	mux.HandleFunc("PUT /v1/private-events/{eventID}", chain(c.PrivateEvent.Update,
		auth, participant, middleware.RequireFields("initDate", "endDate", "description")))
	mux.HandleFunc("DELETE /v1/private-events/{eventID}", chain(c.PrivateEvent.Delete, auth, participant))

	// Manager signup and supervisor approval
	mux.HandleFunc("POST /v1/managers", chain(c.Manager.SignUp,
		middleware.RequireFields("local_name", "email", "local_type")))
	mux.HandleFunc("GET /v1/supervisors/managers/pending", chain(c.Supervisor.ListPendingManagers, auth, supervisor))
	mux.HandleFunc("PUT /v1/supervisors/managers/{managerID}/decision", chain(c.Supervisor.DecideManager,
		auth, supervisor, middleware.RequireFields("approve")))

	// Public events
	mux.HandleFunc("GET /v1/events", chain(c.Event.List, auth))
	mux.HandleFunc("GET /v1/events/{eventID}", chain(c.Event.Get, auth))
	mux.HandleFunc("POST /v1/events", chain(c.Event.Create,
		auth, manager, middleware.RequireFields("name", "initDate", "endDate")))
	mux.HandleFunc("PUT /v1/events/{eventID}", chain(c.Event.Update,
		auth, manager, middleware.RequireFields("name", "initDate", "endDate")))
	mux.HandleFunc("DELETE /v1/events/{eventID}", chain(c.Event.Delete, auth, manager))

	// Reports
	mux.HandleFunc("POST /v1/reports", chain(c.Report.File,
		auth, participant, middleware.RequireFields("reason")))
	mux.HandleFunc("GET /v1/reports", chain(c.Report.List, auth, supervisor))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}
