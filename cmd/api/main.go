package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"eventgather/config"
	_ "eventgather/docs"
	"eventgather/internal/adapters/auth"
	"eventgather/internal/adapters/email"
	delivery "eventgather/internal/delivery/http"
	"eventgather/internal/delivery/http/controllers"
	"eventgather/internal/delivery/http/middleware"
	"eventgather/internal/repository/postgres"
	"eventgather/internal/services"

	"golang.org/x/crypto/bcrypt"
)

const serviceTimeout = 5 * time.Second

// @title EventGather API
// @version 1.0
// @description Event management backend: public venue events, private invitation-only events, and the manager approval workflow.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	participants := postgres.NewParticipantRepository(db)
	managers := postgres.NewManagerRepository(db)
	supervisors := postgres.NewSupervisorRepository(db)
	privateEvents := postgres.NewPrivateEventRepository(db)
	events := postgres.NewEventRepository(db)
	reports := postgres.NewReportRepository(db)

	codec := auth.NewJWTCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	authService := services.NewAuthService(participants, managers, supervisors, hasher, codec, emailService, cfg.JWTExpiry)
	privateEventService := services.NewPrivateEventService(privateEvents, participants, emailService, serviceTimeout)
	managerService := services.NewManagerService(managers, hasher, emailService)
	eventService := services.NewEventService(events, managers)
	reportService := services.NewReportService(reports)

	mux := delivery.NewRouter(codec, delivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		User:         controllers.NewUserController(logger, participants, managers, supervisors),
		PrivateEvent: controllers.NewPrivateEventController(logger, privateEventService),
		Manager:      controllers.NewManagerController(logger, managerService),
		Supervisor:   controllers.NewSupervisorController(logger, managerService),
		Event:        controllers.NewEventController(logger, eventService),
		Report:       controllers.NewReportController(logger, reportService),
	})

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server: %v", err)
	}
}
