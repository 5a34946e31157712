// Package main initializes and starts the vaccination tracker server,
// setting up configuration, logging, the database connection,
// repositories, services, handlers and the router.
package main

import (
	"cmp"
	"fmt"
	"log"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/famtrack/vaxtrack/internal/config"
	"github.com/famtrack/vaxtrack/internal/db"
	"github.com/famtrack/vaxtrack/internal/logger"
	"github.com/famtrack/vaxtrack/internal/repository"
	"github.com/famtrack/vaxtrack/internal/server/handler/http"
	"github.com/famtrack/vaxtrack/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, file and environment configuration. Parse refuses
	// a missing or placeholder signing secret.
	options, err := config.Parse()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	lg := logger.New()
	if err := lg.Init(options.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Log.Sync() }()
	zapLogger := lg.Log

	// Initialize the PostgreSQL connection and bootstrap the schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	memberRepo := repository.NewPostgresMemberRepository(postgresDB)
	recordRepo := repository.NewPostgresRecordRepository(postgresDB)
	vaccineRepo := repository.NewPostgresVaccineRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, []byte(options.SecretKey), options.TokenTTL())
	recordsService := service.NewRecordsService(memberRepo, recordRepo, vaccineRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{
		AuthService:   authService,
		TokenTTL:      options.TokenTTL(),
		SecureCookies: options.SecureCookies,
	}
	recordsHandler := &http.RecordsHandler{RecordsService: recordsService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, recordsHandler, authService, zapLogger, options.CORSOrigins)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
