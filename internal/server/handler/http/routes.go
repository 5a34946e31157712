package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/famtrack/vaxtrack/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// vaccination tracker API. It applies CORS for the configured origins,
// JSON content-type enforcement and request logging, and mounts the
// endpoints under /api.
//
// Routes:
//
//	POST /api/register                                    → authHandler.Register
//	POST /api/login                                       → authHandler.Login
//	POST /api/logout                                      → authHandler.Logout
//	GET  /api/user                                        → authHandler.Me          (session cookie)
//	POST /api/family_members                              → recordsHandler.CreateMember (session cookie)
//	GET  /api/family_members                              → recordsHandler.ListMembers  (session cookie)
//	GET  /api/vaccines                                    → recordsHandler.ListVaccines (session cookie)
//	POST /api/family_members/{memberID}/vaccine_records   → recordsHandler.CreateRecord (session cookie)
//	GET  /api/family_members/{memberID}/vaccine_records   → recordsHandler.ListRecords  (session cookie)
func NewRouter(
	authHandler *AuthHandler,
	recordsHandler *RecordsHandler,
	resolver middleware.AccountResolver,
	logger *zap.Logger,
	corsOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Cookie credentials only work cross-origin for explicitly listed callers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		// Protected group: requires a valid session cookie
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(resolver))

			r.Get("/user", authHandler.Me)
			r.Post("/family_members", recordsHandler.CreateMember)
			r.Get("/family_members", recordsHandler.ListMembers)
			r.Get("/vaccines", recordsHandler.ListVaccines)
			r.Post("/family_members/{memberID}/vaccine_records", recordsHandler.CreateRecord)
			r.Get("/family_members/{memberID}/vaccine_records", recordsHandler.ListRecords)
		})
	})

	return r
}
