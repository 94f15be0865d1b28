package httpserver

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/queenswoodclub/booking-backend/internal/config"
	"github.com/queenswoodclub/booking-backend/internal/handlers"
	requesttracking "github.com/queenswoodclub/booking-backend/internal/middleware"
)

// Server wraps an http.Server with convenience helpers for startup/shutdown.
type Server struct {
	httpServer *http.Server
}

// New constructs an HTTP server using the provided configuration and storage clients.
// db may be nil in tests; request tracking is skipped in that case.
func New(cfg config.Config, db *sql.DB, registrations handlers.RegistrationStore, bookings handlers.BookingStore, events handlers.WebhookEventStore, checkout handlers.CheckoutClient) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if db != nil {
		requestTracker, err := requesttracking.NewRequestTracker(db)
		if err != nil {
			log.Printf("request tracking disabled: %v", err)
		} else {
			router.Use(requestTracker.Middleware())
		}
	}

	router.Get("/healthz", handlers.Health)

	// Checkout endpoints are called from the browser and need permissive
	// CORS. The webhook is provider-to-server and gets none.
	router.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		}))

		r.Post("/create-membership-checkout", handlers.CreateMembershipCheckout(registrations, checkout, cfg.SitePath))
		r.Options("/create-membership-checkout", preflightOK)
		r.Post("/create-yoco-checkout", handlers.CreateBookingCheckout(bookings, checkout, cfg.SitePath))
		r.Options("/create-yoco-checkout", preflightOK)

		r.Get("/plans", handlers.Plans())
		r.Get("/registrations/{id}", handlers.GetRegistration(registrations))
		r.Get("/bookings/{id}", handlers.GetBooking(bookings))
	})

	router.Post("/yoco-webhook", handlers.YocoWebhook(bookings, events))

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{httpServer: srv}
}

// preflightOK answers non-preflight OPTIONS probes; real preflights are
// short-circuited by the CORS middleware before reaching it.
func preflightOK(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
