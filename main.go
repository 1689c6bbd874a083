package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"chms-be/internal/config"
	"chms-be/internal/container"
	"chms-be/internal/handler"
	"chms-be/internal/middleware"
	"chms-be/pkg/logger"
)

// Resources holds everything that needs cleanup on shutdown
type Resources struct {
	container *container.Container
	server    *http.Server
	log       *logger.Logger
	mu        sync.Mutex
	closed    bool
}

// Cleanup gracefully closes all resources. The HTTP server stops first so no
// new requests arrive while connections are being torn down.
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.container != nil {
		r.container.Close()
		r.log.Info("Connections closed")
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting chms-be server")

	ctx := context.Background()
	c, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	router := setupRouter(c)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	resources := &Resources{
		container: c,
		server:    server,
		log:       log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.Config
	log := c.Logger

	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := handler.NewHealthHandler(c)
	memberHandler := handler.NewMemberHandler(c.MemberService)
	invitationHandler := handler.NewInvitationHandler(c.InvitationService)
	roleHandler := handler.NewRoleHandler(c.PermissionService)
	teamHandler := handler.NewTeamHandler(c.TeamService)
	groupHandler := handler.NewGroupHandler(c.GroupService)
	calendarHandler := handler.NewCalendarHandler(c.CalendarService)
	documentHandler := handler.NewDocumentHandler(c.DocumentService, c.CalendarService)

	// Health check (no auth required)
	r.Get("/health", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(c.AuthService, log))

		r.Route("/churches/{churchID}", func(r chi.Router) {
			r.Get("/members", memberHandler.List)
			r.Post("/members/remove", memberHandler.BulkRemove)
			r.Put("/members/{userID}/roles", roleHandler.ApplyDiff)
			r.Post("/members/{userID}/roles", roleHandler.Assign)
			r.Delete("/members/{userID}/roles/{roleID}", roleHandler.Remove)

			r.Get("/invitations", invitationHandler.List)
			r.Post("/invitations/{requestID}/accept", invitationHandler.Accept)
			r.Post("/invitations/{requestID}/decline", invitationHandler.Decline)

			r.Get("/roles", roleHandler.List)
			r.Get("/roles/map", roleHandler.UserRolesMap)

			r.Get("/teams", teamHandler.List)
			r.Post("/teams", teamHandler.Create)
			r.Put("/teams/{teamID}", teamHandler.Update)
			r.Delete("/teams/{teamID}", teamHandler.Delete)
		})

		r.Route("/teams/{teamID}", func(r chi.Router) {
			r.Get("/", teamHandler.Get)

			r.Get("/members", teamHandler.ListMembers)
			r.Post("/members", teamHandler.AddMember)
			r.Get("/members/me", teamHandler.MyMembership)
			r.Delete("/members/{userID}", teamHandler.RemoveMember)
			r.Put("/members/{userID}/role", teamHandler.UpdateMemberRole)
			r.Put("/members/{userID}/position", teamHandler.UpdateMemberPosition)
			r.Get("/members/{userID}/group-eligibility", teamHandler.GroupEligibility)

			r.Get("/groups", groupHandler.List)
			r.Post("/groups", groupHandler.Create)
			r.Get("/groups/me", groupHandler.MyGroup)
			r.Get("/groups/{groupID}", groupHandler.Get)
			r.Put("/groups/{groupID}", groupHandler.Update)
			r.Delete("/groups/{groupID}", groupHandler.Delete)
			r.Get("/groups/{groupID}/members", groupHandler.ListMembers)
			r.Post("/groups/{groupID}/members", groupHandler.AddMember)
			r.Delete("/groups/{groupID}/members/{userID}", groupHandler.RemoveMember)
			r.Put("/groups/{groupID}/members/{userID}/role", groupHandler.UpdateMemberRole)
			r.Put("/groups/{groupID}/members/{userID}/position", groupHandler.UpdateMemberPosition)

			r.Get("/calendar", calendarHandler.List)
			r.Post("/calendar", calendarHandler.Create)
			r.Put("/calendar/{eventID}", calendarHandler.Update)
			r.Delete("/calendar/{eventID}", calendarHandler.Delete)

			r.Get("/documents", documentHandler.List)
			r.Post("/documents", documentHandler.Upload)
			r.Get("/documents/events", documentHandler.SearchEvents)
			r.Delete("/documents/{documentID}", documentHandler.Delete)
			r.Get("/documents/{documentID}/url", documentHandler.DownloadURL)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
