// Package httpapi exposes the bug tracker over an HTTP JSON API. The
// credential travels as an access_token cookie; routes live under
// /api/v1. Authentication and the role gate are middleware around the
// handlers, so authorization failures short-circuit before any business
// logic runs.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Tushar822/bugtracker/internal/logging"
	"github.com/Tushar822/bugtracker/internal/server/config"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/Tushar822/bugtracker/internal/server/services"
)

type Server struct {
	address        string
	allowedOrigins []string
	cookieTTL      time.Duration
	logger         logging.Logger
	users          *services.UserService
	projects       *services.ProjectService
	issues         *services.IssueService
	attachments    *services.AttachmentService
}

func NewServer(cfg *config.Config, l logging.Logger,
	us *services.UserService, ps *services.ProjectService,
	is *services.IssueService, as *services.AttachmentService) *Server {
	return &Server{
		address:        cfg.EndpointAddrHTTP,
		allowedOrigins: cfg.AllowedOrigins,
		cookieTTL:      cfg.AccessTokenValidityDuration,
		logger:         l.With("module", "http_server"),
		users:          us,
		projects:       ps,
		issues:         is,
		attachments:    as,
	}
}

// Handler builds the full route table wrapped in CORS and request
// logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/v1/auth/me", s.authenticate(s.handleMe))

	mux.HandleFunc("POST /api/v1/projects", s.authenticate(s.requireRole(models.RolePM, s.handleCreateProject)))
	mux.HandleFunc("GET /api/v1/projects", s.authenticate(s.handleListProjects))
	mux.HandleFunc("GET /api/v1/projects/{id}", s.authenticate(s.handleGetProject))

	mux.HandleFunc("POST /api/v1/issues", s.authenticate(s.handleCreateIssue))
	mux.HandleFunc("GET /api/v1/issues", s.authenticate(s.handleListIssues))
	mux.HandleFunc("GET /api/v1/issues/{id}", s.authenticate(s.handleGetIssue))
	mux.HandleFunc("PATCH /api/v1/issues/{id}/status", s.authenticate(s.handleUpdateIssueStatus))
	mux.HandleFunc("PATCH /api/v1/issues/{id}/assign", s.authenticate(s.requireRole(models.RolePM, s.handleAssignIssue)))

	mux.HandleFunc("POST /api/v1/issues/{id}/attachments", s.authenticate(s.handleCreateAttachment))
	mux.HandleFunc("GET /api/v1/issues/{id}/attachments", s.authenticate(s.handleListAttachments))
	mux.HandleFunc("GET /api/v1/issues/{id}/attachments/{attachmentID}/url", s.authenticate(s.handleAttachmentURL))

	return s.cors(s.requestLogger(mux))
}

// Run serves the API until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
