package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phauna/phaunabot/internal/logging"
)

// Authenticator is the OAuth collaborator the auth routes drive.
type Authenticator interface {
	// AuthURL returns the Google consent URL.
	AuthURL() string

	// Exchange trades an authorization code for tokens and persists them.
	Exchange(ctx context.Context, code string) error
}

// AuthServer serves the Google OAuth consent flow plus health probes.
//
// Visiting /auth/google/start redirects the browser to Google's consent
// screen; Google then calls back on /auth/google/redirect with the
// authorization code, which is exchanged and persisted so the calendar
// client can authenticate from then on.
type AuthServer struct {
	auth       Authenticator
	health     *HealthChecker
	logger     *slog.Logger
	httpServer *http.Server
}

// NewAuthServer creates the auth/health HTTP server.
func NewAuthServer(auth Authenticator, health *HealthChecker, logger *slog.Logger) *AuthServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServer{auth: auth, health: health, logger: logger}
}

// Handler returns the route mux, exported so tests can drive it directly.
func (s *AuthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/google/start", s.handleStart)
	mux.HandleFunc("/auth/google/redirect", s.handleRedirect)
	if s.health != nil {
		mux.Handle("/healthz", s.health.LivenessHandler())
		mux.Handle("/readyz", s.health.ReadinessHandler())
	}
	return mux
}

// Start runs the server until Shutdown. Blocking; run in a goroutine for
// non-blocking operation.
func (s *AuthServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("starting auth server", slog.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *AuthServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("shutting down auth server")
	return s.httpServer.Shutdown(ctx)
}

// handleStart begins the consent flow by redirecting to Google.
func (s *AuthServer) handleStart(w http.ResponseWriter, r *http.Request) {
	url := s.auth.AuthURL()
	s.logger.Info("starting OAuth consent flow", logging.Operation("oauth_start"))
	http.Redirect(w, r, url, http.StatusFound)
}

// handleRedirect completes the consent flow: it exchanges the authorization
// code Google sent back and persists the token.
func (s *AuthServer) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		s.logger.Warn("OAuth redirect without code", logging.Operation("oauth_redirect"))
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}

	if err := s.auth.Exchange(r.Context(), code); err != nil {
		s.logger.Error("failed to exchange auth code",
			logging.Operation("oauth_redirect"), logging.Err(err))
		http.Error(w, "failed to exchange authorization code", http.StatusInternalServerError)
		return
	}

	s.logger.Info("OAuth token stored", logging.Operation("oauth_redirect"))
	fmt.Fprint(w, "complete")
}
