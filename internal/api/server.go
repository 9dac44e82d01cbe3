// Package api exposes the game core to the UI shell as a JSON HTTP surface.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/goodtune/brightboard/internal/engine"
	"github.com/goodtune/brightboard/internal/focus"
	"github.com/goodtune/brightboard/internal/games"
	"github.com/goodtune/brightboard/internal/progress"
	"github.com/goodtune/brightboard/internal/schedule"
	"github.com/goodtune/brightboard/internal/session"
	"github.com/goodtune/brightboard/internal/settings"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Config holds the API server configuration.
type Config struct {
	ListenAddr     string
	MaxActivePlays int
	AdvanceDelay   time.Duration // for games that do not set their own
}

// Deps are the components the API serves.
type Deps struct {
	Games     *games.Registry
	Ledger    *progress.Ledger
	Settings  *settings.Registry
	Guardian  *session.Guardian
	PinPad    *session.PinPad
	Navigator *focus.Navigator
	Cues      engine.CuePlayer
	Scheduler schedule.Scheduler
	UI        http.Handler // optional; serves everything the API does not
}

// Server is the API HTTP server.
type Server struct {
	config   Config
	deps     Deps
	plays    *playTable
	router   *mux.Router
	server   *http.Server
	listener net.Listener // Optional pre-created listener (for systemd socket activation)
	logger   zerolog.Logger
}

// NewServer creates the API server. Active plays are closed when the session
// locks.
func NewServer(cfg Config, deps Deps, logger zerolog.Logger) (*Server, error) {
	logger = logger.With().Str("component", "api").Logger()

	plays, err := newPlayTable(cfg.MaxActivePlays, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config: cfg,
		deps:   deps,
		plays:  plays,
		router: mux.NewRouter(),
		logger: logger,
	}

	deps.Navigator.SetEnabled(deps.Settings.Get().TVMode)
	deps.Guardian.OnLock(func() {
		if n := s.plays.closeAll(); n > 0 {
			s.logger.Info().Int("plays", n).Msg("Closed active plays on session lock")
		}
	})

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Use(LoggingMiddleware(s.logger))
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "No such endpoint")
	})

	// Game and play routes are unavailable while the session is locked.
	gameRouter := s.router.PathPrefix("/api/games").Subrouter()
	gameRouter.Use(LockMiddleware(s.deps.Guardian))
	gameRouter.HandleFunc("", s.handleListGames).Methods("GET")
	gameRouter.HandleFunc("/{id}/plays", s.handleCreatePlay).Methods("POST")
	gameRouter.HandleFunc("/{id}/results", s.handleRecordResult).Methods("POST")

	playRouter := s.router.PathPrefix("/api/plays").Subrouter()
	playRouter.Use(LockMiddleware(s.deps.Guardian))
	playRouter.HandleFunc("/{playID}", s.handleGetPlay).Methods("GET")
	playRouter.HandleFunc("/{playID}", s.handleDeletePlay).Methods("DELETE")
	playRouter.HandleFunc("/{playID}/answers", s.handleAnswer).Methods("POST")
	playRouter.HandleFunc("/{playID}/hint", s.handleHint).Methods("POST")
	playRouter.HandleFunc("/{playID}/again", s.handlePlayAgain).Methods("POST")

	s.router.HandleFunc("/api/progress", s.handleGetProgress).Methods("GET")
	s.router.HandleFunc("/api/progress/reset", s.handleResetProgress).Methods("POST")

	s.router.HandleFunc("/api/settings", s.handleGetSettings).Methods("GET")
	s.router.HandleFunc("/api/settings", s.handleUpdateSettings).Methods("PATCH")
	s.router.HandleFunc("/api/settings/sound/toggle", s.handleToggleSound).Methods("POST")
	s.router.HandleFunc("/api/settings/tv/toggle", s.handleToggleTV).Methods("POST")

	s.router.HandleFunc("/api/session", s.handleGetSession).Methods("GET")
	s.router.HandleFunc("/api/session/start", s.handleStartSession).Methods("POST")
	s.router.HandleFunc("/api/session/end", s.handleEndSession).Methods("POST")
	s.router.HandleFunc("/api/session/unlock", s.handleUnlock).Methods("POST")
	s.router.HandleFunc("/api/session/pin", s.handlePIN).Methods("POST")

	s.router.HandleFunc("/api/focus/move", s.handleFocusMove).Methods("POST")

	s.router.HandleFunc("/api/cues/stars/{count:[0-9]+}", s.handleStarCue).Methods("GET")
	s.router.HandleFunc("/api/cues/{name}", s.handleCue).Methods("GET")

	// UI shell catch-all, registered last
	if s.deps.UI != nil {
		s.router.PathPrefix("/").Handler(s.deps.UI).Methods("GET", "HEAD")
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetListener sets a pre-created listener for systemd socket activation
func (s *Server) SetListener(ln net.Listener) {
	s.listener = ln
}

// Start starts the API server in the background.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting API server")
	go func() {
		var err error
		if s.listener != nil {
			s.logger.Debug().Msg("Using systemd socket-activated API listener")
			err = s.server.Serve(s.listener)
		} else {
			err = s.server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("API server error")
		}
	}()
	return nil
}

// Stop gracefully shuts down the server and closes every active play.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping API server")
	s.plays.closeAll()
	return s.server.Shutdown(ctx)
}

func (s *Server) engineOptions() engine.Options {
	return engine.Options{
		Scheduler:    s.deps.Scheduler,
		Cues:         s.deps.Cues,
		Reporter:     s.deps.Ledger,
		Logger:       s.logger,
		AdvanceDelay: s.config.AdvanceDelay,
	}
}
