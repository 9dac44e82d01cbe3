package metrics

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	// Round metrics
	RoundsAnswered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brightboard_rounds_answered_total",
			Help: "Total rounds answered",
		},
		[]string{"game", "result"},
	)

	RoundsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brightboard_rounds_rejected_total",
			Help: "Answers ignored because the round was already resolving or the game had ended",
		},
		[]string{"game"},
	)

	GamesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brightboard_games_completed_total",
			Help: "Total games played to completion",
		},
		[]string{"game"},
	)

	StarsAwarded = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brightboard_stars_awarded",
			Help:    "Stars awarded per completed game",
			Buckets: []float64{0, 1, 2, 3},
		},
		[]string{"game"},
	)

	ActivePlays = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "brightboard_active_plays",
			Help: "Number of game instances currently held by the server",
		},
	)

	// Session metrics
	SessionLocks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "brightboard_session_locks_total",
			Help: "Total sessions locked after the time budget ran out",
		},
	)

	UnlockAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brightboard_unlock_attempts_total",
			Help: "Parent PIN unlock attempts",
		},
		[]string{"result"},
	)

	// Navigation metrics
	FocusMoves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brightboard_focus_moves_total",
			Help: "Directional focus moves",
		},
		[]string{"direction", "moved"},
	)

	// Audio metrics
	CueFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brightboard_cue_failures_total",
			Help: "Audio cues that failed to play",
		},
		[]string{"cue"},
	)

	// Storage metrics
	StorageCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "brightboard_storage_cache_hits_total",
			Help: "Record cache hits",
		},
	)

	StorageCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "brightboard_storage_cache_misses_total",
			Help: "Record cache misses",
		},
	)

	// API metrics
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brightboard_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(
		RoundsAnswered,
		RoundsRejected,
		GamesCompleted,
		StarsAwarded,
		ActivePlays,
		SessionLocks,
		UnlockAttempts,
		FocusMoves,
		CueFailures,
		StorageCacheHits,
		StorageCacheMisses,
		RequestDuration,
	)
}

// Server is the metrics HTTP server
type Server struct {
	server   *http.Server
	logger   zerolog.Logger
	listener net.Listener // Optional pre-created listener (for systemd socket activation)
}

// NewServer creates a new metrics server
func NewServer(addr string, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger: logger.With().Str("component", "metrics").Logger(),
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// SetListener sets a pre-created listener for systemd socket activation
func (s *Server) SetListener(ln net.Listener) {
	s.listener = ln
}

// Start starts the metrics server
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting metrics server")
	go func() {
		var err error
		if s.listener != nil {
			s.logger.Debug().Msg("Using systemd socket-activated metrics listener")
			err = s.server.Serve(s.listener)
		} else {
			err = s.server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Metrics server error")
		}
	}()
	return nil
}

// Stop stops the metrics server
func (s *Server) Stop() error {
	s.logger.Info().Msg("Stopping metrics server")
	return s.server.Close()
}
