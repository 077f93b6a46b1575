package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"voidrunner/internal/game"
	"voidrunner/internal/store"
)

// EngineInterface defines the game engine methods used by the API.
// This interface enables mocking for tests without spinning up the full
// game loop. Keep this minimal - only methods the API layer actually calls.
type EngineInterface interface {
	// GetSnapshot returns the latest lock-free immutable snapshot
	GetSnapshot() *game.GameSnapshot
	// SetInput replaces the player's held input intent
	SetInput(in game.InputIntent)
	// Restart resets the run after a game over
	Restart()
	// GetEventLogStats returns event log counters for the stats endpoint
	GetEventLogStats() map[string]interface{}
}

// AccountStore defines the persistence methods used by the API.
type AccountStore interface {
	Register(username, password string) error
	Login(username, password string) error
	Logout()
	IsLoggedIn() bool
	CurrentUser() string
	GetHighScore() int
	Leaderboard(n int) []store.LeaderboardEntry
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
// This struct is designed for dependency injection and testability.
type RouterConfig struct {
	// Engine is the game engine (required)
	Engine EngineInterface

	// Store is the account/score store (optional; auth and leaderboard
	// endpoints return 503 when nil)
	Store AccountStore

	// Hub is the WebSocket hub (optional; /ws returns 404 when nil)
	Hub *WebSocketHub

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	CORSOrigins []string

	// FrameHandler serves rendered PNG frames of the current state
	// (optional; /frame is absent when nil)
	FrameHandler http.Handler

	// StaticFilesDir serves the browser client. If empty, defaults to "./web".
	StaticFilesDir string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the dependencies for the handler functions.
type routerHandlers struct {
	engine EngineInterface
	store  AccountStore
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// This function is PURE - no goroutines, no listeners, no background
// workers - so it is safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - order matters
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{
		engine: cfg.Engine,
		store:  cfg.Store,
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Game state
		r.Get("/state", h.handleGetState)
		r.Get("/stats", h.handleGetStats)
		r.Post("/input", h.handleInput)
		r.Post("/restart", h.handleRestart)

		// Accounts and scores
		r.Get("/leaderboard", h.handleGetLeaderboard)
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Get("/session", h.handleGetSession)
	})

	// WebSocket endpoint
	if cfg.Hub != nil {
		r.Get("/ws", cfg.Hub.HandleWebSocket)
	}

	// Rendered frame endpoint
	if cfg.FrameHandler != nil {
		r.Method(http.MethodGet, "/frame", cfg.FrameHandler)
	}

	// Browser client
	staticDir := cfg.StaticFilesDir
	if staticDir == "" {
		staticDir = "./web"
	}
	r.Handle("/play/*", http.StripPrefix("/play/", http.FileServer(http.Dir(staticDir))))
	r.Get("/play", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/play/", http.StatusMovedPermanently)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/play/", http.StatusFound)
	})

	return r
}
