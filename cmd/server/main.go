package main

import (
	"fmt"
	"image/png"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"voidrunner/internal/api"
	"voidrunner/internal/assets"
	"voidrunner/internal/audio"
	"voidrunner/internal/config"
	"voidrunner/internal/game"
	"voidrunner/internal/render"
	"voidrunner/internal/store"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("🚀 ================================")
	log.Println("🚀  VOIDRUNNER - ARCADE SERVER")
	log.Println("🚀 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	worldCfg := appConfig.World
	serverCfg := appConfig.Server

	log.Printf("🎮 Config: %d TPS, %dx%d world, damage model %q",
		worldCfg.TickRate, worldCfg.Width, worldCfg.Height, appConfig.Player.Model)

	// Score persistence (best-effort: the game runs without it)
	var scores *store.Store
	if s, err := store.Open(serverCfg.DataDir); err != nil {
		log.Printf("⚠️ Score persistence disabled: %v", err)
	} else {
		scores = s
	}

	// Sound effects (silent fallback when no device or no files)
	sounds := audio.NewSoundBank(appConfig.Audio)

	// Sprites for the frame renderer (shape fallback when missing)
	spriteDir := getEnvWithDefault("SPRITE_DIR", "assets/sprites")
	sprites := assets.LoadSprites(spriteDir)

	// Game engine
	engine := game.NewEngine(appConfig)
	if scores != nil {
		engine.SetStore(scores)
	}
	engine.SetSoundCallback(sounds.Play)
	engine.SetGameOverCallback(func(score, wave int) {
		api.RecordGameOver()
	})

	// Event log
	eventLogPath := getEnvWithDefault("EVENT_LOG_PATH", "events.jsonl")
	if err := engine.StartEventLog(eventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else {
		log.Printf("📝 Event log: %s", eventLogPath)
	}

	// Debug server (pprof + prometheus, localhost only)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	engine.Start()
	defer engine.Stop()

	// Metrics gauges follow the snapshot stream
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			snap := engine.GetSnapshot()
			api.UpdateGameGauges(snap.Wave, len(snap.Enemies), len(snap.Bullets), snap.Score)
		}
	}()

	// WebSocket hub: inputs in, snapshots out
	hub := api.NewWebSocketHub(engine)
	go hub.Run()
	hub.StartBroadcastLoop()

	// Frame endpoint renders the latest snapshot to PNG on demand
	fontPath := getEnvWithDefault("FONT_PATH", "assets/fonts/arcade.ttf")
	renderer := render.NewRenderer(worldCfg.Width, worldCfg.Height, sprites, fontPath)
	frameHandler := newFrameHandler(engine, renderer)

	routerCfg := api.RouterConfig{
		Engine:       engine,
		Hub:          hub,
		FrameHandler: frameHandler,
	}
	if scores != nil {
		// Assign only when non-nil so the handlers' nil check works
		routerCfg.Store = scores
	}
	router := api.NewRouter(routerCfg)

	addr := fmt.Sprintf(":%d", serverCfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🌐 HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("🛑 Shutting down...")
	srv.Close()
	engine.Stop()
	engine.StopEventLog()
	log.Println("👋 Goodbye")
}

// newFrameHandler serves the current game state as a PNG frame.
// Rendering is serialized: the renderer reuses one backing image.
func newFrameHandler(engine *game.Engine, renderer *render.Renderer) http.Handler {
	var mu sync.Mutex

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		start := time.Now()
		img := renderer.RenderSnapshot(engine.GetSnapshot())
		api.RecordRender(time.Since(start))

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := png.Encode(w, img); err != nil {
			log.Printf("⚠️ Frame encode failed: %v", err)
		}
	})
}

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
