package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"toolbelt-mcp/bootstrap"
	"toolbelt-mcp/config"
	"toolbelt-mcp/log"
)

func main() {
	// Values from .env never override real environment variables
	godotenv.Load()

	// Initialize logging
	log.Init()

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(context.Background(), "Program terminated externally. Exiting...")
		cancel()
	}()

	// 0. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}
	log.SetLevelFromString(cfg.Log.Level)

	// 1-3. Init App Components using Bootstrap
	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(context.Background(), "Setup failed: %v", err)
	}

	// 4. Serve on the configured transport
	switch cfg.Server.Transport {
	case "http":
		serveHTTP(ctx, app, cfg.Server.Addr)
	default:
		serveStdio(app)
	}
}

// serveStdio speaks JSON-RPC over stdin/stdout; all logging stays on stderr
func serveStdio(app *bootstrap.App) {
	log.Info(context.Background(), "Starting stdio transport")
	if err := server.ServeStdio(app.Server); err != nil {
		log.Fatalf(context.Background(), "Server failed: %v", err)
	}
}

// serveHTTP mounts the streamable HTTP transport behind a chi router
func serveHTTP(ctx context.Context, app *bootstrap.App, addr string) {
	streamable := server.NewStreamableHTTPServer(app.Server)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"server": bootstrap.ServerName,
		})
	})
	r.Mount("/mcp", streamable)

	// Use h2c for HTTP/2 without TLS (common for dev and internal services)
	srv := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(r, &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "Shutting down server...")
		srv.Shutdown(context.Background())
	}()

	log.Infof(context.Background(), "Starting HTTP transport on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf(context.Background(), "Server failed: %v", err)
	}
}
