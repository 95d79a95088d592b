package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/repoadmin-mcp/internal/adapter/driven/github"
	mcpadapter "github.com/ericfisherdev/repoadmin-mcp/internal/adapter/driving/mcp"
	"github.com/ericfisherdev/repoadmin-mcp/internal/application"
	"github.com/ericfisherdev/repoadmin-mcp/internal/config"
	"github.com/ericfisherdev/repoadmin-mcp/internal/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing credential).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Install logging: in-memory ring mirrored to a stderr text handler.
	// Stdout stays reserved for the stdio MCP transport.
	sink := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})
	handler := logging.NewMemoryHandler(sink, cfg.LogBuffer)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"transport", cfg.Transport,
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
	)

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Wire adapters and services.
	client := githubadapter.NewClient(cfg.GitHubToken)
	verifier := application.NewAccessVerifier(client, logger)

	s := mcpadapter.New(mcpadapter.Services{
		Orgs:          application.NewOrgService(client, verifier, logger),
		Repos:         application.NewRepoService(client, verifier, logger),
		Collaborators: application.NewCollaboratorService(client, verifier, logger),
	})

	// 5. Serve over the configured transport.
	switch cfg.Transport {
	case "http":
		httpServer := server.NewStreamableHTTPServer(s)

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("error shutting down http server", "error", err)
			}
		}()

		logger.Info("serving mcp over http", "addr", cfg.ListenAddr)
		return httpServer.Start(cfg.ListenAddr)

	default:
		logger.Info("serving mcp over stdio")
		return server.ServeStdio(s)
	}
}
