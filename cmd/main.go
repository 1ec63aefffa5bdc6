package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pixelup/chat-relay/internal/config"
	"github.com/pixelup/chat-relay/internal/handler"
	"github.com/pixelup/chat-relay/internal/logger"
	"github.com/pixelup/chat-relay/internal/mcptool"
	"github.com/pixelup/chat-relay/internal/provider"
	"github.com/pixelup/chat-relay/internal/server"
	"github.com/pixelup/chat-relay/internal/service"
)

var version = "dev"

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// O logger ainda não foi configurado; usa os padrões do zerolog.
		log.Fatal().Err(err).Msg("Invalid configuration, refusing to start")
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Debug().Err(envErr).Msg(".env file not found or could not be loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("Server exited with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	p, err := provider.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	relay, err := service.NewRelay(p, cfg.DefaultReply)
	if err != nil {
		return fmt.Errorf("create relay: %w", err)
	}

	h, err := handler.NewHandler(relay)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	routes := server.Routes{
		Root:   h.HandleRoot,
		Health: h.HandleHealth,
		Chat:   h.HandleChat,
		Echo:   h.HandleEcho,
	}
	if cfg.MCPEnabled {
		routes.MCP = mcptool.NewHTTPHandler(mcptool.NewServer(relay, version))
	}

	srv, err := server.NewServer(cfg, routes)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	return srv.Start(ctx)
}
