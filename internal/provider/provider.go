package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/pixelup/chat-relay/internal/config"
	"github.com/pixelup/chat-relay/internal/service"
)

// New cria o provedor configurado em cfg.Backend.
func New(ctx context.Context, cfg config.Config) (service.Provider, error) {
	switch cfg.Backend {
	case config.BackendGenAI, "":
		return NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.ProviderTimeout)
	case config.BackendADK:
		return NewADK(ctx, cfg.APIKey, cfg.Model, cfg.ProviderTimeout)
	default:
		return nil, fmt.Errorf("provider: unknown backend %q", cfg.Backend)
	}
}

// withTimeout aplica o timeout configurado apenas quando o contexto não tem
// deadline própria. Timeout zero deixa o SDK decidir.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
