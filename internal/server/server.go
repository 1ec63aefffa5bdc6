package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/pixelup/chat-relay/internal/config"
)

const (
	shutdownTimeout    = 5 * time.Second
	mcpSessionIDHeader = "Mcp-Session-Id"
)

// Routes agrupa os handlers registrados no roteador.
type Routes struct {
	Root   http.HandlerFunc
	Health http.HandlerFunc
	Chat   http.HandlerFunc
	Echo   http.HandlerFunc

	// MCP é opcional; quando nil a rota /mcp não é registrada.
	MCP http.Handler
}

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	cfg    config.Config
	Router chi.Router

	// streams é cancelado no início do shutdown e encerra as conexões
	// longas do MCP (SSE), que de outra forma prenderiam o Shutdown.
	streams    context.Context
	endStreams context.CancelFunc
}

// NewServer cria uma nova instância do servidor
func NewServer(cfg config.Config, routes Routes) (*Server, error) {
	if routes.Root == nil || routes.Health == nil || routes.Chat == nil || routes.Echo == nil {
		return nil, errors.New("server: all HTTP routes must be set")
	}
	s := &Server{cfg: cfg}
	s.streams, s.endStreams = context.WithCancel(context.Background())
	s.SetupRouter(routes)
	return s, nil
}

// SetupRouter configura as rotas e middlewares do Chi
func (s *Server) SetupRouter(routes Routes) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(CorrelationID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{CorrelationIDHeader, mcpSessionIDHeader},
		MaxAge:         300,
	}))

	// Rotas
	r.Get("/", routes.Root)
	r.Get("/health", routes.Health)
	r.Get("/echo", routes.Echo)
	r.Post("/chat", routes.Chat)

	if routes.MCP != nil {
		r.With(s.endOnShutdown).Handle("/mcp", routes.MCP)
	}

	s.Router = r
}

// Start inicia o servidor HTTP e bloqueia até ctx ser cancelado,
// fazendo então o graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve atende conexões em ln até ctx ser cancelado.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", ln.Addr().String()).
			Str("backend", s.cfg.Backend).
			Str("model", s.cfg.Model).
			Bool("mcp", s.cfg.MCPEnabled).
			Msg("HTTP server started")

		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	s.endStreams()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		log.Warn().Dur("timeout", shutdownTimeout).Msg("Graceful shutdown timed out, closing remaining connections")
		if err := httpServer.Close(); err != nil {
			return fmt.Errorf("server: close: %w", err)
		}
		return nil
	}
	log.Info().Msg("Server stopped gracefully")
	return nil
}

// endOnShutdown faz o contexto da requisição terminar quando o shutdown começa.
// Usado só em rotas de streaming; /chat continua drenando normalmente.
func (s *Server) endOnShutdown(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		stop := context.AfterFunc(s.streams, cancel)
		defer stop()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
