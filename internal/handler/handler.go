package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pixelup/chat-relay/internal/model"
	"github.com/pixelup/chat-relay/internal/service"
	"github.com/pixelup/chat-relay/pkg/httpext"
)

const (
	// RootMessage é o texto de liveness servido em GET /.
	RootMessage = "PixelUp Bot (Gemini) rodando 🚀"

	defaultEcho  = "Olá!"
	maxBodyBytes = 1 << 20
)

// Replier responde a uma mensagem de cliente.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	relay Replier
}

// NewHandler cria uma nova instância do Handler
func NewHandler(relay Replier) (*Handler, error) {
	if relay == nil {
		return nil, errors.New("handler: relay must not be nil")
	}
	return &Handler{relay: relay}, nil
}

// HandleRoot retorna o texto de liveness do serviço
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, RootMessage); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write root response")
	}
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, "OK"); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write health response")
	}
}

// HandleEcho devolve o parâmetro q, ou "Olá!" quando ausente
func (h *Handler) HandleEcho(w http.ResponseWriter, r *http.Request) {
	q := defaultEcho
	if values, ok := r.URL.Query()["q"]; ok && len(values) > 0 {
		q = values[0]
	}
	httpext.JSON(w, http.StatusOK, model.EchoResponse{OK: true, Echo: q})
}

// HandleChat processa a mensagem do cliente e devolve a resposta da IA
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read chat request body")
		body = nil
	}
	req := model.ParseChatRequest(body)

	reply, err := h.relay.Reply(ctx, req.Message)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptyMessage):
		logger.Debug().Msg("Chat request without message")
		httpext.JSONError(w, service.MsgMessageRequired, http.StatusBadRequest)
		return
	default:
		logger.Error().Err(err).Str("client_ip", r.RemoteAddr).Msg("Failed to generate AI response")
		httpext.JSONError(w, service.MsgGenerateFailed, http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int("message_length", len(req.Message)).
		Int("reply_length", len(reply)).
		Msg("Chat reply generated")
	httpext.JSON(w, http.StatusOK, model.ChatResponse{Reply: reply})
}
