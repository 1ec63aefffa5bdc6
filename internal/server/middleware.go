package server

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pixelup/chat-relay/internal/service"
	"github.com/pixelup/chat-relay/pkg/httpext"
)

// CorrelationIDHeader identifica a requisição nas respostas e nos logs.
const CorrelationIDHeader = "X-Correlation-Id"

const maxCorrelationIDLen = 128

// CorrelationID reaproveita o X-Correlation-Id do cliente ou gera um novo, e
// anexa ao contexto um logger com esse id.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(CorrelationIDHeader))
		if id == "" || len(id) > maxCorrelationIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(CorrelationIDHeader, id)

		logger := log.With().Str("correlation_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

// RequestLogger registra método, rota, status e duração de cada requisição.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log.Ctx(r.Context()).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Str("remote_ip", r.RemoteAddr).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		}()

		next.ServeHTTP(ww, r)
	})
}

// Recoverer converte panics em 500 com o corpo JSON de erro padrão.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if err, ok := rvr.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rvr)
			}

			log.Ctx(r.Context()).Error().
				Interface("panic", rvr).
				Str("stack", string(debug.Stack())).
				Msg("Recovered from panic")
			httpext.JSONError(w, service.MsgGenerateFailed, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
