package httpext

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorResponse é o corpo JSON de toda resposta de erro.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON escreve v como resposta JSON com o status informado.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Int("status", code).Msg("Failed to encode JSON response")
	}
}

// JSONError escreve uma resposta de erro JSON com o status informado.
func JSONError(w http.ResponseWriter, message string, code int) {
	JSON(w, code, ErrorResponse{Error: message})
}
