package model

import "encoding/json"

// ChatRequest representa a requisição para o endpoint de chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse representa a resposta do endpoint de chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// EchoResponse representa a resposta do endpoint de teste /echo
type EchoResponse struct {
	OK   bool   `json:"ok"`
	Echo string `json:"echo"`
}

// ParseChatRequest interpreta o corpo bruto de uma requisição de chat.
// Qualquer formato inesperado (JSON inválido, corpo que não é objeto,
// campo ausente, nulo ou não textual) resulta em mensagem vazia.
func ParseChatRequest(body []byte) ChatRequest {
	var raw struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ChatRequest{}
	}

	var msg string
	if err := json.Unmarshal(raw.Message, &msg); err != nil {
		return ChatRequest{}
	}
	return ChatRequest{Message: msg}
}
