package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Mensagens seguras devolvidas ao cliente, em qualquer transporte.
const (
	MsgMessageRequired = "message field is required"
	MsgGenerateFailed  = "failed to generate AI response"
)

var (
	// ErrEmptyMessage é retornado quando a mensagem está vazia após o trim.
	ErrEmptyMessage = errors.New("service: message is empty")
	// ErrProvider envolve qualquer falha do provedor de texto generativo.
	ErrProvider = errors.New("service: provider call failed")
)

// Provider envia um prompt ao modelo generativo e devolve a completion.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Relay encaminha uma mensagem por vez ao provedor. Não guarda estado entre
// chamadas; o provedor é o único recurso compartilhado.
type Relay struct {
	provider     Provider
	defaultReply string
}

// NewRelay cria um Relay. defaultReply é usado quando o provedor responde vazio.
func NewRelay(p Provider, defaultReply string) (*Relay, error) {
	if p == nil {
		return nil, errors.New("service: provider must not be nil")
	}
	defaultReply = strings.TrimSpace(defaultReply)
	if defaultReply == "" {
		return nil, errors.New("service: default reply must not be empty")
	}
	return &Relay{
		provider:     p,
		defaultReply: defaultReply,
	}, nil
}

// Reply valida a mensagem, monta o prompt e faz uma única chamada ao provedor.
func (r *Relay) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	out, err := r.provider.Generate(ctx, buildPrompt(message))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProvider, err)
	}

	reply := strings.TrimSpace(out)
	if reply == "" {
		log.Ctx(ctx).Warn().
			Int("message_length", len(message)).
			Msg("Provider returned an empty completion, using default reply")
		return r.defaultReply, nil
	}
	return reply, nil
}
