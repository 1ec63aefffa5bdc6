package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGenAIClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// Gemini chama a API do Gemini diretamente pelo SDK google.golang.org/genai.
type Gemini struct {
	models  modelsClient
	model   string
	timeout time.Duration
}

// NewGemini cria o cliente uma única vez; ele é reutilizado por todas as requisições.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("provider: gemini api key is required")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("provider: gemini model is required")
	}

	client, err := newGenAIClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("provider: create genai client: %w", err)
	}

	log.Debug().Str("model", model).Dur("timeout", timeout).Msg("Gemini provider ready")
	return &Gemini{
		models:  client.Models,
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate envia o prompt como uma única mensagem do usuário.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.models.GenerateContent(callCtx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("provider: gemini generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("provider: gemini returned no response")
	}

	text := extractVisibleText(resp)
	if text == "" {
		logEmptyCompletion(ctx, resp)
	}
	return text, nil
}

func extractVisibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// logEmptyCompletion registra o motivo de uma completion vazia (filtro de
// segurança, limite de tokens etc.) para o operador.
func logEmptyCompletion(ctx context.Context, resp *genai.GenerateContentResponse) {
	ev := log.Ctx(ctx).Warn().Int("candidates", len(resp.Candidates))
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		ev = ev.Str("finish_reason", string(resp.Candidates[0].FinishReason))
	}
	if resp.PromptFeedback != nil {
		ev = ev.Str("block_reason", string(resp.PromptFeedback.BlockReason))
	}
	ev.Msg("Gemini returned no visible text")
}
