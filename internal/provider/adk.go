package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// errADKEmptyResponse é o erro que o modelo Gemini do ADK devolve quando a
// resposta não tem candidatos (prompt bloqueado, por exemplo).
const errADKEmptyResponse = "empty response"

var newADKModel = func(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return gemini.NewModel(ctx, modelName, cfg)
}

// ADK usa o modelo Gemini do Agent Development Kit, sem agente nem ferramentas.
type ADK struct {
	llm     model.LLM
	timeout time.Duration
}

// NewADK cria o modelo LLM do ADK uma única vez.
func NewADK(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*ADK, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("provider: adk api key is required")
	}
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		return nil, errors.New("provider: adk model is required")
	}

	llm, err := newADKModel(ctx, modelName, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("provider: create adk model: %w", err)
	}

	log.Debug().Str("model", llm.Name()).Dur("timeout", timeout).Msg("ADK provider ready")
	return &ADK{llm: llm, timeout: timeout}, nil
}

// Generate executa uma chamada não-streaming e concatena as partes de texto.
// Respostas bloqueadas ou sem texto viram "", como no backend genai.
func (a *ADK) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	req := &model.LLMRequest{
		Model:    a.llm.Name(),
		Contents: []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		Config:   &genai.GenerateContentConfig{},
	}

	var (
		sb   strings.Builder
		last *model.LLMResponse
	)
	for resp, err := range a.llm.GenerateContent(callCtx, req, false) {
		if err != nil {
			if err.Error() == errADKEmptyResponse {
				log.Ctx(ctx).Warn().Str("model", a.llm.Name()).Int("candidates", 0).Msg("ADK model returned no visible text")
				return "", nil
			}
			return "", fmt.Errorf("provider: adk generate content: %w", err)
		}
		if resp == nil {
			continue
		}
		last = resp
		if resp.Content == nil {
			continue
		}
		for _, part := range resp.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			sb.WriteString(part.Text)
		}
	}

	text := sb.String()
	if text == "" {
		logEmptyLLMResponse(ctx, a.llm.Name(), last)
	}
	return text, nil
}

func logEmptyLLMResponse(ctx context.Context, modelName string, resp *model.LLMResponse) {
	ev := log.Ctx(ctx).Warn().Str("model", modelName)
	if resp != nil {
		ev = ev.Str("finish_reason", string(resp.FinishReason)).
			Str("error_code", resp.ErrorCode).
			Str("error_message", resp.ErrorMessage)
	}
	ev.Msg("ADK model returned no visible text")
}
