package mcptool

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/pixelup/chat-relay/internal/service"
)

const (
	ServerName = "pixelup-chat-relay"
	ToolName   = "chat"
)

// Replier responde a uma mensagem de cliente.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ChatInput é a entrada da ferramenta chat.
type ChatInput struct {
	Message string `json:"message" jsonschema:"mensagem do cliente para o bot de pré-atendimento"`
}

// ChatOutput é a saída da ferramenta chat.
type ChatOutput struct {
	Reply string `json:"reply" jsonschema:"resposta gerada pela IA"`
}

// NewServer expõe o relay como uma ferramenta MCP.
func NewServer(relay Replier, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Envia uma mensagem ao bot de pré-atendimento da PixelUp e retorna a resposta.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in ChatInput) (*mcp.CallToolResult, ChatOutput, error) {
		reply, err := relay.Reply(ctx, in.Message)
		switch {
		case err == nil:
			return nil, ChatOutput{Reply: reply}, nil
		case errors.Is(err, service.ErrEmptyMessage):
			return nil, ChatOutput{}, errors.New(service.MsgMessageRequired)
		default:
			log.Ctx(ctx).Error().Err(err).Str("tool", ToolName).Msg("Failed to generate AI response")
			return nil, ChatOutput{}, errors.New(service.MsgGenerateFailed)
		}
	})

	return server
}

// NewHTTPHandler serve o servidor MCP via streamable HTTP.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
