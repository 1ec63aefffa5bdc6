package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort      = 3000
	DefaultModel     = "gemini-2.5-flash"
	DefaultReply     = "Ok!"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	BackendGenAI = "genai"
	BackendADK   = "adk"
)

const (
	envPort            = "PORT"
	envAPIKey          = "GEMINI_API_KEY"
	envAPIKeyFallback  = "GOOGLE_API_KEY"
	envModel           = "GEMINI_MODEL"
	envBackend         = "PROVIDER_BACKEND"
	envDefaultReply    = "DEFAULT_REPLY"
	envProviderTimeout = "PROVIDER_TIMEOUT"
	envMCPEnabled      = "MCP_ENABLED"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
)

// ErrMissingAPIKey indica que nenhuma chave do provedor foi configurada.
var ErrMissingAPIKey = errors.New("config: GEMINI_API_KEY is not set")

// Config contém a configuração do processo, resolvida uma única vez na
// inicialização.
type Config struct {
	Port            int
	APIKey          string
	Model           string
	Backend         string
	DefaultReply    string
	ProviderTimeout time.Duration
	MCPEnabled      bool
	LogLevel        string
	LogFormat       string
}

// Addr retorna o endereço de escuta do servidor HTTP.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load lê a configuração das variáveis de ambiente.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	apiKey := strings.TrimSpace(getenv(envAPIKey))
	if apiKey == "" {
		apiKey = strings.TrimSpace(getenv(envAPIKeyFallback))
	}
	if apiKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	port := DefaultPort
	if v := strings.TrimSpace(getenv(envPort)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			return Config{}, fmt.Errorf("config: invalid %s %q", envPort, v)
		}
		port = n
	}

	backend := strings.ToLower(strings.TrimSpace(getenv(envBackend)))
	switch backend {
	case "":
		backend = BackendGenAI
	case BackendGenAI, BackendADK:
	default:
		return Config{}, fmt.Errorf("config: unknown %s %q", envBackend, backend)
	}

	var timeout time.Duration
	if v := strings.TrimSpace(getenv(envProviderTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("config: invalid %s %q", envProviderTimeout, v)
		}
		timeout = d
	}

	mcpEnabled := true
	if v := strings.TrimSpace(getenv(envMCPEnabled)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid %s %q", envMCPEnabled, v)
		}
		mcpEnabled = b
	}

	return Config{
		Port:            port,
		APIKey:          apiKey,
		Model:           envOr(getenv, envModel, DefaultModel),
		Backend:         backend,
		DefaultReply:    envOr(getenv, envDefaultReply, DefaultReply),
		ProviderTimeout: timeout,
		MCPEnabled:      mcpEnabled,
		LogLevel:        envOr(getenv, envLogLevel, DefaultLogLevel),
		LogFormat:       envOr(getenv, envLogFormat, DefaultLogFormat),
	}, nil
}

func envOr(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}
