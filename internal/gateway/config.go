package gateway

import (
	"strings"
	"time"

	"github.com/temirov/model-gateway/internal/apperrors"
	"github.com/temirov/model-gateway/internal/registry"
)

const (
	// DefaultPort is the TCP port used by the HTTP server when no explicit port is provided.
	DefaultPort = 8080
	// DefaultWorkers is the number of worker goroutines that process upstream requests.
	DefaultWorkers = 4
	// DefaultQueueSize is the capacity of the internal request queue.
	DefaultQueueSize = 100
	// DefaultModel is the model identifier used when the client does not supply one.
	DefaultModel = registry.ModelNameGPT41
	// DefaultRequestTimeoutSeconds bounds one generation request end to end.
	DefaultRequestTimeoutSeconds = 30
	// DefaultMaxOutputTokens caps the tokens requested from the upstream API.
	DefaultMaxOutputTokens = 1024
)

// Configuration captures runtime settings for the HTTP server, the capability
// catalog, the restriction policy, and upstream requests.
type Configuration struct {
	ServiceSecret string
	OpenAIKey     string
	OpenAIBaseURL string
	Port          int
	LogLevel      string
	SystemPrompt  string

	// DefaultModel is used when a request names no model. Aliases accepted.
	DefaultModel string
	// AllowedModels and DisabledModels are comma-separated restriction lists.
	AllowedModels  string
	DisabledModels string
	// ModelsFile optionally extends the built-in capability table from YAML.
	ModelsFile string

	WorkerCount           int
	QueueSize             int
	RequestTimeoutSeconds int
	MaxOutputTokens       int
}

// validateConfig confirms the presence of required configuration values.
func validateConfig(config Configuration) error {
	if strings.TrimSpace(config.ServiceSecret) == "" {
		return apperrors.ErrMissingServiceSecret
	}
	if strings.TrimSpace(config.OpenAIKey) == "" {
		return apperrors.ErrMissingOpenAIKey
	}
	return nil
}

// withDefaults fills unset tunables with their default values.
func withDefaults(config Configuration) Configuration {
	if config.Port <= 0 {
		config.Port = DefaultPort
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if strings.TrimSpace(config.DefaultModel) == "" {
		config.DefaultModel = DefaultModel
	}
	if config.RequestTimeoutSeconds <= 0 {
		config.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if config.MaxOutputTokens <= 0 {
		config.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return config
}

// requestTimeout converts the configured timeout into a duration.
func (config Configuration) requestTimeout() time.Duration {
	return time.Duration(config.RequestTimeoutSeconds) * time.Second
}
