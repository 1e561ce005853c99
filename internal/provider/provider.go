// Package provider exposes model providers: each one composes a capability
// catalog, the restriction gate, and an upstream transport into a single
// facade the serving layer talks to.
package provider

import (
	"context"

	"github.com/temirov/model-gateway/internal/registry"
)

// DefaultTemperature is used when the caller supplies no temperature.
const DefaultTemperature = 0.3

// ToolCategory describes the kind of work a caller needs a model for. The
// preferred-model heuristic accepts it but providers may ignore it.
type ToolCategory string

const (
	// CategoryExtendedReasoning asks for the strongest reasoning model.
	CategoryExtendedReasoning ToolCategory = "extended_reasoning"
	// CategoryFastResponse asks for a low-latency model.
	CategoryFastResponse ToolCategory = "fast_response"
	// CategoryBalanced asks for a general-purpose model.
	CategoryBalanced ToolCategory = "balanced"
)

// GenerationRequest carries one generation call through the facade. The model
// name may be any accepted alias; resolution happens before delegation.
type GenerationRequest struct {
	Prompt       string
	ModelName    string
	SystemPrompt string
	// Temperature is optional; nil means DefaultTemperature.
	Temperature     *float64
	MaxOutputTokens int
	// ExtraParams are forwarded to the transport unmodified, keeping the
	// facade forward-compatible with provider-specific options.
	ExtraParams map[string]any
}

// Usage reports token consumption as the upstream API accounted it.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is the normalized result of a generation call.
type Response struct {
	Content      string
	ModelName    string
	FriendlyName string
	Usage        Usage
}

// CompletionRequest is what a transport receives: the model name is always
// canonical by the time it gets here.
type CompletionRequest struct {
	ModelName    string
	Prompt       string
	SystemPrompt string
	// Temperature is nil when the model accepts no temperature parameter.
	Temperature     *float64
	MaxOutputTokens int
	ExtraParams     map[string]any
}

// Transport performs the actual upstream completion call. Network behavior,
// retries, and timeouts live behind this seam.
type Transport interface {
	Complete(requestContext context.Context, completionRequest CompletionRequest) (Response, error)
}

// Provider is the facade the gateway uses to answer capability questions and
// run generations for one API family.
type Provider interface {
	Kind() registry.ProviderKind
	Capabilities(requestedName string) (registry.Capabilities, error)
	ValidateModelName(requestedName string) bool
	GenerateContent(requestContext context.Context, generationRequest GenerationRequest) (Response, error)
	SupportsThinkingMode(requestedName string) bool
	PreferredModel(category ToolCategory, allowedModels []string) (string, bool)
}
