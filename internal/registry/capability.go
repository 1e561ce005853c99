// Package registry holds the static model-capability tables and the alias
// resolution used to map caller-supplied model names onto canonical entries.
package registry

// ProviderKind tags a capability record with the API family that owns it.
type ProviderKind string

const (
	// ProviderOpenAI identifies the official OpenAI API (api.openai.com).
	ProviderOpenAI ProviderKind = "openai"
)

// TemperatureConstraint describes how a model treats the sampling temperature.
// It is either fixed (the model ignores or forces the value) or a closed range.
type TemperatureConstraint interface {
	// Valid reports whether the requested temperature is acceptable as-is.
	Valid(requestedTemperature float64) bool
	// Clamp maps the requested temperature onto the nearest acceptable value.
	Clamp(requestedTemperature float64) float64
}

// FixedTemperature forces a single temperature value regardless of the request.
type FixedTemperature struct {
	Value float64
}

// Valid reports whether the requested temperature equals the fixed value.
func (constraint FixedTemperature) Valid(requestedTemperature float64) bool {
	return requestedTemperature == constraint.Value
}

// Clamp returns the fixed value for any input.
func (constraint FixedTemperature) Clamp(requestedTemperature float64) float64 {
	return constraint.Value
}

// TemperatureRange accepts any temperature within a closed interval.
type TemperatureRange struct {
	Minimum float64
	Maximum float64
}

// Valid reports whether the requested temperature falls inside the interval.
func (constraint TemperatureRange) Valid(requestedTemperature float64) bool {
	return requestedTemperature >= constraint.Minimum && requestedTemperature <= constraint.Maximum
}

// Clamp pins the requested temperature to the interval boundaries.
func (constraint TemperatureRange) Clamp(requestedTemperature float64) float64 {
	if requestedTemperature < constraint.Minimum {
		return constraint.Minimum
	}
	if requestedTemperature > constraint.Maximum {
		return constraint.Maximum
	}
	return requestedTemperature
}

// Capabilities is the immutable description of a single model: its limits and
// the features it supports. One record exists per canonical model name.
type Capabilities struct {
	Provider     ProviderKind
	ModelName    string
	FriendlyName string
	Description  string

	ContextWindow   int
	MaxOutputTokens int

	SupportsExtendedThinking bool
	SupportsSystemPrompts    bool
	SupportsStreaming        bool
	SupportsFunctionCalling  bool
	SupportsJSONMode         bool
	SupportsImages           bool
	SupportsTemperature      bool

	// MaxImageSizeMB is meaningful only when SupportsImages is set.
	MaxImageSizeMB float64

	TemperatureConstraint TemperatureConstraint

	Aliases []string
}
