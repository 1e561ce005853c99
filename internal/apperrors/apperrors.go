// Package apperrors defines the sentinel errors shared across the gateway.
package apperrors

import "errors"

var (
	// ErrMissingServiceSecret indicates that SERVICE_SECRET is not configured.
	ErrMissingServiceSecret = errors.New("SERVICE_SECRET must be set")
	// ErrMissingOpenAIKey indicates that OPENAI_API_KEY is not configured.
	ErrMissingOpenAIKey = errors.New("OPENAI_API_KEY must be set")

	// ErrUnknownModel is returned when a requested model name resolves to no
	// canonical record. The wrapped message carries the requested name verbatim.
	ErrUnknownModel = errors.New("unknown model")
	// ErrModelRestricted is returned when a model is known but the restriction
	// policy denies it. Distinct from ErrUnknownModel so callers can explain
	// policy versus typo.
	ErrModelRestricted = errors.New("model not allowed by restriction policy")
)
