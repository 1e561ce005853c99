package provider

import (
	"context"
	"fmt"

	"github.com/temirov/model-gateway/internal/apperrors"
	"github.com/temirov/model-gateway/internal/constants"
	"github.com/temirov/model-gateway/internal/registry"
	"github.com/temirov/model-gateway/internal/restriction"
	"go.uber.org/zap"
)

const (
	// errWrapFormat wraps a sentinel error with the requested model name.
	errWrapFormat = "%w: %s"

	logEventModelBlocked = "model blocked by restriction policy"
	logFieldRequested    = "requested_model"
	logFieldCanonical    = "canonical_model"
)

// OpenAIProvider serves the official OpenAI API family. The restriction gate
// and the transport are injected at construction; the provider itself holds no
// mutable state after NewOpenAIProvider returns.
type OpenAIProvider struct {
	catalog          *registry.Catalog
	gate             restriction.Gate
	transport        Transport
	flagshipModel    string
	structuredLogger *zap.SugaredLogger
}

// NewOpenAIProvider assembles the facade over the given catalog, gate, and
// transport. The flagship model backs the preferred-model heuristic.
func NewOpenAIProvider(catalog *registry.Catalog, gate restriction.Gate, transport Transport, structuredLogger *zap.SugaredLogger) *OpenAIProvider {
	return &OpenAIProvider{
		catalog:          catalog,
		gate:             gate,
		transport:        transport,
		flagshipModel:    registry.ModelNameGPT5Latest,
		structuredLogger: structuredLogger,
	}
}

// Kind returns the provider tag used for policy matching.
func (openAIProvider *OpenAIProvider) Kind() registry.ProviderKind {
	return registry.ProviderOpenAI
}

// Capabilities looks up the capability record for a requested model name. The
// lookup order is fixed: exact canonical key, resolved alias against the keys,
// then a scan for a record whose self-declared model name matches the resolved
// name. The restriction gate is consulted at every successful match point, so
// a known-but-denied model fails with ErrModelRestricted rather than
// surfacing to the caller as usable.
func (openAIProvider *OpenAIProvider) Capabilities(requestedName string) (registry.Capabilities, error) {
	if record, found := openAIProvider.catalog.Record(requestedName); found {
		return openAIProvider.gateRecord(record, requestedName, requestedName)
	}

	resolvedName := openAIProvider.catalog.Resolve(requestedName)
	if record, found := openAIProvider.catalog.Record(resolvedName); found {
		return openAIProvider.gateRecord(record, resolvedName, requestedName)
	}

	var scannedKey string
	var scannedRecord registry.Capabilities
	var scanHit bool
	openAIProvider.catalog.Each(func(canonicalKey string, record registry.Capabilities) bool {
		if record.ModelName == resolvedName {
			scannedKey, scannedRecord, scanHit = canonicalKey, record, true
			return false
		}
		return true
	})
	if scanHit {
		return openAIProvider.gateRecord(scannedRecord, scannedKey, requestedName)
	}

	return registry.Capabilities{}, fmt.Errorf(errWrapFormat, apperrors.ErrUnknownModel, requestedName)
}

// gateRecord consults the restriction gate before releasing a matched record.
func (openAIProvider *OpenAIProvider) gateRecord(record registry.Capabilities, canonicalName string, requestedName string) (registry.Capabilities, error) {
	if !openAIProvider.gate.IsAllowed(openAIProvider.Kind(), canonicalName, requestedName) {
		return registry.Capabilities{}, fmt.Errorf(errWrapFormat, apperrors.ErrModelRestricted, requestedName)
	}
	return record, nil
}

// ValidateModelName is the soft counterpart of Capabilities: false for an
// unknown or denied name, never an error.
func (openAIProvider *OpenAIProvider) ValidateModelName(requestedName string) bool {
	resolvedName := openAIProvider.catalog.Resolve(requestedName)
	if _, found := openAIProvider.catalog.Record(resolvedName); !found {
		return false
	}
	if !openAIProvider.gate.IsAllowed(openAIProvider.Kind(), resolvedName, requestedName) {
		openAIProvider.structuredLogger.Debugw(
			logEventModelBlocked,
			logFieldRequested, requestedName,
			logFieldCanonical, resolvedName,
		)
		return false
	}
	return true
}

// GenerateContent resolves the alias, shapes the temperature through the
// record's constraint, and delegates to the transport. The transport only
// ever sees the canonical name; extra parameters pass through unmodified.
func (openAIProvider *OpenAIProvider) GenerateContent(requestContext context.Context, generationRequest GenerationRequest) (Response, error) {
	resolvedName := openAIProvider.catalog.Resolve(generationRequest.ModelName)

	requestedTemperature := DefaultTemperature
	if generationRequest.Temperature != nil {
		requestedTemperature = *generationRequest.Temperature
	}

	var effectiveTemperature *float64
	record, recordFound := openAIProvider.catalog.Record(resolvedName)
	if recordFound {
		if record.SupportsTemperature {
			clampedTemperature := record.TemperatureConstraint.Clamp(requestedTemperature)
			effectiveTemperature = &clampedTemperature
		}
	} else {
		effectiveTemperature = &requestedTemperature
	}

	generatedResponse, generationError := openAIProvider.transport.Complete(requestContext, CompletionRequest{
		ModelName:       resolvedName,
		Prompt:          generationRequest.Prompt,
		SystemPrompt:    generationRequest.SystemPrompt,
		Temperature:     effectiveTemperature,
		MaxOutputTokens: generationRequest.MaxOutputTokens,
		ExtraParams:     generationRequest.ExtraParams,
	})
	if generationError != nil {
		return Response{}, generationError
	}
	if recordFound {
		generatedResponse.FriendlyName = record.FriendlyName
	}
	return generatedResponse, nil
}

// SupportsThinkingMode reports whether the model carries the extended-thinking
// capability. Unknown names answer false rather than erroring.
func (openAIProvider *OpenAIProvider) SupportsThinkingMode(requestedName string) bool {
	resolvedName := openAIProvider.catalog.Resolve(requestedName)
	record, found := openAIProvider.catalog.Record(resolvedName)
	return found && record.SupportsExtendedThinking
}

// PreferredModel picks a model from the caller-supplied, already-filtered
// list: the flagship when present, otherwise the first entry. The category is
// accepted but not discriminated on; every category prefers the same flagship.
func (openAIProvider *OpenAIProvider) PreferredModel(category ToolCategory, allowedModels []string) (string, bool) {
	if len(allowedModels) == 0 {
		return constants.EmptyString, false
	}
	for _, candidateModel := range allowedModels {
		if candidateModel == openAIProvider.flagshipModel {
			return openAIProvider.flagshipModel, true
		}
	}
	return allowedModels[0], true
}
