package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	temperatureModeFixed = "fixed"
	temperatureModeRange = "range"

	errReadModelsFileFormat  = "read models file: %w"
	errParseModelsFileFormat = "parse models file: %w"
	errTemperatureModeFormat = "model %q: unknown temperature mode %q"
)

// modelDefinition is the YAML shape of a single capability record. The map key
// in the file is the canonical table key; the model name inside the definition
// may differ from it, matching what the upstream API self-declares.
type modelDefinition struct {
	ModelName        string   `yaml:"model_name"`
	FriendlyName     string   `yaml:"friendly_name"`
	Description      string   `yaml:"description"`
	ContextWindow    int      `yaml:"context_window"`
	MaxOutputTokens  int      `yaml:"max_output_tokens"`
	ExtendedThinking bool     `yaml:"supports_extended_thinking"`
	SystemPrompts    bool     `yaml:"supports_system_prompts"`
	Streaming        bool     `yaml:"supports_streaming"`
	FunctionCalling  bool     `yaml:"supports_function_calling"`
	JSONMode         bool     `yaml:"supports_json_mode"`
	Images           bool     `yaml:"supports_images"`
	MaxImageSizeMB   float64  `yaml:"max_image_size_mb"`
	Temperature      bool     `yaml:"supports_temperature"`
	TemperatureMode  string   `yaml:"temperature_mode"`
	TemperatureFixed float64  `yaml:"temperature_fixed"`
	TemperatureMin   float64  `yaml:"temperature_min"`
	TemperatureMax   float64  `yaml:"temperature_max"`
	Aliases          []string `yaml:"aliases"`
}

// modelsFile is the YAML shape of a capability-table extension file.
type modelsFile struct {
	Provider string                     `yaml:"provider"`
	Models   map[string]modelDefinition `yaml:"models"`
}

// LoadCatalogFile extends a built-in catalog with records parsed from a YAML
// models file. File entries override built-in entries sharing the same key;
// the merged catalog is rebuilt from scratch so the alias-uniqueness invariant
// is re-validated across both sources.
func LoadCatalogFile(builtinCatalog *Catalog, filePath string) (*Catalog, error) {
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return nil, fmt.Errorf(errReadModelsFileFormat, readError)
	}

	var parsedFile modelsFile
	if parseError := yaml.Unmarshal(fileBytes, &parsedFile); parseError != nil {
		return nil, fmt.Errorf(errParseModelsFileFormat, parseError)
	}

	providerKind := ProviderKind(parsedFile.Provider)
	if providerKind == "" {
		providerKind = ProviderOpenAI
	}

	mergedCatalog := newEmptyCatalog(len(builtinCatalog.orderedKeys) + len(parsedFile.Models))
	var mergeError error
	builtinCatalog.Each(func(canonicalKey string, record Capabilities) bool {
		if _, overridden := parsedFile.Models[canonicalKey]; overridden {
			return true
		}
		mergeError = mergedCatalog.index(canonicalKey, record)
		return mergeError == nil
	})
	if mergeError != nil {
		return nil, mergeError
	}

	// Sorted so registration order, and with it scan order, is reproducible.
	fileKeys := make([]string, 0, len(parsedFile.Models))
	for canonicalKey := range parsedFile.Models {
		fileKeys = append(fileKeys, canonicalKey)
	}
	sort.Strings(fileKeys)

	for _, canonicalKey := range fileKeys {
		record, recordError := parsedFile.Models[canonicalKey].toCapabilities(providerKind, canonicalKey)
		if recordError != nil {
			return nil, recordError
		}
		if indexError := mergedCatalog.index(canonicalKey, record); indexError != nil {
			return nil, indexError
		}
	}
	return mergedCatalog, nil
}

// toCapabilities converts a YAML definition into a capability record.
func (definition modelDefinition) toCapabilities(providerKind ProviderKind, canonicalKey string) (Capabilities, error) {
	modelName := definition.ModelName
	if modelName == "" {
		modelName = canonicalKey
	}

	var constraint TemperatureConstraint
	switch definition.TemperatureMode {
	case temperatureModeFixed, "":
		constraint = FixedTemperature{Value: definition.TemperatureFixed}
	case temperatureModeRange:
		constraint = TemperatureRange{Minimum: definition.TemperatureMin, Maximum: definition.TemperatureMax}
	default:
		return Capabilities{}, fmt.Errorf(errTemperatureModeFormat, canonicalKey, definition.TemperatureMode)
	}

	return Capabilities{
		Provider:                 providerKind,
		ModelName:                modelName,
		FriendlyName:             definition.FriendlyName,
		Description:              definition.Description,
		ContextWindow:            definition.ContextWindow,
		MaxOutputTokens:          definition.MaxOutputTokens,
		SupportsExtendedThinking: definition.ExtendedThinking,
		SupportsSystemPrompts:    definition.SystemPrompts,
		SupportsStreaming:        definition.Streaming,
		SupportsFunctionCalling:  definition.FunctionCalling,
		SupportsJSONMode:         definition.JSONMode,
		SupportsImages:           definition.Images,
		MaxImageSizeMB:           definition.MaxImageSizeMB,
		SupportsTemperature:      definition.Temperature,
		TemperatureConstraint:    constraint,
		Aliases:                  definition.Aliases,
	}, nil
}
