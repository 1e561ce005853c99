package registry

// Canonical OpenAI model names served by the gateway.
const (
	ModelNameGPT5Latest = "gpt-5-latest"
	ModelNameGPT41      = "gpt-4.1"
	ModelNameGPT4o      = "gpt-4o"
	ModelNameGPT4oMini  = "gpt-4o-mini"
	ModelNameGPT5Mini   = "gpt-5-mini"
)

// OpenAICatalog builds the built-in capability table for the official OpenAI
// API. The table is data, not behavior: every limit and flag mirrors the
// published model documentation.
func OpenAICatalog() (*Catalog, error) {
	return NewCatalog(
		Capabilities{
			Provider:                 ProviderOpenAI,
			ModelName:                ModelNameGPT5Latest,
			FriendlyName:             "OpenAI (GPT-5 Latest)",
			Description:              "GPT-5 Latest (400K context, 128K output) - Most advanced GPT-5 model with reasoning support",
			ContextWindow:            400_000,
			MaxOutputTokens:          128_000,
			SupportsExtendedThinking: true,
			SupportsSystemPrompts:    true,
			SupportsStreaming:        true,
			SupportsFunctionCalling:  true,
			SupportsJSONMode:         true,
			SupportsImages:           true,
			MaxImageSizeMB:           20.0,
			SupportsTemperature:      true,
			TemperatureConstraint:    FixedTemperature{Value: 1.0},
			Aliases:                  []string{"gpt5-latest", "gpt5", "gpt-5", "openai"},
		},
		Capabilities{
			Provider:                 ProviderOpenAI,
			ModelName:                ModelNameGPT41,
			FriendlyName:             "OpenAI (GPT 4.1)",
			Description:              "GPT-4.1 (1M context) - Advanced reasoning model with large context window",
			ContextWindow:            1_000_000,
			MaxOutputTokens:          32_768,
			SupportsExtendedThinking: false,
			SupportsSystemPrompts:    true,
			SupportsStreaming:        true,
			SupportsFunctionCalling:  true,
			SupportsJSONMode:         true,
			SupportsImages:           true,
			MaxImageSizeMB:           20.0,
			SupportsTemperature:      true,
			TemperatureConstraint:    TemperatureRange{Minimum: 0.0, Maximum: 2.0},
			Aliases:                  []string{"gpt4.1"},
		},
		Capabilities{
			Provider:                 ProviderOpenAI,
			ModelName:                ModelNameGPT4o,
			FriendlyName:             "OpenAI (GPT-4o)",
			Description:              "GPT-4o (128K context) - General-purpose multimodal model",
			ContextWindow:            128_000,
			MaxOutputTokens:          16_384,
			SupportsExtendedThinking: false,
			SupportsSystemPrompts:    true,
			SupportsStreaming:        true,
			SupportsFunctionCalling:  true,
			SupportsJSONMode:         true,
			SupportsImages:           true,
			MaxImageSizeMB:           20.0,
			SupportsTemperature:      true,
			TemperatureConstraint:    TemperatureRange{Minimum: 0.0, Maximum: 2.0},
			Aliases:                  []string{"gpt4o", "4o"},
		},
		Capabilities{
			Provider:                 ProviderOpenAI,
			ModelName:                ModelNameGPT4oMini,
			FriendlyName:             "OpenAI (GPT-4o mini)",
			Description:              "GPT-4o mini (128K context) - Fast, affordable small model",
			ContextWindow:            128_000,
			MaxOutputTokens:          16_384,
			SupportsExtendedThinking: false,
			SupportsSystemPrompts:    true,
			SupportsStreaming:        true,
			SupportsFunctionCalling:  true,
			SupportsJSONMode:         true,
			SupportsImages:           true,
			MaxImageSizeMB:           20.0,
			SupportsTemperature:      true,
			TemperatureConstraint:    TemperatureRange{Minimum: 0.0, Maximum: 2.0},
			Aliases:                  []string{"gpt4o-mini", "4o-mini"},
		},
		Capabilities{
			Provider:                 ProviderOpenAI,
			ModelName:                ModelNameGPT5Mini,
			FriendlyName:             "OpenAI (GPT-5 mini)",
			Description:              "GPT-5 mini (400K context) - Smaller reasoning model without sampling controls",
			ContextWindow:            400_000,
			MaxOutputTokens:          128_000,
			SupportsExtendedThinking: true,
			SupportsSystemPrompts:    true,
			SupportsStreaming:        true,
			SupportsFunctionCalling:  false,
			SupportsJSONMode:         true,
			SupportsImages:           false,
			SupportsTemperature:      false,
			TemperatureConstraint:    FixedTemperature{Value: 1.0},
			Aliases:                  []string{"gpt5-mini", "gpt5mini"},
		},
	)
}
