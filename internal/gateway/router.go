// Package gateway wires the capability registry, restriction policy, and
// provider facade into the HTTP serving surface.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/temirov/model-gateway/internal/apperrors"
	"github.com/temirov/model-gateway/internal/provider"
	"github.com/temirov/model-gateway/internal/registry"
	"github.com/temirov/model-gateway/internal/restriction"
	"go.uber.org/zap"
)

// HTTPClient is the HTTPDoer used for upstream calls. Tests replace it.
var HTTPClient provider.HTTPDoer = http.DefaultClient

type generationResult struct {
	response provider.Response
	err      error
}

type generationTask struct {
	request provider.GenerationRequest
	reply   chan generationResult
}

// BuildRouter assembles the capability catalog, restriction policy, provider,
// worker pool, and gin routes from the configuration.
func BuildRouter(config Configuration, structuredLogger *zap.SugaredLogger) (*gin.Engine, error) {
	if configError := validateConfig(config); configError != nil {
		return nil, configError
	}
	config = withDefaults(config)

	catalog, catalogError := registry.OpenAICatalog()
	if catalogError != nil {
		return nil, catalogError
	}
	if modelsFilePath := strings.TrimSpace(config.ModelsFile); modelsFilePath != "" {
		extendedCatalog, loadError := registry.LoadCatalogFile(catalog, modelsFilePath)
		if loadError != nil {
			return nil, loadError
		}
		catalog = extendedCatalog
		structuredLogger.Infow(logEventModelsFileLoaded, logFieldValue, config.ModelsFile)
	}

	restrictionPolicy := restriction.NewPolicy(config.AllowedModels, config.DisabledModels)
	upstreamTransport := provider.NewHTTPTransport(config.OpenAIKey, config.OpenAIBaseURL, HTTPClient, structuredLogger)
	modelProvider := provider.NewOpenAIProvider(catalog, restrictionPolicy, upstreamTransport, structuredLogger)

	if strings.ToLower(config.LogLevel) == LogLevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if level := strings.ToLower(config.LogLevel); level == LogLevelInfo || level == LogLevelDebug {
		router.Use(requestResponseLogger(structuredLogger))
	}

	requestTimeout := config.requestTimeout()
	taskQueue := make(chan generationTask, config.QueueSize)
	for workerIndex := 0; workerIndex < config.WorkerCount; workerIndex++ {
		go func() {
			for pendingTask := range taskQueue {
				taskContext, cancelTask := context.WithTimeout(context.Background(), requestTimeout)
				generatedResponse, generationError := modelProvider.GenerateContent(taskContext, pendingTask.request)
				cancelTask()
				pendingTask.reply <- generationResult{response: generatedResponse, err: generationError}
			}
		}()
	}

	router.Use(gin.Recovery(), secretMiddleware(config.ServiceSecret, structuredLogger))
	router.GET("/", chatHandler(taskQueue, config, modelProvider, structuredLogger))
	router.GET("/models", modelsHandler(catalog, modelProvider))
	router.GET("/models/preferred", preferredModelHandler(catalog, modelProvider))
	return router, nil
}

// Serve builds the router and runs the HTTP server on the configured port.
func Serve(config Configuration, structuredLogger *zap.SugaredLogger) error {
	router, buildError := BuildRouter(config, structuredLogger)
	if buildError != nil {
		return buildError
	}
	return router.Run(fmt.Sprintf(":%d", config.Port))
}

// chatHandler validates the request, enqueues the generation task, and renders
// the outcome in the negotiated format.
func chatHandler(taskQueue chan generationTask, config Configuration, modelProvider provider.Provider, structuredLogger *zap.SugaredLogger) gin.HandlerFunc {
	requestTimeout := config.requestTimeout()
	return func(ginContext *gin.Context) {
		userPrompt := ginContext.Query(queryParameterPrompt)
		if userPrompt == "" {
			ginContext.String(http.StatusBadRequest, errorMissingPrompt)
			return
		}

		systemPrompt := ginContext.Query(queryParameterSystemPrompt)
		if systemPrompt == "" {
			systemPrompt = config.SystemPrompt
		}

		modelIdentifier := ginContext.Query(queryParameterModel)
		if modelIdentifier == "" {
			modelIdentifier = config.DefaultModel
		}

		// Restriction is checked eagerly so a denied model never reaches the
		// worker pool, and the client learns policy versus typo.
		if _, capabilitiesError := modelProvider.Capabilities(modelIdentifier); capabilitiesError != nil {
			switch {
			case errors.Is(capabilitiesError, apperrors.ErrModelRestricted):
				ginContext.String(http.StatusForbidden, capabilitiesError.Error())
			default:
				ginContext.String(http.StatusBadRequest, capabilitiesError.Error())
			}
			return
		}

		var requestedTemperature *float64
		if rawTemperature := strings.TrimSpace(ginContext.Query(queryParameterTemperature)); rawTemperature != "" {
			parsedTemperature, parseError := strconv.ParseFloat(rawTemperature, 64)
			if parseError != nil {
				structuredLogger.Warnw(
					logEventParseTemperatureFailed,
					logFieldValue, rawTemperature,
					logFieldError, parseError,
				)
			} else {
				requestedTemperature = &parsedTemperature
			}
		}

		replyChannel := make(chan generationResult, 1)
		pendingTask := generationTask{
			request: provider.GenerationRequest{
				Prompt:          userPrompt,
				ModelName:       modelIdentifier,
				SystemPrompt:    systemPrompt,
				Temperature:     requestedTemperature,
				MaxOutputTokens: config.MaxOutputTokens,
			},
			reply: replyChannel,
		}
		select {
		case taskQueue <- pendingTask:
		default:
			ginContext.String(http.StatusServiceUnavailable, errorQueueFull)
			return
		}

		select {
		case outcome := <-replyChannel:
			if outcome.err != nil {
				structuredLogger.Errorw(logEventGenerationFailed, logFieldError, outcome.err)
				ginContext.String(http.StatusBadGateway, outcome.err.Error())
				return
			}
			mime := preferredMime(ginContext)
			formattedBody, contentType := formatResponse(outcome.response, mime, userPrompt)
			ginContext.Data(http.StatusOK, contentType, []byte(formattedBody))
		case <-time.After(requestTimeout):
			ginContext.String(http.StatusGatewayTimeout, errorRequestTimedOut)
		}
	}
}

// modelDescriptor is the JSON shape of one capability record in listings.
type modelDescriptor struct {
	Name                     string   `json:"name"`
	FriendlyName             string   `json:"friendly_name"`
	Description              string   `json:"description,omitempty"`
	ContextWindow            int      `json:"context_window"`
	MaxOutputTokens          int      `json:"max_output_tokens"`
	SupportsExtendedThinking bool     `json:"supports_extended_thinking"`
	SupportsSystemPrompts    bool     `json:"supports_system_prompts"`
	SupportsStreaming        bool     `json:"supports_streaming"`
	SupportsFunctionCalling  bool     `json:"supports_function_calling"`
	SupportsJSONMode         bool     `json:"supports_json_mode"`
	SupportsImages           bool     `json:"supports_images"`
	MaxImageSizeMB           float64  `json:"max_image_size_mb,omitempty"`
	SupportsTemperature      bool     `json:"supports_temperature"`
	Aliases                  []string `json:"aliases,omitempty"`
}

// modelsHandler lists the models the restriction policy permits.
func modelsHandler(catalog *registry.Catalog, modelProvider provider.Provider) gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		descriptors := make([]modelDescriptor, 0)
		catalog.Each(func(canonicalKey string, record registry.Capabilities) bool {
			if !modelProvider.ValidateModelName(canonicalKey) {
				return true
			}
			descriptors = append(descriptors, modelDescriptor{
				Name:                     canonicalKey,
				FriendlyName:             record.FriendlyName,
				Description:              record.Description,
				ContextWindow:            record.ContextWindow,
				MaxOutputTokens:          record.MaxOutputTokens,
				SupportsExtendedThinking: record.SupportsExtendedThinking,
				SupportsSystemPrompts:    record.SupportsSystemPrompts,
				SupportsStreaming:        record.SupportsStreaming,
				SupportsFunctionCalling:  record.SupportsFunctionCalling,
				SupportsJSONMode:         record.SupportsJSONMode,
				SupportsImages:           record.SupportsImages,
				MaxImageSizeMB:           record.MaxImageSizeMB,
				SupportsTemperature:      record.SupportsTemperature,
				Aliases:                  record.Aliases,
			})
			return true
		})
		ginContext.JSON(http.StatusOK, gin.H{"models": descriptors})
	}
}

// preferredModelHandler answers which permitted model the provider favors for
// a work category.
func preferredModelHandler(catalog *registry.Catalog, modelProvider provider.Provider) gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		category := provider.ToolCategory(ginContext.Query(queryParameterCategory))

		allowedModels := make([]string, 0)
		for _, canonicalName := range catalog.Names() {
			if modelProvider.ValidateModelName(canonicalName) {
				allowedModels = append(allowedModels, canonicalName)
			}
		}

		preferredName, found := modelProvider.PreferredModel(category, allowedModels)
		if !found {
			ginContext.String(http.StatusNotFound, errorNoPreferredModel)
			return
		}
		ginContext.JSON(http.StatusOK, gin.H{responseModelAttribute: preferredName})
	}
}
