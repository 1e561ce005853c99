// Package cmd implements the command-line interface for model-gateway.
package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/temirov/model-gateway/internal/apperrors"
	"github.com/temirov/model-gateway/internal/gateway"
	"github.com/temirov/model-gateway/internal/utils"
	"go.uber.org/zap"
)

const (
	envPrefix = "gw"

	keyOpenAIAPIKey          = "openai_api_key"
	keyOpenAIBaseURL         = "openai_base_url"
	keyServiceSecret         = "service_secret"
	keyLogLevel              = "log_level"
	keySystemPrompt          = "system_prompt"
	keyDefaultModel          = "default_model"
	keyAllowedModels         = "allowed_models"
	keyDisabledModels        = "disabled_models"
	keyModelsFile            = "models_file"
	keyWorkers               = "workers"
	keyQueueSize             = "queue_size"
	keyPort                  = "port"
	keyRequestTimeoutSeconds = "request_timeout_seconds"
	keyMaxOutputTokens       = "max_output_tokens"

	envOpenAIAPIKey          = "OPENAI_API_KEY"
	envOpenAIBaseURL         = "OPENAI_BASE_URL"
	envServiceSecret         = "SERVICE_SECRET"
	envLogLevel              = "LOG_LEVEL"
	envSystemPrompt          = "SYSTEM_PROMPT"
	envDefaultModel          = "DEFAULT_MODEL"
	envAllowedModels         = "ALLOWED_MODELS"
	envDisabledModels        = "DISABLED_MODELS"
	envModelsFile            = "GW_MODELS_FILE"
	envWorkers               = "GW_WORKERS"
	envQueueSize             = "GW_QUEUE_SIZE"
	envPort                  = "HTTP_PORT"
	envRequestTimeoutSeconds = "GW_REQUEST_TIMEOUT_SECONDS"
	envMaxOutputTokens       = "GW_MAX_OUTPUT_TOKENS"

	quoteCharacters = "\"'"
	logLevelDebug   = "debug"
	logLevelInfo    = "info"
)

var config gateway.Configuration

// Execute runs the command-line interface.
func Execute() {
	rootCmd.SilenceUsage = false
	rootCmd.SilenceErrors = false
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "model-gateway",
	Short: "HTTP gateway for OpenAI-compatible model APIs",
	Long:  "Serves GET /?prompt=…&model=…&key=SECRET, resolving model aliases and enforcing the model restriction policy before forwarding to OpenAI.",
	Example: `model-gateway --service_secret=mysecret --openai_api_key=sk-xxxxx --log_level=debug
SERVICE_SECRET=mysecret OPENAI_API_KEY=sk-xxxxx DISABLED_MODELS=gpt-4o model-gateway`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed(keyServiceSecret) {
			config.ServiceSecret = strings.TrimSpace(strings.Trim(viper.GetString(keyServiceSecret), quoteCharacters))
		}
		if !cmd.Flags().Changed(keyOpenAIAPIKey) {
			config.OpenAIKey = strings.TrimSpace(strings.Trim(viper.GetString(keyOpenAIAPIKey), quoteCharacters))
		}
		if !cmd.Flags().Changed(keyOpenAIBaseURL) {
			config.OpenAIBaseURL = viper.GetString(keyOpenAIBaseURL)
		}
		if !cmd.Flags().Changed(keyPort) {
			config.Port = viper.GetInt(keyPort)
		}
		if !cmd.Flags().Changed(keyLogLevel) {
			config.LogLevel = viper.GetString(keyLogLevel)
		}
		if config.LogLevel == "" {
			config.LogLevel = logLevelInfo
		}
		if !cmd.Flags().Changed(keySystemPrompt) {
			config.SystemPrompt = viper.GetString(keySystemPrompt)
		}
		if !cmd.Flags().Changed(keyDefaultModel) {
			config.DefaultModel = viper.GetString(keyDefaultModel)
		}
		if !cmd.Flags().Changed(keyAllowedModels) {
			config.AllowedModels = viper.GetString(keyAllowedModels)
		}
		if !cmd.Flags().Changed(keyDisabledModels) {
			config.DisabledModels = viper.GetString(keyDisabledModels)
		}
		if !cmd.Flags().Changed(keyModelsFile) {
			config.ModelsFile = viper.GetString(keyModelsFile)
		}
		if !cmd.Flags().Changed(keyWorkers) {
			config.WorkerCount = viper.GetInt(keyWorkers)
		}
		if !cmd.Flags().Changed(keyQueueSize) {
			config.QueueSize = viper.GetInt(keyQueueSize)
		}
		if !cmd.Flags().Changed(keyRequestTimeoutSeconds) {
			config.RequestTimeoutSeconds = viper.GetInt(keyRequestTimeoutSeconds)
		}
		if !cmd.Flags().Changed(keyMaxOutputTokens) {
			config.MaxOutputTokens = viper.GetInt(keyMaxOutputTokens)
		}

		var logger *zap.Logger
		var loggerError error
		switch strings.ToLower(config.LogLevel) {
		case logLevelDebug:
			logger, loggerError = zap.NewDevelopment()
		default:
			logger, loggerError = zap.NewProduction()
		}
		if loggerError != nil {
			return loggerError
		}
		defer func() { _ = logger.Sync() }()
		sugar := logger.Sugar()

		if strings.TrimSpace(config.ServiceSecret) == "" {
			sugar.Error("SERVICE_SECRET is empty; refusing to start")
			return apperrors.ErrMissingServiceSecret
		}
		if strings.TrimSpace(config.OpenAIKey) == "" {
			sugar.Error("OPENAI_API_KEY is empty; refusing to start")
			return apperrors.ErrMissingOpenAIKey
		}

		sugar.Infow("starting gateway",
			"port", config.Port,
			"log_level", strings.ToLower(config.LogLevel),
			"default_model", config.DefaultModel,
			"secret_fingerprint", utils.Fingerprint(config.ServiceSecret),
		)
		return gateway.Serve(config, sugar)
	},
}

// bindEnvironment wires viper keys to their environment variables and returns
// a combined error if any binding fails.
func bindEnvironment() error {
	bindings := map[string]string{
		keyOpenAIAPIKey:          envOpenAIAPIKey,
		keyOpenAIBaseURL:         envOpenAIBaseURL,
		keyServiceSecret:         envServiceSecret,
		keyLogLevel:              envLogLevel,
		keySystemPrompt:          envSystemPrompt,
		keyDefaultModel:          envDefaultModel,
		keyAllowedModels:         envAllowedModels,
		keyDisabledModels:        envDisabledModels,
		keyModelsFile:            envModelsFile,
		keyWorkers:               envWorkers,
		keyQueueSize:             envQueueSize,
		keyPort:                  envPort,
		keyRequestTimeoutSeconds: envRequestTimeoutSeconds,
		keyMaxOutputTokens:       envMaxOutputTokens,
	}
	var bindErrors []string
	for viperKey, environmentVariable := range bindings {
		if bindError := viper.BindEnv(viperKey, environmentVariable); bindError != nil {
			bindErrors = append(bindErrors, bindError.Error())
		}
	}
	if len(bindErrors) > 0 {
		return errors.New(strings.Join(bindErrors, "; "))
	}
	return nil
}

func init() {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	if bindError := bindEnvironment(); bindError != nil {
		panic(bindError)
	}

	rootCmd.Flags().StringVar(&config.ServiceSecret, keyServiceSecret, "", "shared secret for requests (env: SERVICE_SECRET)")
	rootCmd.Flags().StringVar(&config.OpenAIKey, keyOpenAIAPIKey, "", "OpenAI API key (env: OPENAI_API_KEY)")
	rootCmd.Flags().StringVar(&config.OpenAIBaseURL, keyOpenAIBaseURL, "", "OpenAI API base URL override (env: OPENAI_BASE_URL)")
	rootCmd.Flags().IntVar(&config.Port, keyPort, gateway.DefaultPort, "TCP port to listen on (env: HTTP_PORT)")
	rootCmd.Flags().StringVar(&config.LogLevel, keyLogLevel, logLevelInfo, "logging level: debug or info (env: LOG_LEVEL)")
	rootCmd.Flags().StringVar(&config.SystemPrompt, keySystemPrompt, "", "system prompt sent to the model (env: SYSTEM_PROMPT)")
	rootCmd.Flags().StringVar(&config.DefaultModel, keyDefaultModel, gateway.DefaultModel, "model used when the request names none (env: DEFAULT_MODEL)")
	rootCmd.Flags().StringVar(&config.AllowedModels, keyAllowedModels, "", "comma-separated allow-list of models (env: ALLOWED_MODELS)")
	rootCmd.Flags().StringVar(&config.DisabledModels, keyDisabledModels, "", "comma-separated deny-list of models (env: DISABLED_MODELS)")
	rootCmd.Flags().StringVar(&config.ModelsFile, keyModelsFile, "", "YAML file extending the model capability table (env: GW_MODELS_FILE)")
	rootCmd.Flags().IntVar(&config.WorkerCount, keyWorkers, gateway.DefaultWorkers, "upstream worker goroutines (env: GW_WORKERS)")
	rootCmd.Flags().IntVar(&config.QueueSize, keyQueueSize, gateway.DefaultQueueSize, "internal request queue capacity (env: GW_QUEUE_SIZE)")
	rootCmd.Flags().IntVar(&config.RequestTimeoutSeconds, keyRequestTimeoutSeconds, gateway.DefaultRequestTimeoutSeconds, "request timeout in seconds (env: GW_REQUEST_TIMEOUT_SECONDS)")
	rootCmd.Flags().IntVar(&config.MaxOutputTokens, keyMaxOutputTokens, gateway.DefaultMaxOutputTokens, "maximum output tokens requested upstream (env: GW_MAX_OUTPUT_TOKENS)")

	if bindError := viper.BindPFlags(rootCmd.Flags()); bindError != nil {
		panic(bindError)
	}
}
