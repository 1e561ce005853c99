package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/temirov/model-gateway/internal/constants"
	"github.com/temirov/model-gateway/internal/utils"
	"go.uber.org/zap"
)

const (
	// DefaultOpenAIBaseURL is the production OpenAI API root. A different base
	// URL may be configured for regional endpoints or tests.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	chatCompletionsPath = "/chat/completions"

	headerAuthorization       = "Authorization"
	headerContentType         = "Content-Type"
	headerAuthorizationPrefix = "Bearer "
	mimeApplicationJSON       = "application/json"

	keyModel       = "model"
	keyMessages    = "messages"
	keyRole        = "role"
	keyContent     = "content"
	keyTemperature = "temperature"
	keyMaxTokens   = "max_tokens"
	roleSystem     = "system"
	roleUser       = "user"

	errorRequestBuild      = "request build error"
	errorUpstreamRequest   = "OpenAI request error"
	errorUpstreamAPI       = "OpenAI API error"
	errorUpstreamNoContent = "OpenAI API error (no content)"

	logEventUpstreamRequestError = "OpenAI request error"
	logEventUpstreamResponse     = "OpenAI API response"
	logEventMarshalPayloadFailed = "marshal request payload failed"
	logFieldHTTPStatus           = "http_status"
	logFieldModel                = "model"
	logFieldResponseBody         = "response_body"
)

// HTTPDoer executes HTTP requests, abstracting the underlying HTTP client.
type HTTPDoer interface {
	Do(httpRequest *http.Request) (*http.Response, error)
}

// chatCompletionEnvelope is the subset of the chat-completions response the
// transport reads back.
type chatCompletionEnvelope struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// HTTPTransport calls the OpenAI chat-completions endpoint. Transport failures
// are retried with exponential backoff; server errors and rate limits count as
// retryable.
type HTTPTransport struct {
	apiKey           string
	baseURL          string
	httpClient       HTTPDoer
	structuredLogger *zap.SugaredLogger
}

// NewHTTPTransport creates a transport for the given API key and base URL. A
// nil httpClient falls back to http.DefaultClient; an empty baseURL falls back
// to the production endpoint.
func NewHTTPTransport(apiKey string, baseURL string, httpClient HTTPDoer, structuredLogger *zap.SugaredLogger) *HTTPTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &HTTPTransport{
		apiKey:           apiKey,
		baseURL:          baseURL,
		httpClient:       httpClient,
		structuredLogger: structuredLogger,
	}
}

// Complete sends one completion request upstream and normalizes the response.
func (transport *HTTPTransport) Complete(requestContext context.Context, completionRequest CompletionRequest) (Response, error) {
	payload := transport.buildPayload(completionRequest)
	payloadBytes, marshalError := json.Marshal(payload)
	if marshalError != nil {
		transport.structuredLogger.Errorw(logEventMarshalPayloadFailed, constants.LogFieldError, marshalError)
		return Response{}, errors.New(errorRequestBuild)
	}

	httpRequest, buildError := http.NewRequestWithContext(requestContext, http.MethodPost, transport.baseURL+chatCompletionsPath, bytes.NewReader(payloadBytes))
	if buildError != nil {
		return Response{}, errors.New(errorRequestBuild)
	}
	httpRequest.Header.Set(headerAuthorization, headerAuthorizationPrefix+transport.apiKey)
	httpRequest.Header.Set(headerContentType, mimeApplicationJSON)

	statusCode, responseBytes, latencyMillis, requestError := transport.performRequest(httpRequest)
	if requestError != nil {
		if errors.Is(requestError, context.DeadlineExceeded) {
			return Response{}, requestError
		}
		return Response{}, errors.New(errorUpstreamRequest)
	}

	transport.structuredLogger.Infow(
		logEventUpstreamResponse,
		logFieldHTTPStatus, statusCode,
		logFieldModel, completionRequest.ModelName,
		constants.LogFieldLatencyMilliseconds, latencyMillis,
	)

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		transport.structuredLogger.Desugar().Error(
			errorUpstreamAPI,
			zap.Int(logFieldHTTPStatus, statusCode),
			zap.ByteString(logFieldResponseBody, responseBytes),
		)
		return Response{}, errors.New(errorUpstreamAPI)
	}

	var envelope chatCompletionEnvelope
	if decodeError := json.Unmarshal(responseBytes, &envelope); decodeError != nil {
		return Response{}, errors.New(errorUpstreamAPI)
	}
	if len(envelope.Choices) == 0 || utils.IsBlank(envelope.Choices[0].Message.Content) {
		return Response{}, errors.New(errorUpstreamNoContent)
	}

	responseModel := envelope.Model
	if responseModel == "" {
		responseModel = completionRequest.ModelName
	}
	return Response{
		Content:   envelope.Choices[0].Message.Content,
		ModelName: responseModel,
		Usage: Usage{
			InputTokens:  envelope.Usage.PromptTokens,
			OutputTokens: envelope.Usage.CompletionTokens,
		},
	}, nil
}

// buildPayload shapes the chat-completions payload. Extra parameters are
// copied in last and untouched, so provider-specific options flow through.
func (transport *HTTPTransport) buildPayload(completionRequest CompletionRequest) map[string]any {
	messages := make([]map[string]string, 0, 2)
	if !utils.IsBlank(completionRequest.SystemPrompt) {
		messages = append(messages, map[string]string{keyRole: roleSystem, keyContent: completionRequest.SystemPrompt})
	}
	messages = append(messages, map[string]string{keyRole: roleUser, keyContent: completionRequest.Prompt})

	payload := map[string]any{
		keyModel:    completionRequest.ModelName,
		keyMessages: messages,
	}
	if completionRequest.Temperature != nil {
		payload[keyTemperature] = *completionRequest.Temperature
	}
	if completionRequest.MaxOutputTokens > 0 {
		payload[keyMaxTokens] = completionRequest.MaxOutputTokens
	}
	for parameterName, parameterValue := range completionRequest.ExtraParams {
		payload[parameterName] = parameterValue
	}
	return payload
}

// performRequest issues the request with retries on transport failures,
// server errors, and rate limiting.
func (transport *HTTPTransport) performRequest(httpRequest *http.Request) (int, []byte, int64, error) {
	var statusCode int
	var responseBytes []byte
	var latencyMillis int64
	operation := func() error {
		var transportError error
		statusCode, responseBytes, latencyMillis, transportError = utils.PerformHTTPRequest(transport.httpClient.Do, httpRequest, transport.structuredLogger, logEventUpstreamRequestError)
		if transportError != nil {
			return transportError
		}
		if statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests {
			return errors.New(errorUpstreamAPI)
		}
		return nil
	}
	retryStrategy := utils.AcquireExponentialBackoff()
	defer utils.ReleaseExponentialBackoff(retryStrategy)
	retryError := backoff.Retry(operation, backoff.WithContext(retryStrategy, httpRequest.Context()))
	return statusCode, responseBytes, latencyMillis, retryError
}
