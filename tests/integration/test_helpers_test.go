package integration_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/temirov/model-gateway/internal/gateway"
	"go.uber.org/zap"
)

const (
	serviceSecretValue   = "sekret"
	openAIKeyValue       = "sk-test"
	completionsPath      = "/chat/completions"
	integrationOKBody    = "INTEGRATION_OK"
	headerContentTypeKey = "Content-Type"
	mimeApplicationJSON  = "application/json"
	logLevelDebug        = "debug"
	promptValue          = "ping"
)

// newOpenAIServer returns a stub chat-completions server yielding the provided
// content and optionally capturing the request payload.
func newOpenAIServer(testingInstance *testing.T, responseContent string, captureTarget *map[string]any) *httptest.Server {
	testingInstance.Helper()
	handler := http.HandlerFunc(func(responseWriter http.ResponseWriter, httpRequest *http.Request) {
		if httpRequest.URL.Path != completionsPath {
			http.NotFound(responseWriter, httpRequest)
			return
		}
		if captureTarget != nil {
			bodyBytes, _ := io.ReadAll(httpRequest.Body)
			_ = json.Unmarshal(bodyBytes, captureTarget)
		}
		responseWriter.Header().Set(headerContentTypeKey, mimeApplicationJSON)
		envelope := map[string]any{
			"model":   "gpt-5-latest",
			"choices": []map[string]any{{"message": map[string]any{"content": responseContent}}},
			"usage":   map[string]any{"prompt_tokens": 3, "completion_tokens": 5},
		}
		_ = json.NewEncoder(responseWriter).Encode(envelope)
	})
	server := httptest.NewServer(handler)
	testingInstance.Cleanup(server.Close)
	return server
}

// newBlockingOpenAIServer returns a stub chat-completions server that holds
// every response until the release channel closes, or until the request is
// cancelled.
func newBlockingOpenAIServer(testingInstance *testing.T, release <-chan struct{}) *httptest.Server {
	testingInstance.Helper()
	handler := http.HandlerFunc(func(responseWriter http.ResponseWriter, httpRequest *http.Request) {
		select {
		case <-release:
		case <-httpRequest.Context().Done():
			return
		}
		responseWriter.Header().Set(headerContentTypeKey, mimeApplicationJSON)
		envelope := map[string]any{
			"model":   "gpt-4.1",
			"choices": []map[string]any{{"message": map[string]any{"content": integrationOKBody}}},
		}
		_ = json.NewEncoder(responseWriter).Encode(envelope)
	})
	server := httptest.NewServer(handler)
	testingInstance.Cleanup(server.Close)
	return server
}

// newFailingOpenAIServer returns a stub chat-completions server that always
// answers with the given status code.
func newFailingOpenAIServer(testingInstance *testing.T, statusCode int) *httptest.Server {
	testingInstance.Helper()
	handler := http.HandlerFunc(func(responseWriter http.ResponseWriter, httpRequest *http.Request) {
		responseWriter.WriteHeader(statusCode)
	})
	server := httptest.NewServer(handler)
	testingInstance.Cleanup(server.Close)
	return server
}

// newGatewayServer builds the application server pointing at the provided OpenAI server.
func newGatewayServer(testingInstance *testing.T, openAIServer *httptest.Server, configure func(*gateway.Configuration)) *httptest.Server {
	testingInstance.Helper()
	config := gateway.Configuration{
		ServiceSecret: serviceSecretValue,
		OpenAIKey:     openAIKeyValue,
		OpenAIBaseURL: openAIServer.URL,
		LogLevel:      logLevelDebug,
		WorkerCount:   1,
		QueueSize:     4,
	}
	if configure != nil {
		configure(&config)
	}
	router, buildRouterError := gateway.BuildRouter(config, newLogger(testingInstance))
	if buildRouterError != nil {
		testingInstance.Fatalf("BuildRouter error: %v", buildRouterError)
	}
	server := httptest.NewServer(router)
	testingInstance.Cleanup(server.Close)
	return server
}

// newLogger constructs a development logger for tests.
func newLogger(testingInstance *testing.T) *zap.SugaredLogger {
	testingInstance.Helper()
	logger, _ := zap.NewDevelopment()
	testingInstance.Cleanup(func() { _ = logger.Sync() })
	return logger.Sugar()
}

// readBody drains and returns the response body as a string.
func readBody(testingInstance *testing.T, httpResponse *http.Response) string {
	testingInstance.Helper()
	defer httpResponse.Body.Close()
	bodyBytes, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		testingInstance.Fatalf("read body: %v", readError)
	}
	return string(bodyBytes)
}
