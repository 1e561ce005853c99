package integration_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/temirov/model-gateway/internal/gateway"
)

// TestGenerationResolvesAlias verifies that an alias in the model parameter is
// resolved to its canonical name before the upstream payload is built.
func TestGenerationResolvesAlias(testingInstance *testing.T) {
	var capturedPayload map[string]any
	openAIServer := newOpenAIServer(testingInstance, integrationOKBody, &capturedPayload)
	gatewayServer := newGatewayServer(testingInstance, openAIServer, nil)

	requestURL := fmt.Sprintf("%s/?prompt=%s&key=%s&model=%s", gatewayServer.URL, promptValue, serviceSecretValue, "gpt5")
	httpResponse, requestError := http.Get(requestURL)
	if requestError != nil {
		testingInstance.Fatalf("request error: %v", requestError)
	}
	responseBody := readBody(testingInstance, httpResponse)

	if httpResponse.StatusCode != http.StatusOK {
		testingInstance.Fatalf("expected status %d, got %d with body %q", http.StatusOK, httpResponse.StatusCode, responseBody)
	}
	if !strings.Contains(responseBody, integrationOKBody) {
		testingInstance.Errorf("expected body to contain %q, got %q", integrationOKBody, responseBody)
	}
	if capturedPayload["model"] != "gpt-5-latest" {
		testingInstance.Errorf("expected upstream model %q, got %v", "gpt-5-latest", capturedPayload["model"])
	}
	if capturedPayload["temperature"] != 1.0 {
		testingInstance.Errorf("expected fixed temperature 1.0, got %v", capturedPayload["temperature"])
	}
}

// TestGenerationValidation exercises the request validation and restriction
// responses of the chat endpoint.
func TestGenerationValidation(testingInstance *testing.T) {
	testScenarios := []struct {
		scenarioName   string
		queryValues    url.Values
		disabledModels string
		expectedStatus int
		expectedBody   string
	}{
		{
			scenarioName:   "missing prompt",
			queryValues:    url.Values{"key": {serviceSecretValue}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "missing prompt parameter",
		},
		{
			scenarioName:   "wrong client key",
			queryValues:    url.Values{"prompt": {promptValue}, "key": {"wrong"}},
			expectedStatus: http.StatusForbidden,
			expectedBody:   gateway.ErrorMissingClientKey,
		},
		{
			scenarioName:   "unknown model",
			queryValues:    url.Values{"prompt": {promptValue}, "key": {serviceSecretValue}, "model": {"gpt-99"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "gpt-99",
		},
		{
			scenarioName:   "disabled model through alias",
			queryValues:    url.Values{"prompt": {promptValue}, "key": {serviceSecretValue}, "model": {"gpt5"}},
			disabledModels: "gpt-5-latest",
			expectedStatus: http.StatusForbidden,
			expectedBody:   "gpt5",
		},
	}

	for _, currentScenario := range testScenarios {
		testingInstance.Run(currentScenario.scenarioName, func(subTest *testing.T) {
			openAIServer := newOpenAIServer(subTest, integrationOKBody, nil)
			gatewayServer := newGatewayServer(subTest, openAIServer, func(config *gateway.Configuration) {
				config.DisabledModels = currentScenario.disabledModels
			})

			requestURL := fmt.Sprintf("%s/?%s", gatewayServer.URL, currentScenario.queryValues.Encode())
			httpResponse, requestError := http.Get(requestURL)
			if requestError != nil {
				subTest.Fatalf("request error: %v", requestError)
			}
			responseBody := readBody(subTest, httpResponse)

			if httpResponse.StatusCode != currentScenario.expectedStatus {
				subTest.Fatalf("expected status %d, got %d with body %q", currentScenario.expectedStatus, httpResponse.StatusCode, responseBody)
			}
			if !strings.Contains(responseBody, currentScenario.expectedBody) {
				subTest.Errorf("expected body to contain %q, got %q", currentScenario.expectedBody, responseBody)
			}
		})
	}
}

// TestGenerationFormatNegotiation verifies the format query parameter selects
// the response content type.
func TestGenerationFormatNegotiation(testingInstance *testing.T) {
	testScenarios := []struct {
		scenarioName        string
		formatValue         string
		expectedContentType string
	}{
		{scenarioName: "json format", formatValue: "application/json", expectedContentType: mimeApplicationJSON},
		{scenarioName: "xml format", formatValue: "application/xml", expectedContentType: "application/xml"},
		{scenarioName: "unrecognized format falls back to plain", formatValue: "banana", expectedContentType: "text/plain"},
	}

	for _, currentScenario := range testScenarios {
		testingInstance.Run(currentScenario.scenarioName, func(subTest *testing.T) {
			openAIServer := newOpenAIServer(subTest, integrationOKBody, nil)
			gatewayServer := newGatewayServer(subTest, openAIServer, nil)

			requestURL := fmt.Sprintf("%s/?prompt=%s&key=%s&format=%s", gatewayServer.URL, promptValue, serviceSecretValue, currentScenario.formatValue)
			httpResponse, requestError := http.Get(requestURL)
			if requestError != nil {
				subTest.Fatalf("request error: %v", requestError)
			}
			responseBody := readBody(subTest, httpResponse)

			if httpResponse.StatusCode != http.StatusOK {
				subTest.Fatalf("expected status %d, got %d with body %q", http.StatusOK, httpResponse.StatusCode, responseBody)
			}
			contentType := httpResponse.Header.Get(headerContentTypeKey)
			if !strings.HasPrefix(contentType, currentScenario.expectedContentType) {
				subTest.Errorf("expected content type prefix %q, got %q", currentScenario.expectedContentType, contentType)
			}
		})
	}
}

// TestGenerationUpstreamFailure verifies that a persistent upstream error maps
// to a bad gateway response.
func TestGenerationUpstreamFailure(testingInstance *testing.T) {
	failingServer := newFailingOpenAIServer(testingInstance, http.StatusBadRequest)
	gatewayServer := newGatewayServer(testingInstance, failingServer, nil)

	requestURL := fmt.Sprintf("%s/?prompt=%s&key=%s", gatewayServer.URL, promptValue, serviceSecretValue)
	httpResponse, requestError := http.Get(requestURL)
	if requestError != nil {
		testingInstance.Fatalf("request error: %v", requestError)
	}
	responseBody := readBody(testingInstance, httpResponse)

	if httpResponse.StatusCode != http.StatusBadGateway {
		testingInstance.Fatalf("expected status %d, got %d with body %q", http.StatusBadGateway, httpResponse.StatusCode, responseBody)
	}
}
