package gateway

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/temirov/model-gateway/internal/constants"
	"github.com/temirov/model-gateway/internal/utils"
	"go.uber.org/zap"
)

// sanitizeRequestURI replaces sensitive query parameter values with a placeholder.
func sanitizeRequestURI(requestURL *url.URL) string {
	queryParameters := requestURL.Query()
	if queryParameters.Has(queryParameterKey) {
		queryParameters.Set(queryParameterKey, redactedPlaceholder)
	}
	sanitizedURL := *requestURL
	sanitizedURL.RawQuery = queryParameters.Encode()
	return sanitizedURL.RequestURI()
}

// requestResponseLogger emits structured request and response metadata. Every
// request gets a UUID, echoed in X-Request-ID and attached to both log lines
// so the pair can be correlated.
func requestResponseLogger(structuredLogger *zap.SugaredLogger) gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		requestStart := time.Now()
		requestIdentifier := ginContext.GetHeader(headerRequestID)
		if requestIdentifier == "" {
			requestIdentifier = uuid.NewString()
		}
		ginContext.Header(headerRequestID, requestIdentifier)

		structuredLogger.Infow(
			logEventRequestReceived,
			logFieldRequestID, requestIdentifier,
			logFieldMethod, ginContext.Request.Method,
			logFieldPath, sanitizeRequestURI(ginContext.Request.URL),
			logFieldClientIP, ginContext.ClientIP(),
		)

		ginContext.Next()

		structuredLogger.Infow(
			logEventResponseSent,
			logFieldRequestID, requestIdentifier,
			logFieldStatus, ginContext.Writer.Status(),
			constants.LogFieldLatencyMilliseconds, time.Since(requestStart).Milliseconds(),
		)
	}
}

// secretMiddleware enforces the shared secret through a constant-time comparison of the `key` query parameter.
func secretMiddleware(sharedSecret string, structuredLogger *zap.SugaredLogger) gin.HandlerFunc {
	normalizedSecret := strings.TrimSpace(sharedSecret)
	expectedSecretBytes := []byte(normalizedSecret)
	expectedSecretFingerprint := utils.Fingerprint(normalizedSecret)
	return func(ginContext *gin.Context) {
		presentedKey := strings.TrimSpace(ginContext.Query(queryParameterKey))
		presentedKeyBytes := []byte(presentedKey)
		if !constantTimeEquals(expectedSecretBytes, presentedKeyBytes) {
			structuredLogger.Warnw(
				logEventForbiddenRequest,
				logFieldExpectedFingerprint, expectedSecretFingerprint,
			)
			ginContext.String(http.StatusForbidden, ErrorMissingClientKey)
			ginContext.Abort()
			return
		}
		ginContext.Next()
	}
}

// constantTimeEquals compares two byte slices in constant time to reduce side-channel signal.
func constantTimeEquals(firstValue []byte, secondValue []byte) bool {
	if len(firstValue) != len(secondValue) {
		_ = subtle.ConstantTimeCompare(firstValue, firstValue)
		_ = subtle.ConstantTimeCompare(secondValue, firstValue)
		return false
	}
	return subtle.ConstantTimeCompare(firstValue, secondValue) == 1
}
