package gateway

const (
	// LogLevelDebug indicates that the application should log debug information.
	LogLevelDebug = "debug"

	// LogLevelInfo indicates that the application should log informational messages.
	LogLevelInfo = "info"

	headerAccept    = "Accept"
	headerRequestID = "X-Request-ID"

	queryParameterPrompt       = "prompt"
	queryParameterKey          = "key"
	queryParameterModel        = "model"
	queryParameterSystemPrompt = "system_prompt"
	queryParameterTemperature  = "temperature"
	queryParameterFormat       = "format"
	queryParameterCategory     = "category"

	redactedPlaceholder = "***REDACTED***"

	mimeApplicationJSON = "application/json"
	mimeApplicationXML  = "application/xml"
	mimeTextXML         = "text/xml"
	mimeTextCSV         = "text/csv"
	mimeTextPlain       = "text/plain; charset=utf-8"

	errorMissingPrompt = "missing prompt parameter"
	// ErrorMissingClientKey indicates that the key query parameter is missing or wrong.
	ErrorMissingClientKey = "missing client key"
	errorRequestTimedOut  = "request timed out"
	errorQueueFull        = "request queue full"
	errorNoPreferredModel = "no models available"

	logFieldMethod    = "method"
	logFieldPath      = "path"
	logFieldClientIP  = "client_ip"
	logFieldStatus    = "status"
	logFieldValue     = "value"
	logFieldError     = "error"
	logFieldRequestID = "request_id"
	// logFieldExpectedFingerprint identifies the fingerprint of the expected client key.
	logFieldExpectedFingerprint = "expected_fingerprint"

	logEventForbiddenRequest       = "forbidden request"
	logEventRequestReceived        = "request received"
	logEventResponseSent           = "response sent"
	logEventParseTemperatureFailed = "parse temperature parameter failed"
	logEventModelsFileLoaded       = "models file loaded"
	logEventGenerationFailed       = "generation failed"

	responseRequestAttribute = "request"
	responseTextAttribute    = "response"
	responseModelAttribute   = "model"
)
