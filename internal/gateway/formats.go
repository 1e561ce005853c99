package gateway

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/temirov/model-gateway/internal/provider"
)

// preferredMime determines the response MIME type using the format query parameter or the Accept header.
func preferredMime(ginContext *gin.Context) string {
	if explicitFormat := ginContext.Query(queryParameterFormat); explicitFormat != "" {
		return strings.ToLower(strings.TrimSpace(explicitFormat))
	}
	return strings.ToLower(strings.TrimSpace(ginContext.GetHeader(headerAccept)))
}

// formatResponse renders a generation outcome into the requested MIME type and returns the body and content type.
func formatResponse(generated provider.Response, preferred string, originalPrompt string) (string, string) {
	switch {
	case strings.Contains(preferred, mimeApplicationJSON):
		encoded, _ := json.Marshal(map[string]string{
			responseRequestAttribute: originalPrompt,
			responseTextAttribute:    generated.Content,
			responseModelAttribute:   generated.ModelName,
		})
		return string(encoded), mimeApplicationJSON
	case strings.Contains(preferred, mimeApplicationXML) || strings.Contains(preferred, mimeTextXML):
		type xmlEnvelope struct {
			XMLName xml.Name `xml:"response"`
			Request string   `xml:"request,attr"`
			Model   string   `xml:"model,attr"`
			Text    string   `xml:",chardata"`
		}
		encoded, _ := xml.Marshal(xmlEnvelope{Request: originalPrompt, Model: generated.ModelName, Text: generated.Content})
		return string(encoded), mimeApplicationXML
	case strings.Contains(preferred, mimeTextCSV):
		escaped := strings.ReplaceAll(generated.Content, `"`, `""`)
		return fmt.Sprintf(`"%s"`+"\n", escaped), mimeTextCSV
	default:
		return generated.Content, mimeTextPlain
	}
}
