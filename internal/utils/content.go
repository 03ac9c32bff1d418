package utils

import (
	"strings"

	"google.golang.org/genai"
)

// ExtractContentText concatenates the text parts of content.
func ExtractContentText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// StripDataURL drops a "data:<mime>;base64," prefix and returns the payload and the mime type, if any.
func StripDataURL(raw string) (payload, mimeType string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "data:") {
		return raw, ""
	}
	header, encoded, ok := strings.Cut(raw, ",")
	if !ok {
		return raw, ""
	}
	mimeType = strings.TrimPrefix(header, "data:")
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return encoded, mimeType
}
