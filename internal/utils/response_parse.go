package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFence removes markdown code-fence markers wrapped around model output.
func StripCodeFence(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

// ParseJSONObject strips code fences and decodes the JSON object in raw into target.
func ParseJSONObject(raw string, target any) error {
	clean := StripCodeFence(raw)
	if clean == "" {
		return fmt.Errorf("empty model output")
	}
	if err := json.Unmarshal([]byte(clean), target); err != nil {
		return fmt.Errorf("failed to parse model output: %w", err)
	}
	return nil
}
