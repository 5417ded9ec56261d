package ocr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fesperiquette82/keepeat/internal/expiry"
)

// lineResult mirrors the JSON array entries the vision models are prompted to
// return.
type lineResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// parseLinesJSON parses the model response into text lines. Models wrap JSON
// in markdown fences or chat around it often enough that the parser cuts the
// array out of the surrounding text first.
func parseLinesJSON(text string) ([]expiry.Line, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "[")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON array found in response")
	}
	endIdx := strings.LastIndex(text, "]")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON array in response")
	}
	text = text[startIdx : endIdx+1]

	var results []lineResult
	if err := json.Unmarshal([]byte(text), &results); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	lines := make([]expiry.Line, 0, len(results))
	for _, r := range results {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		lines = append(lines, expiry.Line{
			Text:       strings.TrimSpace(r.Text),
			Confidence: clampConfidence(r.Confidence),
		})
	}
	return lines, nil
}

// clampConfidence forces a model-reported confidence into [0,1]. Some models
// answer in percent despite the prompt.
func clampConfidence(c float64) float64 {
	if c > 1 && c <= 100 {
		c /= 100
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
