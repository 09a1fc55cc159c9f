package ai

import (
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/kozaktomas/passport-photo/internal/passport"
)

//go:embed prompts/passport_generation.txt
var passportGenerationPrompt string

//go:embed prompts/photo_compliance.txt
var photoCompliancePrompt string

var generationTemplate = template.Must(template.New("generation").Parse(passportGenerationPrompt))

// buildGenerationPrompt renders the generation instructions for the chosen options.
// This is shared across all AI providers.
func buildGenerationPrompt(opts passport.Options) (string, error) {
	var b strings.Builder
	if err := generationTemplate.Execute(&b, opts); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}

// extractJSON attempts to extract JSON from a response that may contain extra text
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return content
	}

	depth := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}

	return content[start:]
}

// parseAnalysis decodes a compliance verdict, tolerating code fences around the JSON.
func parseAnalysis(content string) (*Analysis, error) {
	var analysis Analysis
	if err := json.Unmarshal([]byte(extractJSON(strings.TrimSpace(content))), &analysis); err != nil {
		return nil, err
	}
	if analysis.Issues == nil {
		analysis.Issues = []Issue{}
	}
	return &analysis, nil
}
