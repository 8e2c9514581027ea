package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/scamshield/internal/domain/ai"
)

// maxTextRunes bounds how much of a sample is sent upstream.
const maxTextRunes = 4000

// GetSystemPrompt provides strict directions and schema for JSON output.
// labels is the indicator catalogue the model should prefer when naming patterns.
func GetSystemPrompt(labels []string) string {
	var b strings.Builder
	b.WriteString(`You are a fraud analyst who reviews messages, links and call transcripts for scams. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- risk_score is an integer from 0 to 100; higher means more likely a scam.
- risk_level is one of: Low, Medium, High.
- explanation is one or two plain sentences addressed to the person who received the message.
- indicators is an array of short labels for the suspicious patterns you found; use an empty array when there are none.
`)
	if len(labels) > 0 {
		b.WriteString("- Prefer these indicator labels when they apply: ")
		b.WriteString(strings.Join(labels, "; "))
		b.WriteString(".\n")
	}
	b.WriteString(`
Schema (example with empty values):
{
  "risk_level": "<Low|Medium|High>",
  "risk_score": 0,
  "explanation": "<string>",
  "indicators": ["<string>"]
}`)
	return b.String()
}

// GetUserPrompt builds a compact user message around the sample.
func GetUserPrompt(contentType, text string) string {
	r := []rune(text)
	if len(r) > maxTextRunes {
		text = string(r[:maxTextRunes])
	}
	return fmt.Sprintf("Channel: %s\nAssess this content and respond with the JSON per schema.\n---\n%s", contentType, text)
}

// ParseAssessment decodes a model reply, tolerating surrounding code fences.
func ParseAssessment(raw string) (ai.Assessment, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if s == "" {
		return ai.Assessment{}, ai.ErrMalformedOutput
	}

	var reply struct {
		RiskLevel   string   `json:"risk_level"`
		RiskScore   *int     `json:"risk_score"`
		Explanation string   `json:"explanation"`
		Indicators  []string `json:"indicators"`
	}
	if err := json.Unmarshal([]byte(s), &reply); err != nil {
		return ai.Assessment{}, fmt.Errorf("%w: %v", ai.ErrMalformedOutput, err)
	}
	if reply.RiskScore == nil {
		return ai.Assessment{}, fmt.Errorf("%w: missing risk_score", ai.ErrMalformedOutput)
	}
	if *reply.RiskScore < 0 || *reply.RiskScore > 100 {
		return ai.Assessment{}, fmt.Errorf("%w: risk_score %d outside 0..100", ai.ErrMalformedOutput, *reply.RiskScore)
	}
	level, ok := riskLevels[strings.ToLower(strings.TrimSpace(reply.RiskLevel))]
	if !ok {
		return ai.Assessment{}, fmt.Errorf("%w: risk_level %q", ai.ErrMalformedOutput, reply.RiskLevel)
	}
	return ai.Assessment{
		RiskLevel:   level,
		RiskScore:   *reply.RiskScore,
		Explanation: reply.Explanation,
		Indicators:  reply.Indicators,
	}, nil
}

var riskLevels = map[string]string{"low": "Low", "medium": "Medium", "high": "High"}
