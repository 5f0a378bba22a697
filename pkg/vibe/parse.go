package vibe

import (
	"errors"
	"fmt"
	"regexp"

	json "github.com/goccy/go-json"
)

var (
	ErrNoJSON       = errors.New("oracle response contains no JSON object")
	ErrInvalidVibe  = errors.New("oracle returned a vibe outside the fixed set")
	ErrBadExplainer = errors.New("oracle explanation is missing or not a string")
)

// Greedy on purpose: spans from the first '{' to the last '}'.
var objectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// Decision is a validated oracle answer.
type Decision struct {
	Vibe        string
	Explanation string
}

// ParseDecision decodes an oracle reply. The full text is tried as strict JSON first, then the
// first {...} span. The object must carry a valid vibe label and a string explanation.
func (t *Table) ParseDecision(content string) (Decision, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		span := objectPattern.FindString(content)
		if span == "" {
			return Decision{}, ErrNoJSON
		}
		if err := json.Unmarshal([]byte(span), &raw); err != nil {
			return Decision{}, fmt.Errorf("decode oracle object: %w", err)
		}
	}
	if raw == nil {
		return Decision{}, ErrNoJSON
	}

	label, ok := raw["vibe"].(string)
	if !ok || !t.Valid(label) {
		return Decision{}, fmt.Errorf("%w: %v", ErrInvalidVibe, raw["vibe"])
	}
	explanation, ok := raw["explanation"].(string)
	if !ok {
		return Decision{}, ErrBadExplainer
	}
	return Decision{Vibe: label, Explanation: explanation}, nil
}
