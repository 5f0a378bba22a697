// Package oracle provides vibe.Oracle implementations backed by hosted language models.
package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/util"
	"evol-jewels-io/stylist/pkg/vibe"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"

	defaultTemperature = 0.4
	defaultMaxTokens   = 220
)

// Model identifiers containing one of these accept response_format=json_object.
var jsonModeMarkers = []string{"gpt-4o", "gpt-4.1", "gpt-5", "o4", "mini"}

var ErrNoCandidates = errors.New("no oracle models configured")

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	// Models are tried strictly in this order.
	Models []string

	HTTPClient      *http.Client
	RetryMaxElapsed time.Duration
	RetryInitial    time.Duration
	BreakerTimeout  time.Duration
}

// OpenAI classifies through an OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	cfg      OpenAIConfig
	table    *vibe.Table
	hc       *http.Client
	breakers map[string]*gobreaker.CircuitBreaker[string]
}

func NewOpenAI(cfg OpenAIConfig, table *vibe.Table) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Models = CandidateModels(cfg.Models...)
	if cfg.RetryMaxElapsed <= 0 {
		cfg.RetryMaxElapsed = 8 * time.Second
	}
	if cfg.RetryInitial <= 0 {
		cfg.RetryInitial = 500 * time.Millisecond
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 25 * time.Second}
	}

	breakers := make(map[string]*gobreaker.CircuitBreaker[string], len(cfg.Models))
	for _, m := range cfg.Models {
		breakers[m] = newBreaker("openai:"+m, cfg.BreakerTimeout)
	}

	return &OpenAI{cfg: cfg, table: table, hc: hc, breakers: breakers}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Models() []string {
	return append([]string(nil), o.cfg.Models...)
}

// Classify walks the candidate models in order and returns the first valid decision.
func (o *OpenAI) Classify(ctx context.Context, s models.SurveyInput) (vibe.Decision, error) {
	if len(o.cfg.Models) == 0 {
		return vibe.Decision{}, ErrNoCandidates
	}

	system, user := o.table.SystemPrompt(), vibe.UserPrompt(s)
	var errs []error
	for _, model := range o.cfg.Models {
		d, err := o.classifyWith(ctx, model, system, user)
		if err == nil {
			return d, nil
		}
		util.Logger().Warn().Err(err).Str("model", model).Msg("oracle candidate failed")
		errs = append(errs, fmt.Errorf("%s: %w", model, err))
		if ctx.Err() != nil {
			break
		}
	}
	return vibe.Decision{}, errors.Join(errs...)
}

func (o *OpenAI) classifyWith(ctx context.Context, model, system, user string) (vibe.Decision, error) {
	content, err := o.breakers[model].Execute(func() (string, error) {
		return o.complete(ctx, model, system, user)
	})
	if err != nil {
		return vibe.Decision{}, err
	}
	return o.table.ParseDecision(content)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) complete(ctx context.Context, model, system, user string) (string, error) {
	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	if SupportsJSONMode(model) {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	var out chatResponse
	op := func() error {
		// Recreate the request each attempt so the body is not reused.
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		r.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
		r.Header.Set("Content-Type", "application/json")

		resp, err := o.hc.Do(r)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("rate limited: %d", resp.StatusCode)
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return backoff.Permanent(fmt.Errorf("chat status %d: %s", resp.StatusCode, snippet(raw)))
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return fmt.Errorf("chat status %d", resp.StatusCode)
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode chat response: %w", err))
		}
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = o.cfg.RetryInitial
	expo.MaxElapsedTime = o.cfg.RetryMaxElapsed
	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	return out.Choices[0].Message.Content, nil
}

// SupportsJSONMode reports whether model is known to accept the JSON response format.
func SupportsJSONMode(model string) bool {
	for _, m := range jsonModeMarkers {
		if strings.Contains(model, m) {
			return true
		}
	}
	return false
}

// CandidateModels trims, drops empties and de-duplicates while keeping first-seen order.
// With nothing usable it falls back to DefaultOpenAIModel.
func CandidateModels(models ...string) []string {
	seen := make(map[string]struct{}, len(models))
	out := make([]string, 0, len(models))
	for _, m := range models {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	if len(out) == 0 {
		out = append(out, DefaultOpenAIModel)
	}
	return out
}

func snippet(b []byte) string {
	if len(b) > 256 {
		b = b[:256]
	}
	return string(b)
}
