// Package advisor produces energy-saving suggestions, preferring an
// OpenRouter-hosted model and falling back to static advice generated from
// the analysis results. A caller always gets a usable suggestion; AI
// failures are logged, never surfaced.
package advisor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/enact-eco/enact/internal/analysis"
)

const (
	// DefaultBaseURL is the OpenRouter API endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds each model attempt so a slow upstream falls
	// through to the static generator quickly.
	DefaultTimeout = 5 * time.Second

	completionsPath = "/chat/completions"
	maxPromptCode   = 1500
)

// ModelConfig pairs a model identifier with the API key that can call it.
type ModelConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

// Suggestion is the advisor output: prose advice and the model that wrote
// it, or "static_analysis_fallback" when no model responded.
type Suggestion struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Model    string `json:"model"`
}

// Client calls the OpenRouter chat completions API, trying each configured
// model in order.
type Client struct {
	baseURL string
	models  []ModelConfig
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates an advisor client. An empty model list is valid and
// makes every call use the static fallback.
func NewClient(baseURL string, models []ModelConfig, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		models:  models,
		http:    &http.Client{Timeout: timeout},
		log:     logger.With().Str("component", "advisor").Logger(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// CodeSuggestions asks for optimization advice on analyzed code. Any model
// failure, empty answer or timeout falls through to the static generator.
func (c *Client) CodeSuggestions(ctx context.Context, code, language string, report analysis.Report) Suggestion {
	if len(code) > maxPromptCode {
		code = code[:maxPromptCode]
	}

	prompt := fmt.Sprintf(
		"Analyze this %s code for energy efficiency and suggest optimizations.\n\n"+
			"```%s\n%s\n```\n\n"+
			"Analysis: complexity=%d, maintainability=%.1f, nesting depth=%d.\n"+
			"Provide: 1) energy assessment, 2) 3-5 optimization tips, 3) estimated savings.",
		language, language, code,
		report.Complexity.TotalComplexity,
		report.Metrics.MaintainabilityIndex,
		report.Complexity.MaxNestingDepth,
	)

	if s, ok := c.complete(ctx, "You are an expert in energy-efficient programming. Provide clear, actionable optimization suggestions.", prompt, 1500); ok {
		return s
	}
	return FallbackCodeSuggestions(report)
}

// ThresholdAdvice asks for behavioral advice after an emission threshold
// was crossed. thresholdType is "daily" or "weekly".
func (c *Client) ThresholdAdvice(ctx context.Context, currentGrams, thresholdGrams float64, thresholdType string) Suggestion {
	prompt := fmt.Sprintf(
		"The user reached a %s carbon emission threshold (%.2fg CO2, limit %.1fg). "+
			"Provide practical suggestions to reduce digital carbon footprint: "+
			"2-3 activity recommendations, 2-3 immediate behavioral changes, "+
			"2-3 tool or settings optimizations, and a brief motivational message. "+
			"Keep it concise, friendly and actionable.",
		thresholdType, currentGrams, thresholdGrams,
	)

	if s, ok := c.complete(ctx, "You are an expert in digital sustainability and reducing carbon footprints from online activities. Provide clear, actionable advice.", prompt, 800); ok {
		return s
	}
	return FallbackThresholdAdvice(currentGrams, thresholdGrams, thresholdType)
}

// complete tries each configured model in order and returns the first
// non-empty answer.
func (c *Client) complete(ctx context.Context, system, prompt string, maxTokens int) (Suggestion, bool) {
	for _, model := range c.models {
		answer, served, err := c.completeOne(ctx, model, system, prompt, maxTokens)
		if err != nil {
			c.log.Debug().Err(err).Str("model", model.Model).Msg("model attempt failed")
			continue
		}
		if strings.TrimSpace(answer) == "" {
			c.log.Debug().Str("model", model.Model).Msg("model returned empty answer")
			continue
		}
		return Suggestion{Success: true, Response: strings.TrimSpace(answer), Model: served}, true
	}
	return Suggestion{}, false
}

func (c *Client) completeOne(ctx context.Context, model ModelConfig, system, prompt string, maxTokens int) (answer, servedModel string, err error) {
	payload := chatRequest{
		Model: model.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+model.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", "", err
	}
	if len(parsed.Choices) == 0 {
		return "", "", fmt.Errorf("no choices in response")
	}

	served := parsed.Model
	if served == "" {
		served = model.Model
	}
	return parsed.Choices[0].Message.Content, served, nil
}
