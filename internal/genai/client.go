// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai calls the hosted generative-language API (Gemini
// generateContent). It serves two request shapes: schema-guided course
// synthesis returning raw JSON text, and free-text tutor advice.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/edustream/pkg/types"
)

const (
	DefaultModel   = "gemini-3-flash-preview"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

var (
	// ErrEmptyResponse is returned when the API answers without any text.
	ErrEmptyResponse = errors.New("generative API returned no text")

	// ErrBlocked is returned when the API refuses the prompt.
	ErrBlocked = errors.New("generative API blocked the prompt")
)

// RetryBaseDelay is the first backoff step for HTTP 429 retries. Tests
// override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

// Client is a Gemini REST client. It satisfies generate.Synthesizer and
// tutor.Advisor.
type Client struct {
	rc    *resty.Client
	model string
}

// New builds a client from cfg. A missing API key is not checked here; the
// API rejects the first call instead.
func New(cfg types.AIConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if cfg.RateLimitRetries > 0 {
		rc.SetRetryCount(cfg.RateLimitRetries).
			SetRetryWaitTime(RetryBaseDelay).
			SetRetryMaxWaitTime(16 * RetryBaseDelay).
			AddRetryCondition(func(r *resty.Response, _ error) bool {
				return r != nil && r.StatusCode() == http.StatusTooManyRequests
			})
	}

	return &Client{rc: rc, model: model}
}

// Model returns the model identifier requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// SynthesizeCourse asks for a course syllabus on topic and returns the
// model's JSON text unparsed. The caller owns validation.
func (c *Client) SynthesizeCourse(ctx context.Context, topic string) (string, error) {
	prompt, err := render(courseSyllabusTmpl, struct{ Topic string }{topic})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return c.generate(ctx, prompt, &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   courseSchema,
	})
}

// TutorRequest is the input of one tutor exchange.
type TutorRequest struct {
	CourseTitle   string
	LessonContext string
	Question      string
}

// TutorAdvice asks for a plain-text explanation answering req.Question.
func (c *Client) TutorAdvice(ctx context.Context, req TutorRequest) (string, error) {
	prompt, err := render(tutorTmpl, req)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return c.generate(ctx, prompt, nil)
}

// --- wire types ---

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, prompt string, gc *generationConfig) (string, error) {
	body := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: gc,
	}

	var out generateResponse
	var apiErr apiError
	resp, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("model", c.model).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("calling generative API: %w", err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return "", fmt.Errorf("generative API returned %d: %s", resp.StatusCode(), msg)
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
