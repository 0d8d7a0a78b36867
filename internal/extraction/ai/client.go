package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	compare "contract-compare/internal/compare/domain"
	"contract-compare/internal/extraction"
	"contract-compare/internal/observability/metrics"
)

const systemPrompt = `You extract hotel contract pricing tables from documents.
Return a JSON object {"items": [...]} where each item has the fields
hotel_name, room_type, period_start, period_end, price and currency.
Copy cell values verbatim; do not reformat dates or numbers, do not guess
missing values. If the document contains no pricing table, return
{"items": []}.`

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client extracts contract items from PDF documents via a chat completion
// upstream.
type Client struct {
	completer  chatCompleter
	limiter    *rate.Limiter
	model      string
	maxRetries int
	retryBase  time.Duration
	sleep      func(time.Duration)
}

// NewClient builds an AI extraction client from config.
func NewClient(completer *openai.Client, cfg extraction.Config) (*Client, error) {
	if completer == nil {
		return nil, errors.New("ai: nil completion client")
	}
	return &Client{
		completer:  completer,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryBase:  time.Duration(cfg.RetryBaseMS) * time.Millisecond,
		sleep:      time.Sleep,
	}, nil
}

type extractedPayload struct {
	Items []compare.ContractItem `json:"items"`
}

// Extract sends the document to the upstream model and decodes the item
// list from its JSON answer. Transient upstream failures are retried with
// exponential backoff; rate limiting applies before every attempt.
func (c *Client) Extract(ctx context.Context, data []byte) ([]compare.ContractItem, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Document (base64 PDF):\n" + base64.StdEncoding.EncodeToString(data)},
		},
		Temperature:    0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	var resp openai.ChatCompletionResponse
	var err error
	for attempt := 0; ; attempt++ {
		if err = c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err = c.completer.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}
		if attempt >= c.maxRetries || !retryable(err) {
			return nil, fmt.Errorf("ai: extraction failed after %d attempts: %w", attempt+1, err)
		}
		metrics.IncExtractRetry()
		c.sleep(backoff(c.retryBase, attempt))
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("ai: upstream returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	var payload extractedPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("ai: decode answer: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, extraction.ErrNoTable
	}
	return payload.Items, nil
}

// retryable reports whether an upstream error is worth retrying: rate
// limits, timeouts, server-side failures and transport errors.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode == 408 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 0 || reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}
	return false
}

func backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = time.Millisecond
	}
	delay := base << uint(attempt)
	jitter := time.Duration(rand.Int63n(int64(base)))
	return delay + jitter
}
