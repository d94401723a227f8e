// Package openrouter calls an OpenAI-compatible chat completions endpoint.
package openrouter

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"cultural_planner/internal/adapters/observability"
	"cultural_planner/internal/domain"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "deepseek/deepseek-r1-distill-llama-70b:free"

	endpoint    = "chat_completions"
	maxAttempts = 4
	temperature = 0.7
	maxTokens   = 4000
)

type Client struct {
	base    string
	hc      *http.Client
	key     string
	model   string
	referer string
	rl      *rate.Limiter
}

type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Referer string
	RPS     int
	Timeout time.Duration
}

// New returns domain.ErrMissingUpstreamCredential when no API key is set.
func New(o Options) (*Client, error) {
	if strings.TrimSpace(o.APIKey) == "" {
		return nil, domain.ErrMissingUpstreamCredential
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.RPS <= 0 {
		o.RPS = 2
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	return &Client{
		base:    strings.TrimRight(o.BaseURL, "/"),
		hc:      &http.Client{Timeout: o.Timeout},
		key:     o.APIKey,
		model:   o.Model,
		referer: o.Referer,
		rl:      rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
	}, nil
}

// Generate sends one system and one user message and returns the first
// choice's content. Transport failures and non-2xx replies wrap
// domain.ErrUpstreamRequestFailed; truncated or undecodable bodies, empty
// choices and a missing content field wrap domain.ErrMalformedUpstreamPayload.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", domain.ErrUpstreamRequestFailed, err)
	}

	raw, err := c.post(ctx, c.base+"/chat/completions", body)
	if err != nil {
		return "", err
	}
	return decode(raw)
}

// decode returns choices[0].message.content. A body that ends before the
// JSON value does is malformed. Other syntax damage gets one jsonrepair
// pass, kept only if the recovered content occurs verbatim in the body.
func decode(raw []byte) (string, error) {
	var resp openai.ChatCompletionResponse
	err := json.NewDecoder(bytes.NewReader(raw)).Decode(&resp)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "", fmt.Errorf("%w: truncated body", domain.ErrMalformedUpstreamPayload)
	default:
		fixed, rerr := jsonrepair.JSONRepair(string(raw))
		if rerr != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrMalformedUpstreamPayload, err)
		}
		resp = openai.ChatCompletionResponse{}
		if uerr := json.Unmarshal([]byte(fixed), &resp); uerr != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrMalformedUpstreamPayload, err)
		}
		if len(resp.Choices) > 0 && !bytes.Contains(raw, quote(resp.Choices[0].Message.Content)) {
			return "", fmt.Errorf("%w: repair altered content", domain.ErrMalformedUpstreamPayload)
		}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", domain.ErrMalformedUpstreamPayload)
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: no message content", domain.ErrMalformedUpstreamPayload)
	}
	return content, nil
}

// quote returns s as a JSON string literal, without HTML escaping.
func quote(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// post performs a POST with client-side rate limiting and retries.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequestFailed, err)
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequestFailed, err)
		}
		req.Header.Set("Authorization", "Bearer "+c.key)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Title", "Cultural Planner")
		if c.referer != "" {
			req.Header.Set("HTTP-Referer", c.referer)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("openrouter", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequestFailed, ctx.Err())
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrUpstreamRequestFailed, err)
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return nil, lastErr
		}
		observability.ObserveExternal("openrouter", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			b, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstreamRequestFailed, err)
			}
			return b, nil

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("%w: remote %d", domain.ErrUpstreamRequestFailed, resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			return nil, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("%w: bad status %d: %s", domain.ErrUpstreamRequestFailed, resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return nil, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent or invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
