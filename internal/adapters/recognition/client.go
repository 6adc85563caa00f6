// Package recognition implements the client for the vision recognition
// oracle, an OpenAI-compatible chat-completions endpoint.
package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/tribute/pkg/logger"
	"github.com/okian/tribute/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL        = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultModel          = "gemini-2.0-flash"
	defaultRequestTimeout = 60 * time.Second
	defaultRPS            = 2
)

// RetryConfig bounds the retry loop for transient oracle failures.
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the stock retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialDelay:      500 * time.Millisecond,
		MaxDelay:          10 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Recognizer sends one encoded image plus an instruction to the oracle and
// returns its raw textual answer. Implementations send exactly one logical
// request per call; transient transport failures may be retried inside.
type Recognizer interface {
	Recognize(ctx context.Context, encodedImage, prompt string) (string, error)
}

// Client is the HTTP Recognizer.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	retry      RetryConfig
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewClient creates a recognition client. An empty apiKey is accepted here;
// Recognize fails with ErrMissingCredential before any network I/O.
func NewClient(apiKey string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxConnsPerHost:     5,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   defaultModel,
		httpClient: &http.Client{
			Timeout:   defaultRequestTimeout,
			Transport: transport,
		},
		retry:   DefaultRetryConfig(),
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Named("recognition")
	}

	return c
}

// Request/response shapes of the chat-completions endpoint.

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Recognize posts the encoded image and instruction to the oracle and
// returns the first choice's message content verbatim. Interpretation of
// the content is entirely the parser's concern.
func (c *Client) Recognize(ctx context.Context, encodedImage, prompt string) (string, error) {
	if c.apiKey == "" {
		metrics.RecordOracleError("configuration")
		return "", ErrMissingCredential
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + encodedImage}},
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	delay := c.retry.InitialDelay

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordOracleRetry()
			c.logger.Warn(ctx, "retrying oracle call",
				logger.Int("attempt", attempt),
				logger.Int("maxRetries", c.retry.MaxRetries),
				logger.Duration("delay", delay),
			)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * c.retry.BackoffMultiplier)
			if delay > c.retry.MaxDelay {
				delay = c.retry.MaxDelay
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("rate limiter: %w", err)
			}
		}

		answer, outcome, err := c.doRequest(ctx, body)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if outcome.permanent {
			return "", err
		}
		if outcome.retryAfter > 0 {
			delay = outcome.retryAfter
		}
		c.logger.Warn(ctx, "oracle call failed", logger.Error(err))
	}

	return "", fmt.Errorf("all retry attempts failed: %w", lastErr)
}

// requestOutcome carries retry guidance alongside a failed round-trip:
// whether the failure is permanent and an optional Retry-After hint.
type requestOutcome struct {
	permanent  bool
	retryAfter time.Duration
}

// doRequest performs one HTTP round-trip.
func (c *Client) doRequest(ctx context.Context, body []byte) (string, requestOutcome, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", requestOutcome{permanent: true}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordOracleError("network")
		return "", requestOutcome{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	respBody, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	metrics.RecordOracleLatency(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		metrics.RecordOracleError("transport")
		reason := resp.Status
		if len(respBody) > 0 {
			reason = fmt.Sprintf("%s: %s", resp.Status, truncate(respBody))
		}
		transportErr := fmt.Errorf("%w: %s", ErrTransport, reason)
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return "", requestOutcome{retryAfter: parseRetryAfter(resp)}, transportErr
		case resp.StatusCode >= http.StatusInternalServerError:
			return "", requestOutcome{}, transportErr
		default:
			// Other 4xx are not transient; give up immediately.
			return "", requestOutcome{permanent: true}, transportErr
		}
	}
	if readErr != nil {
		metrics.RecordOracleError("network")
		return "", requestOutcome{}, fmt.Errorf("%w: %v", ErrTransport, readErr)
	}

	var envelope chatResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		metrics.RecordOracleError("malformed")
		return "", requestOutcome{permanent: true}, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}
	if len(envelope.Choices) == 0 {
		metrics.RecordOracleError("malformed")
		return "", requestOutcome{permanent: true}, fmt.Errorf("%w: no choices in response", ErrMalformedAnswer)
	}
	return envelope.Choices[0].Message.Content, requestOutcome{}, nil
}

// parseRetryAfter parses a Retry-After header given in seconds.
func parseRetryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}

// truncate keeps error reasons log-friendly.
func truncate(body []byte) string {
	const maxReason = 512
	if len(body) > maxReason {
		return string(body[:maxReason]) + "..."
	}
	return string(body)
}
