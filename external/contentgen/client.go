package contentgen

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/platform/resilience"
	"github.com/riskibarqy/club-manager/internal/usecase"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultBaseURL      = "https://generativelanguage.googleapis.com"
	defaultModel        = "gemini-2.0-flash"
	defaultTimeout      = 30 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBodySize = 4 << 20
)

var (
	errTransient     = crerr.New("content generator transient failure")
	ErrEmptyResponse = crerr.New("content generator returned no content")
)

var tracer = otel.Tracer("club-manager/external/contentgen")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Clock          clockwork.Clock
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to a generateContent style endpoint: a prompt goes in, JSON
// constrained by a response schema comes out.
type Client struct {
	httpClient     *fasthttp.Client
	endpoint       string
	apiKey         string
	timeout        time.Duration
	maxRetries     int
	retryBackoff   time.Duration
	clock          clockwork.Clock
	logger         *logging.Logger
	validator      *validator.Validate
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	marketFlight   resilience.SingleFlight[[]player.Player]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "club-manager",
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		endpoint:       baseURL + "/v1beta/models/" + url.PathEscape(model) + ":generateContent",
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		retryBackoff:   backoff,
		clock:          clock,
		logger:         logger.Named("contentgen"),
		validator:      validator.New(),
		breaker:        resilience.NewCircuitBreaker(breakerCfg, clock),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// generate sends one prompt and returns the text of the first candidate.
func (c *Client) generate(ctx context.Context, operation, prompt string, responseSchema *schema) (string, error) {
	ctx, span := tracer.Start(ctx, "contentgen.Client."+operation)
	defer span.End()
	span.SetAttributes(attribute.String("contentgen.operation", operation))

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "content generator circuit breaker rejected request", "operation", operation, "state", c.breaker.State())
			span.SetStatus(codes.Error, "circuit open")
			return "", fmt.Errorf("%w: content generator is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body, err := sonic.Marshal(newGenerateRequest(prompt, responseSchema))
	if err != nil {
		return "", crerr.Wrap(err, "encode generate request")
	}

	raw, err := c.executeRequest(ctx, body)
	if c.circuitEnabled {
		c.breaker.Record(isCircuitFailure(err))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", err
	}

	var payload generateResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return "", crerr.Wrap(err, "decode generate response")
	}
	text := payload.firstText()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *Client) executeRequest(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.post(ctx, body)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: generator status=%d body=%s", errTransient, status, abbreviateBody(raw))
		default:
			return nil, crerr.Newf("generator status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := c.clock.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.Chan():
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("generator request failed")
	}
	c.logger.WarnContext(ctx, "content generator request failed", "error", lastErr)
	return nil, lastErr
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}
	req.SetBodyRaw(body)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	return append([]byte(nil), resp.Body()...), resp.StatusCode(), nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func sanitizeSensitiveText(value, secret string) string {
	value = strings.TrimSpace(value)
	if secret != "" {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return value
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
