package notify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"
	"github.com/valyala/bytebufferpool"

	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/platform/resilience"
)

var errTransient = crerr.New("webhook transient failure")

// WebhookConfig configures the outbound event publisher.
type WebhookConfig struct {
	EndpointURL      string
	Token            string
	Retries          int
	Timeout          time.Duration
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// envelope is the wire shape every webhook delivery uses.
type envelope struct {
	Type       string `json:"type"`
	OccurredAt string `json:"occurredAt"`
	Payload    any    `json:"payload"`
}

// WebhookPublisher delivers league events to one HTTP endpoint. Publish is
// fire-and-forget: delivery runs on its own goroutine so request handlers
// never wait on the subscriber, and a circuit breaker sheds deliveries
// while the endpoint misbehaves.
type WebhookPublisher struct {
	client      *http.Client
	endpointURL string
	token       string
	retries     int
	logger      *logging.Logger
	breaker     *resilience.Breaker
	wg          conc.WaitGroup
	now         func() time.Time
}

func NewWebhookPublisher(cfg WebhookConfig, logger *logging.Logger) *WebhookPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &WebhookPublisher{
		client:      &http.Client{Timeout: timeout},
		endpointURL: strings.TrimRight(strings.TrimSpace(cfg.EndpointURL), "/"),
		token:       strings.TrimSpace(cfg.Token),
		retries:     cfg.Retries,
		logger:      logger,
		breaker:     resilience.NewBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		now:         time.Now,
	}
}

// Publish queues one delivery. The caller's context only carries trace
// metadata; delivery itself runs detached so a finished request cannot
// cancel it.
func (p *WebhookPublisher) Publish(ctx context.Context, eventType string, payload any) {
	if p.endpointURL == "" {
		return
	}

	body, err := marshalEnvelope(envelope{
		Type:       eventType,
		OccurredAt: p.now().UTC().Format(time.RFC3339),
		Payload:    payload,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "marshal webhook payload", "type", eventType, "error", err)
		return
	}

	p.wg.Go(func() {
		if err := p.deliver(eventType, body); err != nil {
			p.logger.Error("webhook delivery failed", "type", eventType, "error", err)
		}
	})
}

// Close waits for in-flight deliveries to drain.
func (p *WebhookPublisher) Close() {
	p.wg.Wait()
}

func (p *WebhookPublisher) deliver(eventType string, body []byte) error {
	attempts := p.retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := p.breaker.Allow(); err != nil {
			return crerr.Wrapf(err, "webhook endpoint shed (type=%s)", eventType)
		}

		lastErr = p.post(body)
		if lastErr == nil {
			p.breaker.Success()
			return nil
		}

		p.breaker.Failure()
		if !crerr.Is(lastErr, errTransient) {
			return lastErr
		}
	}

	return crerr.Wrapf(lastErr, "webhook delivery exhausted %d attempt(s)", attempts)
}

func (p *WebhookPublisher) post(body []byte) error {
	req, err := http.NewRequest(http.MethodPost, p.endpointURL, bytes.NewReader(body))
	if err != nil {
		return crerr.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return crerr.Wrapf(errTransient, "post webhook: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode/100 == 2:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode/100 == 5:
		return crerr.Wrapf(errTransient, "webhook status %d", resp.StatusCode)
	default:
		return crerr.Newf("webhook rejected with status %d", resp.StatusCode)
	}
}

func marshalEnvelope(e envelope) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(e); err != nil {
		return nil, crerr.Wrap(err, "marshal webhook envelope")
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
