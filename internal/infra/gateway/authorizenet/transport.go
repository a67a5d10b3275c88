package authorizenet

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/pkg/backoff"
	"storefront-checkout/internal/pkg/errs"
)

const (
	retryBase       = 200 * time.Millisecond
	maxResponseSize = 1 << 20
	breakerTimeout  = 30 * time.Second
	breakerTrips    = 5
)

var errServerStatus = errs.New("gateway returned a server error")

// Transport posts request bodies to the gateway behind a circuit breaker.
// Every error it returns is classified payment.ErrTransport.
type Transport struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
	wait    func(attempt int) time.Duration
}

func NewTransport(client *http.Client, logger *slog.Logger) *Transport {
	t := &Transport{
		client: client,
		logger: logger,
		wait:   func(attempt int) time.Duration { return backoff.Exponential(attempt, retryBase) },
	}
	t.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        Name,
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= breakerTrips
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up says nothing about the gateway
			return err == nil || errs.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("gateway circuit breaker state changed",
				slog.String("gateway", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	return t
}

// WithBackoff replaces the retry wait, mostly so tests do not sleep.
func (t *Transport) WithBackoff(wait func(attempt int) time.Duration) *Transport {
	t.wait = wait
	return t
}

// Post sends body once.
func (t *Transport) Post(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
	resp, err := t.breaker.Execute(func() ([]byte, error) {
		return t.do(ctx, url, contentType, body)
	})
	if err != nil {
		return nil, payment.TransportFailure(err, "gateway request failed")
	}
	return resp, nil
}

// PostWithRetry sends body up to attempts times, retrying only when no response was received.
func (t *Transport) PostWithRetry(ctx context.Context, url, contentType string, body []byte, attempts int) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := t.Post(ctx, url, contentType, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == attempts-1 {
			break
		}
		wait := t.wait(attempt)
		t.logger.Warn("retrying gateway request",
			slog.Int("attempt", attempt+1),
			slog.Int64("wait_ms", wait.Milliseconds()),
			slog.String("error", err.Error()))
		if err := backoff.Sleep(ctx, wait); err != nil {
			return nil, payment.TransportFailure(err, "gateway request cancelled")
		}
	}
	return nil, lastErr
}

func (t *Transport) do(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "failed to reach gateway")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read gateway response")
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errs.Mark(errs.Newf("gateway status %d", resp.StatusCode), errServerStatus)
	}
	return data, nil
}
