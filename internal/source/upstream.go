package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned while the breaker rejects upstream calls.
var ErrCircuitOpen = gobreaker.ErrOpenState

var upstreamBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "upstream_circuit_breaker_state",
		Help: "Current state of the upstream circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// UpstreamConfig holds HTTP and breaker settings for an upstream API.
type UpstreamConfig struct {
	Name         string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Consecutive failures that open the breaker. 0 disables tripping.
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// DefaultUpstreamConfig returns a 10s timeout, no retries and a breaker that
// opens after five consecutive failures.
func DefaultUpstreamConfig(name string) UpstreamConfig {
	return UpstreamConfig{
		Name:               name,
		Timeout:            10 * time.Second,
		MaxRetries:         0,
		RetryWaitMin:       200 * time.Millisecond,
		RetryWaitMax:       2 * time.Second,
		BreakerMaxFailures: 5,
		BreakerOpenTimeout: 30 * time.Second,
	}
}

// Upstream fetches JSON arrays from external APIs.
type Upstream struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]catalog.RawRecord]
	config     UpstreamConfig
	logger     zerolog.Logger
}

// NewUpstream creates an upstream client. A nil httpClient gets a default
// one bounded by cfg.Timeout.
func NewUpstream(cfg UpstreamConfig, httpClient *http.Client, logger zerolog.Logger) *Upstream {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger = logger.With().Str("component", "upstream").Str("upstream", cfg.Name).Logger()

	settings := gobreaker.Settings{
		Name:    cfg.Name,
		Timeout: cfg.BreakerOpenTimeout,
		// A caller giving up is not an upstream fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return cfg.BreakerMaxFailures > 0 && counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			upstreamBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	upstreamBreakerState.WithLabelValues(cfg.Name).Set(0)

	return &Upstream{
		httpClient: httpClient,
		breaker:    gobreaker.NewCircuitBreaker[[]catalog.RawRecord](settings),
		config:     cfg,
		logger:     logger,
	}
}

// FetchArray GETs url and decodes a JSON array of objects. A non-2xx status,
// a transport failure or a body that is not an array is an error.
func (u *Upstream) FetchArray(ctx context.Context, url string) ([]catalog.RawRecord, error) {
	records, err := u.breaker.Execute(func() ([]catalog.RawRecord, error) {
		return u.fetchWithRetry(ctx, url)
	})
	if err != nil {
		u.logger.Error().Err(err).Str("url", url).Msg("upstream fetch failed")
		return nil, err
	}

	u.logger.Debug().Str("url", url).Int("records", len(records)).Msg("upstream fetch complete")
	return records, nil
}

// State returns the current breaker state.
func (u *Upstream) State() gobreaker.State {
	return u.breaker.State()
}

func (u *Upstream) fetchWithRetry(ctx context.Context, url string) ([]catalog.RawRecord, error) {
	var lastErr error
	for attempt := 0; attempt <= u.config.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := u.config.RetryWaitMin * time.Duration(1<<uint(attempt-1))
			if wait > u.config.RetryWaitMax {
				wait = u.config.RetryWaitMax
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		records, retryable, err := u.fetchOnce(ctx, url)
		if err == nil {
			return records, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		u.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("retrying upstream request")
	}
	return nil, lastErr
}

func (u *Upstream) fetchOnce(ctx context.Context, url string) ([]catalog.RawRecord, bool, error) {
	if u.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("create GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, isRetryableError(err), fmt.Errorf("upstream %s request failed: %w", u.config.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		retryable := resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented
		return nil, retryable, fmt.Errorf("upstream %s returned status %d: %s", u.config.Name, resp.StatusCode, string(body))
	}

	records, err := catalog.DecodeArray(resp.Body)
	if err != nil {
		return nil, false, err
	}
	return records, false, nil
}

func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
