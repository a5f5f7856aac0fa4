package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) StatusCode() int { return int(e) }

func restErr(code int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: code}}
}

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, RateLimitDelay: time.Millisecond, Multiplier: 2}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rest error", restErr(429), 429},
		{"wrapped rest error", fmt.Errorf("register: %w", restErr(503)), 503},
		{"coded error", statusErr(500), 500},
		{"plain error", errors.New("dial tcp: timeout"), 0},
		{"rest error without response", &discordgo.RESTError{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", restErr(429), true},
		{"server error", restErr(502), true},
		{"transport error", errors.New("connection reset"), true},
		{"bad request", restErr(400), false},
		{"unauthorized", restErr(401), false},
		{"fatal", Fatal(errors.New("stop")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), nil, fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return restErr(503)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoStopsOnClientError(t *testing.T) {
	calls := 0
	want := restErr(403)
	err := Do(context.Background(), nil, fastConfig(5), func() error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("expected the client error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestDoGivesUp(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, _ error) { retried = append(retried, attempt) }

	err := Do(context.Background(), nil, cfg, func() error {
		calls++
		return restErr(500)
	})
	if err == nil || StatusCode(err) != 500 {
		t.Errorf("expected wrapped 500, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if len(retried) != 2 {
		t.Errorf("expected 2 retry callbacks, got %v", retried)
	}
}

func TestDoHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := Do(ctx, nil, fastConfig(3), func() error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("expected fn not to run")
	}
}

func TestLimiterAdjusts(t *testing.T) {
	lim := NewAdaptiveLimiter(4, 1, 5, 1, 0.5)
	lim.Success()
	if got := lim.Limit(); got != 5 {
		t.Errorf("expected 5 after success, got %v", got)
	}
	lim.Success()
	if got := lim.Limit(); got != 5 {
		t.Errorf("expected max of 5, got %v", got)
	}
	lim.RateLimited()
	if got := lim.Limit(); got != 2.5 {
		t.Errorf("expected 2.5 after rate limit, got %v", got)
	}
	lim.Success()
	if got := lim.Limit(); got != 2.5 {
		t.Errorf("expected no increase during quiet period, got %v", got)
	}
	lim.RateLimited()
	lim.RateLimited()
	if got := lim.Limit(); got != 1 {
		t.Errorf("expected min of 1, got %v", got)
	}
}

func TestDoRateLimitSlowsLimiter(t *testing.T) {
	lim := NewAdaptiveLimiter(100, 1, 100, 1, 0.5)
	calls := 0
	err := Do(context.Background(), lim, fastConfig(3), func() error {
		calls++
		if calls == 1 {
			return restErr(http.StatusTooManyRequests)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := lim.Limit(); got != 50 {
		t.Errorf("expected limiter halved to 50, got %v", got)
	}
}
