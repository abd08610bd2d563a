package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        10 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetryWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), zerolog.Nop(), fastRetryConfig(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), zerolog.Nop(), fastRetryConfig(), func() error {
		calls++
		if calls < 3 {
			return &APIError{StatusCode: 503, Class: ErrorClassServer, Message: "503"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_ClientErrorReturnsImmediately(t *testing.T) {
	calls := 0
	apiErr := &APIError{StatusCode: 404, Class: ErrorClassClient, Message: "404"}
	err := retryWithBackoff(context.Background(), zerolog.Nop(), fastRetryConfig(), func() error {
		calls++
		return apiErr
	})
	if !errors.Is(err, apiErr) {
		t.Fatalf("error = %v, want the original APIError", err)
	}
	if errors.Is(err, ErrRetryExhausted) {
		t.Error("client errors must not be reported as retry exhaustion")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_Exhaustion(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), zerolog.Nop(), fastRetryConfig(), func() error {
		calls++
		return &APIError{StatusCode: 500, Class: ErrorClassServer, Message: "500"}
	})
	if !errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("error = %v, want ErrRetryExhausted", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Error("exhaustion error should carry the last APIError")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_ContextCancelledDuringBackoff(t *testing.T) {
	cfg := fastRetryConfig()
	cfg.InitialBackoff = time.Minute

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- retryWithBackoff(ctx, zerolog.Nop(), cfg, func() error {
			calls++
			return &APIError{StatusCode: 500, Class: ErrorClassServer, Message: "500"}
		})
	}()

	// Let the first attempt fail and enter backoff, then cancel.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, ErrContextCancelled) {
			t.Fatalf("error = %v, want ErrContextCancelled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry did not abort on context cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
