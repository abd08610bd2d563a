package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewPacer_Defaults(t *testing.T) {
	pacer := NewPacer(0, 0, zerolog.Nop())

	// 120/min steady state is one request every 500ms.
	if got := pacer.Interval(); got != 500*time.Millisecond {
		t.Errorf("Interval() = %v, want 500ms", got)
	}
}

func TestPacer_Interval(t *testing.T) {
	tests := []struct {
		name      string
		perMinute float64
		want      time.Duration
	}{
		{name: "60 per minute", perMinute: 60, want: time.Second},
		{name: "120 per minute", perMinute: 120, want: 500 * time.Millisecond},
		{name: "600 per minute", perMinute: 600, want: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pacer := NewPacer(tt.perMinute, 1, zerolog.Nop())
			if got := pacer.Interval(); got != tt.want {
				t.Errorf("Interval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPacer_SetQuota(t *testing.T) {
	pacer := NewPacer(120, 1, zerolog.Nop())

	pacer.SetQuota(60)
	if got := pacer.Interval(); got != time.Second {
		t.Errorf("Interval() after SetQuota(60) = %v, want 1s", got)
	}

	// Non-positive quotas are ignored.
	pacer.SetQuota(0)
	if got := pacer.Interval(); got != time.Second {
		t.Errorf("Interval() after SetQuota(0) = %v, want unchanged 1s", got)
	}
}

func TestPacer_WaitSpacesRequests(t *testing.T) {
	// 600/min = 100ms spacing, burst 1: the second Wait must block.
	pacer := NewPacer(600, 1, zerolog.Nop())
	ctx := context.Background()

	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("first Wait error: %v", err)
	}

	start := time.Now()
	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("second Wait error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("second Wait returned after %v, want roughly 100ms spacing", elapsed)
	}
}

func TestPacer_WaitRespectsContext(t *testing.T) {
	// One request per minute: the second Wait would block for ~60s.
	pacer := NewPacer(1, 1, zerolog.Nop())

	if err := pacer.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := pacer.Wait(ctx); err == nil {
		t.Error("second Wait = nil, want context error")
	}
}
