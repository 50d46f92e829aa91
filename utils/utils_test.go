package utils

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "€ 0.00"},
		{2030, "€ 2,030.00"},
		{125.5, "€ 125.50"},
		{1234567.891, "€ 1,234,567.89"},
		{-500, "-€ 500.00"},
		{999.999, "€ 1,000.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	if got := RoundMoney(2030.004).String(); got != "2030" {
		t.Errorf("RoundMoney(2030.004) = %s, want 2030", got)
	}
	if got := RoundMoney(0.125).StringFixed(2); got != "0.13" {
		t.Errorf("RoundMoney(0.125) = %s, want 0.13", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LevelWarn)

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line %d", 1)
	logger.Error("error line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("messages below warn should be dropped, got:\n%s", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "warn line 1") {
		t.Errorf("missing warn line in:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR]") {
		t.Errorf("missing error line in:\n%s", out)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := RetryBackoff
	RetryBackoff = time.Millisecond
	defer func() { RetryBackoff = old }()

	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LevelError)

	calls := 0
	err := RetryWithBackoff(context.Background(), 3, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, logger)
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	sentinel := errors.New("always")
	err = RetryWithBackoff(context.Background(), 2, func(context.Context) error { return sentinel }, logger)
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped sentinel, got %v", err)
	}
}

func TestRetryWithBackoffCancelled(t *testing.T) {
	old := RetryBackoff
	RetryBackoff = time.Hour
	defer func() { RetryBackoff = old }()

	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LevelError)

	calls := 0
	err := RetryWithBackoff(ctx, 5, func(context.Context) error {
		calls++
		cancel()
		return errors.New("boom")
	}, logger)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRateLimiterSpacesCalls(t *testing.T) {
	rl := NewRateLimiter(20)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("three calls took %v, want at least 40ms", elapsed)
	}
}

func TestRateLimiterCancelled(t *testing.T) {
	rl := NewRateLimiter(int(time.Hour / time.Millisecond))
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFormatMoneyNonFinite(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{math.Inf(1), "€ +Inf"},
		{math.Inf(-1), "€ -Inf"},
		{math.NaN(), "€ NaN"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
