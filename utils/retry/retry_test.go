package retry

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastConfig(maxRetries int) Config {
	return Config{
		MaxRetries:  maxRetries,
		InitialWait: time.Millisecond,
		MaxWait:     2 * time.Millisecond,
		Factor:      2.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(func() (string, error) {
		calls++
		return "ok", nil
	}, IsTransient, fastConfig(3))
	if err != nil || result != "ok" {
		t.Fatalf("Do = %q, %v", result, err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	result, err := Do(func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("429 too many requests")
		}
		return "recovered", nil
	}, IsTransient, fastConfig(5))
	if err != nil || result != "recovered" {
		t.Fatalf("Do = %q, %v", result, err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_DoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	permanent := errors.New("model not found")
	_, err := Do(func() (string, error) {
		calls++
		return "", permanent
	}, IsTransient, fastConfig(5))
	if !errors.Is(err, permanent) {
		t.Errorf("err = %v, want the permanent error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	transient := errors.New("rate limit exceeded")
	_, err := Do(func() (string, error) {
		calls++
		return "", transient
	}, IsTransient, fastConfig(2))
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !errors.Is(err, transient) {
		t.Errorf("err = %v, should wrap the last transient error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want initial attempt plus 2 retries", calls)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("model not found"), false},
		{errors.New("429 Too Many Requests"), true},
		{fmt.Errorf("wrapped: %w", errors.New("connection refused")), true},
		{errors.New("loading model, try again"), true},
	}
	for _, tt := range tests {
		if got := IsTransient(tt.err); got != tt.want {
			t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
