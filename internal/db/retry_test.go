package db

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"bluff-this/internal/game"
)

func TestRetryRecoversFromOneFailure(t *testing.T) {
	policy := newRetryPolicy(2, time.Millisecond)
	calls := 0
	err := policy.run(func() error {
		calls++
		if calls == 1 {
			return errors.New("connection reset")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestRetryGivesUpAsUnavailable(t *testing.T) {
	policy := newRetryPolicy(2, time.Millisecond)
	calls := 0
	err := policy.run(func() error {
		calls++
		return errors.New("connection reset")
	})
	if !errors.Is(err, game.ErrUnavailable) {
		t.Fatalf("exhausted retries = %v, want ErrUnavailable", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want exactly one retry", calls)
	}
}

func TestRetryDoesNotRepeatPermanentErrors(t *testing.T) {
	policy := newRetryPolicy(3, time.Millisecond)
	for _, permanentErr := range []error{gorm.ErrRecordNotFound, gorm.ErrDuplicatedKey} {
		calls := 0
		err := policy.run(func() error {
			calls++
			return permanentErr
		})
		if !errors.Is(err, permanentErr) {
			t.Fatalf("run = %v, want %v passed through", err, permanentErr)
		}
		if calls != 1 {
			t.Fatalf("calls = %d for %v, want 1", calls, permanentErr)
		}
	}
}

func TestRetryClampsAttempts(t *testing.T) {
	policy := newRetryPolicy(0, 0)
	calls := 0
	_ = policy.run(func() error {
		calls++
		return errors.New("down")
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
