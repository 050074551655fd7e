package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bluff-this/internal/game"
)

// retryPolicy is the single retry abstraction applied at the gateway
// boundary: attempt, wait a fixed delay, attempt again, then report the
// store unavailable. Errors the storage layer decided on its own (row
// missing, unique violation) are surfaced immediately instead of retried.
type retryPolicy struct {
	attempts int
	delay    time.Duration
}

func newRetryPolicy(attempts int, delay time.Duration) retryPolicy {
	if attempts < 1 {
		attempts = 1
	}
	return retryPolicy{attempts: attempts, delay: delay}
}

func (p retryPolicy) run(op func() error) error {
	var err error
	for attempt := 0; attempt < p.attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if permanent(err) {
			return err
		}
		if attempt < p.attempts-1 {
			time.Sleep(p.delay)
		}
	}
	return fmt.Errorf("%w: %v", game.ErrUnavailable, err)
}

func permanent(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, game.ErrNotFound) ||
		errors.Is(err, game.ErrAlreadyRecorded)
}
