package utils

import (
	"context"
	"time"
)

// SendWithTimeout blocks until the channel accepts data or the timeout expires.
func SendWithTimeout[T any](channel chan<- T, data T, timeout time.Duration) error {
	ctx, cleanup := context.WithTimeout(context.Background(), timeout)
	defer cleanup()
	select {
	case channel <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
