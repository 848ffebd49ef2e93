package services

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/skillbridge-backend/internal/platform/apperr"
)

// defaultStoreTimeout bounds every database round trip made by a service.
const defaultStoreTimeout = 10 * time.Second

func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}

// asAppErr reports whether err already carries a domain classification, so
// services do not rewrap their own validation failures as persistence ones.
func asAppErr(err error, target **apperr.Error) bool {
	return errors.As(err, target)
}

// storeErr classifies a store failure. Deadline expiry becomes a timeout so
// callers can distinguish slowness from corruption.
func storeErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.NewTimeout(msg, err)
	}
	return apperr.NewPersistenceFailed(msg, err)
}
