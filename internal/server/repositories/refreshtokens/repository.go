// Package refreshtokens stores the rotating refresh tokens issued to
// logged-in principals.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/petguard/internal/server/models"
)

type Repository interface {
	// Create stores token for principal, valid until now+validity.
	Create(ctx context.Context, principal string, token string, validity time.Duration) error
	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
	// DeleteExpired drops tokens that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
