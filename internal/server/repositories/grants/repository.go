// Package grants is the access control ledger: one append-only row per
// (handle, principal) allowed to request decryption.
package grants

import (
	"context"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, g *models.AccessGrant) error
	// Find returns common.ErrorNotFound when no grant exists.
	Find(ctx context.Context, handle fhe.Handle, principal cryptox.Address) (*models.AccessGrant, error)
}
