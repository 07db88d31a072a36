// Package carelogs persists care log records, the per-owner index and the
// ledger's record counter.
package carelogs

import (
	"context"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/server/models"
)

type Repository interface {
	// AllocateID takes the ledger_state row lock and returns the next id.
	// Must run inside the create transaction; the lock is held until it ends.
	AllocateID(ctx context.Context) (uint64, error)
	Create(ctx context.Context, r *models.CareLog) error
	AppendOwnerIndex(ctx context.Context, owner cryptox.Address, id uint64) error
	// Get returns common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id uint64) (*models.CareLog, error)
	// OwnerIDs returns the owner's ids in creation order.
	OwnerIDs(ctx context.Context, owner cryptox.Address) ([]uint64, error)
	Count(ctx context.Context) (uint64, error)
	// List returns up to limit records with id >= fromID in id order.
	List(ctx context.Context, fromID uint64, limit int) ([]*models.CareLog, error)
}
