package client

import (
	"context"

	"github.com/dmitrijs2005/petguard/internal/client/models"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	LedgerInfo(ctx context.Context) (*models.LedgerInfo, error)
	Login(ctx context.Context, signer cryptox.Signer) error
	CreateRecord(ctx context.Context, category uint8, title, description string, handle fhe.Handle, proof []byte) (uint64, error)
	GetRecord(ctx context.Context, id uint64) (*models.Record, error)
	OwnerRecordIDs(ctx context.Context, owner cryptox.Address) ([]uint64, error)
	TotalRecords(ctx context.Context) (uint64, error)
}
