package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/client/client"
	"github.com/dmitrijs2005/petguard/internal/client/models"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
)

var ErrNoConfidentialField = errors.New("record has no confidential field")

// KMS is what the client needs from the decryption authority.
type KMS interface {
	KeySource
	Relayer
}

// RecordService exposes care log operations to the CLI.
type RecordService interface {
	// Create appends a record. A nil value leaves it without a
	// confidential field.
	Create(ctx context.Context, signer cryptox.Signer, category carelog.Category, title, description string, value *uint64) (uint64, error)
	Get(ctx context.Context, id uint64) (*models.Record, error)
	List(ctx context.Context, owner cryptox.Address) ([]*models.Record, error)
	Total(ctx context.Context) (uint64, error)
	Decrypt(ctx context.Context, id uint64, signer cryptox.Signer) (uint32, error)
}

type recordService struct {
	client   client.Client
	kms      KMS
	networks fhe.Networks
	opts     DecryptorOptions

	mu  sync.Mutex
	enc *Encryptor
	dec *Decryptor
}

func NewRecordService(c client.Client, k KMS, networks fhe.Networks, opts DecryptorOptions) RecordService {
	return &recordService{client: c, kms: k, networks: networks, opts: opts}
}

// setup binds the encryptor and decryptor to the ledger's network on first
// use.
func (s *recordService) setup(ctx context.Context) (*models.LedgerInfo, error) {
	info, err := s.client.LedgerInfo(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enc != nil {
		return info, nil
	}

	n, err := s.networks.Lookup(info.ChainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}
	s.enc = NewEncryptor(s.networks, info.ChainID, s.kms)
	s.dec = NewDecryptor(n, s.kms, s.opts)
	return info, nil
}

func (s *recordService) Create(ctx context.Context, signer cryptox.Signer, category carelog.Category, title, description string, value *uint64) (uint64, error) {
	if !category.Valid() {
		return 0, fmt.Errorf("%w: unknown category %d", common.ErrValidation, uint8(category))
	}
	if title == "" {
		return 0, fmt.Errorf("%w: empty title", common.ErrValidation)
	}

	handle, proof := fhe.ZeroHandle, []byte(nil)
	if value != nil {
		info, err := s.setup(ctx)
		if err != nil {
			return 0, err
		}
		if err := s.enc.ensureKey(ctx); err != nil {
			return 0, err
		}
		handle, proof, err = s.enc.Encrypt(*value, info.RegistryAddress, signer.Address())
		if err != nil {
			return 0, err
		}
	}

	return s.client.CreateRecord(ctx, uint8(category), title, description, handle, proof)
}

func (s *recordService) Get(ctx context.Context, id uint64) (*models.Record, error) {
	return s.client.GetRecord(ctx, id)
}

// List returns the owner's records in creation order.
func (s *recordService) List(ctx context.Context, owner cryptox.Address) ([]*models.Record, error) {
	ids, err := s.client.OwnerRecordIDs(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.client.GetRecord(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", id, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *recordService) Total(ctx context.Context) (uint64, error) {
	return s.client.TotalRecords(ctx)
}

func (s *recordService) Decrypt(ctx context.Context, id uint64, signer cryptox.Signer) (uint32, error) {
	r, err := s.client.GetRecord(ctx, id)
	if err != nil {
		return 0, err
	}
	if !r.HasConfidentialField {
		return 0, ErrNoConfidentialField
	}
	info, err := s.setup(ctx)
	if err != nil {
		return 0, err
	}
	return s.dec.UserDecrypt(ctx, r.Handle, info.RegistryAddress, signer)
}
