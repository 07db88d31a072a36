package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/dbx"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/logging"
	"github.com/dmitrijs2005/petguard/internal/server/models"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/ciphertexts"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/repomanager"
)

// LedgerInfo identifies the deployment clients must bind their inputs to.
type LedgerInfo struct {
	ChainID         uint64
	RegistryAddress cryptox.Address
}

// RegistryService is the care log registry. Records are immutable; the
// only write is CreateRecord, which stores the record, its owner index
// entry, the ciphertext and the owner's access grant atomically.
type RegistryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	verifier    *ProofVerifier
	registry    cryptox.Address
	clock       Clock
	logger      logging.Logger
}

func NewRegistryService(db *sql.DB, m repomanager.RepositoryManager, verifier *ProofVerifier,
	registry cryptox.Address, clock Clock, logger logging.Logger) *RegistryService {
	if clock == nil {
		clock = realClock{}
	}
	return &RegistryService{
		db:          db,
		repomanager: m,
		verifier:    verifier,
		registry:    registry,
		clock:       clock,
		logger:      logger.With("module", "registry"),
	}
}

func (s *RegistryService) Info() LedgerInfo {
	return LedgerInfo{ChainID: s.verifier.ChainID(), RegistryAddress: s.registry}
}

// CreateRecord validates and stores a new record for owner and returns its
// id. A zero handle means no confidential field and requires an empty
// proof; a non-zero handle requires a proof bound to (registry, owner).
func (s *RegistryService) CreateRecord(ctx context.Context, owner cryptox.Address, category uint8,
	title, description string, handle fhe.Handle, proof []byte) (uint64, error) {

	if owner.IsZero() {
		return 0, fmt.Errorf("%w: zero owner", common.ErrValidation)
	}
	if title == "" {
		return 0, fmt.Errorf("%w: empty title", common.ErrValidation)
	}
	cat, err := carelog.CategoryFromUint8(category)
	if err != nil {
		return 0, err
	}

	confidential := !handle.IsZero()
	if confidential != (len(proof) > 0) {
		return 0, fmt.Errorf("%w: handle and proof must be given together", common.ErrValidation)
	}

	var accepted *fhe.Proof
	if confidential {
		accepted, err = s.verifier.Accept(handle, proof, s.registry, owner)
		if err != nil {
			s.logger.Warn(ctx, "proof rejected", "owner", owner, "handle", handle, "reason", err)
			return 0, err
		}
	}

	now := s.clock.Now().UTC().Truncate(time.Microsecond)
	var id uint64

	err = dbx.WithTx(ctx, s.db, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		records := s.repomanager.CareLogs(tx)

		var err error
		id, err = records.AllocateID(ctx)
		if err != nil {
			return fmt.Errorf("allocate id: %w", err)
		}

		// AllocateID holds the ledger row lock from here on.
		if confidential {
			_, err := s.repomanager.Ciphertexts(tx).Find(ctx, handle)
			switch {
			case err == nil:
				return fmt.Errorf("%w: handle already submitted", common.ErrProofRejected)
			case !errors.Is(err, common.ErrorNotFound):
				return fmt.Errorf("lookup ciphertext: %w", err)
			}
		}

		rec := &models.CareLog{
			ID:                   id,
			Owner:                owner,
			Category:             cat,
			Title:                title,
			Description:          description,
			CreatedAt:            now,
			HasConfidentialField: confidential,
			Handle:               handle,
		}
		if err := records.Create(ctx, rec); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		if err := records.AppendOwnerIndex(ctx, owner, id); err != nil {
			return fmt.Errorf("owner index: %w", err)
		}
		if !confidential {
			return nil
		}

		if err := s.repomanager.Ciphertexts(tx).Create(ctx, &models.Ciphertext{
			Handle:     handle,
			Entity:     s.registry,
			Submitter:  owner,
			Ciphertext: accepted.Ciphertext,
			CreatedAt:  now,
		}); err != nil {
			if errors.Is(err, ciphertexts.ErrExists) {
				return fmt.Errorf("%w: %w", common.ErrProofRejected, err)
			}
			return fmt.Errorf("store ciphertext: %w", err)
		}
		if err := s.repomanager.Grants(tx).Create(ctx, &models.AccessGrant{
			Handle:    handle,
			Principal: owner,
			Entity:    s.registry,
			GrantedAt: now,
		}); err != nil {
			return fmt.Errorf("grant access: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrProofRejected) {
			s.logger.Warn(ctx, "proof replayed", "owner", owner, "handle", handle)
			return 0, err
		}
		s.logger.Error(ctx, "create record failed", "owner", owner, "error", err)
		return 0, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "record created", "id", id, "owner", owner, "category", cat, "confidential", confidential)
	return id, nil
}

// GetRecord returns common.ErrorNotFound for ids that were never assigned.
func (s *RegistryService) GetRecord(ctx context.Context, id uint64) (*models.CareLog, error) {
	rec, err := s.repomanager.CareLogs(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return rec, nil
}

// GetOwnerRecordIDs lists owner's record ids in creation order. An owner
// without records gets an empty, non-nil slice.
func (s *RegistryService) GetOwnerRecordIDs(ctx context.Context, owner cryptox.Address) ([]uint64, error) {
	ids, err := s.repomanager.CareLogs(s.db).OwnerIDs(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return ids, nil
}

func (s *RegistryService) GetTotalRecords(ctx context.Context) (uint64, error) {
	n, err := s.repomanager.CareLogs(s.db).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return n, nil
}

// LookupGrant tells the decryption authority whether principal may decrypt
// handle and, if so, hands over the ciphertext and its binding. A missing
// grant is a normal answer, not an error.
func (s *RegistryService) LookupGrant(ctx context.Context, handle fhe.Handle, principal cryptox.Address) (*models.GrantInfo, error) {
	if handle.IsZero() {
		return &models.GrantInfo{}, nil
	}

	grant, err := s.repomanager.Grants(s.db).Find(ctx, handle, principal)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &models.GrantInfo{}, nil
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	ct, err := s.repomanager.Ciphertexts(s.db).Find(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext for granted handle: %w", common.ErrorInternal, err)
	}

	return &models.GrantInfo{
		Allowed:    true,
		Entity:     grant.Entity,
		Submitter:  ct.Submitter,
		Ciphertext: ct.Ciphertext,
	}, nil
}
