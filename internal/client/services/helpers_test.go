package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/client/models"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/kms"
	"github.com/dmitrijs2005/petguard/internal/logging"
	"github.com/stretchr/testify/require"
)

var registry = cryptox.MustParseAddress("0x5fbdb2315678afecb367f032d93f642f64180aa3")

type grantKey struct {
	handle    fhe.Handle
	principal cryptox.Address
}

// fakeLedger implements client.Client and kms.GrantSource in memory.
type fakeLedger struct {
	mu      sync.Mutex
	chainID uint64
	records []*models.Record
	grants  map[grantKey]*kms.Grant

	loginErr   error
	pingErr    error
	createErr  error
	loggedIn   cryptox.Address
	closeCalls int
}

func newFakeLedger(chainID uint64) *fakeLedger {
	return &fakeLedger{chainID: chainID, grants: map[grantKey]*kms.Grant{}}
}

func (f *fakeLedger) Close() error { f.closeCalls++; return nil }

func (f *fakeLedger) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeLedger) LedgerInfo(ctx context.Context) (*models.LedgerInfo, error) {
	return &models.LedgerInfo{ChainID: f.chainID, RegistryAddress: registry}, nil
}

func (f *fakeLedger) Login(ctx context.Context, signer cryptox.Signer) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = signer.Address()
	return nil
}

func (f *fakeLedger) CreateRecord(ctx context.Context, category uint8, title, description string, handle fhe.Handle, proof []byte) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uint64(len(f.records))
	r := &models.Record{
		ID: id, Owner: f.loggedIn, Title: title, Description: description,
		CreatedAt: time.Unix(1700000000+int64(id), 0), HasConfidentialField: !handle.IsZero(), Handle: handle,
	}
	r.Category = carelog.Category(category)
	if !handle.IsZero() {
		p, err := fhe.UnmarshalProof(proof)
		if err != nil {
			return 0, common.ErrProofRejected
		}
		f.grants[grantKey{handle, f.loggedIn}] = &kms.Grant{
			Allowed: true, Entity: p.Entity, Submitter: p.Submitter, Ciphertext: p.Ciphertext,
		}
	}
	f.records = append(f.records, r)
	return id, nil
}

func (f *fakeLedger) GetRecord(ctx context.Context, id uint64) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id >= uint64(len(f.records)) {
		return nil, common.ErrorNotFound
	}
	return f.records[id], nil
}

func (f *fakeLedger) OwnerRecordIDs(ctx context.Context, owner cryptox.Address) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uint64
	for _, r := range f.records {
		if r.Owner == owner {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (f *fakeLedger) TotalRecords(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.records)), nil
}

func (f *fakeLedger) LookupGrant(_ context.Context, h fhe.Handle, p cryptox.Address) (*kms.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.grants[grantKey{h, p}]; ok {
		return g, nil
	}
	return &kms.Grant{}, nil
}

// localKMS serves both KMS endpoints from an in-process kms.Service.
type localKMS struct {
	svc *kms.Service

	mu          sync.Mutex
	calls       int
	unavailable int
}

func newLocalKMS(t *testing.T, chainID uint64, key *fhe.NetworkKey, grants kms.GrantSource) *localKMS {
	t.Helper()
	k, err := kms.NewKeyring(fhe.DefaultNetworks(), chainID, key)
	require.NoError(t, err)
	return &localKMS{svc: kms.NewService(k, grants, logging.NopLogger{})}
}

func (l *localKMS) Keys(ctx context.Context) (*kms.KeysResponse, error) {
	resp := l.svc.Keys()
	return &resp, nil
}

func (l *localKMS) UserDecrypt(ctx context.Context, req *kms.UserDecryptRequest) (*kms.UserDecryptResponse, error) {
	l.mu.Lock()
	l.calls++
	fail := l.unavailable > 0
	if fail {
		l.unavailable--
	}
	l.mu.Unlock()
	if fail {
		return nil, common.ErrUnavailable
	}
	return l.svc.Decrypt(ctx, req)
}

func (l *localKMS) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
