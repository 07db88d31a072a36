package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/dbx"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/server/models"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/carelogs"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/ciphertexts"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/grants"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/refreshtokens"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memLedger is an in-memory stand-in for every ledger repository.
type memLedger struct {
	mu         sync.Mutex
	records    []*models.CareLog
	owners     map[cryptox.Address][]uint64
	cts        map[fhe.Handle]*models.Ciphertext
	grants     map[fhe.Handle]map[cryptox.Address]*models.AccessGrant
	refresh    map[string]*models.RefreshToken
	listErr    error
	grantErr   error
	refreshErr error
}

func newMemLedger() *memLedger {
	return &memLedger{
		owners:  map[cryptox.Address][]uint64{},
		cts:     map[fhe.Handle]*models.Ciphertext{},
		grants:  map[fhe.Handle]map[cryptox.Address]*models.AccessGrant{},
		refresh: map[string]*models.RefreshToken{},
	}
}

func (m *memLedger) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *memLedger) CareLogs(dbx.DBTX) carelogs.Repository           { return (*memCareLogs)(m) }
func (m *memLedger) Ciphertexts(dbx.DBTX) ciphertexts.Repository     { return (*memCiphertexts)(m) }
func (m *memLedger) Grants(dbx.DBTX) grants.Repository               { return (*memGrants)(m) }
func (m *memLedger) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return (*memRefresh)(m) }

type memCareLogs memLedger

func (r *memCareLogs) AllocateID(context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(len(r.records)), nil
}

func (r *memCareLogs) Create(_ context.Context, rec *models.CareLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID != uint64(len(r.records)) {
		return errors.New("id out of sequence")
	}
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *memCareLogs) AppendOwnerIndex(_ context.Context, owner cryptox.Address, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[owner] = append(r.owners[owner], id)
	return nil
}

func (r *memCareLogs) Get(_ context.Context, id uint64) (*models.CareLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id >= uint64(len(r.records)) {
		return nil, common.ErrorNotFound
	}
	cp := *r.records[id]
	return &cp, nil
}

func (r *memCareLogs) OwnerIDs(_ context.Context, owner cryptox.Address) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(make([]uint64, 0), r.owners[owner]...), nil
}

func (r *memCareLogs) Count(context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(len(r.records)), nil
}

func (r *memCareLogs) List(_ context.Context, fromID uint64, limit int) ([]*models.CareLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.CareLog
	for _, rec := range r.records {
		if rec.ID >= fromID && len(out) < limit {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memCiphertexts memLedger

func (r *memCiphertexts) Create(_ context.Context, c *models.Ciphertext) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cts[c.Handle]; ok {
		return ciphertexts.ErrExists
	}
	r.cts[c.Handle] = c
	return nil
}

func (r *memCiphertexts) Find(_ context.Context, h fhe.Handle) (*models.Ciphertext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cts[h]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

type memGrants memLedger

func (r *memGrants) Create(_ context.Context, g *models.AccessGrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.grantErr != nil {
		return r.grantErr
	}
	if r.grants[g.Handle] == nil {
		r.grants[g.Handle] = map[cryptox.Address]*models.AccessGrant{}
	}
	r.grants[g.Handle][g.Principal] = g
	return nil
}

func (r *memGrants) Find(_ context.Context, h fhe.Handle, p cryptox.Address) (*models.AccessGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.grants[h][p]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return g, nil
}

type memRefresh memLedger

func (r *memRefresh) Create(_ context.Context, principal, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refreshErr != nil {
		return r.refreshErr
	}
	r.refresh[token] = &models.RefreshToken{Principal: principal, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r *memRefresh) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.refresh[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (r *memRefresh) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.refresh, token)
	return nil
}

func (r *memRefresh) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.refresh {
		if t.Expires.Before(now) {
			delete(r.refresh, k)
			n++
		}
	}
	return n, nil
}
