package grants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/dbx"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, g *models.AccessGrant) error {
	query := `
		INSERT INTO access_grants (handle, principal, entity, granted_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, g.Handle, g.Principal, g.Entity, g.GrantedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, handle fhe.Handle, principal cryptox.Address) (*models.AccessGrant, error) {
	query := `
		SELECT handle, principal, entity, granted_at
		FROM access_grants
		WHERE handle = $1 AND principal = $2
	`
	g := &models.AccessGrant{}
	err := r.db.QueryRowContext(ctx, query, handle, principal).Scan(&g.Handle, &g.Principal, &g.Entity, &g.GrantedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}
