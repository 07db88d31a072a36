package carelogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/dbx"
	"github.com/dmitrijs2005/petguard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AllocateID(ctx context.Context) (uint64, error) {
	query := `
		UPDATE ledger_state
		SET next_record_id = next_record_id + 1
		WHERE id
		RETURNING next_record_id - 1
	`
	var id uint64
	if err := r.db.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.CareLog) error {
	query := `
		INSERT INTO care_logs (id, owner, category, title, description, created_at, has_confidential_field, handle)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Owner, int16(rec.Category), rec.Title, rec.Description,
		rec.CreatedAt, rec.HasConfidentialField, rec.Handle)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AppendOwnerIndex(ctx context.Context, owner cryptox.Address, id uint64) error {
	query := `
		INSERT INTO owner_index (owner, position, record_id)
		SELECT $1, COALESCE(MAX(position) + 1, 0), $2
		FROM owner_index
		WHERE owner = $1
	`
	if _, err := r.db.ExecContext(ctx, query, owner, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectCareLog = `
		SELECT id, owner, category, title, description, created_at, has_confidential_field, handle
		FROM care_logs
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCareLog(row rowScanner) (*models.CareLog, error) {
	rec := &models.CareLog{}
	var category int16
	if err := row.Scan(&rec.ID, &rec.Owner, &category, &rec.Title, &rec.Description,
		&rec.CreatedAt, &rec.HasConfidentialField, &rec.Handle); err != nil {
		return nil, err
	}
	if category < 0 || category > 0xff {
		return nil, fmt.Errorf("corrupt category %d for record %d", category, rec.ID)
	}
	c, err := carelog.CategoryFromUint8(uint8(category))
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	rec.Category = c
	return rec, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uint64) (*models.CareLog, error) {
	rec, err := scanCareLog(r.db.QueryRowContext(ctx, selectCareLog+`WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) OwnerIDs(ctx context.Context, owner cryptox.Address) ([]uint64, error) {
	query := `
		SELECT record_id
		FROM owner_index
		WHERE owner = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (uint64, error) {
	var n uint64
	if err := r.db.QueryRowContext(ctx, `SELECT next_record_id FROM ledger_state`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) List(ctx context.Context, fromID uint64, limit int) ([]*models.CareLog, error) {
	rows, err := r.db.QueryContext(ctx, selectCareLog+`WHERE id >= $1 ORDER BY id LIMIT $2`, fromID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.CareLog
	for rows.Next() {
		rec, err := scanCareLog(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
