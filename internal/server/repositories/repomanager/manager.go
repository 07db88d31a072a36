package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/petguard/internal/dbx"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/carelogs"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/ciphertexts"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/grants"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/refreshtokens"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// run the same repositories against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	CareLogs(db dbx.DBTX) carelogs.Repository
	Ciphertexts(db dbx.DBTX) ciphertexts.Repository
	Grants(db dbx.DBTX) grants.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
