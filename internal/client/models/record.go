// Package models defines client-side data models used by the PetGuard CLI.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
)

// Record is the client's view of a care log record.
type Record struct {
	ID                   uint64
	Owner                cryptox.Address
	Category             carelog.Category
	Title                string
	Description          string
	CreatedAt            time.Time
	HasConfidentialField bool
	Handle               fhe.Handle
}

func (r *Record) String() string {
	s := fmt.Sprintf("#%d [%s] %s (%s)", r.ID, r.Category, r.Title, r.CreatedAt.Format(time.RFC3339))
	if r.HasConfidentialField {
		s += " [confidential]"
	}
	return s
}

// LedgerInfo names the deployment inputs must be bound to.
type LedgerInfo struct {
	ChainID         uint64
	RegistryAddress cryptox.Address
}
