// Package models holds the ledger's persisted entities.
package models

import (
	"time"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
)

// CareLog is an immutable record. HasConfidentialField is true exactly
// when Handle is non-zero.
type CareLog struct {
	ID                   uint64
	Owner                cryptox.Address
	Category             carelog.Category
	Title                string
	Description          string
	CreatedAt            time.Time
	HasConfidentialField bool
	Handle               fhe.Handle
}

// Ciphertext is the encrypted material behind a handle, stored for the
// decryption authority together with the binding it was produced under.
type Ciphertext struct {
	Handle     fhe.Handle
	Entity     cryptox.Address
	Submitter  cryptox.Address
	Ciphertext []byte
	CreatedAt  time.Time
}

// AccessGrant permits Principal to request decryption of Handle.
type AccessGrant struct {
	Handle    fhe.Handle
	Principal cryptox.Address
	Entity    cryptox.Address
	GrantedAt time.Time
}

// GrantInfo is what the decryption authority learns from a grant lookup.
type GrantInfo struct {
	Allowed    bool
	Entity     cryptox.Address
	Submitter  cryptox.Address
	Ciphertext []byte
}
