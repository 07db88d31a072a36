// Package ciphertexts stores the encrypted material behind handles. Only
// the decryption authority reads it, through the grant lookup.
package ciphertexts

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/server/models"
)

// ErrExists is returned by Create when the handle is already stored.
var ErrExists = errors.New("ciphertext already stored")

type Repository interface {
	Create(ctx context.Context, c *models.Ciphertext) error
	// Find returns common.ErrorNotFound for unknown handles.
	Find(ctx context.Context, handle fhe.Handle) (*models.Ciphertext, error)
}
