package fhe

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrBindingMismatch = errors.New("proof bound to a different context")
	ErrHandleMismatch  = errors.New("handle does not match ciphertext")
	ErrTypeNotAccepted = errors.New("declared type not accepted")
	ErrInvalidProof    = errors.New("proof of knowledge failed")
	ErrNoKey           = errors.New("network key not loaded")
	ErrDecrypt         = errors.New("ciphertext cannot be opened")
)

// Scheme produces and checks encrypted inputs for one network.
type Scheme interface {
	// Encrypt draws all randomness from rand, so two calls with a fresh
	// reader never return the same handle.
	Encrypt(rand io.Reader, value uint32, b Binding) (Handle, *Proof, error)
	// Verify is deterministic and has no side effects.
	Verify(h Handle, p *Proof, b Binding) error
	// Decrypt opens a stored ciphertext. Only the decryption authority
	// holds what the production scheme needs for this.
	Decrypt(h Handle, ciphertext []byte, b Binding) (uint32, error)
}

// checkEnvelope runs the scheme independent part of verification.
func checkEnvelope(h Handle, p *Proof, b Binding) error {
	if p == nil {
		return fmt.Errorf("%w: nil", ErrMalformedProof)
	}
	if p.Version != ProofVersion {
		return fmt.Errorf("%w: version %d", ErrMalformedProof, p.Version)
	}
	if p.Binding() != b {
		return ErrBindingMismatch
	}
	if !p.Type.Accepted() {
		return fmt.Errorf("%w: %s", ErrTypeNotAccepted, p.Type)
	}
	if p.Handle != h {
		return fmt.Errorf("%w: proof names another handle", ErrHandleMismatch)
	}
	if h.Version() != HandleVersion || h.ChainID() != b.ChainID || h.Type() != p.Type {
		return fmt.Errorf("%w: metadata", ErrHandleMismatch)
	}
	if ComputeHandle(p.Ciphertext, h.Index(), b, p.Type) != h {
		return ErrHandleMismatch
	}
	return nil
}

func encodeValue(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func decodeValue(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: plaintext length %d", ErrDecrypt, len(b))
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
