package fhe

import (
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
)

const (
	mockSeedLen      = 16
	mockMaskDomain   = "petguard/mock/mask"
	mockCommitDomain = "petguard/mock/commit"
)

// MockScheme backs the local development network. The ciphertext is
// seed(16) || value XOR keccak(seed, binding)[:4] and the proof is a
// keccak commitment over the handle, binding and ciphertext. It offers no
// confidentiality and needs no key.
type MockScheme struct{}

var _ Scheme = MockScheme{}

func (MockScheme) Encrypt(rand io.Reader, value uint32, b Binding) (Handle, *Proof, error) {
	seed := make([]byte, mockSeedLen)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return ZeroHandle, nil, fmt.Errorf("mock encrypt: %w", err)
	}

	ct := make([]byte, 0, mockSeedLen+4)
	ct = append(ct, seed...)
	ct = append(ct, xorMask(encodeValue(value), seed, b)...)

	h := ComputeHandle(ct, 0, b, Uint32)
	commit := mockCommitment(h, b, ct)

	return h, &Proof{
		Version:    ProofVersion,
		Handle:     h,
		Type:       Uint32,
		ChainID:    b.ChainID,
		Entity:     b.Entity,
		Submitter:  b.Submitter,
		Ciphertext: ct,
		Commitment: commit[:],
	}, nil
}

func (MockScheme) Verify(h Handle, p *Proof, b Binding) error {
	if err := checkEnvelope(h, p, b); err != nil {
		return err
	}
	if len(p.Ciphertext) != mockSeedLen+4 {
		return fmt.Errorf("%w: ciphertext length %d", ErrMalformedProof, len(p.Ciphertext))
	}
	if len(p.Response) != 0 {
		return fmt.Errorf("%w: unexpected response", ErrMalformedProof)
	}
	want := mockCommitment(h, b, p.Ciphertext)
	if subtle.ConstantTimeCompare(want[:], p.Commitment) != 1 {
		return ErrInvalidProof
	}
	return nil
}

func (MockScheme) Decrypt(h Handle, ciphertext []byte, b Binding) (uint32, error) {
	if !h.Type().Accepted() {
		return 0, fmt.Errorf("%w: %v %s", ErrDecrypt, ErrTypeNotAccepted, h.Type())
	}
	if len(ciphertext) != mockSeedLen+4 {
		return 0, fmt.Errorf("%w: ciphertext length %d", ErrDecrypt, len(ciphertext))
	}
	if ComputeHandle(ciphertext, h.Index(), b, h.Type()) != h {
		return 0, fmt.Errorf("%w: %v", ErrDecrypt, ErrHandleMismatch)
	}
	seed := ciphertext[:mockSeedLen]
	return decodeValue(xorMask(ciphertext[mockSeedLen:], seed, b))
}

func xorMask(in, seed []byte, b Binding) []byte {
	mask := cryptox.Keccak256([]byte(mockMaskDomain), seed, b.Bytes())
	out := make([]byte, len(in))
	for i := range in {
		out[i] = in[i] ^ mask[i]
	}
	return out
}

func mockCommitment(h Handle, b Binding, ct []byte) [32]byte {
	return cryptox.Keccak256([]byte(mockCommitDomain), h[:], b.Bytes(), ct)
}
