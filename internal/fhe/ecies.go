package fhe

import (
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	eciesKDFInfo   = "petguard/fhe/ecies/v1"
	eciesPoKDomain = "petguard/fhe/pok/v1"
	eciesPointLen  = 32
	eciesCipherLen = eciesPointLen + 4 + chacha20poly1305.Overhead
	eciesScalarLen = 32
)

// ECIESScheme encrypts to the network key. The ciphertext is
// R(32) || ChaCha20-Poly1305(value) with AAD = binding, where R = r*B and
// the AEAD key is derived from r*PK. The proof is a Schnorr proof of
// knowledge of r: commitment A = k*B and response z = k + c*r with
// c = H(R, A, ciphertext, handle, binding).
type ECIESScheme struct {
	key *NetworkKey
}

var _ Scheme = (*ECIESScheme)(nil)

// NewECIESScheme returns a scheme bound to key. A nil key still verifies
// proofs; Encrypt needs the public half and Decrypt the secret.
func NewECIESScheme(key *NetworkKey) *ECIESScheme {
	return &ECIESScheme{key: key}
}

func (s *ECIESScheme) Encrypt(rand io.Reader, value uint32, b Binding) (Handle, *Proof, error) {
	if s.key == nil || len(s.key.Public) == 0 {
		return ZeroHandle, nil, ErrNoKey
	}
	pk, err := new(edwards25519.Point).SetBytes(s.key.Public)
	if err != nil {
		return ZeroHandle, nil, fmt.Errorf("network public key: %w", err)
	}

	r, err := randomScalar(rand)
	if err != nil {
		return ZeroHandle, nil, fmt.Errorf("ecies encrypt: %w", err)
	}
	k, err := randomScalar(rand)
	if err != nil {
		return ZeroHandle, nil, fmt.Errorf("ecies encrypt: %w", err)
	}

	R := new(edwards25519.Point).ScalarBaseMult(r)
	shared := new(edwards25519.Point).ScalarMult(r, pk)

	aead, err := eciesAEAD(shared, R)
	if err != nil {
		return ZeroHandle, nil, err
	}
	ct := make([]byte, 0, eciesCipherLen)
	ct = append(ct, R.Bytes()...)
	ct = aead.Seal(ct, make([]byte, aead.NonceSize()), encodeValue(value), b.Bytes())

	h := ComputeHandle(ct, 0, b, Uint32)

	A := new(edwards25519.Point).ScalarBaseMult(k)
	c, err := pokChallenge(R.Bytes(), A.Bytes(), ct, h, b)
	if err != nil {
		return ZeroHandle, nil, err
	}
	z := edwards25519.NewScalar().MultiplyAdd(c, r, k)

	return h, &Proof{
		Version:    ProofVersion,
		Handle:     h,
		Type:       Uint32,
		ChainID:    b.ChainID,
		Entity:     b.Entity,
		Submitter:  b.Submitter,
		Ciphertext: ct,
		Commitment: A.Bytes(),
		Response:   z.Bytes(),
	}, nil
}

func (s *ECIESScheme) Verify(h Handle, p *Proof, b Binding) error {
	if err := checkEnvelope(h, p, b); err != nil {
		return err
	}
	if len(p.Ciphertext) != eciesCipherLen {
		return fmt.Errorf("%w: ciphertext length %d", ErrMalformedProof, len(p.Ciphertext))
	}
	if len(p.Commitment) != eciesPointLen || len(p.Response) != eciesScalarLen {
		return fmt.Errorf("%w: proof of knowledge length", ErrMalformedProof)
	}

	R, err := new(edwards25519.Point).SetBytes(p.Ciphertext[:eciesPointLen])
	if err != nil {
		return fmt.Errorf("%w: ephemeral point", ErrMalformedProof)
	}
	if R.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return fmt.Errorf("%w: identity ephemeral point", ErrInvalidProof)
	}
	A, err := new(edwards25519.Point).SetBytes(p.Commitment)
	if err != nil {
		return fmt.Errorf("%w: commitment point", ErrMalformedProof)
	}
	z, err := edwards25519.NewScalar().SetCanonicalBytes(p.Response)
	if err != nil {
		return fmt.Errorf("%w: response scalar", ErrMalformedProof)
	}

	c, err := pokChallenge(p.Ciphertext[:eciesPointLen], p.Commitment, p.Ciphertext, h, b)
	if err != nil {
		return err
	}

	// z*B == A + c*R
	lhs := new(edwards25519.Point).ScalarBaseMult(z)
	rhs := new(edwards25519.Point).Add(A, new(edwards25519.Point).ScalarMult(c, R))
	if lhs.Equal(rhs) != 1 {
		return ErrInvalidProof
	}
	return nil
}

func (s *ECIESScheme) Decrypt(h Handle, ciphertext []byte, b Binding) (uint32, error) {
	if !s.key.HasSecret() {
		return 0, ErrNoKey
	}
	if !h.Type().Accepted() {
		return 0, fmt.Errorf("%w: %v %s", ErrDecrypt, ErrTypeNotAccepted, h.Type())
	}
	if len(ciphertext) != eciesCipherLen {
		return 0, fmt.Errorf("%w: ciphertext length %d", ErrDecrypt, len(ciphertext))
	}
	if ComputeHandle(ciphertext, h.Index(), b, h.Type()) != h {
		return 0, fmt.Errorf("%w: %v", ErrDecrypt, ErrHandleMismatch)
	}

	R, err := new(edwards25519.Point).SetBytes(ciphertext[:eciesPointLen])
	if err != nil {
		return 0, fmt.Errorf("%w: ephemeral point", ErrDecrypt)
	}
	shared := new(edwards25519.Point).ScalarMult(s.key.secret, R)

	aead, err := eciesAEAD(shared, R)
	if err != nil {
		return 0, err
	}
	plain, err := aead.Open(nil, make([]byte, aead.NonceSize()), ciphertext[eciesPointLen:], b.Bytes())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return decodeValue(plain)
}

func eciesAEAD(shared, R *edwards25519.Point) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared.Bytes(), R.Bytes(), []byte(eciesKDFInfo)), key); err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}

func pokChallenge(R, A, ct []byte, h Handle, b Binding) (*edwards25519.Scalar, error) {
	d := sha512.New()
	d.Write([]byte(eciesPoKDomain))
	d.Write(R)
	d.Write(A)
	d.Write(ct)
	d.Write(h[:])
	d.Write(b.Bytes())
	return edwards25519.NewScalar().SetUniformBytes(d.Sum(nil))
}
