package cryptox

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SignatureLength is the size of an r||s||v recoverable signature.
const SignatureLength = 65

var ErrBadSignature = errors.New("bad signature")

// Signer is the capability a principal hands to code that needs its
// signature. Implementations must not expose the key itself.
type Signer interface {
	Address() Address
	SignDigest(digest [32]byte) ([]byte, error)
}

// KeySigner signs with an in-memory secp256k1 key.
type KeySigner struct {
	key  *secp256k1.PrivateKey
	addr Address
}

// NewKeySigner wraps a 32-byte secp256k1 scalar.
func NewKeySigner(raw []byte) (*KeySigner, error) {
	if len(raw) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("private key must be %d bytes", secp256k1.PrivKeyBytesLen)
	}
	key := secp256k1.PrivKeyFromBytes(raw)
	if key.Key.IsZero() {
		return nil, errors.New("private key is zero")
	}
	return &KeySigner{key: key, addr: PubKeyToAddress(key.PubKey())}, nil
}

// GenerateKeySigner creates a signer over a fresh random key.
func GenerateKeySigner() (*KeySigner, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &KeySigner{key: key, addr: PubKeyToAddress(key.PubKey())}, nil
}

func (s *KeySigner) Address() Address { return s.addr }

// SignDigest returns r||s||v with v in {0,1}.
func (s *KeySigner) SignDigest(digest [32]byte) ([]byte, error) {
	compact := ecdsa.SignCompact(s.key, digest[:], false)
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0] - 27
	return sig, nil
}

// Serialize returns the raw scalar. Callers own wiping the result.
func (s *KeySigner) Serialize() []byte { return s.key.Serialize() }

// RecoverAddress returns the address whose key produced sig over digest.
// Both v in {0,1} and v in {27,28} are accepted.
func RecoverAddress(digest [32]byte, sig []byte) (Address, error) {
	if len(sig) != SignatureLength {
		return ZeroAddress, fmt.Errorf("%w: length %d", ErrBadSignature, len(sig))
	}
	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return ZeroAddress, fmt.Errorf("%w: recovery id %d", ErrBadSignature, sig[64])
	}

	compact := make([]byte, SignatureLength)
	compact[0] = 27 + v
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return ZeroAddress, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return PubKeyToAddress(pub), nil
}

// PersonalMessageDigest hashes msg with the "\x19Ethereum Signed Message"
// prefix used for login challenges.
func PersonalMessageDigest(msg []byte) [32]byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(msg))
	return Keccak256([]byte(prefix), msg)
}
