package fhe

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"filippo.io/edwards25519"
)

// NetworkKey is the decryption authority's edwards25519 key. Clients and
// the ledger only ever hold the public half.
type NetworkKey struct {
	Public []byte
	secret *edwards25519.Scalar
}

// GenerateNetworkKey draws a new key from rand.
func GenerateNetworkKey(rand io.Reader) (*NetworkKey, error) {
	s, err := randomScalar(rand)
	if err != nil {
		return nil, err
	}
	pub := new(edwards25519.Point).ScalarBaseMult(s)
	return &NetworkKey{Public: pub.Bytes(), secret: s}, nil
}

// PublicNetworkKey wraps a 32-byte encoded point without the secret.
func PublicNetworkKey(pub []byte) (*NetworkKey, error) {
	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return nil, fmt.Errorf("network public key: %w", err)
	}
	return &NetworkKey{Public: append([]byte(nil), pub...)}, nil
}

func (k *NetworkKey) HasSecret() bool { return k != nil && k.secret != nil }

type networkKeyFile struct {
	Public string `json:"public_key"`
	Secret string `json:"secret_key,omitempty"`
}

// WriteNetworkKeyFile stores the key as hex JSON readable only by the owner.
func WriteNetworkKeyFile(path string, k *NetworkKey) error {
	f := networkKeyFile{Public: hex.EncodeToString(k.Public)}
	if k.secret != nil {
		f.Secret = hex.EncodeToString(k.secret.Bytes())
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// ReadNetworkKeyFile loads a key written by WriteNetworkKeyFile and checks
// that the public half matches the secret.
func ReadNetworkKeyFile(path string) (*NetworkKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f networkKeyFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("network key %s: %w", path, err)
	}
	pub, err := hex.DecodeString(f.Public)
	if err != nil {
		return nil, fmt.Errorf("network key %s: public: %w", path, err)
	}
	k, err := PublicNetworkKey(pub)
	if err != nil {
		return nil, err
	}
	if f.Secret == "" {
		return k, nil
	}

	raw, err := hex.DecodeString(f.Secret)
	if err != nil {
		return nil, fmt.Errorf("network key %s: secret: %w", path, err)
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("network key %s: secret: %w", path, err)
	}
	if new(edwards25519.Point).ScalarBaseMult(s).Equal(mustPoint(k.Public)) != 1 {
		return nil, fmt.Errorf("network key %s: public key does not match secret", path)
	}
	k.secret = s
	return k, nil
}

func randomScalar(rand io.Reader) (*edwards25519.Scalar, error) {
	var wide [64]byte
	if _, err := io.ReadFull(rand, wide[:]); err != nil {
		return nil, err
	}
	return edwards25519.NewScalar().SetUniformBytes(wide[:])
}

func mustPoint(b []byte) *edwards25519.Point {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		panic(err)
	}
	return p
}
