package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/petguard/internal/common"
	"golang.org/x/crypto/argon2"
)

var ErrWrongPassword = errors.New("wrong password")

// Keystore is the on-disk form of a principal key sealed under a password.
type Keystore struct {
	Address    Address `json:"address"`
	Salt       []byte  `json:"salt"`
	Nonce      []byte  `json:"nonce"`
	Ciphertext []byte  `json:"ciphertext"`
	Verifier   []byte  `json:"verifier"`
}

// DeriveMasterKey stretches a password with argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier lets Open reject a wrong password before touching AES-GCM.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// SealKey encrypts the signer's scalar under password.
func SealKey(s *KeySigner, password []byte) (*Keystore, error) {
	salt := common.GenerateRandByteArray(16)
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)

	raw := s.Serialize()
	defer common.WipeByteArray(raw)

	ciphertext, nonce, err := encryptGCM(raw, key, s.Address().Bytes())
	if err != nil {
		return nil, err
	}

	return &Keystore{
		Address:    s.Address(),
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ciphertext,
		Verifier:   MakeVerifier(key),
	}, nil
}

// Open decrypts the keystore and returns a signer for the sealed key.
func (ks *Keystore) Open(password []byte) (*KeySigner, error) {
	key := DeriveMasterKey(password, ks.Salt)
	defer common.WipeByteArray(key)

	if subtle.ConstantTimeCompare(MakeVerifier(key), ks.Verifier) != 1 {
		return nil, ErrWrongPassword
	}

	raw, err := decryptGCM(ks.Ciphertext, ks.Nonce, key, ks.Address.Bytes())
	if err != nil {
		return nil, fmt.Errorf("keystore: %w", err)
	}
	defer common.WipeByteArray(raw)

	s, err := NewKeySigner(raw)
	if err != nil {
		return nil, err
	}
	if s.Address() != ks.Address {
		return nil, errors.New("keystore: address mismatch")
	}
	return s, nil
}

// WriteKeystore writes ks as JSON with owner-only permissions.
func WriteKeystore(path string, ks *Keystore) error {
	b, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func ReadKeystore(path string) (*Keystore, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ks := &Keystore{}
	if err := json.Unmarshal(b, ks); err != nil {
		return nil, fmt.Errorf("keystore %s: %w", path, err)
	}
	return ks, nil
}

func encryptGCM(plaintext, key, aad []byte) (ciphertext, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}
	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	return aesgcm.Seal(nil, nonce, plaintext, aad), nonce, nil
}

func decryptGCM(ciphertext, nonce, key, aad []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, aad)
}
