package cryptox

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

const sealInfo = "petguard/sealbox/v1"

var ErrOpenSealed = errors.New("cannot open sealed box")

// EphemeralKeyPair is the short-lived X25519 pair a requester generates per
// decryption authorization.
type EphemeralKeyPair struct {
	Private [32]byte
	Public  [32]byte
}

// GenerateEphemeralKeyPair draws a fresh X25519 pair from crypto/rand.
func GenerateEphemeralKeyPair() (*EphemeralKeyPair, error) {
	kp := &EphemeralKeyPair{}
	if _, err := io.ReadFull(rand.Reader, kp.Private[:]); err != nil {
		return nil, err
	}
	pub, err := curve25519.X25519(kp.Private[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}
	copy(kp.Public[:], pub)
	return kp, nil
}

// Wipe zeroes the private half.
func (kp *EphemeralKeyPair) Wipe() {
	for i := range kp.Private {
		kp.Private[i] = 0
	}
}

// SealTo encrypts plaintext to the X25519 public key recipient. The output
// is senderPub(32) || ciphertext and aad is authenticated but not sent.
func SealTo(recipient []byte, plaintext, aad []byte) ([]byte, error) {
	if len(recipient) != curve25519.PointSize {
		return nil, fmt.Errorf("recipient key must be %d bytes", curve25519.PointSize)
	}

	var senderPriv [32]byte
	if _, err := io.ReadFull(rand.Reader, senderPriv[:]); err != nil {
		return nil, err
	}
	defer func() { senderPriv = [32]byte{} }()

	senderPub, err := curve25519.X25519(senderPriv[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}
	shared, err := curve25519.X25519(senderPriv[:], recipient)
	if err != nil {
		return nil, err
	}

	aead, err := sealAEAD(shared, senderPub, recipient)
	if err != nil {
		return nil, err
	}

	// the key is single use so a zero nonce is fine
	nonce := make([]byte, aead.NonceSize())
	out := make([]byte, 0, len(senderPub)+len(plaintext)+aead.Overhead())
	out = append(out, senderPub...)
	return aead.Seal(out, nonce, plaintext, aad), nil
}

// Open reverses SealTo with the recipient's private key.
func (kp *EphemeralKeyPair) Open(sealed, aad []byte) ([]byte, error) {
	if len(sealed) < curve25519.PointSize+chacha20poly1305.Overhead {
		return nil, ErrOpenSealed
	}
	senderPub := sealed[:curve25519.PointSize]

	shared, err := curve25519.X25519(kp.Private[:], senderPub)
	if err != nil {
		return nil, ErrOpenSealed
	}
	aead, err := sealAEAD(shared, senderPub, kp.Public[:])
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	plain, err := aead.Open(nil, nonce, sealed[curve25519.PointSize:], aad)
	if err != nil {
		return nil, ErrOpenSealed
	}
	return plain, nil
}

func sealAEAD(shared, senderPub, recipient []byte) (cipher.AEAD, error) {
	salt := make([]byte, 0, 64)
	salt = append(salt, senderPub...)
	salt = append(salt, recipient...)

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, salt, []byte(sealInfo)), key); err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}
