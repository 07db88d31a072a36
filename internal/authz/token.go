// Package authz implements the client half of the user decryption
// protocol: building and signing a short-lived authorization token bound
// to an ephemeral X25519 key, and the checks the decryption authority
// runs on it.
package authz

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
)

const (
	DefaultDurationDays = 10
	MaxDurationDays     = 365
)

var (
	ErrBadSignature   = errors.New("signature does not match principal")
	ErrNotYetValid    = errors.New("token not yet valid")
	ErrExpired        = errors.New("token expired")
	ErrBadDuration    = errors.New("duration out of range")
	ErrNoTargets      = errors.New("token names no entities")
	ErrEntityNotNamed = errors.New("entity not covered by token")
)

// Token authorizes re-encryption of the principal's values for the named
// entities to PublicKey during [IssuedAt, IssuedAt+DurationDays].
type Token struct {
	Principal      cryptox.Address
	PublicKey      []byte
	TargetEntities []cryptox.Address
	IssuedAt       time.Time
	DurationDays   uint64
	Signature      []byte
}

// Issue generates an ephemeral key pair and has signer sign a token for it.
// The signer is used once and never retained.
func Issue(signer cryptox.Signer, domain cryptox.Domain, targets []cryptox.Address, now time.Time, days uint64) (*Token, *cryptox.EphemeralKeyPair, error) {
	if len(targets) == 0 {
		return nil, nil, ErrNoTargets
	}
	if days == 0 || days > MaxDurationDays {
		return nil, nil, fmt.Errorf("%w: %d days", ErrBadDuration, days)
	}

	kp, err := cryptox.GenerateEphemeralKeyPair()
	if err != nil {
		return nil, nil, err
	}

	t := &Token{
		Principal:      signer.Address(),
		PublicKey:      append([]byte(nil), kp.Public[:]...),
		TargetEntities: append([]cryptox.Address(nil), targets...),
		IssuedAt:       time.Unix(now.Unix(), 0).UTC(),
		DurationDays:   days,
	}

	sig, err := signer.SignDigest(t.Digest(domain))
	if err != nil {
		kp.Wipe()
		return nil, nil, fmt.Errorf("sign token: %w", err)
	}
	t.Signature = sig
	return t, kp, nil
}

func (t *Token) request() cryptox.UserDecryptRequest {
	return cryptox.UserDecryptRequest{
		PublicKey:         t.PublicKey,
		ContractAddresses: t.TargetEntities,
		StartTimestamp:    t.IssuedAt.Unix(),
		DurationDays:      t.DurationDays,
	}
}

// Digest is the typed-data hash the principal signs.
func (t *Token) Digest(domain cryptox.Domain) [32]byte {
	return cryptox.TypedDataDigest(domain, t.request())
}

// ExpiresAt is the last instant the token is accepted.
func (t *Token) ExpiresAt() time.Time {
	return t.IssuedAt.Add(time.Duration(t.DurationDays) * common.SecondsPerDay * time.Second)
}

// VerifySignature checks that the signature recovers to Principal.
func (t *Token) VerifySignature(domain cryptox.Domain) error {
	signer, err := cryptox.RecoverAddress(t.Digest(domain), t.Signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	if signer != t.Principal {
		return fmt.Errorf("%w: recovered %s", ErrBadSignature, signer)
	}
	return nil
}

// VerifyWindow checks IssuedAt <= now <= IssuedAt+DurationDays.
func (t *Token) VerifyWindow(now time.Time) error {
	if t.DurationDays == 0 || t.DurationDays > MaxDurationDays {
		return fmt.Errorf("%w: %d days", ErrBadDuration, t.DurationDays)
	}
	if now.Before(t.IssuedAt) {
		return ErrNotYetValid
	}
	if now.After(t.ExpiresAt()) {
		return ErrExpired
	}
	return nil
}

// Covers reports whether entity is one of the token's targets.
func (t *Token) Covers(entity cryptox.Address) error {
	for _, e := range t.TargetEntities {
		if e == entity {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrEntityNotNamed, entity)
}

// Wire is the JSON form exchanged with the decryption authority. Integers
// travel as decimal strings.
type Wire struct {
	UserAddress       string   `json:"userAddress"`
	PublicKey         string   `json:"publicKey"`
	ContractAddresses []string `json:"contractAddresses"`
	StartTimestamp    string   `json:"startTimestamp"`
	DurationDays      string   `json:"durationDays"`
	Signature         string   `json:"signature"`
}

func (t *Token) Wire() Wire {
	addrs := make([]string, len(t.TargetEntities))
	for i, a := range t.TargetEntities {
		addrs[i] = a.Hex()
	}
	return Wire{
		UserAddress:       t.Principal.Hex(),
		PublicKey:         "0x" + hex.EncodeToString(t.PublicKey),
		ContractAddresses: addrs,
		StartTimestamp:    strconv.FormatInt(t.IssuedAt.Unix(), 10),
		DurationDays:      strconv.FormatUint(t.DurationDays, 10),
		Signature:         "0x" + hex.EncodeToString(t.Signature),
	}
}

// ParseWire decodes w. Errors wrap common.ErrValidation.
func ParseWire(w Wire) (*Token, error) {
	principal, err := cryptox.ParseAddress(w.UserAddress)
	if err != nil {
		return nil, fmt.Errorf("userAddress: %w", err)
	}
	pub, err := decodeHex(w.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: publicKey: %v", common.ErrValidation, err)
	}
	sig, err := decodeHex(w.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %v", common.ErrValidation, err)
	}
	start, err := strconv.ParseInt(w.StartTimestamp, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: startTimestamp: %v", common.ErrValidation, err)
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: startTimestamp %d before the epoch", common.ErrValidation, start)
	}
	days, err := strconv.ParseUint(w.DurationDays, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: durationDays: %v", common.ErrValidation, err)
	}
	if len(w.ContractAddresses) == 0 {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, ErrNoTargets)
	}

	targets := make([]cryptox.Address, len(w.ContractAddresses))
	for i, s := range w.ContractAddresses {
		if targets[i], err = cryptox.ParseAddress(s); err != nil {
			return nil, fmt.Errorf("contractAddresses[%d]: %w", i, err)
		}
	}

	return &Token{
		Principal:      principal,
		PublicKey:      pub,
		TargetEntities: targets,
		IssuedAt:       time.Unix(start, 0).UTC(),
		DurationDays:   days,
		Signature:      sig,
	}, nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
