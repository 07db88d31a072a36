package fhe

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
)

const (
	HandleLength  = 32
	HandleVersion = 0

	handleDomain    = "petguard/handle/v1"
	handleDigestLen = 21
)

// Handle references a ciphertext. Layout:
//
//	digest[0:21] | index(1) | chainID(8, BE) | type(1) | version(1)
type Handle [HandleLength]byte

// ZeroHandle means "no confidential field".
var ZeroHandle Handle

// ComputeHandle derives the handle for ciphertext under binding b.
func ComputeHandle(ciphertext []byte, index uint8, b Binding, t FheType) Handle {
	var chain [8]byte
	binary.BigEndian.PutUint64(chain[:], b.ChainID)
	digest := cryptox.Keccak256([]byte(handleDomain), ciphertext, chain[:], b.Entity[:], b.Submitter[:])

	var h Handle
	copy(h[:handleDigestLen], digest[:handleDigestLen])
	h[21] = index
	copy(h[22:30], chain[:])
	h[30] = byte(t)
	h[31] = HandleVersion
	return h
}

// HandleFromBytes copies a 32-byte slice into a Handle.
func HandleFromBytes(b []byte) (Handle, error) {
	var h Handle
	if len(b) != HandleLength {
		return h, fmt.Errorf("%w: handle must be %d bytes, got %d", common.ErrValidation, HandleLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// ParseHandle decodes a 0x-prefixed or bare 64 character hex string.
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ZeroHandle, fmt.Errorf("%w: handle: %v", common.ErrValidation, err)
	}
	return HandleFromBytes(raw)
}

func (h Handle) IsZero() bool {
	return h == ZeroHandle
}

func (h Handle) Bytes() []byte {
	return h[:]
}

func (h Handle) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Handle) String() string {
	return h.Hex()
}

func (h Handle) Index() uint8 {
	return h[21]
}

func (h Handle) ChainID() uint64 {
	return binary.BigEndian.Uint64(h[22:30])
}

func (h Handle) Type() FheType {
	return FheType(h[30])
}

func (h Handle) Version() uint8 {
	return h[31]
}

func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

func (h *Handle) UnmarshalText(b []byte) error {
	parsed, err := ParseHandle(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Value stores the handle as BYTEA.
func (h Handle) Value() (driver.Value, error) {
	return h.Bytes(), nil
}

func (h *Handle) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		parsed, err := HandleFromBytes(v)
		if err != nil {
			return err
		}
		*h = parsed
		return nil
	case nil:
		*h = ZeroHandle
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Handle", src)
	}
}
