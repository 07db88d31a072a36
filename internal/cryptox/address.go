package cryptox

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// AddressLength is the size of a principal or entity identifier in bytes.
const AddressLength = 20

// Address identifies a principal or a ledger entity.
type Address [AddressLength]byte

// ZeroAddress is the all-zero address.
var ZeroAddress Address

// PubKeyToAddress derives the address as keccak256(X||Y)[12:].
func PubKeyToAddress(pub *secp256k1.PublicKey) Address {
	raw := pub.SerializeUncompressed()
	digest := Keccak256(raw[1:])
	var a Address
	copy(a[:], digest[12:])
	return a
}

// ParseAddress decodes a 0x-prefixed or bare 40 character hex string.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != AddressLength*2 {
		return a, fmt.Errorf("%w: address must be %d hex characters", common.ErrValidation, AddressLength*2)
	}
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return a, fmt.Errorf("%w: address: %v", common.ErrValidation, err)
	}
	return a, nil
}

// MustParseAddress is ParseAddress for constants; it panics on bad input.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) Bytes() []byte { return a[:] }

// Hex returns the lower-case 0x-prefixed form.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

func (a Address) String() string { return a.Hex() }

func (a Address) IsZero() bool { return a == ZeroAddress }

func (a Address) MarshalText() ([]byte, error) { return []byte(a.Hex()), nil }

func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value stores addresses as lower-case hex text.
func (a Address) Value() (driver.Value, error) { return a.Hex(), nil }

func (a *Address) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return a.UnmarshalText([]byte(v))
	case []byte:
		return a.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Address", src)
	}
}
