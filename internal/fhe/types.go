package fhe

import "fmt"

// FheType is the declared plaintext type of an encrypted input.
type FheType uint8

const (
	Bool FheType = iota
	Uint4
	Uint8
	Uint16
	Uint32
	Uint64
	Uint128
)

// InputType is the only plaintext type the ledger accepts. Ciphertexts
// always carry a full 32-bit value and no proof bounds it more tightly.
const InputType = Uint32

// Bits returns the plaintext width, or 0 for unknown types.
func (t FheType) Bits() int {
	switch t {
	case Bool:
		return 1
	case Uint4:
		return 4
	case Uint8:
		return 8
	case Uint16:
		return 16
	case Uint32:
		return 32
	case Uint64:
		return 64
	case Uint128:
		return 128
	default:
		return 0
	}
}

func (t FheType) Valid() bool { return t.Bits() > 0 }

// Accepted reports whether inputs of this type may be stored or opened.
func (t FheType) Accepted() bool { return t == InputType }

func (t FheType) String() string {
	switch t {
	case Bool:
		return "ebool"
	case Uint4:
		return "euint4"
	case Uint8:
		return "euint8"
	case Uint16:
		return "euint16"
	case Uint32:
		return "euint32"
	case Uint64:
		return "euint64"
	case Uint128:
		return "euint128"
	default:
		return fmt.Sprintf("FheType(%d)", uint8(t))
	}
}
