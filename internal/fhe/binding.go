package fhe

import (
	"encoding/binary"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
)

// Binding is the context an encrypted input is tied to. A handle or proof
// produced for one binding fails verification under any other.
type Binding struct {
	ChainID   uint64
	Entity    cryptox.Address
	Submitter cryptox.Address
}

// Bytes is chainID(8, BE) || entity || submitter.
func (b Binding) Bytes() []byte {
	out := make([]byte, 8, 8+2*cryptox.AddressLength)
	binary.BigEndian.PutUint64(out, b.ChainID)
	out = append(out, b.Entity[:]...)
	return append(out, b.Submitter[:]...)
}
