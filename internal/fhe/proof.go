package fhe

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	ProofVersion = 1

	// MaxProofSize bounds the encoded blob accepted from clients.
	MaxProofSize = 1024
)

var ErrMalformedProof = errors.New("malformed proof")

const (
	fieldVersion protowire.Number = iota + 1
	fieldHandle
	fieldType
	fieldChainID
	fieldEntity
	fieldSubmitter
	fieldCiphertext
	fieldCommitment
	fieldResponse
)

// Proof accompanies a handle from the client to the ledger. It carries the
// ciphertext itself so the ledger can recompute the handle, plus the
// scheme-specific commitment and response.
type Proof struct {
	Version    uint32
	Handle     Handle
	Type       FheType
	ChainID    uint64
	Entity     cryptox.Address
	Submitter  cryptox.Address
	Ciphertext []byte
	Commitment []byte
	Response   []byte
}

// Binding returns the context the proof claims to be bound to.
func (p *Proof) Binding() Binding {
	return Binding{ChainID: p.ChainID, Entity: p.Entity, Submitter: p.Submitter}
}

// MarshalProof encodes p in protobuf wire format with fields in order.
func MarshalProof(p *Proof) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Version))
	b = protowire.AppendTag(b, fieldHandle, protowire.BytesType)
	b = protowire.AppendBytes(b, p.Handle[:])
	b = protowire.AppendTag(b, fieldType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Type))
	b = protowire.AppendTag(b, fieldChainID, protowire.VarintType)
	b = protowire.AppendVarint(b, p.ChainID)
	b = protowire.AppendTag(b, fieldEntity, protowire.BytesType)
	b = protowire.AppendBytes(b, p.Entity[:])
	b = protowire.AppendTag(b, fieldSubmitter, protowire.BytesType)
	b = protowire.AppendBytes(b, p.Submitter[:])
	b = protowire.AppendTag(b, fieldCiphertext, protowire.BytesType)
	b = protowire.AppendBytes(b, p.Ciphertext)
	if len(p.Commitment) > 0 {
		b = protowire.AppendTag(b, fieldCommitment, protowire.BytesType)
		b = protowire.AppendBytes(b, p.Commitment)
	}
	if len(p.Response) > 0 {
		b = protowire.AppendTag(b, fieldResponse, protowire.BytesType)
		b = protowire.AppendBytes(b, p.Response)
	}
	return b
}

// UnmarshalProof decodes a blob produced by MarshalProof. Unknown,
// duplicated or mistyped fields are rejected, as are missing required
// fields and oversized input.
func UnmarshalProof(b []byte) (*Proof, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformedProof)
	}
	if len(b) > MaxProofSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrMalformedProof, len(b), MaxProofSize)
	}

	p := &Proof{}
	var seen uint16

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: tag: %v", ErrMalformedProof, protowire.ParseError(n))
		}
		b = b[n:]

		if num < fieldVersion || num > fieldResponse {
			return nil, fmt.Errorf("%w: unknown field %d", ErrMalformedProof, num)
		}
		bit := uint16(1) << num
		if seen&bit != 0 {
			return nil, fmt.Errorf("%w: duplicate field %d", ErrMalformedProof, num)
		}
		seen |= bit

		switch num {
		case fieldVersion, fieldType, fieldChainID:
			if typ != protowire.VarintType {
				return nil, fmt.Errorf("%w: field %d: wire type %d", ErrMalformedProof, num, typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedProof, num, protowire.ParseError(n))
			}
			b = b[n:]
			switch num {
			case fieldVersion:
				if v > 0xffffffff {
					return nil, fmt.Errorf("%w: version overflow", ErrMalformedProof)
				}
				p.Version = uint32(v)
			case fieldType:
				if v > 0xff {
					return nil, fmt.Errorf("%w: type overflow", ErrMalformedProof)
				}
				p.Type = FheType(v)
			default:
				p.ChainID = v
			}

		default:
			if typ != protowire.BytesType {
				return nil, fmt.Errorf("%w: field %d: wire type %d", ErrMalformedProof, num, typ)
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedProof, num, protowire.ParseError(n))
			}
			b = b[n:]
			if err := p.setBytes(num, v); err != nil {
				return nil, err
			}
		}
	}

	for _, f := range []protowire.Number{fieldVersion, fieldHandle, fieldType, fieldChainID, fieldEntity, fieldSubmitter, fieldCiphertext} {
		if seen&(uint16(1)<<f) == 0 {
			return nil, fmt.Errorf("%w: missing field %d", ErrMalformedProof, f)
		}
	}
	return p, nil
}

func (p *Proof) setBytes(num protowire.Number, v []byte) error {
	fixed := func(dst []byte) error {
		if len(v) != len(dst) {
			return fmt.Errorf("%w: field %d: want %d bytes, got %d", ErrMalformedProof, num, len(dst), len(v))
		}
		copy(dst, v)
		return nil
	}

	switch num {
	case fieldHandle:
		return fixed(p.Handle[:])
	case fieldEntity:
		return fixed(p.Entity[:])
	case fieldSubmitter:
		return fixed(p.Submitter[:])
	case fieldCiphertext:
		p.Ciphertext = append([]byte(nil), v...)
	case fieldCommitment:
		p.Commitment = append([]byte(nil), v...)
	case fieldResponse:
		p.Response = append([]byte(nil), v...)
	}
	return nil
}
