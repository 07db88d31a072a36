package fhe

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func sampleProof(t *testing.T) *Proof {
	t.Helper()
	_, p, err := MockScheme{}.Encrypt(rand.Reader, 7, testBinding)
	require.NoError(t, err)
	return p
}

func TestMarshalProof_RoundTrip(t *testing.T) {
	p := sampleProof(t)

	decoded, err := UnmarshalProof(MarshalProof(p))
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestMarshalProof_RoundTripWithResponse(t *testing.T) {
	key, err := GenerateNetworkKey(rand.Reader)
	require.NoError(t, err)
	_, p, err := NewECIESScheme(key).Encrypt(rand.Reader, 7, sepoliaBinding)
	require.NoError(t, err)

	decoded, err := UnmarshalProof(MarshalProof(p))
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestUnmarshalProof_Malformed(t *testing.T) {
	valid := MarshalProof(sampleProof(t))

	withTag := func(num protowire.Number, typ protowire.Type, payload func([]byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		b = protowire.AppendTag(b, num, typ)
		return payload(b)
	}

	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"oversized", bytes.Repeat([]byte{0}, MaxProofSize+1)},
		{"truncated", valid[:len(valid)-3]},
		{"unknown field", withTag(10, protowire.VarintType, func(b []byte) []byte { return protowire.AppendVarint(b, 1) })},
		{"duplicate field", withTag(fieldVersion, protowire.VarintType, func(b []byte) []byte { return protowire.AppendVarint(b, 1) })},
		{"wrong wire type", func() []byte {
			var b []byte
			b = protowire.AppendTag(b, fieldHandle, protowire.VarintType)
			return protowire.AppendVarint(b, 1)
		}()},
		{"missing fields", func() []byte {
			var b []byte
			b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
			return protowire.AppendVarint(b, ProofVersion)
		}()},
		{"short handle", func() []byte {
			var b []byte
			b = protowire.AppendTag(b, fieldHandle, protowire.BytesType)
			return protowire.AppendBytes(b, []byte{1, 2, 3})
		}()},
		{"type overflow", func() []byte {
			var b []byte
			b = protowire.AppendTag(b, fieldType, protowire.VarintType)
			return protowire.AppendVarint(b, 300)
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalProof(tt.in)
			assert.ErrorIs(t, err, ErrMalformedProof)
		})
	}
}
