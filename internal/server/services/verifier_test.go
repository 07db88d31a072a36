package services

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encryptFor(t *testing.T, value uint32, b fhe.Binding) (fhe.Handle, []byte) {
	t.Helper()
	h, p, err := fhe.MockScheme{}.Encrypt(rand.Reader, value, b)
	require.NoError(t, err)
	return h, fhe.MarshalProof(p)
}

func TestNewProofVerifier_UnknownChain(t *testing.T) {
	_, err := NewProofVerifier(fhe.DefaultNetworks(), 1)
	assert.ErrorIs(t, err, fhe.ErrUnknownNetwork)
}

func TestProofVerifier(t *testing.T) {
	v, err := NewProofVerifier(fhe.DefaultNetworks(), fhe.HardhatChainID)
	require.NoError(t, err)

	h, proof := encryptFor(t, 42, fhe.Binding{ChainID: fhe.HardhatChainID, Entity: registryAddr, Submitter: alice})

	t.Run("accepts bound proof", func(t *testing.T) {
		p, err := v.Accept(h, proof, registryAddr, alice)
		require.NoError(t, err)
		assert.Equal(t, h, p.Handle)
		assert.True(t, v.Check(h, proof, registryAddr, alice))
	})

	tests := []struct {
		name      string
		handle    fhe.Handle
		proof     []byte
		reason    error
	}{
		{name: "other submitter", handle: h, proof: proof, reason: fhe.ErrBindingMismatch},
		{name: "zero handle", handle: fhe.ZeroHandle, proof: proof},
		{name: "garbage proof", handle: h, proof: []byte{0xff, 0x01}, reason: fhe.ErrMalformedProof},
		{name: "empty proof", handle: h, proof: nil, reason: fhe.ErrMalformedProof},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter := alice
			if tt.name == "other submitter" {
				submitter = bob
			}
			err := v.Verify(tt.handle, tt.proof, registryAddr, submitter)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrProofRejected))
			if tt.reason != nil {
				assert.ErrorIs(t, err, tt.reason)
			}
		})
	}

	t.Run("handle from another proof", func(t *testing.T) {
		other, _ := encryptFor(t, 42, fhe.Binding{ChainID: fhe.HardhatChainID, Entity: registryAddr, Submitter: alice})
		assert.False(t, v.Check(other, proof, registryAddr, alice))
	})

	t.Run("other chain", func(t *testing.T) {
		sh, sp := encryptFor(t, 1, fhe.Binding{ChainID: fhe.SepoliaChainID, Entity: registryAddr, Submitter: alice})
		assert.ErrorIs(t, v.Verify(sh, sp, registryAddr, alice), common.ErrProofRejected)
	})
}

func TestProofVerifier_ProductionNetwork(t *testing.T) {
	key, err := fhe.GenerateNetworkKey(rand.Reader)
	require.NoError(t, err)
	b := fhe.Binding{ChainID: fhe.SepoliaChainID, Entity: registryAddr, Submitter: alice}
	h, p, err := fhe.NewECIESScheme(key).Encrypt(rand.Reader, 100, b)
	require.NoError(t, err)

	v, err := NewProofVerifier(fhe.DefaultNetworks(), fhe.SepoliaChainID)
	require.NoError(t, err)

	assert.NoError(t, v.Verify(h, fhe.MarshalProof(p), registryAddr, alice))
	assert.ErrorIs(t, v.Verify(h, fhe.MarshalProof(p), registryAddr, bob), common.ErrProofRejected)
}
