package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/kms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var owner = cryptox.MustParseAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")

type fakeKeys struct {
	resp *kms.KeysResponse
	err  error
}

func (f *fakeKeys) Keys(ctx context.Context) (*kms.KeysResponse, error) { return f.resp, f.err }

func TestEncrypt_MockNetwork(t *testing.T) {
	e := NewEncryptor(fhe.DefaultNetworks(), fhe.HardhatChainID, nil)

	h, raw, err := e.Encrypt(100, registry, owner)
	require.NoError(t, err)
	assert.False(t, h.IsZero())
	assert.Equal(t, fhe.HardhatChainID, h.ChainID())
	assert.Equal(t, fhe.Uint32, h.Type())

	p, err := fhe.UnmarshalProof(raw)
	require.NoError(t, err)
	b := fhe.Binding{ChainID: fhe.HardhatChainID, Entity: registry, Submitter: owner}
	require.NoError(t, fhe.MockScheme{}.Verify(h, p, b))

	v, err := fhe.MockScheme{}.Decrypt(h, p.Ciphertext, b)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), v)
}

func TestEncrypt_FreshHandles(t *testing.T) {
	e := NewEncryptor(fhe.DefaultNetworks(), fhe.HardhatChainID, nil)
	h1, _, err := e.Encrypt(7, registry, owner)
	require.NoError(t, err)
	h2, _, err := e.Encrypt(7, registry, owner)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestEncrypt_ValueOutOfDomain(t *testing.T) {
	e := NewEncryptor(fhe.DefaultNetworks(), fhe.HardhatChainID, nil)

	_, _, err := e.Encrypt(math.MaxUint32+1, registry, owner)
	require.ErrorIs(t, err, common.ErrEncoding)

	_, _, err = e.Encrypt(math.MaxUint32, registry, owner)
	require.NoError(t, err)
}

func TestEncrypt_KeyUnavailable(t *testing.T) {
	_, _, err := NewEncryptor(fhe.DefaultNetworks(), 999, nil).Encrypt(1, registry, owner)
	require.ErrorIs(t, err, common.ErrKeyUnavailable)

	_, _, err = NewEncryptor(fhe.DefaultNetworks(), fhe.SepoliaChainID, nil).Encrypt(1, registry, owner)
	require.ErrorIs(t, err, common.ErrKeyUnavailable)
}

func TestLoadNetworkKey_Production(t *testing.T) {
	key, err := fhe.GenerateNetworkKey(rand.Reader)
	require.NoError(t, err)

	k, err := kms.NewKeyring(fhe.DefaultNetworks(), fhe.SepoliaChainID, key)
	require.NoError(t, err)
	resp := k.Keys()

	e := NewEncryptor(fhe.DefaultNetworks(), fhe.SepoliaChainID, &fakeKeys{resp: &resp})
	require.NoError(t, e.LoadNetworkKey(context.Background()))

	h, raw, err := e.Encrypt(100, registry, owner)
	require.NoError(t, err)
	p, err := fhe.UnmarshalProof(raw)
	require.NoError(t, err)

	b := fhe.Binding{ChainID: fhe.SepoliaChainID, Entity: registry, Submitter: owner}
	require.NoError(t, fhe.NewECIESScheme(key).Verify(h, p, b))
	v, err := fhe.NewECIESScheme(key).Decrypt(h, p.Ciphertext, b)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), v)
}

func TestLoadNetworkKey_Failures(t *testing.T) {
	tests := []struct {
		name string
		keys *fakeKeys
	}{
		{"kms down", &fakeKeys{err: common.ErrUnavailable}},
		{"other chain", &fakeKeys{resp: &kms.KeysResponse{ChainID: fhe.HardhatChainID}}},
		{"bad hex", &fakeKeys{resp: &kms.KeysResponse{ChainID: fhe.SepoliaChainID, PublicKey: "zz"}}},
		{"not a point", &fakeKeys{resp: &kms.KeysResponse{ChainID: fhe.SepoliaChainID, PublicKey: "00"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncryptor(fhe.DefaultNetworks(), fhe.SepoliaChainID, tt.keys)
			err := e.LoadNetworkKey(context.Background())
			require.ErrorIs(t, err, common.ErrKeyUnavailable)

			_, _, err = e.Encrypt(1, registry, owner)
			require.ErrorIs(t, err, common.ErrKeyUnavailable)
		})
	}
}

func TestLoadNetworkKey_MockNeedsNone(t *testing.T) {
	e := NewEncryptor(fhe.DefaultNetworks(), fhe.HardhatChainID, &fakeKeys{err: errors.New("never called")})
	require.NoError(t, e.LoadNetworkKey(context.Background()))
}

func TestEncrypt_Concurrent(t *testing.T) {
	e := NewEncryptor(fhe.DefaultNetworks(), fhe.HardhatChainID, nil)

	var wg sync.WaitGroup
	handles := make([]fhe.Handle, 16)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, _, err := e.Encrypt(uint64(i), registry, owner)
			assert.NoError(t, err)
			handles[i] = h
		}(i)
	}
	wg.Wait()

	seen := map[fhe.Handle]bool{}
	for _, h := range handles {
		assert.False(t, seen[h], "duplicate handle")
		seen[h] = true
	}
}
