package fhe

import (
	"crypto/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworks_Lookup(t *testing.T) {
	ns := DefaultNetworks()

	n, err := ns.Lookup(HardhatChainID)
	require.NoError(t, err)
	assert.True(t, n.Mock)
	assert.IsType(t, MockScheme{}, n.Scheme(nil))

	n, err = ns.Lookup(SepoliaChainID)
	require.NoError(t, err)
	assert.False(t, n.Mock)
	assert.IsType(t, &ECIESScheme{}, n.Scheme(nil))

	_, err = ns.Lookup(1)
	assert.ErrorIs(t, err, ErrUnknownNetwork)

	ns.Add(Network{ChainID: 1, Name: "mainnet"})
	assert.Equal(t, []uint64{1, HardhatChainID, SepoliaChainID}, ns.IDs())
}

func TestNetwork_DecryptionDomain(t *testing.T) {
	n, err := DefaultNetworks().Lookup(SepoliaChainID)
	require.NoError(t, err)

	d := n.DecryptionDomain()
	assert.Equal(t, SepoliaChainID, d.ChainID)
	assert.Equal(t, n.DecryptionVerifier, d.VerifyingContract)
}

func TestNetworkKeyFile(t *testing.T) {
	key, err := GenerateNetworkKey(rand.Reader)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "kms.json")
	require.NoError(t, WriteNetworkKeyFile(path, key))

	loaded, err := ReadNetworkKeyFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.HasSecret())
	assert.Equal(t, key.Public, loaded.Public)

	pub, err := PublicNetworkKey(key.Public)
	require.NoError(t, err)
	pubPath := filepath.Join(t.TempDir(), "kms.pub.json")
	require.NoError(t, WriteNetworkKeyFile(pubPath, pub))

	loadedPub, err := ReadNetworkKeyFile(pubPath)
	require.NoError(t, err)
	assert.False(t, loadedPub.HasSecret())
}

func TestPublicNetworkKey_Invalid(t *testing.T) {
	_, err := PublicNetworkKey([]byte{1, 2, 3})
	assert.Error(t, err)
}
