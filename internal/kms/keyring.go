package kms

import (
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/petguard/internal/fhe"
)

// Keyring holds the network this authority serves and, on production
// networks, its secret key.
type Keyring struct {
	network fhe.Network
	key     *fhe.NetworkKey
}

// NewKeyring resolves chainID in networks. A production network needs a
// key holding its secret half.
func NewKeyring(networks fhe.Networks, chainID uint64, key *fhe.NetworkKey) (*Keyring, error) {
	n, err := networks.Lookup(chainID)
	if err != nil {
		return nil, err
	}
	if !n.Mock && !key.HasSecret() {
		return nil, fmt.Errorf("network %s: %w", n.Name, fhe.ErrNoKey)
	}
	return &Keyring{network: n, key: key}, nil
}

// LoadKeyring is NewKeyring with the key read from path. An empty path is
// only accepted on mock networks.
func LoadKeyring(networks fhe.Networks, chainID uint64, path string) (*Keyring, error) {
	var key *fhe.NetworkKey
	if path != "" {
		k, err := fhe.ReadNetworkKeyFile(path)
		if err != nil {
			return nil, err
		}
		key = k
	}
	return NewKeyring(networks, chainID, key)
}

func (k *Keyring) Network() fhe.Network { return k.network }

func (k *Keyring) Scheme() fhe.Scheme { return k.network.Scheme(k.key) }

func (k *Keyring) Keys() KeysResponse {
	resp := KeysResponse{ChainID: k.network.ChainID, Network: k.network.Name, Mock: k.network.Mock}
	if k.key != nil {
		resp.PublicKey = hex.EncodeToString(k.key.Public)
	}
	return resp
}
