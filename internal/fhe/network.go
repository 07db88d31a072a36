package fhe

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
)

const (
	HardhatChainID uint64 = 31337
	SepoliaChainID uint64 = 11155111
)

var ErrUnknownNetwork = errors.New("unknown network")

// defaultDecryptionVerifier is the verifying contract named in the
// decryption typed-data domain on both known networks.
var defaultDecryptionVerifier = cryptox.MustParseAddress("0x5ffdaAB0373E62E2ea2944776209aEf29E631A64")

// Network describes one ledger deployment.
type Network struct {
	ChainID            uint64          `json:"chain_id"`
	Name               string          `json:"name"`
	Mock               bool            `json:"mock"`
	DecryptionVerifier cryptox.Address `json:"decryption_verifier"`
}

// DecryptionDomain is the typed-data domain authorizations are signed in.
func (n Network) DecryptionDomain() cryptox.Domain {
	return cryptox.DecryptionDomain(n.ChainID, n.DecryptionVerifier)
}

// Scheme returns the encryption scheme for this network. key is ignored on
// mock networks and may hold only the public half elsewhere.
func (n Network) Scheme(key *NetworkKey) Scheme {
	if n.Mock {
		return MockScheme{}
	}
	return NewECIESScheme(key)
}

// Networks is a registry keyed by chain id.
type Networks map[uint64]Network

// DefaultNetworks knows the local mock network and the production testnet.
func DefaultNetworks() Networks {
	return Networks{
		HardhatChainID: {ChainID: HardhatChainID, Name: "hardhat", Mock: true, DecryptionVerifier: defaultDecryptionVerifier},
		SepoliaChainID: {ChainID: SepoliaChainID, Name: "sepolia", DecryptionVerifier: defaultDecryptionVerifier},
	}
}

func (ns Networks) Lookup(chainID uint64) (Network, error) {
	n, ok := ns[chainID]
	if !ok {
		return Network{}, fmt.Errorf("%w: chain id %d", ErrUnknownNetwork, chainID)
	}
	return n, nil
}

// Add registers or replaces a network.
func (ns Networks) Add(n Network) {
	ns[n.ChainID] = n
}

// IDs lists the registered chain ids in ascending order.
func (ns Networks) IDs() []uint64 {
	ids := make([]uint64, 0, len(ns))
	for id := range ns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
