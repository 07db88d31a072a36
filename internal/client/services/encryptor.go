package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/kms"
)

// KeySource publishes the network public key.
type KeySource interface {
	Keys(ctx context.Context) (*kms.KeysResponse, error)
}

// Encryptor turns plaintext values into a handle and an input proof bound
// to one network. It is safe for concurrent use.
type Encryptor struct {
	networks fhe.Networks
	chainID  uint64
	keys     KeySource
	rand     io.Reader

	mu  sync.RWMutex
	key *fhe.NetworkKey
}

func NewEncryptor(networks fhe.Networks, chainID uint64, keys KeySource) *Encryptor {
	return &Encryptor{networks: networks, chainID: chainID, keys: keys, rand: rand.Reader}
}

// SetNetworkKey installs the public key of a production network.
func (e *Encryptor) SetNetworkKey(k *fhe.NetworkKey) {
	e.mu.Lock()
	e.key = k
	e.mu.Unlock()
}

// LoadNetworkKey fetches the network public key from the KMS. Mock
// networks need none and return immediately.
func (e *Encryptor) LoadNetworkKey(ctx context.Context) error {
	n, err := e.networks.Lookup(e.chainID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}
	if n.Mock {
		return nil
	}

	resp, err := e.keys.Keys(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrKeyUnavailable, err)
	}
	if resp.ChainID != e.chainID {
		return fmt.Errorf("%w: kms serves chain %d, ledger is on %d", common.ErrKeyUnavailable, resp.ChainID, e.chainID)
	}
	pub, err := hex.DecodeString(strings.TrimPrefix(resp.PublicKey, "0x"))
	if err != nil {
		return fmt.Errorf("%w: public key: %v", common.ErrKeyUnavailable, err)
	}
	key, err := fhe.PublicNetworkKey(pub)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}

	e.SetNetworkKey(key)
	return nil
}

// ensureKey loads the network key unless it is already present or not
// needed.
func (e *Encryptor) ensureKey(ctx context.Context) error {
	n, err := e.networks.Lookup(e.chainID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}
	e.mu.RLock()
	loaded := e.key != nil
	e.mu.RUnlock()
	if n.Mock || loaded {
		return nil
	}
	return e.LoadNetworkKey(ctx)
}

// Encrypt encrypts value for entity on behalf of submitter and returns the
// handle with its encoded proof. Every call draws fresh randomness.
func (e *Encryptor) Encrypt(value uint64, entity, submitter cryptox.Address) (fhe.Handle, []byte, error) {
	if value > math.MaxUint32 {
		return fhe.ZeroHandle, nil, fmt.Errorf("%w: %d does not fit in 32 bits", common.ErrEncoding, value)
	}

	n, err := e.networks.Lookup(e.chainID)
	if err != nil {
		return fhe.ZeroHandle, nil, fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}

	e.mu.RLock()
	key := e.key
	e.mu.RUnlock()
	if !n.Mock && key == nil {
		return fhe.ZeroHandle, nil, fmt.Errorf("%w: network %s", common.ErrKeyUnavailable, n.Name)
	}

	b := fhe.Binding{ChainID: n.ChainID, Entity: entity, Submitter: submitter}
	h, proof, err := n.Scheme(key).Encrypt(e.rand, uint32(value), b)
	if err != nil {
		return fhe.ZeroHandle, nil, fmt.Errorf("encrypt: %w", err)
	}
	return h, fhe.MarshalProof(proof), nil
}
