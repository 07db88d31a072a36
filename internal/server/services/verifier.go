package services

import (
	"fmt"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
)

// ProofVerifier checks encrypted inputs submitted to the ledger. It holds
// no key material and no mutable state.
type ProofVerifier struct {
	network fhe.Network
	scheme  fhe.Scheme
}

// NewProofVerifier returns a verifier for chainID, which must be known to
// networks.
func NewProofVerifier(networks fhe.Networks, chainID uint64) (*ProofVerifier, error) {
	n, err := networks.Lookup(chainID)
	if err != nil {
		return nil, err
	}
	return &ProofVerifier{network: n, scheme: n.Scheme(nil)}, nil
}

func (v *ProofVerifier) ChainID() uint64 { return v.network.ChainID }

// Accept verifies proof for handle under (entity, submitter) and returns
// the decoded proof. Every failure wraps common.ErrProofRejected.
func (v *ProofVerifier) Accept(handle fhe.Handle, proof []byte, entity, submitter cryptox.Address) (*fhe.Proof, error) {
	if handle.IsZero() {
		return nil, fmt.Errorf("%w: zero handle", common.ErrProofRejected)
	}
	p, err := fhe.UnmarshalProof(proof)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrProofRejected, err)
	}
	b := fhe.Binding{ChainID: v.network.ChainID, Entity: entity, Submitter: submitter}
	if err := v.scheme.Verify(handle, p, b); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrProofRejected, err)
	}
	return p, nil
}

func (v *ProofVerifier) Verify(handle fhe.Handle, proof []byte, entity, submitter cryptox.Address) error {
	_, err := v.Accept(handle, proof, entity, submitter)
	return err
}

// Check is Verify reduced to a bool.
func (v *ProofVerifier) Check(handle fhe.Handle, proof []byte, entity, submitter cryptox.Address) bool {
	return v.Verify(handle, proof, entity, submitter) == nil
}
