// Package kms is the decryption authority. It checks a principal's signed
// authorization token against the ledger's access grants and re-encrypts
// granted values to the token's ephemeral key. It never returns plaintext
// in the clear and never reveals why a request was refused.
package kms

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/petguard/internal/authz"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/logging"
)

// maxPairs bounds the handles one request may name.
const maxPairs = 32

type pair struct {
	handle fhe.Handle
	entity cryptox.Address
}

type Service struct {
	keyring *Keyring
	grants  GrantSource
	logger  logging.Logger
	now     func() time.Time
}

func NewService(k *Keyring, g GrantSource, logger logging.Logger) *Service {
	return &Service{
		keyring: k,
		grants:  g,
		logger:  logger.With("module", "kms"),
		now:     time.Now,
	}
}

func (s *Service) Keys() KeysResponse { return s.keyring.Keys() }

// Decrypt runs the authorization checks in order: signature, validity
// window, entity coverage, grant, then decrypts and seals every value.
// Refusals return common.ErrDenied; ledger failures common.ErrUnavailable;
// malformed input common.ErrValidation.
func (s *Service) Decrypt(ctx context.Context, req *UserDecryptRequest) (*UserDecryptResponse, error) {
	token, err := authz.ParseWire(req.Wire)
	if err != nil {
		return nil, validation(err)
	}
	if len(token.PublicKey) != 32 {
		return nil, fmt.Errorf("%w: publicKey must be 32 bytes", common.ErrValidation)
	}
	pairs, err := parsePairs(req.HandleContractPairs)
	if err != nil {
		return nil, err
	}

	network := s.keyring.Network()

	if err := token.VerifySignature(network.DecryptionDomain()); err != nil {
		return nil, s.deny(ctx, token, err)
	}
	if err := token.VerifyWindow(s.now()); err != nil {
		return nil, s.deny(ctx, token, err)
	}
	for _, p := range pairs {
		if err := token.Covers(p.entity); err != nil {
			return nil, s.deny(ctx, token, err)
		}
		if p.handle.ChainID() != network.ChainID {
			return nil, s.deny(ctx, token, fmt.Errorf("handle %s is for chain %d", p.handle, p.handle.ChainID()))
		}
	}

	grants := make([]*Grant, len(pairs))
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrUnavailable, err)
		}
		g, err := s.grants.LookupGrant(ctx, p.handle, token.Principal)
		if err != nil {
			s.logger.Error(ctx, "grant lookup failed", "handle", p.handle.Hex(), "error", err)
			if errors.Is(err, common.ErrUnavailable) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", common.ErrUnavailable, err)
		}
		if !g.Allowed {
			return nil, s.deny(ctx, token, fmt.Errorf("no grant for %s", p.handle))
		}
		if g.Entity != p.entity {
			return nil, s.deny(ctx, token, fmt.Errorf("grant for %s is held by entity %s", p.handle, g.Entity))
		}
		grants[i] = g
	}

	scheme := s.keyring.Scheme()
	resp := &UserDecryptResponse{Results: make([]SealedResult, len(pairs))}
	for i, p := range pairs {
		b := fhe.Binding{ChainID: network.ChainID, Entity: grants[i].Entity, Submitter: grants[i].Submitter}
		value, err := scheme.Decrypt(p.handle, grants[i].Ciphertext, b)
		if err != nil {
			return nil, s.deny(ctx, token, err)
		}

		var plain [4]byte
		binary.BigEndian.PutUint32(plain[:], value)
		sealed, err := cryptox.SealTo(token.PublicKey, plain[:], p.handle.Bytes())
		if err != nil {
			return nil, s.deny(ctx, token, err)
		}
		resp.Results[i] = SealedResult{Handle: p.handle.Hex(), Payload: "0x" + hex.EncodeToString(sealed)}
	}

	s.logger.Info(ctx, "decryption granted", "principal", token.Principal.Hex(), "handles", len(pairs))
	return resp, nil
}

func (s *Service) deny(ctx context.Context, t *authz.Token, reason error) error {
	s.logger.Warn(ctx, "decryption denied", "principal", t.Principal.Hex(), "reason", reason.Error())
	return common.ErrDenied
}

func validation(err error) error {
	if errors.Is(err, common.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrValidation, err)
}

func parsePairs(in []HandleContractPair) ([]pair, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: no handles", common.ErrValidation)
	}
	if len(in) > maxPairs {
		return nil, fmt.Errorf("%w: %d handles, at most %d", common.ErrValidation, len(in), maxPairs)
	}
	out := make([]pair, len(in))
	for i, p := range in {
		h, err := fhe.ParseHandle(strings.TrimSpace(p.Handle))
		if err != nil {
			return nil, validation(fmt.Errorf("handleContractPairs[%d].handle: %w", i, err))
		}
		if h.IsZero() {
			return nil, fmt.Errorf("%w: handleContractPairs[%d]: zero handle", common.ErrValidation, i)
		}
		e, err := cryptox.ParseAddress(p.ContractAddress)
		if err != nil {
			return nil, validation(fmt.Errorf("handleContractPairs[%d].contractAddress: %w", i, err))
		}
		out[i] = pair{handle: h, entity: e}
	}
	return out, nil
}
