package kms

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	pb "github.com/dmitrijs2005/petguard/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Grant is the ledger's answer to a grant lookup.
type Grant struct {
	Allowed    bool
	Entity     cryptox.Address
	Submitter  cryptox.Address
	Ciphertext []byte
}

// GrantSource answers whether principal may decrypt handle.
type GrantSource interface {
	LookupGrant(ctx context.Context, handle fhe.Handle, principal cryptox.Address) (*Grant, error)
}

// LedgerGrants queries the ledger over gRPC with the service token.
// Every transport failure is reported as common.ErrUnavailable.
type LedgerGrants struct {
	client       pb.LedgerServiceClient
	serviceToken string
	timeout      time.Duration
}

func NewLedgerGrants(conn grpc.ClientConnInterface, serviceToken string, timeout time.Duration) *LedgerGrants {
	return &LedgerGrants{client: pb.NewLedgerServiceClient(conn), serviceToken: serviceToken, timeout: timeout}
}

func (l *LedgerGrants) LookupGrant(ctx context.Context, handle fhe.Handle, principal cryptox.Address) (*Grant, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	ctx = metadata.AppendToOutgoingContext(ctx, common.ServiceTokenHeaderName, l.serviceToken)

	resp, err := l.client.LookupGrant(ctx, &pb.LookupGrantRequest{Handle: handle.Bytes(), Principal: principal.Hex()})
	if err != nil {
		return nil, fmt.Errorf("%w: lookup grant: %w", common.ErrUnavailable, err)
	}
	if !resp.Allowed {
		return &Grant{Allowed: false}, nil
	}

	entity, err := cryptox.ParseAddress(resp.Entity)
	if err != nil {
		return nil, fmt.Errorf("%w: grant entity: %w", common.ErrUnavailable, err)
	}
	submitter, err := cryptox.ParseAddress(resp.Submitter)
	if err != nil {
		return nil, fmt.Errorf("%w: grant submitter: %w", common.ErrUnavailable, err)
	}
	return &Grant{Allowed: true, Entity: entity, Submitter: submitter, Ciphertext: resp.Ciphertext}, nil
}
