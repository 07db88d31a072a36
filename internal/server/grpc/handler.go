package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	pb "github.com/dmitrijs2005/petguard/internal/proto"
	"github.com/dmitrijs2005/petguard/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetLedgerInfo(ctx context.Context, req *pb.GetLedgerInfoRequest) (*pb.GetLedgerInfoResponse, error) {
	info := s.registry.Info()
	return &pb.GetLedgerInfoResponse{ChainId: info.ChainID, RegistryAddress: info.RegistryAddress.Hex()}, nil
}

func (s *GRPCServer) GetChallenge(ctx context.Context, req *pb.GetChallengeRequest) (*pb.GetChallengeResponse, error) {
	nonce, expires, err := s.sessions.GetChallenge(ctx, req.Address)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetChallengeResponse{Nonce: nonce, ExpiresAt: expires.Unix()}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	tokens, err := s.sessions.Login(ctx, req.Address, req.Nonce, req.Signature)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Logged in", "principal", req.Address)
	return &pb.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	tokens, err := s.sessions.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) CreateRecord(ctx context.Context, req *pb.CreateRecordRequest) (*pb.CreateRecordResponse, error) {
	owner, ok := principalFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	category, err := carelog.CategoryFromUint32(req.Category)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	handle := fhe.ZeroHandle
	if len(req.Handle) > 0 {
		h, err := fhe.HandleFromBytes(req.Handle)
		if err != nil {
			return nil, s.toStatus(ctx, fmt.Errorf("%w: %w", common.ErrValidation, err))
		}
		handle = h
	}

	id, err := s.registry.CreateRecord(ctx, owner, uint8(category), req.Title, req.Description, handle, req.Proof)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.CreateRecordResponse{Id: id}, nil
}

func (s *GRPCServer) GetRecord(ctx context.Context, req *pb.GetRecordRequest) (*pb.GetRecordResponse, error) {
	rec, err := s.registry.GetRecord(ctx, req.Id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetRecordResponse{Record: recordToPB(rec)}, nil
}

// GetOwnerRecordIds only answers for the caller's own index.
func (s *GRPCServer) GetOwnerRecordIds(ctx context.Context, req *pb.GetOwnerRecordIdsRequest) (*pb.GetOwnerRecordIdsResponse, error) {
	caller, ok := principalFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	owner := caller
	if req.Owner != "" {
		a, err := cryptox.ParseAddress(req.Owner)
		if err != nil {
			return nil, s.toStatus(ctx, fmt.Errorf("%w: owner", common.ErrValidation))
		}
		owner = a
	}
	if owner != caller {
		return nil, s.toStatus(ctx, common.ErrForbidden)
	}

	ids, err := s.registry.GetOwnerRecordIDs(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetOwnerRecordIdsResponse{Ids: ids}, nil
}

func (s *GRPCServer) GetTotalRecords(ctx context.Context, req *pb.GetTotalRecordsRequest) (*pb.GetTotalRecordsResponse, error) {
	n, err := s.registry.GetTotalRecords(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetTotalRecordsResponse{Total: n}, nil
}

func (s *GRPCServer) LookupGrant(ctx context.Context, req *pb.LookupGrantRequest) (*pb.LookupGrantResponse, error) {
	handle, err := fhe.HandleFromBytes(req.Handle)
	if err != nil {
		return nil, s.toStatus(ctx, fmt.Errorf("%w: %w", common.ErrValidation, err))
	}
	principal, err := cryptox.ParseAddress(req.Principal)
	if err != nil {
		return nil, s.toStatus(ctx, fmt.Errorf("%w: principal", common.ErrValidation))
	}

	info, err := s.registry.LookupGrant(ctx, handle, principal)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if !info.Allowed {
		return &pb.LookupGrantResponse{Allowed: false}, nil
	}
	return &pb.LookupGrantResponse{
		Allowed:    true,
		Entity:     info.Entity.Hex(),
		Submitter:  info.Submitter.Hex(),
		Ciphertext: info.Ciphertext,
	}, nil
}

func recordToPB(r *models.CareLog) *pb.Record {
	out := &pb.Record{
		Id:                   r.ID,
		Owner:                r.Owner.Hex(),
		Category:             uint32(r.Category),
		Title:                r.Title,
		Description:          r.Description,
		CreatedAt:            r.CreatedAt.Unix(),
		HasConfidentialField: r.HasConfidentialField,
		Handle:               r.Handle.Bytes(),
	}
	return out
}
