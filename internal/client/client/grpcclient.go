package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/petguard/internal/authz"
	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/client/models"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	pb "github.com/dmitrijs2005/petguard/internal/proto"
	"github.com/dmitrijs2005/petguard/internal/timex"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL  string
	conn         *grpc.ClientConn
	client       pb.LedgerServiceClient
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	info         *models.LedgerInfo
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.tokens()
	if accessToken == "" {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" {
		return err
	}

	refreshed, rerr := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refreshToken})
	if rerr != nil {
		return rerr
	}
	s.setTokens(refreshed.AccessToken, refreshed.RefreshToken)

	return invoker(withAccessToken(ctx, refreshed.AccessToken), method, req, reply, cc, opts...)
}

func NewLedgerClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewLedgerServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// LedgerInfo returns the deployment parameters, fetched once.
func (s *GRPCClient) LedgerInfo(ctx context.Context) (*models.LedgerInfo, error) {
	s.mu.Lock()
	cached := s.info
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	resp, err := s.client.GetLedgerInfo(ctx, &pb.GetLedgerInfoRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	registry, err := cryptox.ParseAddress(resp.RegistryAddress)
	if err != nil {
		return nil, fmt.Errorf("ledger info: %w", err)
	}
	info := &models.LedgerInfo{ChainID: resp.ChainId, RegistryAddress: registry}

	s.mu.Lock()
	s.info = info
	s.mu.Unlock()
	return info, nil
}

// Login answers a fresh challenge with a signature by signer.
func (s *GRPCClient) Login(ctx context.Context, signer cryptox.Signer) error {
	info, err := s.LedgerInfo(ctx)
	if err != nil {
		return err
	}

	address := signer.Address().Hex()
	challenge, err := s.client.GetChallenge(ctx, &pb.GetChallengeRequest{Address: address})
	if err != nil {
		return s.mapError(err)
	}

	sig, err := authz.SignLogin(signer, info.ChainID, challenge.Nonce)
	if err != nil {
		return err
	}

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Address: address, Nonce: challenge.Nonce, Signature: sig})
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) CreateRecord(ctx context.Context, category uint8, title, description string, handle fhe.Handle, proof []byte) (uint64, error) {
	req := &pb.CreateRecordRequest{Category: uint32(category), Title: title, Description: description, Proof: proof}
	if !handle.IsZero() {
		req.Handle = handle.Bytes()
	}

	resp, err := s.client.CreateRecord(ctx, req)
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Id, nil
}

func (s *GRPCClient) GetRecord(ctx context.Context, id uint64) (*models.Record, error) {
	resp, err := s.client.GetRecord(ctx, &pb.GetRecordRequest{Id: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return recordFromPB(resp.Record)
}

func (s *GRPCClient) OwnerRecordIDs(ctx context.Context, owner cryptox.Address) ([]uint64, error) {
	resp, err := s.client.GetOwnerRecordIds(ctx, &pb.GetOwnerRecordIdsRequest{Owner: owner.Hex()})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Ids, nil
}

func (s *GRPCClient) TotalRecords(ctx context.Context) (uint64, error) {
	resp, err := s.client.GetTotalRecords(ctx, &pb.GetTotalRecordsRequest{})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Total, nil
}

func recordFromPB(r *pb.Record) (*models.Record, error) {
	if r == nil {
		return nil, fmt.Errorf("rpc error: empty record")
	}
	owner, err := cryptox.ParseAddress(r.Owner)
	if err != nil {
		return nil, fmt.Errorf("record owner: %w", err)
	}
	category, err := carelog.CategoryFromUint32(r.Category)
	if err != nil {
		return nil, err
	}
	handle := fhe.ZeroHandle
	if len(r.Handle) > 0 {
		if handle, err = fhe.HandleFromBytes(r.Handle); err != nil {
			return nil, err
		}
	}
	return &models.Record{
		ID:                   r.Id,
		Owner:                owner,
		Category:             category,
		Title:                r.Title,
		Description:          r.Description,
		CreatedAt:            timex.Unix(r.CreatedAt),
		HasConfidentialField: r.HasConfidentialField,
		Handle:               handle,
	}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrValidation, strings.TrimPrefix(st.Message(), common.ErrValidation.Error()+": "))
	case codes.FailedPrecondition:
		return common.ErrProofRejected
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
