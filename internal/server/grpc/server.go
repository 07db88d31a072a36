// Package grpc exposes the ledger services over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/logging"
	pb "github.com/dmitrijs2005/petguard/internal/proto"
	"github.com/dmitrijs2005/petguard/internal/server/models"
	"github.com/dmitrijs2005/petguard/internal/server/services"
	"google.golang.org/grpc"
)

type sessionSvc interface {
	GetChallenge(ctx context.Context, address string) (string, time.Time, error)
	Login(ctx context.Context, address, nonce string, signature []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Authenticate(accessToken string) (cryptox.Address, error)
}

type registrySvc interface {
	Info() services.LedgerInfo
	CreateRecord(ctx context.Context, owner cryptox.Address, category uint8, title, description string, handle fhe.Handle, proof []byte) (uint64, error)
	GetRecord(ctx context.Context, id uint64) (*models.CareLog, error)
	GetOwnerRecordIDs(ctx context.Context, owner cryptox.Address) ([]uint64, error)
	GetTotalRecords(ctx context.Context) (uint64, error)
	LookupGrant(ctx context.Context, handle fhe.Handle, principal cryptox.Address) (*models.GrantInfo, error)
}

type GRPCServer struct {
	pb.UnimplementedLedgerServiceServer
	address      string
	sessions     sessionSvc
	registry     registrySvc
	logger       logging.Logger
	serviceToken []byte
}

func NewGRPCServer(a string, l logging.Logger, ss sessionSvc, rs registrySvc, serviceToken string) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		sessions:     ss,
		registry:     rs,
		serviceToken: []byte(serviceToken),
	}
}

// NewServer builds the grpc.Server with the ledger service and its
// interceptors registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.authInterceptor))
	srv := grpc.NewServer(opts...)
	pb.RegisterLedgerServiceServer(srv, s)
	return srv
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
