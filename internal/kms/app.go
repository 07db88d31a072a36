package kms

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/kms/config"
	"github.com/dmitrijs2005/petguard/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	conn    *grpc.ClientConn
	handler *Handler
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	keyring, err := LoadKeyring(fhe.DefaultNetworks(), c.ChainID, c.NetworkKeyFile)
	if err != nil {
		return nil, err
	}

	conn, err := grpc.NewClient(c.LedgerAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}

	svc := NewService(keyring, NewLedgerGrants(conn, c.ServiceToken, c.LedgerTimeout), logger)
	return &App{config: c, logger: logger, conn: conn, handler: NewHandler(svc, logger)}, nil
}

// Serve runs the HTTP endpoint on lis until ctx is done.
func (app *App) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()
	defer app.conn.Close()

	lis, err := net.Listen("tcp", app.config.EndpointAddrHTTP)
	if err != nil {
		return err
	}
	return app.Serve(ctx, lis)
}
