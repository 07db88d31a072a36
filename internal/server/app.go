// Package server wires the ledger node: storage, services, the gRPC
// endpoint and background maintenance, with graceful shutdown on signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/logging"
	"github.com/dmitrijs2005/petguard/internal/server/config"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/petguard/internal/server/services"

	gs "github.com/dmitrijs2005/petguard/internal/server/grpc"
)

// pruneInterval is how often expired refresh tokens are removed.
const pruneInterval = 10 * time.Minute

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions *services.SessionService
	registry *services.RegistryService
	archive  *services.ArchiveService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	registryAddr, err := cryptox.ParseAddress(c.RegistryAddress)
	if err != nil {
		return nil, fmt.Errorf("registry address: %w", err)
	}

	verifier, err := services.NewProofVerifier(fhe.DefaultNetworks(), c.ChainID)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	challenges := services.NewChallengeCache(c.NonceTTL, nil)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		sessions: services.NewSessionService(db, rm, challenges, c, logger),
		registry: services.NewRegistryService(db, rm, verifier, registryAddr, nil, logger),
		archive:  services.NewArchiveService(db, rm, c, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.sessions, app.registry, app.config.ServiceToken)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// runMaintenance prunes expired sessions and, when an archive interval is
// configured, uploads periodic snapshots until ctx is done.
func (app *App) runMaintenance(ctx context.Context) {
	prune := time.NewTicker(pruneInterval)
	defer prune.Stop()

	var snapshots <-chan time.Time
	if app.config.ArchiveInterval > 0 {
		t := time.NewTicker(app.config.ArchiveInterval)
		defer t.Stop()
		snapshots = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-prune.C:
			n, err := app.sessions.PruneExpired(ctx)
			if err != nil {
				app.logger.Warn(ctx, "prune refresh tokens", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "pruned refresh tokens", "count", n)
			}
		case <-snapshots:
			snap, err := app.archive.Snapshot(ctx)
			if err != nil {
				app.logger.Error(ctx, "snapshot failed", "error", err)
				continue
			}
			app.logger.Info(ctx, "snapshot uploaded", "key", snap.Key, "records", snap.Records)
		}
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "chain_id", app.config.ChainID, "registry", app.config.RegistryAddress)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.runMaintenance(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
