package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/petguard/internal/client/client"
	"github.com/dmitrijs2005/petguard/internal/client/config"
	"github.com/dmitrijs2005/petguard/internal/client/services"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config        *config.Config
	authService   services.AuthService
	recordService services.RecordService
	signer        *cryptox.KeySigner
	reader        *bufio.Reader
	out           io.Writer

	mu   sync.Mutex
	Mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	ledger, err := client.NewLedgerClient(c.LedgerAddr)
	if err != nil {
		return nil, err
	}
	relayer := client.NewRelayerClient(c.KMSURL, nil)

	as := services.NewAuthService(ledger, c.KeystorePath)
	rs := services.NewRecordService(ledger, relayer, fhe.DefaultNetworks(), services.DecryptorOptions{
		Timeout:      c.DecryptTimeout,
		Retries:      c.DecryptRetries,
		DurationDays: c.DurationDays,
	})

	return &App{
		config:        c,
		authService:   as,
		recordService: rs,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) isLoggedIn() bool {
	return a.signer != nil
}

func (a *App) getStatus() string {
	s := ""
	if a.signer != nil {
		s = shortAddress(a.signer.Address()) + " "
	}
	s += string(a.mode())
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

func shortAddress(addr cryptox.Address) string {
	h := addr.Hex()
	return h[:6] + ".." + h[len(h)-4:]
}

// Run starts the connectivity watcher and the REPL, and blocks until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close()

	log.Println("Welcome to PetGuard CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
