package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/petguard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered to the flags handled here, see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-k", "-i", "-w", "-r", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LedgerAddr, "a", cfg.LedgerAddr, "ledger gRPC address")
	fs.StringVar(&cfg.KMSURL, "m", cfg.KMSURL, "KMS base URL")
	fs.StringVar(&cfg.KeystorePath, "k", cfg.KeystorePath, "keystore file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.DurationVar(&cfg.DecryptTimeout, "w", cfg.DecryptTimeout, "decryption timeout")
	fs.Uint64Var(&cfg.DecryptRetries, "r", cfg.DecryptRetries, "decryption retries")
	fs.Uint64Var(&cfg.DurationDays, "d", cfg.DurationDays, "authorization validity (in days)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
