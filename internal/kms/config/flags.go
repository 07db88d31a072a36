package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/petguard/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
//	-a string   HTTP bind address
//	-l string   ledger gRPC address
//	-k string   service token presented to the ledger
//	-n uint     chain id
//	-f string   network key file
//	-w duration ledger call timeout
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-k", "-n", "-f", "-w"})

	fs := flag.NewFlagSet("kms", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.LedgerAddr, "l", config.LedgerAddr, "ledger gRPC address")
	fs.StringVar(&config.ServiceToken, "k", config.ServiceToken, "service token presented to the ledger")
	fs.Uint64Var(&config.ChainID, "n", config.ChainID, "chain id")
	fs.StringVar(&config.NetworkKeyFile, "f", config.NetworkKeyFile, "network key file")
	fs.DurationVar(&config.LedgerTimeout, "w", config.LedgerTimeout, "ledger call timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
