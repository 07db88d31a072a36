// Command keygen writes a fresh network key pair for the decryption
// authority and prints its public half.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"

	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/filex"
)

func main() {
	out := flag.String("o", "kms-key.json", "output file")
	force := flag.Bool("force", false, "overwrite an existing file")
	flag.Parse()

	if err := filex.PrepareNew(*out, *force); err != nil {
		log.Fatalf("%v (use -force to overwrite)", err)
	}

	key, err := fhe.GenerateNetworkKey(rand.Reader)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	if err := fhe.WriteNetworkKeyFile(*out, key); err != nil {
		log.Fatalf("write: %v", err)
	}

	fmt.Printf("wrote %s\npublic key: %s\n", *out, hex.EncodeToString(key.Public))
}
