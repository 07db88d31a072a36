package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/petguard/internal/buildinfo"
	"github.com/dmitrijs2005/petguard/internal/kms"
	"github.com/dmitrijs2005/petguard/internal/kms/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	app, err := kms.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
