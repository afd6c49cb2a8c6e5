package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/planningpoker/internal/buildinfo"
	"github.com/dmitrijs2005/planningpoker/internal/client/cli"
	"github.com/dmitrijs2005/planningpoker/internal/client/config"
	"github.com/joho/godotenv"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	// .env is optional
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
