package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/moodjournal/internal/buildinfo"
	"github.com/dmitrijs2005/moodjournal/internal/server"
	"github.com/dmitrijs2005/moodjournal/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
