package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/johnbekele/yohans-blog/internal/buildinfo"
	"github.com/johnbekele/yohans-blog/internal/client/cli"
	"github.com/johnbekele/yohans-blog/internal/client/config"
	"github.com/johnbekele/yohans-blog/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app := cli.NewApp(ctx, cfg, log)
	app.Run(ctx)

}
