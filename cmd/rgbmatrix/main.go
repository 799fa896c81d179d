package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rgbmatrix/cmd/rgbmatrix/cmd"
	"rgbmatrix/logging"
)

var (
	GitSHA string = "NA"
)

func main() {
	// register sigterm for graceful shutdown
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()

	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx, slog.String("git", GitSHA))

	if err := cmd.NewRoot(ctx, GitSHA).Execute(); err != nil {
		os.Exit(1)
	}
}
