// Command vidar renders layered scene files.
//
// Usage:
//
//	vidar render scene.yaml -o frames/ [--fps 30] [--metrics-addr :9090]
//	vidar inspect scene.yaml
//	vidar effects
//
// LOG_LEVEL (from the environment or a .env file) sets the log level.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/khanaslam439/vidar/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "(warn) Unable to load .env file:", err)
	}

	logLevel := slog.LevelInfo
	if levelStr, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err := logLevel.UnmarshalText([]byte(levelStr)); err != nil {
			fmt.Fprintln(os.Stderr, "(warn) Invalid value for LOG_LEVEL environment variable")
		}
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.BuildCLI().ExecuteContext(ctx); err != nil {
		slog.Error("vidar failed", slog.Any("err", err))
		stop()
		os.Exit(1)
	}
}
