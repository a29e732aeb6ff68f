package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhishekk-y16/KisanMitra/internal/client/cli"
	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(iocli.NewStdio(), fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
