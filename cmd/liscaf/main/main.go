package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/liscaf/cmd/liscaf"
)

func main() {
	// Interrupts stop the run between files; nothing half-planned is written
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := liscaf.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		liscaf.ReportError(rootCmd, err)
		stop()
		os.Exit(1)
	}
}
