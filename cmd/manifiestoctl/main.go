package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "manifiestoctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifiestoctl",
		Short: "Manifiesto bot operator CLI",
		Long: `manifiestoctl drives the manifiesto conversation from a terminal, checks single field
values against the validation rules, and launches the API or the generation worker.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newChatCmd(),
		newValidateCmd(),
		newServeCmd(),
		newWorkerCmd(),
	)
	return cmd
}
