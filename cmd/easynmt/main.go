package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/easynmt/internal/cli"
	"codeberg.org/snonux/easynmt/internal/logging"
	"codeberg.org/snonux/easynmt/internal/processor"
	"codeberg.org/snonux/easynmt/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)
	preloadCmd := cli.CreatePreloadCommand()
	rootCmd.AddCommand(preloadCmd)

	// Set up command initialization
	cobra.OnInitialize(func() {
		if _, err := cli.LoadEnv(flags.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run functions
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}
	preloadCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runPreload(cmd, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	if flags.BatchFile == "" && len(args) == 0 {
		return cmd.Help()
	}

	proc, closeClient, err := newProcessor(flags)
	if err != nil {
		return err
	}
	defer closeClient()

	ctx := cmd.Context()
	if err := proc.WaitForServer(ctx); err != nil {
		return err
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch(ctx)
	}
	return proc.ProcessTexts(ctx, args)
}

func runPreload(cmd *cobra.Command, flags *cli.Flags) error {
	proc, closeClient, err := newProcessor(flags)
	if err != nil {
		return err
	}
	defer closeClient()

	ctx := cmd.Context()
	if err := proc.WaitForServer(ctx); err != nil {
		return err
	}
	return proc.Preload(ctx)
}

func newProcessor(flags *cli.Flags) (*processor.Processor, func(), error) {
	settings := cli.LoadSettings()

	logger, err := logging.New(settings.LogLevel, true)
	if err != nil {
		return nil, nil, err
	}

	client := translation.NewClient(settings.ClientConfig(logger))
	return processor.NewProcessor(flags, settings, client, logger), client.Close, nil
}
