package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/spellbee/internal/cli"
	"codeberg.org/snonux/spellbee/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	app := &application{flags: flags}
	rootCmd.PersistentPreRunE = app.setup
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		if app.logger != nil {
			_ = app.logger.Sync()
		}
	}

	// No subcommand launches the GUI
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.proc.RunGUIMode()
	}

	rootCmd.AddCommand(app.commands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// application carries what every subcommand needs once flags are parsed
type application struct {
	flags  *cli.Flags
	logger *zap.Logger
	proc   *processor.Processor
}

func (a *application) setup(cmd *cobra.Command, args []string) error {
	if err := cli.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	a.flags.Resolve()

	logger, err := cli.NewLogger(a.flags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger
	a.proc = processor.NewProcessor(a.flags, logger)

	logger.Debug("Configuration resolved",
		zap.String("command", cmd.Name()),
		zap.String("data", a.flags.DataLocation()),
		zap.String("audio_dir", a.flags.AudioDir),
		zap.Strings("tiers", a.flags.Tiers),
		zap.Bool("single", a.flags.SingleList))
	return nil
}
