////////////////////////////////////////////////////////////////////////////////
// fundctl: command line front end for the community fund
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"community_fund/internal/config"

	"github.com/spf13/cobra"
)

const (
	programName = "fundctl"
)

type globalFlags struct {
	debug      bool
	configFile string
	keyFile    string
	// at overrides the block timestamp of submitted calls
	at string
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	addSource := false
	if debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	return slog.New(
		slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Operate a community fund: proposals, votes, approvals and the vault",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().
		BoolVarP(&flags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&flags.configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().
		StringVarP(&flags.keyFile, "key", "k", "", "path to the signing key (defaults to the configured keyFile)")
	rootCmd.PersistentFlags().
		StringVar(&flags.at, "at", "", "block timestamp for submitted calls (unix seconds or ISO date, default now)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(flags.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// Override config with command line flags
		if flags.keyFile != "" {
			cfg.KeyFile = flags.keyFile
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	app := &cli{flags: flags}

	// Subcommands
	rootCmd.AddCommand(app.keygenCommand())
	rootCmd.AddCommand(app.airdropCommand())
	rootCmd.AddCommand(app.balanceCommand())
	rootCmd.AddCommand(app.actionCommands()...)
	rootCmd.AddCommand(app.showCommand())

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}
