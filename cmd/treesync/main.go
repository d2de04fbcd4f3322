package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TREESYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "treesync",
		Short: "Reconcile sorted file listings",
		Long: `treesync compares sorted listings of paths and keeps stored snapshots of
project trees in step with the files on disk.

Flags can also be set through the environment, e.g. TREESYNC_DSN or
TREESYNC_TABLE_PREFIX.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlags(cmd.Flags())
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		diffCmd(),
		subtractCmd(),
		syncCmd(v),
		watchCmd(v),
		versionCmd(),
	)

	return rootCmd
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err = level.UnmarshalText([]byte(raw)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", raw, err)
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "treesync %s (%s)\n", version, commit)
		},
	}
}
