package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kyuff/treesync"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func addDatabaseFlags(flags *pflag.FlagSet) {
	flags.String("dsn", "", "PostgreSQL connection string (env TREESYNC_DSN)")
	flags.String("table-prefix", "treesync", "Prefix of the tables treesync creates")
}

func openSyncer(ctx context.Context, v *viper.Viper, log *slog.Logger, opts ...treesync.Option) (*treesync.Syncer, error) {
	dsn := v.GetString("dsn")
	if dsn == "" {
		return nil, fmt.Errorf("missing --dsn or TREESYNC_DSN")
	}

	return treesync.New(append([]treesync.Option{
		treesync.WithStartContext(ctx),
		treesync.WithDSN(dsn),
		treesync.WithTablePrefix(v.GetString("table-prefix")),
		treesync.WithSlog(log),
	}, opts...)...)
}

func printChange(w io.Writer, change treesync.Change) {
	fmt.Fprintf(w, "%s %s: %d removed, %d added\n", change.ProjectID, change.SnapshotID, len(change.Removed), len(change.Added))
	for _, p := range change.Removed {
		fmt.Fprintf(w, "-%s\n", p)
	}
	for _, p := range change.Added {
		fmt.Fprintf(w, "+%s\n", p)
	}
}
