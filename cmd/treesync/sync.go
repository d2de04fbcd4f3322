package main

import (
	"path/filepath"

	"github.com/kyuff/treesync"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func syncCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync DIR",
		Short: "Sync the files below DIR with the stored snapshot once",
		Long: `List the files below DIR, compare them with the snapshot stored for the
project and record the difference. The change is printed like diff does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			projectID := v.GetString("project")
			if projectID == "" {
				projectID = filepath.Base(dir)
			}

			syncer, err := openSyncer(cmd.Context(), v, log, treesync.WithPeriodicSync(false))
			if err != nil {
				return err
			}
			defer syncer.Close()

			if err = syncer.Register(projectID, treesync.Dir(dir)); err != nil {
				return err
			}

			change, err := syncer.Sync(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			printChange(cmd.OutOrStdout(), change)
			return nil
		},
	}

	addDatabaseFlags(cmd.Flags())
	cmd.Flags().String("project", "", "Project id, defaults to the name of DIR")

	return cmd
}
