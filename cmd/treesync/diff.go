package main

import (
	"errors"
	"fmt"

	"github.com/kyuff/treesync/sortedlist"
	"github.com/spf13/cobra"
)

var errDifferent = errors.New("listings differ")

func diffCmd() *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print the lines removed from and added to a sorted listing",
		Long: `Compare two strictly sorted listings with one path per line.

Removed lines are printed as "-path", added lines as "+path". Use "-" to read
one of the listings from standard input.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldList, newList, err := readLists(args[0], args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			removed, added := sortedlist.CompareOrdered(oldList, newList)

			out := cmd.OutOrStdout()
			for _, line := range removed {
				fmt.Fprintf(out, "-%s\n", line)
			}
			for _, line := range added {
				fmt.Fprintf(out, "+%s\n", line)
			}

			if exitCode && len(removed)+len(added) > 0 {
				return errDifferent
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Fail when the listings differ")

	return cmd
}
