package main

import (
	"fmt"

	"github.com/kyuff/treesync/sortedlist"
	"github.com/spf13/cobra"
)

func subtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subtract LIST1 LIST2",
		Short: "Print the lines of LIST1 that are not in LIST2",
		Long: `Remove the lines of LIST2 from LIST1. Both listings must be strictly sorted.

Lines of LIST2 that are missing from LIST1 are reported on standard error and
otherwise ignored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list1, list2, err := readLists(args[0], args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			result := sortedlist.SubtractOrdered(list1, list2, func(line string) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not in %s\n", line, args[0])
			})

			out := cmd.OutOrStdout()
			for _, line := range result {
				fmt.Fprintln(out, line)
			}

			return nil
		},
	}
}
