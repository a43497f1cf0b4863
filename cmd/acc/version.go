package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ashlang/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the acc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
			colored, err := readColor(colorFlag, os.Stdout)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Summary(colored))
			return nil
		},
	}
}
