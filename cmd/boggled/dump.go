package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/milden6/boggle"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <snapshot>",
	Short: "Print the layout of a dictionary snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		return boggle.Dump(cmd.OutOrStdout(), f)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
