package main

import (
	"github.com/spf13/cobra"

	"github.com/luhtfiimanal/go-serial-term/internal/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show available serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListPorts(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
