package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/toyrobot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of toyrobot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "toyrobot version %s\n", strings.TrimSpace(toyrobot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
