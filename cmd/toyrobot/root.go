package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "toyrobot",
	Short: "Toy robot simulator on a bounded tabletop",
	Long: `toyrobot reads PLACE, MOVE, LEFT, RIGHT and REPORT commands and drives a robot
around a square table without letting it fall off.

Successful REPORTs go to Stdout, rejected commands go to Stderr.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file with TOYROBOT_* overrides")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of every command")
}
