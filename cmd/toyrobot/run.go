package main

import (
	"github.com/aretw0/toyrobot/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [commands-file]",
	Short: "Run commands from a file or Stdin",
	Long: `Feeds one command per line to the robot. Without a file (or with "-") commands are
read from Stdin; on a terminal an interactive prompt is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		envFile, _ := cmd.Flags().GetString("env-file")
		debug, _ := cmd.Flags().GetBool("debug")
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		noColor, _ := cmd.Flags().GetBool("no-color")

		var inputPath string
		if len(args) > 0 {
			inputPath = args[0]
		}

		return cli.RunSession(cli.RunOptions{
			ConfigPath: configPath,
			EnvFile:    envFile,
			InputPath:  inputPath,
			Headless:   headless,
			JSON:       jsonMode,
			Debug:      debug,
			NoColor:    noColor,
			Stdin:      cmd.InOrStdin(),
			Stdout:     cmd.OutOrStdout(),
			Stderr:     cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, strict IO)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("no-color", false, "Disable colored error output")

	// 'run' is the default if no command is provided.
	rootCmd.Args = runCmd.Args
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
