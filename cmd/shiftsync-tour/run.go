package main

import (
	"fmt"
	"os"

	"github.com/josephwaugh312/shiftsync-tour/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive tour session",
	Long:  `Walks the ShiftSync tour step by step in the terminal. Progress persists across runs via the configured store.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptionsFromFlags(cmd)
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, auto-advance)")
	runCmd.Flags().Bool("debug", false, "Log lifecycle events to stderr")

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
