package main

import (
	"fmt"
	"strings"

	tour "github.com/josephwaugh312/shiftsync-tour"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shiftsync-tour",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shiftsync-tour version %s\n", strings.TrimSpace(tour.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
