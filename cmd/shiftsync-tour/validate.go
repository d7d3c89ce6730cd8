package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/josephwaugh312/shiftsync-tour/pkg/catalog"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a step catalog for consistency",
	Long:  `Parses the catalog and reports duplicate step ids, bad positions, or malformed fallback targets.`,
	Run: func(cmd *cobra.Command, args []string) {
		cat, err := runValidate(cmd, args)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catalog is valid! ✅ (%d steps)\n", len(cat))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) (domain.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		// The built-in catalog is validated too, as a sanity check.
		cat := catalog.Default()
		return cat, cat.Validate()
	}
	return catalog.NewFileLoader(path).Load(cmd.Context())
}
