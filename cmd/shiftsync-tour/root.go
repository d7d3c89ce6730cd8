package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/josephwaugh312/shiftsync-tour/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "shiftsync-tour",
	Short: "ShiftSync tour is an interactive product-tour engine",
	Long:  `ShiftSync tour drives guided walkthroughs of the ShiftSync scheduling app: data-driven step catalogs, persistent progress, and required-action gating.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("catalog", "", "Path to a YAML step catalog (default: built-in ShiftSync tour)")
	rootCmd.PersistentFlags().String("store", "memory", "Persistence backend: memory, file, or redis")
	rootCmd.PersistentFlags().String("store-path", "", "File store location (only for --store=file)")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address (only for --store=redis)")
	rootCmd.PersistentFlags().String("store-key", "", "Base64 AES-256 key; encrypts persisted values at rest")
	rootCmd.PersistentFlags().String("store-namespace", "", "Key prefix, e.g. a user id, to scope progress")
}

func runOptionsFromFlags(cmd *cobra.Command) cli.RunOptions {
	catalogPath, _ := cmd.Flags().GetString("catalog")
	storeKind, _ := cmd.Flags().GetString("store")
	storePath, _ := cmd.Flags().GetString("store-path")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	storeKey, _ := cmd.Flags().GetString("store-key")
	storeNamespace, _ := cmd.Flags().GetString("store-namespace")
	return cli.RunOptions{
		CatalogPath:    catalogPath,
		StoreKind:      storeKind,
		StorePath:      storePath,
		RedisAddr:      redisAddr,
		StoreKey:       storeKey,
		StoreNamespace: storeNamespace,
	}
}
