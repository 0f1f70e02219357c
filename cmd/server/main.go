// Package main is the entry point for the gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-progression",
	Short: "Character progression gRPC server",
	Long: `rpg-progression serves the level 1 feat/heritage choice, the level-up wizard
and the derived benefit view for characters over gRPC.`,
}

var envFiles []string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load before the environment (default .env)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
