// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: cmd/scrim-info/main.go
// Summary: Diagnostic CLI for capability inspection and input decoding.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "scrim-info",
	Short:             "Inspect terminal capabilities and input sequences",
	DisableAutoGenTag: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(capsCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(keysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
