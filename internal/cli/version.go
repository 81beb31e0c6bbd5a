// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Build version: %s\n", orNA(buildVersion))
		fmt.Printf("Build date: %s\n", orNA(buildDate))
		fmt.Printf("Build commit: %s\n", orNA(buildCommit))
	},
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
