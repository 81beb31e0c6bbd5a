// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import "github.com/spf13/cobra"

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage task notes",
	Long:  `Attach, list, edit, and delete encrypted notes on your tasks.`,
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}
