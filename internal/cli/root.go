// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

// Package cli defines the taskkeeper command tree. One-shot data commands
// prompt for credentials, unlock a session, act, and lock again before the
// process exits; interactive modes hand off to the TUI or the agent REPL.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/config"
)

var (
	configPath string
	dbPath     string
	username   string
)

var rootCmd = &cobra.Command{
	Use:   "taskkeeper",
	Short: "taskkeeper - an encrypted personal task and note manager",
	Long: `Taskkeeper stores tasks and notes in a local sqlite database with all
titles, descriptions, and note bodies encrypted under a key derived from
your password and the application master secret (APP_MASTER_KEY).

Run 'taskkeeper help <command>' for details on a specific command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to taskkeeper! Run 'taskkeeper --help' to see available commands.")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database file")
	rootCmd.PersistentFlags().StringVarP(&username, "user", "u", "", "account username (prompted when omitted)")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(passwdCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagOverrides translates persistent flags into config overrides; they
// take priority over the environment and the JSON file.
func flagOverrides() *config.StructuredConfig {
	overrides := &config.StructuredConfig{}
	overrides.JSONFilePath = configPath
	overrides.Storage.DB.DSN = dbPath
	return overrides
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
