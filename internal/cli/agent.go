// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/client"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Talk to your tasks through an AI assistant",
	Long: `Opens a chat session with an AI assistant that reads and changes your
tasks through the same encrypted services as the other commands. Requires
AGENT_API_KEY to be configured. Type 'exit' to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			assistant, err := app.NewAgent()
			if err != nil {
				return err
			}

			fmt.Println("Agent ready. Ask about your tasks; type 'exit' to leave.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				reply, err := assistant.Ask(ctx, line)
				if err != nil {
					fmt.Fprintf(os.Stderr, "agent error: %v\n", err)
					continue
				}
				fmt.Println(reply)
			}
			return scanner.Err()
		})
	},
}
