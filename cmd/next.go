/*
Copyright © 2025 The Ticked Authors
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ticked-app/ticked/store"
)

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next todo to work on",
	Long:  `Show the incomplete todo with the lowest task number.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		todoStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the todo store", err)
		}
		defer func() { _ = todoStore.Close() }()

		todo, err := todoStore.Next()
		if err != nil {
			if errors.Is(err, store.ErrTodoNotFound) {
				fmt.Println("No pending todos - everything is done.")
				return nil
			}
			return fmt.Errorf("failed to fetch next todo: %w", err)
		}

		fmt.Printf("Next up: #%d %s (ID: %s)\n\n%s\n", todo.TaskNumber, todo.Title, todo.ID, todo.Description)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)
}
