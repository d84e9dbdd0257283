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

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a todo as completed",
	Long: `Mark a todo as completed by its ID. Sets the completion timestamp
and the Done status. Completing an already-completed todo keeps the
original completion time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		todoStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the todo store", err)
		}
		defer func() { _ = todoStore.Close() }()

		todo, err := todoStore.Complete(args[0])
		if err != nil {
			if errors.Is(err, store.ErrTodoNotFound) {
				fmt.Printf("No todo found with ID %s\n", args[0])
				return nil
			}
			return fmt.Errorf("failed to complete todo: %w", err)
		}

		fmt.Printf("Completed todo #%d: %s\n", todo.TaskNumber, todo.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
