/*
Copyright © 2025 The Ticked Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addDescription string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new todo",
	Long: `Add a new todo with a title and a description.
The todo gets the next sequential task number.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		todoStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the todo store", err)
		}
		defer func() { _ = todoStore.Close() }()

		todo, err := todoStore.Create(args[0], addDescription)
		if err != nil {
			return fmt.Errorf("failed to add todo: %w", err)
		}

		fmt.Printf("Added todo #%d: %s (ID: %s)\n", todo.TaskNumber, todo.Title, todo.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "description of the todo (required)")
	_ = addCmd.MarkFlagRequired("description")
}
