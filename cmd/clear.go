/*
Copyright © 2025 The Ticked Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearForce bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all todos",
	Long: `Delete every todo in the store. This cannot be undone.
Requires --force to actually run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearForce {
			fmt.Println("Refusing to delete all todos without --force.")
			return nil
		}

		todoStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the todo store", err)
		}
		defer func() { _ = todoStore.Close() }()

		removed, err := todoStore.ClearAll()
		if err != nil {
			return fmt.Errorf("failed to clear todos: %w", err)
		}

		fmt.Printf("Removed %d todos.\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the safety check and delete everything")
}
