/*
Copyright © 2025 The Ticked Authors
*/
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/ticked-app/ticked/models"
)

var listActiveOnly bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long:  `List all todos, or only the active (not yet completed) ones with --active.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		todoStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the todo store", err)
		}
		defer func() { _ = todoStore.Close() }()

		var todos []models.Todo
		if listActiveOnly {
			todos, err = todoStore.ListActive()
		} else {
			todos, err = todoStore.List()
		}
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}

		if len(todos) == 0 {
			fmt.Println("No todos found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tSTATUS\tTITLE\tCREATED\tID")
		for _, t := range todos {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				t.TaskNumber, t.Status, t.Title, t.CreatedAt.Local().Format(time.DateOnly), t.ID)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listActiveOnly, "active", false, "show only todos that are not completed")
}
