/*
Copyright © 2025 The Ticked Authors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ticked-app/ticked/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ticked",
	Short: "Ticked tracks your todos and serves them to AI tools over MCP.",
	Long: `Ticked is a todo-tracking backend with a Model Context Protocol server.
It persists todos in a local SQLite database and exposes them to AI tools
like Claude Code and Cursor, alongside a small set of CLI commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.ticked/.ticked.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetDBPath returns the full path to the SQLite database file.
func GetDBPath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Data.File)
}

// GetStore initializes and returns the todo store.
func GetStore() (store.TodoStore, error) {
	dbPath := GetDBPath()
	s, err := store.NewSQLiteStore(dbPath, afero.NewOsFs())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", dbPath, err)
	}
	return s, nil
}

// HandleFatalError prints a message and the underlying error to stderr and exits.
func HandleFatalError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}
