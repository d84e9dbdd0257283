/*
Copyright © 2025 The Ticked Authors
*/
package types

// ProjectConfig holds project-scoped paths.
type ProjectConfig struct {
	// RootDir is the directory holding all Ticked state (default ".ticked").
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// DataConfig holds persistence settings.
type DataConfig struct {
	// File is the SQLite database file name inside the project root.
	File string `mapstructure:"file" validate:"required"`
}

// AppConfig is the unified application configuration, populated by viper from
// config file, environment (TICKED_*), and flags.
type AppConfig struct {
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Verbose bool          `mapstructure:"verbose"`
}
