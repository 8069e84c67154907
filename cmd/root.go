// Package cmd holds the CLI surface. All fatal input validation happens
// here, before the scan pipeline runs; the core never sees flags, exit
// codes, or environment variables.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
)

// Process exit codes.
const (
	ExitPass       = 0
	ExitViolations = 1
	ExitUsage      = 2
	ExitFailure    = 3
)

var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "prod-analyzer",
	Short: "prod-analyzer - production-readiness scanner for application configuration",
	Long: `prod-analyzer scans YAML, .properties, .env and JSON configuration files
for production-unsafe settings and evaluates user-defined policies against
the same data. Its exit code drives CI/CD pass/fail decisions.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsage)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug-level logging")
}
