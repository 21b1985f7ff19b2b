package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vigil",
	Short: "Vigil - static auditor for validation configurations",
	Long: `Vigil statically audits a declarative validation configuration before
it is used at runtime.

For every lookup key referenced anywhere in the configuration, vigil
confirms that a compatible provider exists for every supported culture,
and flags configuration mistakes with a severity and an explanation:
  - Unknown lookup keys and case-insensitive near misses
  - Missing formatters, converters, comparers, parsers, and identifiers
  - Malformed {token} placeholders in error-message templates
  - Missing localized text per culture
  - Dangling value-host references`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
