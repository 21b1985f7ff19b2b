package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vigil-hq/vigil/pkg/analysis"
	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/l10n"
	"vigil-hq/vigil/pkg/report"
)

var auditFlags struct {
	file   string
	format string
	strict bool
	store  string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit a validation configuration",
	Long: `Audit a validation configuration file against its declared cultures
and the registered providers.

The audit walks every value host, validator, and condition in the
configuration, resolves every lookup key against the five provider
categories, and reports all findings. The configuration is never
mutated and no validator is executed.

Exit status is non-zero when errors are found; with --strict, warnings
also fail the audit.

Examples:
  # Audit a configuration
  vigil audit --file config.yaml

  # JSON output for CI/CD
  vigil audit --file config.yaml --format json

  # Fail on warnings too
  vigil audit --file config.yaml --strict

  # Archive the report
  vigil audit --file config.yaml --store reports.db`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVarP(&auditFlags.file, "file", "f", "", "configuration file to audit (required)")
	auditCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json")
	auditCmd.Flags().BoolVar(&auditFlags.strict, "strict", false, "treat warnings as errors")
	auditCmd.Flags().StringVar(&auditFlags.store, "store", "", "archive the report into this SQLite database")
	auditCmd.MarkFlagRequired("file")
}

func runAudit(cmd *cobra.Command, args []string) error {
	r, err := auditFile(auditFlags.file, nil)
	if err != nil {
		return err
	}

	switch auditFlags.format {
	case "json":
		if err := report.WriteJSON(os.Stdout, r); err != nil {
			return err
		}
	case "text":
		if err := report.WriteText(os.Stdout, r); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (expected text or json)", auditFlags.format)
	}

	if auditFlags.store != "" {
		store, err := report.OpenStore(auditFlags.store)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(context.Background(), r); err != nil {
			return err
		}
	}

	counts := r.Counts()
	if counts[analysis.SeverityError] > 0 {
		return fmt.Errorf("audit found %d error(s)", counts[analysis.SeverityError])
	}
	if auditFlags.strict && counts[analysis.SeverityWarning] > 0 {
		return fmt.Errorf("audit found %d warning(s) (strict mode)", counts[analysis.SeverityWarning])
	}
	return nil
}

// auditFile loads one audit document and runs a fresh audit over it. The
// optional cache is shared across runs in watch mode.
func auditFile(path string, cache analysis.SampleCache) (*analysis.Report, error) {
	doc, err := conftree.LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := analysis.NewContext(analysis.Options{
		Cultures:              doc.Cultures,
		LookupKeyFallbacks:    doc.LookupKeyFallbacks,
		SampleValues:          doc.SampleValues,
		ValueHostSampleValues: doc.ValueHostSampleValues,
		SampleCache:           cache,
		Localizer:             l10n.NewInMemoryLocalizer(doc.Texts),
	})
	return ctx.Analyze(doc.Tree()), nil
}
