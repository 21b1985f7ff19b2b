// Package report renders and archives audit reports. Rendering targets
// developer tooling: console output for humans, JSON for CI gating, and a
// SQLite archive for trend tracking across runs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"vigil-hq/vigil/pkg/analysis"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteText renders the report for console output: a summary header, the
// lookup-key inventory with per-service outcomes, and every issue grouped
// by where it was found.
func WriteText(w io.Writer, r *analysis.Report) error {
	var sb strings.Builder

	counts := r.Counts()
	sb.WriteString(fmt.Sprintf("Audit %s\n", r.AuditID))
	sb.WriteString(fmt.Sprintf("Cultures: %s\n", strings.Join(r.CultureIDs, ", ")))
	sb.WriteString(fmt.Sprintf("Value hosts: %s\n", strings.Join(r.ValueHostNames, ", ")))
	sb.WriteString(fmt.Sprintf("Findings: %d error(s), %d warning(s), %d info\n\n",
		counts[analysis.SeverityError], counts[analysis.SeverityWarning], counts[analysis.SeverityInfo]))

	if len(r.LookupKeysInfo) > 0 {
		sb.WriteString("Lookup keys:\n")
		for _, info := range r.LookupKeysInfo {
			suffix := ""
			if info.UsedAsDataType {
				suffix = " (data type)"
			}
			sb.WriteString(fmt.Sprintf("  %s%s\n", info.LookupKey, suffix))
			for _, sr := range info.Services {
				writeServiceResult(&sb, sr)
			}
		}
		sb.WriteString("\n")
	}

	writeIssues(&sb, "Lookup key issues", r.LookupKeysIssues)
	for _, vhr := range r.ValueHostResults {
		writeIssues(&sb, fmt.Sprintf("Value host %q", vhr.Name), vhr.Properties)
		for _, vr := range vhr.Validators {
			writeIssues(&sb, fmt.Sprintf("Value host %q, validator %q", vhr.Name, vr.ErrorCode), vr.Properties)
		}
	}
	writeIssues(&sb, "Other issues", r.OtherIssues)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeServiceResult(sb *strings.Builder, sr *analysis.ServiceResult) {
	switch {
	case len(sr.Cultures) > 0:
		sb.WriteString(fmt.Sprintf("    %s:\n", sr.Service))
		for _, cr := range sr.Cultures {
			if cr.Found {
				label := cr.ClassFound
				if len(cr.Matches) > 0 {
					var names []string
					for _, m := range cr.Matches {
						if m.ClassFound != "" {
							names = append(names, m.ClassFound)
						}
					}
					label = strings.Join(names, ", ")
				}
				note := ""
				if cr.ActualCultureID != "" && cr.ActualCultureID != cr.RequestedCultureID {
					note = fmt.Sprintf(" (via %s)", cr.ActualCultureID)
				}
				sb.WriteString(fmt.Sprintf("      %s: %s%s\n", cr.RequestedCultureID, label, note))
			} else {
				sb.WriteString(fmt.Sprintf("      %s: %s\n", cr.RequestedCultureID, cr.Message))
			}
		}
	case sr.Found:
		sb.WriteString(fmt.Sprintf("    %s: %s\n", sr.Service, sr.ClassFound))
	default:
		sb.WriteString(fmt.Sprintf("    %s: %s\n", sr.Service, sr.Message))
	}
	if sr.TryFallback {
		sb.WriteString("      (will retry with the fallback lookup key)\n")
	}
}

func writeIssues(sb *strings.Builder, heading string, issues []analysis.Issue) {
	if len(issues) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, is := range issues {
		where := ""
		if is.PropertyName != "" {
			where = fmt.Sprintf(" [%s]", is.PropertyName)
		} else if is.LookupKey != "" {
			where = fmt.Sprintf(" [%s]", is.LookupKey)
		}
		sb.WriteString(fmt.Sprintf("  %s%s: %s\n", is.Severity, where, is.Message))
	}
	sb.WriteString("\n")
}
