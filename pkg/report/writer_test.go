package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"vigil-hq/vigil/pkg/analysis"
)

func sampleReport() *analysis.Report {
	return &analysis.Report{
		AuditID:        "audit-123",
		GeneratedAt:    time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
		CultureIDs:     []string{"en", "fr"},
		ValueHostNames: []string{"age"},
		LookupKeysInfo: []*analysis.LookupKeyInfo{{
			LookupKey:      "Number",
			UsedAsDataType: true,
			Services: []*analysis.ServiceResult{{
				Service: analysis.ServiceFormatter,
				Found:   true,
				Cultures: []*analysis.CultureSpecificResult{
					{RequestedCultureID: "en", ActualCultureID: "en", Found: true, ClassFound: "NumberFormatter"},
					{RequestedCultureID: "fr", Severity: analysis.SeverityError,
						Message: `No DataTypeFormatter for LookupKey "Number" with culture "fr"`},
				},
			}},
		}},
		LookupKeysIssues: []analysis.Issue{{
			Feature:   analysis.FeatureLookupKey,
			Severity:  analysis.SeverityWarning,
			LookupKey: "Number",
			Message:   "something looks off",
		}},
		ValueHostResults: []*analysis.ValueHostResult{{
			Name: "age",
			Validators: []*analysis.ValidatorResult{{
				ErrorCode: "MinimumAge",
				Properties: []analysis.Issue{{
					Feature:      analysis.FeatureProperty,
					PropertyName: "errorMessage",
					Severity:     analysis.SeverityError,
					Message:      "Syntax error in message token \"{bad\".",
				}},
			}},
		}},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Audit audit-123",
		"Cultures: en, fr",
		"Value hosts: age",
		"2 error(s), 1 warning(s), 0 info",
		"Number (data type)",
		"en: NumberFormatter",
		`fr: No DataTypeFormatter for LookupKey "Number" with culture "fr"`,
		"Lookup key issues:",
		`Value host "age", validator "MinimumAge":`,
		"Syntax error in message token",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded analysis.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded.AuditID != "audit-123" {
		t.Errorf("auditId = %q", decoded.AuditID)
	}
	if len(decoded.LookupKeysInfo) != 1 || decoded.LookupKeysInfo[0].LookupKey != "Number" {
		t.Errorf("lookupKeysInfo = %+v", decoded.LookupKeysInfo)
	}

	// Provider instances are diagnostic-only and must not serialize.
	if strings.Contains(buf.String(), `"instance"`) {
		t.Error("instance field leaked into JSON")
	}
}
