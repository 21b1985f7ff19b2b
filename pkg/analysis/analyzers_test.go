package analysis

import (
	"fmt"
	"testing"
	"time"

	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/culture"
	"vigil-hq/vigil/pkg/lookup"
	"vigil-hq/vigil/pkg/providers"
)

func TestFormatterAnalyzerPerCulture(t *testing.T) {
	ctx := NewContext(Options{
		Cultures:        []culture.Entry{{CultureID: "en"}, {CultureID: "fr"}},
		WithoutBuiltins: true,
		Formatters:      []providers.Formatter{&fakeFormatter{key: lookup.KeyNumber, cultures: []string{"en"}}},
	})

	res := ctx.RegisterLookupKey(lookup.KeyNumber, ServiceFormatter, nil)
	if res == nil {
		t.Fatal("no formatter result")
	}
	if !res.Found {
		t.Error("found = false, want true (at least one culture resolved)")
	}
	if res.TryFallback {
		t.Error("tryFallback set with an empty fallback registry")
	}
	if len(res.Cultures) != 2 {
		t.Fatalf("culture rows = %d, want 2", len(res.Cultures))
	}

	en := res.Cultures[0]
	if !en.Found || en.ClassFound != "fakeFormatter" || en.ActualCultureID != "en" {
		t.Errorf("en row = %+v, want found via fakeFormatter at en", en)
	}

	fr := res.Cultures[1]
	if fr.Found {
		t.Error("fr row found = true, want false")
	}
	want := fmt.Sprintf("No DataTypeFormatter for LookupKey %q with culture %q", lookup.KeyNumber, "fr")
	if fr.Message != want {
		t.Errorf("fr message = %q, want %q", fr.Message, want)
	}
	if fr.Severity != SeverityError {
		t.Errorf("fr severity = %q, want %q", fr.Severity, SeverityError)
	}
}

func TestFormatterAnalyzerFallbackChain(t *testing.T) {
	ctx := NewContext(Options{
		Cultures: []culture.Entry{
			{CultureID: "fr-CA", FallbackCultureID: "fr"},
			{CultureID: "fr"},
		},
		WithoutBuiltins: true,
		Formatters:      []providers.Formatter{&fakeFormatter{key: lookup.KeyNumber, cultures: []string{"fr"}}},
	})

	res := ctx.RegisterLookupKey(lookup.KeyNumber, ServiceFormatter, nil)
	frCA := res.Cultures[0]
	if !frCA.Found {
		t.Fatal("fr-CA should resolve through its fallback chain")
	}
	if frCA.RequestedCultureID != "fr-CA" || frCA.ActualCultureID != "fr" {
		t.Errorf("requested %q resolved at %q, want fr-CA resolved at fr",
			frCA.RequestedCultureID, frCA.ActualCultureID)
	}
}

func TestParserAnalyzerMultiMatch(t *testing.T) {
	ctx := NewContext(Options{
		Cultures: []culture.Entry{
			{CultureID: "en"}, {CultureID: "fr"}, {CultureID: "es"},
		},
		WithoutBuiltins: true,
		Parsers: []providers.Parser{
			&alphaParser{key: "toNumber"},
			&betaParser{key: "toNumber"},
			&gammaParser{key: "toNumber"},
		},
	})

	res := ctx.RegisterLookupKey("toNumber", ServiceParser, nil)
	if res == nil || !res.Found {
		t.Fatal("parser resolution failed")
	}
	if len(res.Cultures) != 3 {
		t.Fatalf("culture rows = %d, want 3", len(res.Cultures))
	}
	for _, row := range res.Cultures {
		if !row.Found {
			t.Errorf("culture %q not found", row.RequestedCultureID)
		}
		if len(row.Matches) != 3 {
			t.Fatalf("culture %q matches = %d, want 3", row.RequestedCultureID, len(row.Matches))
		}
		classes := map[string]bool{}
		for _, m := range row.Matches {
			classes[m.ClassFound] = true
		}
		for _, want := range []string{"alphaParser", "betaParser", "gammaParser"} {
			if !classes[want] {
				t.Errorf("culture %q missing match %q", row.RequestedCultureID, want)
			}
		}
	}
}

func TestParserAnalyzerPredicatePanic(t *testing.T) {
	ctx := NewContext(Options{
		Cultures:        []culture.Entry{{CultureID: "en"}},
		WithoutBuiltins: true,
		Parsers: []providers.Parser{
			panickyParser{},
			&alphaParser{key: "toNumber"},
		},
	})

	res := ctx.RegisterLookupKey("toNumber", ServiceParser, nil)
	row := res.Cultures[0]
	if !row.Found {
		t.Error("the surviving parser should still match")
	}
	if len(row.Matches) != 2 {
		t.Fatalf("matches = %d, want 2 (one failure, one match)", len(row.Matches))
	}
	var sawFailure bool
	for _, m := range row.Matches {
		if m.Severity == SeverityError {
			sawFailure = true
			if m.Message != "parser exploded" {
				t.Errorf("failure message = %q, want the recovered panic value", m.Message)
			}
		}
	}
	if !sawFailure {
		t.Error("panicking predicate did not produce an error match entry")
	}
}

func TestParserAnalyzerNotFound(t *testing.T) {
	ctx := NewContext(Options{
		Cultures:        []culture.Entry{{CultureID: "en"}},
		WithoutBuiltins: true,
	})

	res := ctx.RegisterLookupKey("toNumber", ServiceParser, nil)
	row := res.Cultures[0]
	want := fmt.Sprintf("No DataTypeParser for LookupKey %q with culture %q", "toNumber", "en")
	if row.Message != want {
		t.Errorf("message = %q, want %q", row.Message, want)
	}
	if row.Severity != SeverityError {
		t.Errorf("severity = %q, want %q", row.Severity, SeverityError)
	}
}

func TestConverterAnalyzer(t *testing.T) {
	vh := &conftree.ValueHostConfig{Name: "amount", DataType: "Custom"}

	t.Run("no sample value", func(t *testing.T) {
		ctx := NewContext(Options{WithoutBuiltins: true})
		res := ctx.RegisterLookupKey(lookup.KeyInteger, ServiceConverter, vh)
		if res.Found {
			t.Error("found = true without a sample value")
		}
		if res.Severity != SeverityWarning {
			t.Errorf("severity = %q, want %q", res.Severity, SeverityWarning)
		}
		want := `No sample value found for LookupKey "Custom". Cannot check for a DataTypeConverter.`
		if res.Message != want {
			t.Errorf("message = %q, want %q", res.Message, want)
		}
	})

	t.Run("converter found", func(t *testing.T) {
		ctx := NewContext(Options{
			WithoutBuiltins: true,
			Identifiers:     []providers.Identifier{&fakeIdentifier{key: "Custom", sample: 12.5}},
			Converters:      []providers.Converter{&fakeConverter{resultKey: lookup.KeyInteger}},
		})
		res := ctx.RegisterLookupKey(lookup.KeyInteger, ServiceConverter, vh)
		if !res.Found {
			t.Fatalf("found = false, message %q", res.Message)
		}
		if res.ClassFound != "fakeConverter" {
			t.Errorf("classFound = %q, want fakeConverter", res.ClassFound)
		}
		if len(res.DataExamples) != 1 || res.DataExamples[0] != 12.5 {
			t.Errorf("dataExamples = %v, want the probed sample", res.DataExamples)
		}
	})

	t.Run("converter not found", func(t *testing.T) {
		ctx := NewContext(Options{
			WithoutBuiltins: true,
			Identifiers:     []providers.Identifier{&fakeIdentifier{key: "Custom", sample: 12.5}},
		})
		res := ctx.RegisterLookupKey(lookup.KeyInteger, ServiceConverter, vh)
		if res.Found {
			t.Error("found = true with no converters registered")
		}
		want := fmt.Sprintf("No DataTypeConverter for LookupKey %q", lookup.KeyInteger)
		if res.Message != want {
			t.Errorf("message = %q, want %q", res.Message, want)
		}
	})
}

func TestComparerAnalyzer(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		key       string
		wantFound bool
		wantClass string
		wantSev   Severity
	}{
		{
			name: "number sample uses the default comparer",
			opts: Options{
				WithoutBuiltins: true,
				Identifiers:     []providers.Identifier{&fakeIdentifier{key: "Score", sample: 4.2}},
			},
			key:       "Score",
			wantFound: true,
			wantClass: defaultComparerName,
		},
		{
			name: "string sample uses the default comparer",
			opts: Options{
				WithoutBuiltins: true,
				Identifiers:     []providers.Identifier{&fakeIdentifier{key: "Code", sample: "abc"}},
			},
			key:       "Code",
			wantFound: true,
			wantClass: defaultComparerName,
		},
		{
			name: "boolean sample uses the boolean comparer",
			opts: Options{
				WithoutBuiltins: true,
				Identifiers:     []providers.Identifier{&fakeIdentifier{key: "Flag", sample: true}},
			},
			key:       "Flag",
			wantFound: true,
			wantClass: "BooleanComparer",
		},
		{
			name: "custom sample probes registered comparers",
			opts: Options{
				WithoutBuiltins: true,
				Identifiers:     []providers.Identifier{&fakeIdentifier{key: "Appointment", sample: time.Now()}},
				Comparers:       []providers.Comparer{&fakeComparer{key: "Appointment"}},
			},
			key:       "Appointment",
			wantFound: true,
			wantClass: "fakeComparer",
		},
		{
			name: "custom sample with no comparer",
			opts: Options{
				WithoutBuiltins: true,
				Identifiers:     []providers.Identifier{&fakeIdentifier{key: "Appointment", sample: time.Now()}},
			},
			key:     "Appointment",
			wantSev: SeverityError,
		},
		{
			name:    "no sample value",
			opts:    Options{WithoutBuiltins: true},
			key:     "Mystery",
			wantSev: SeverityWarning,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.opts)
			res := ctx.RegisterLookupKey(tt.key, ServiceComparer, nil)
			if res.Found != tt.wantFound {
				t.Errorf("found = %v, want %v (message %q)", res.Found, tt.wantFound, res.Message)
			}
			if res.ClassFound != tt.wantClass {
				t.Errorf("classFound = %q, want %q", res.ClassFound, tt.wantClass)
			}
			if tt.wantSev != "" && res.Severity != tt.wantSev {
				t.Errorf("severity = %q, want %q", res.Severity, tt.wantSev)
			}
		})
	}
}

func TestComparerAnalyzerMessages(t *testing.T) {
	ctx := NewContext(Options{WithoutBuiltins: true})
	res := ctx.RegisterLookupKey("Mystery", ServiceComparer, nil)
	want := `Cannot check the comparer. No sample value found for LookupKey "Mystery".`
	if res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}
}

func TestIdentifierAnalyzer(t *testing.T) {
	t.Run("registered identifier wins", func(t *testing.T) {
		ctx := NewContext(Options{
			WithoutBuiltins: true,
			Identifiers:     []providers.Identifier{&fakeIdentifier{key: "Custom", sample: 1}},
		})
		res := ctx.RegisterLookupKey("Custom", ServiceIdentifier, nil)
		if !res.Found || res.ClassFound != "fakeIdentifier" {
			t.Errorf("result = %+v, want fakeIdentifier", res)
		}
	})

	t.Run("builtin key synthesizes its identifier", func(t *testing.T) {
		ctx := NewContext(Options{WithoutBuiltins: true})
		res := ctx.RegisterLookupKey(lookup.KeyNumber, ServiceIdentifier, nil)
		if !res.Found || res.ClassFound != "NumberIdentifier" {
			t.Errorf("result = %+v, want NumberIdentifier", res)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		ctx := NewContext(Options{WithoutBuiltins: true})
		res := ctx.RegisterLookupKey("Widget", ServiceIdentifier, nil)
		if res.Found {
			t.Error("found = true for an unknown key")
		}
		want := `No DataTypeIdentifier for LookupKey "Widget"`
		if res.Message != want {
			t.Errorf("message = %q, want %q", res.Message, want)
		}
	})
}
