package lookup

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Number", "Number"},
		{"  Number  ", "Number"},
		{"\tNumber\n", "Number"},
		{"   ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Number", "Number", true},
		{"Number", "NUMBER", true},
		{" Number ", "number", true},
		{"Number", "Integer", false},
		{"", "  ", true},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCanonicalBuiltin(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Number", "Number", true},
		{"NUMBER", "Number", true},
		{"dateTime", "DateTime", true},
		{"Custom", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalBuiltin(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CanonicalBuiltin(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBuiltinKeysIsACopy(t *testing.T) {
	keys := BuiltinKeys()
	if len(keys) == 0 {
		t.Fatal("no built-in keys")
	}
	keys[0] = "mutated"
	if BuiltinKeys()[0] == "mutated" {
		t.Error("BuiltinKeys exposes internal state")
	}
}
