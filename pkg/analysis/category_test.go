package analysis

import (
	"testing"

	"vigil-hq/vigil/pkg/conftree"
)

func TestBuiltinCategoryResolver(t *testing.T) {
	resolver := NewBuiltinCategoryResolver()

	tests := []struct {
		conditionType string
		want          conftree.ConditionCategory
	}{
		{"EqualTo", conftree.CategoryComparison},
		{"GreaterThanOrEqualValue", conftree.CategoryComparison},
		{"Range", conftree.CategoryComparison},
		{"RequireText", conftree.CategoryRequire},
		{"RegExp", conftree.CategoryContents},
		{"All", conftree.CategoryLogical},
		{"DataTypeCheck", conftree.CategoryDataTypeCheck},
	}
	for _, tt := range tests {
		got, err := resolver.Category(tt.conditionType)
		if err != nil {
			t.Errorf("Category(%q): %v", tt.conditionType, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Category(%q) = %q, want %q", tt.conditionType, got, tt.want)
		}
	}

	if _, err := resolver.Category("MadeUp"); err == nil {
		t.Error("unknown condition type did not error")
	}

	// Category lookup is case sensitive, unlike lookup keys.
	if _, err := resolver.Category("equalto"); err == nil {
		t.Error("lower-cased condition type resolved")
	}
}

func TestExplicitCategoryOverridesResolver(t *testing.T) {
	ctx := NewContext(Options{WithoutBuiltins: true})

	cond := &conftree.ConditionConfig{
		ConditionType: "MadeUp",
		Category:      conftree.CategoryComparison,
	}
	if !ctx.isComparison(cond) {
		t.Error("explicit Comparison category ignored")
	}

	cond = &conftree.ConditionConfig{
		ConditionType: "EqualTo",
		Category:      conftree.CategoryLogical,
	}
	if ctx.isComparison(cond) {
		t.Error("explicit non-Comparison category ignored")
	}
}
