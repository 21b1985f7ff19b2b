package analysis

import (
	"fmt"

	"vigil-hq/vigil/pkg/conftree"
)

// CategoryResolver infers a condition's category from its condition type
// when the configuration does not declare one explicitly. An error (or a
// panic, which the orchestrator captures) means the type is unknown, and
// the condition is treated as not a comparison.
type CategoryResolver interface {
	Category(conditionType string) (conftree.ConditionCategory, error)
}

// builtinConditionCategories classifies the stock condition types.
var builtinConditionCategories = map[string]conftree.ConditionCategory{
	"EqualTo":                 conftree.CategoryComparison,
	"NotEqualTo":              conftree.CategoryComparison,
	"GreaterThan":             conftree.CategoryComparison,
	"GreaterThanOrEqual":      conftree.CategoryComparison,
	"LessThan":                conftree.CategoryComparison,
	"LessThanOrEqual":         conftree.CategoryComparison,
	"EqualToValue":            conftree.CategoryComparison,
	"NotEqualToValue":         conftree.CategoryComparison,
	"GreaterThanValue":        conftree.CategoryComparison,
	"GreaterThanOrEqualValue": conftree.CategoryComparison,
	"LessThanValue":           conftree.CategoryComparison,
	"LessThanOrEqualValue":    conftree.CategoryComparison,
	"Range":                   conftree.CategoryComparison,
	"RequireText":             conftree.CategoryRequire,
	"NotNull":                 conftree.CategoryRequire,
	"RegExp":                  conftree.CategoryContents,
	"StringLength":            conftree.CategoryContents,
	"All":                     conftree.CategoryLogical,
	"Any":                     conftree.CategoryLogical,
	"CountMatches":            conftree.CategoryLogical,
	"DataTypeCheck":           conftree.CategoryDataTypeCheck,
}

type builtinCategoryResolver struct{}

// NewBuiltinCategoryResolver resolves the stock condition types and
// rejects everything else.
func NewBuiltinCategoryResolver() CategoryResolver {
	return builtinCategoryResolver{}
}

func (builtinCategoryResolver) Category(conditionType string) (conftree.ConditionCategory, error) {
	if cat, ok := builtinConditionCategories[conditionType]; ok {
		return cat, nil
	}
	return "", fmt.Errorf("unknown condition type %q", conditionType)
}
