package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/lookup"
)

// Analyze audits a configuration tree and returns the completed report.
// The walk visits every value host, its validators, and their condition
// trees, registering each lookup key it encounters along the way. The
// configuration is never mutated and no validator is executed.
func (c *Context) Analyze(cfg *conftree.Config) *Report {
	r := c.report
	r.CultureIDs = c.cultures.AvailableCultures()

	for _, cid := range r.CultureIDs {
		if _, err := language.Parse(cid); err != nil {
			r.OtherIssues = append(r.OtherIssues, Issue{
				Feature:  FeatureCulture,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Culture %q is not a well-formed BCP 47 tag.", cid),
			})
		}
	}

	if cfg == nil {
		return r
	}

	// The full name inventory must exist before any condition is walked,
	// since conditions may reference hosts declared later.
	c.RegisterValueHostNames(cfg.ValueHostNames()...)
	r.ValueHostNames = c.hostNameList

	for _, vh := range cfg.ValueHosts {
		c.analyzeValueHost(vh)
	}
	return r
}

func (c *Context) analyzeValueHost(vh *conftree.ValueHostConfig) {
	vhr := &ValueHostResult{Name: vh.Name}
	c.report.ValueHostResults = append(c.report.ValueHostResults, vhr)

	if strings.TrimSpace(vh.Name) == "" {
		vhr.Properties = append(vhr.Properties, Issue{
			Feature:      FeatureProperty,
			PropertyName: "name",
			Severity:     SeverityError,
			Message:      "A ValueHost name is required.",
		})
	}

	c.CheckLookupKeyProperty("dataType", vh.DataType, ServiceNone, vh, &vhr.Properties, "", "")
	c.CheckLocalization("labelL10n", vh.LabelL10n, vh.Label, &vhr.Properties)

	for _, v := range vh.Validators {
		c.analyzeValidator(v, vh, vhr)
	}
}

func (c *Context) analyzeValidator(v *conftree.ValidatorConfig, vh *conftree.ValueHostConfig, vhr *ValueHostResult) {
	code := v.ErrorCode
	if code == "" && v.Condition != nil {
		code = v.Condition.ConditionType
	}
	vr := &ValidatorResult{ErrorCode: code}
	vhr.Validators = append(vhr.Validators, vr)

	// A callback-supplied message cannot be scanned without invoking it,
	// which analysis never does.
	if v.ErrorMessage != "" {
		c.CheckMessageTokens(v.ErrorMessage, vh, "errorMessage", &vr.Properties)
	}
	if v.SummaryMessage != "" {
		c.CheckMessageTokens(v.SummaryMessage, vh, "summaryMessage", &vr.Properties)
	}
	c.CheckLocalization("errorMessageL10n", v.ErrorMessageL10n, v.ErrorMessage, &vr.Properties)
	c.CheckLocalization("summaryMessageL10n", v.SummaryMessageL10n, v.SummaryMessage, &vr.Properties)

	if v.Condition == nil {
		vr.Properties = append(vr.Properties, Issue{
			Feature:      FeatureProperty,
			PropertyName: "condition",
			Severity:     SeverityError,
			Message:      "A condition is required.",
		})
		return
	}
	c.analyzeCondition(v.Condition, vh, vr)
}

func (c *Context) analyzeCondition(cond *conftree.ConditionConfig, vh *conftree.ValueHostConfig, vr *ValidatorResult) {
	issues := &vr.Properties

	if strings.TrimSpace(cond.ConditionType) == "" {
		*issues = append(*issues, Issue{
			Feature:      FeatureProperty,
			PropertyName: "conditionType",
			Severity:     SeverityError,
			Message:      "A conditionType is required.",
		})
	}

	if c.isComparison(cond) {
		c.RegisterLookupKey(cond.ConversionLookupKey, ServiceComparer, vh)
		if lookup.Normalize(cond.SecondConversionLookupKey) != "" {
			c.RegisterLookupKey(cond.SecondConversionLookupKey, ServiceComparer, vh)
		}
	}

	c.CheckLookupKeyProperty("conversionLookupKey", cond.ConversionLookupKey, ServiceConverter, vh, issues, "DataTypeConverter", "DataTypeConverterService")
	c.CheckLookupKeyProperty("secondConversionLookupKey", cond.SecondConversionLookupKey, ServiceConverter, vh, issues, "DataTypeConverter", "DataTypeConverterService")

	c.CheckValueHostNameExists(cond.ValueHostName, "valueHostName", issues)
	c.CheckValueHostNameExists(cond.SecondValueHostName, "secondValueHostName", issues)

	c.CheckValuePropertyContents(cond.Value, "value", vh.DataType, cond.ConversionLookupKey, issues)
	c.CheckValuePropertyContents(cond.SecondValue, "secondValue", vh.DataType, cond.SecondConversionLookupKey, issues)

	for _, child := range cond.Conditions {
		c.analyzeCondition(child, vh, vr)
	}
}

// isComparison reports whether a condition participates in comparer
// resolution: an explicit Comparison category, or a condition type the
// category resolver classifies as Comparison. Resolver failures of any
// kind mean "not a comparison".
func (c *Context) isComparison(cond *conftree.ConditionConfig) bool {
	if cond.Category != "" {
		return cond.Category == conftree.CategoryComparison
	}
	var cat conftree.ConditionCategory
	var catErr error
	if err := capture(func() { cat, catErr = c.categories.Category(cond.ConditionType) }); err != nil {
		return false
	}
	if catErr != nil {
		return false
	}
	return cat == conftree.CategoryComparison
}
