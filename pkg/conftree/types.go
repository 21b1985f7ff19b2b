// Package conftree models the declarative validation configuration the
// audit engine reads: value hosts (fields), their validators, and the
// condition trees those validators are built from. The audit never mutates
// a configuration; everything here is a read-only traversal surface.
package conftree

// ValueHostConfig describes one field (value host) in the configuration.
type ValueHostConfig struct {
	// Name identifies the value host; conditions reference hosts by name.
	Name string `yaml:"name" json:"name"`

	// DataType is the lookup key naming the host's native data type.
	// Optional; when empty, providers are probed with the lookup keys the
	// conditions supply.
	DataType string `yaml:"dataType,omitempty" json:"dataType,omitempty"`

	// Label is display text for the host, used in error messages.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	// LabelL10n is the localization key for Label.
	LabelL10n string `yaml:"labelL10n,omitempty" json:"labelL10n,omitempty"`

	// Validators lists the validators attached to this host.
	Validators []*ValidatorConfig `yaml:"validators,omitempty" json:"validators,omitempty"`
}

// MessageFunc produces an error message at runtime. Functions are never
// invoked during analysis; only literal message strings are scanned.
type MessageFunc func() string

// ValidatorConfig describes one validator attached to a value host.
type ValidatorConfig struct {
	// ErrorCode identifies the validator. When empty, the condition type
	// stands in for it.
	ErrorCode string `yaml:"errorCode,omitempty" json:"errorCode,omitempty"`

	// ErrorMessage is the literal error-message template. Placeholders use
	// the {identifier} and {identifier:lookupKey} forms.
	ErrorMessage string `yaml:"errorMessage,omitempty" json:"errorMessage,omitempty"`

	// ErrorMessageFunc supplies the message at runtime instead of a
	// literal. Mutually exclusive with ErrorMessage in practice.
	ErrorMessageFunc MessageFunc `yaml:"-" json:"-"`

	// ErrorMessageL10n is the localization key for the error message.
	ErrorMessageL10n string `yaml:"errorMessageL10n,omitempty" json:"errorMessageL10n,omitempty"`

	// SummaryMessage is the template shown in validation summaries.
	SummaryMessage string `yaml:"summaryMessage,omitempty" json:"summaryMessage,omitempty"`

	// SummaryMessageL10n is the localization key for the summary message.
	SummaryMessageL10n string `yaml:"summaryMessageL10n,omitempty" json:"summaryMessageL10n,omitempty"`

	// Condition is the condition tree this validator evaluates.
	Condition *ConditionConfig `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// ConditionCategory classifies a condition type for analysis purposes.
type ConditionCategory string

const (
	CategoryComparison    ConditionCategory = "Comparison"
	CategoryContents      ConditionCategory = "Contents"
	CategoryRequire       ConditionCategory = "Require"
	CategoryLogical       ConditionCategory = "Logical"
	CategoryDataTypeCheck ConditionCategory = "DataTypeCheck"
)

// ConditionConfig describes one node of a condition tree. ValueHostName,
// SecondValueHostName, Value, and SecondValue are declared as any because
// they come from untrusted configuration data; the audit reports wrong
// shapes instead of failing to decode them.
type ConditionConfig struct {
	// ConditionType names the condition (for example "GreaterThan").
	ConditionType string `yaml:"type" json:"conditionType"`

	// Category overrides the category inferred from ConditionType.
	Category ConditionCategory `yaml:"category,omitempty" json:"category,omitempty"`

	// ValueHostName references another value host to read the compared
	// value from. Expected to be a string.
	ValueHostName any `yaml:"valueHostName,omitempty" json:"valueHostName,omitempty"`

	// SecondValueHostName references the second operand's value host.
	SecondValueHostName any `yaml:"secondValueHostName,omitempty" json:"secondValueHostName,omitempty"`

	// Value is the literal first/only operand.
	Value any `yaml:"value,omitempty" json:"value,omitempty"`

	// SecondValue is the literal second operand.
	SecondValue any `yaml:"secondValue,omitempty" json:"secondValue,omitempty"`

	// ConversionLookupKey converts the first operand before comparing.
	ConversionLookupKey string `yaml:"conversionLookupKey,omitempty" json:"conversionLookupKey,omitempty"`

	// SecondConversionLookupKey converts the second operand.
	SecondConversionLookupKey string `yaml:"secondConversionLookupKey,omitempty" json:"secondConversionLookupKey,omitempty"`

	// Conditions holds child conditions for aggregating types (All, Any).
	Conditions []*ConditionConfig `yaml:"conditions,omitempty" json:"conditions,omitempty"`
}

// Config is the root of a validation configuration tree.
type Config struct {
	ValueHosts []*ValueHostConfig `yaml:"valueHosts" json:"valueHosts"`
}

// ValueHostNames returns the names of every value host in declaration
// order, without deduplication.
func (c *Config) ValueHostNames() []string {
	names := make([]string, 0, len(c.ValueHosts))
	for _, vh := range c.ValueHosts {
		names = append(names, vh.Name)
	}
	return names
}
