package analysis

import "time"

// Severity grades a diagnostic finding.
type Severity string

const (
	// SeverityInfo marks a non-actionable observation.
	SeverityInfo Severity = "info"
	// SeverityWarning marks degraded but possibly intentional configuration.
	SeverityWarning Severity = "warning"
	// SeverityError marks configuration that will misbehave at runtime.
	SeverityError Severity = "error"
)

// Feature names the subsystem a finding belongs to.
const (
	FeatureLookupKey    = "LookupKey"
	FeatureProperty     = "Property"
	FeatureLocalization = "Localization"
	FeatureCulture      = "Culture"
)

// Issue is one advisory finding. Issues never block an audit.
type Issue struct {
	Feature      string   `json:"feature"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	LookupKey    string   `json:"lookupKey,omitempty"`
	PropertyName string   `json:"propertyName,omitempty"`
}

// Service identifies a provider category.
type Service string

const (
	// ServiceNone registers a lookup key as a pure data type, with no
	// provider category to resolve.
	ServiceNone       Service = ""
	ServiceFormatter  Service = "formatter"
	ServiceConverter  Service = "converter"
	ServiceComparer   Service = "comparer"
	ServiceParser     Service = "parser"
	ServiceIdentifier Service = "identifier"
)

// ParserMatch is one parser that declared compatibility within a culture,
// or the captured failure of a parser predicate.
type ParserMatch struct {
	ClassFound string   `json:"classFound,omitempty"`
	Instance   any      `json:"-"`
	Severity   Severity `json:"severity,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// CultureSpecificResult is the per-culture row of a formatter or parser
// resolution. ActualCultureID differs from RequestedCultureID when the
// match came from a fallback-chain ancestor.
type CultureSpecificResult struct {
	RequestedCultureID string         `json:"requestedCultureId"`
	ActualCultureID    string         `json:"actualCultureId,omitempty"`
	Found              bool           `json:"found"`
	ClassFound         string         `json:"classFound,omitempty"`
	Instance           any            `json:"-"`
	Severity           Severity       `json:"severity,omitempty"`
	Message            string         `json:"message,omitempty"`
	Matches            []*ParserMatch `json:"matches,omitempty"`
}

// ServiceResult is the outcome of resolving one (lookup key, service
// category) pair. A lookup key accumulates at most one ServiceResult per
// category for the lifetime of an audit.
type ServiceResult struct {
	Service      Service                  `json:"service"`
	Found        bool                     `json:"found"`
	ClassFound   string                   `json:"classFound,omitempty"`
	Instance     any                      `json:"-"`
	Severity     Severity                 `json:"severity,omitempty"`
	Message      string                   `json:"message,omitempty"`
	TryFallback  bool                     `json:"tryFallback,omitempty"`
	Cultures     []*CultureSpecificResult `json:"cultures,omitempty"`
	DataExamples []any                    `json:"dataExamples,omitempty"`
}

// LookupKeyInfo is the aggregated diagnostic row for one normalized lookup
// key across the whole audit.
type LookupKeyInfo struct {
	LookupKey      string           `json:"lookupKey"`
	UsedAsDataType bool             `json:"usedAsDataType"`
	Services       []*ServiceResult `json:"services"`
}

// ServiceResult returns the accumulated result for a category, or nil.
func (i *LookupKeyInfo) ServiceResult(svc Service) *ServiceResult {
	for _, sr := range i.Services {
		if sr.Service == svc {
			return sr
		}
	}
	return nil
}

// ValidatorResult carries the property-level findings for one validator.
type ValidatorResult struct {
	ErrorCode  string  `json:"errorCode,omitempty"`
	Properties []Issue `json:"properties,omitempty"`
}

// ValueHostResult carries the property-level findings for one value host
// and its validators.
type ValueHostResult struct {
	Name       string             `json:"name"`
	Properties []Issue            `json:"properties,omitempty"`
	Validators []*ValidatorResult `json:"validators,omitempty"`
}

// Report is the complete, serializable output of one audit run.
type Report struct {
	AuditID          string             `json:"auditId"`
	GeneratedAt      time.Time          `json:"generatedAt"`
	CultureIDs       []string           `json:"cultureIds"`
	ValueHostNames   []string           `json:"valueHostNames"`
	LookupKeysInfo   []*LookupKeyInfo   `json:"lookupKeysInfo"`
	LookupKeysIssues []Issue            `json:"lookupKeysIssues"`
	ValueHostResults []*ValueHostResult `json:"valueHostResults"`
	OtherIssues      []Issue            `json:"otherIssues"`
}

// Info returns the LookupKeyInfo row for key under case-insensitive
// identity, or nil.
func (r *Report) Info(key string) *LookupKeyInfo {
	for _, info := range r.LookupKeysInfo {
		if equalKeys(info.LookupKey, key) {
			return info
		}
	}
	return nil
}

// Counts tallies every finding in the report by severity, including
// not-found service and per-culture rows.
func (r *Report) Counts() map[Severity]int {
	counts := make(map[Severity]int)
	tally := func(issues []Issue) {
		for _, is := range issues {
			counts[is.Severity]++
		}
	}
	tally(r.LookupKeysIssues)
	tally(r.OtherIssues)
	for _, vhr := range r.ValueHostResults {
		tally(vhr.Properties)
		for _, vr := range vhr.Validators {
			tally(vr.Properties)
		}
	}
	for _, info := range r.LookupKeysInfo {
		for _, sr := range info.Services {
			if sr.Severity != "" {
				counts[sr.Severity]++
			}
			for _, cr := range sr.Cultures {
				if cr.Severity != "" {
					counts[cr.Severity]++
				}
				for _, m := range cr.Matches {
					if m.Severity != "" {
						counts[m.Severity]++
					}
				}
			}
		}
	}
	return counts
}

// Clean reports whether the audit produced no findings of any severity.
func (r *Report) Clean() bool {
	return len(r.Counts()) == 0
}
