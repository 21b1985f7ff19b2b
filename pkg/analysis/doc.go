// Package analysis statically audits a declarative validation
// configuration before runtime use. For every lookup key referenced
// anywhere in the configuration it confirms that a compatible provider
// exists for every supported culture, and it flags configuration mistakes
// with a severity and a human-readable explanation: unknown keys, typos,
// missing localized text, malformed message placeholders, and dangling
// value-host references.
//
// An audit is one synchronous in-process call tree with no I/O. Each run
// owns its Context exclusively; findings accumulate in the Report and are
// never thrown. Provider predicates are treated as untrusted: a panic
// inside one becomes an error-severity finding, not an aborted audit.
package analysis
