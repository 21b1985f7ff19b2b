// Vigil statically audits declarative validation configurations.
//
// For every lookup key a configuration references, vigil confirms that a
// compatible provider (formatter, converter, comparer, parser, or type
// identifier) exists for every supported culture, and reports unknown
// keys, typos, missing localized text, malformed message placeholders,
// and dangling value-host references.
//
// Usage:
//
//	# Audit a configuration file
//	vigil audit --file config.yaml
//
//	# JSON output for CI/CD, failing the build on findings
//	vigil audit --file config.yaml --format json --strict
//
//	# Archive the report for trend tracking
//	vigil audit --file config.yaml --store reports.db
//
//	# Re-audit on every change
//	vigil watch --file config.yaml
//
//	# Show version information
//	vigil version
package main

func main() {
	Execute()
}
