package analysis

import (
	"fmt"
	"strings"
	"unicode"

	"vigil-hq/vigil/pkg/conftree"
)

// CheckMessageTokens scans an error-message template for {identifier} and
// {identifier:lookupKey} placeholders. Each malformed placeholder becomes
// a property-level syntax error; each well-formed placeholder with a
// lookup key registers that key against the formatter category, since
// message tokens are always formatting requests.
//
// Only literal templates are scanned. Message callbacks are never invoked
// during analysis; callers skip this check when the template is a
// function.
func (c *Context) CheckMessageTokens(message string, vh *conftree.ValueHostConfig, propertyName string, issues *[]Issue) {
	for i := 0; i < len(message); {
		open := strings.IndexByte(message[i:], '{')
		if open < 0 {
			return
		}
		open += i

		end := strings.IndexByte(message[open+1:], '}')
		if end < 0 {
			*issues = append(*issues, Issue{
				Feature:      FeatureProperty,
				PropertyName: propertyName,
				Severity:     SeverityError,
				Message:      fmt.Sprintf("Syntax error in message token %q.", message[open:]),
			})
			return
		}
		end += open + 1

		inner := message[open+1 : end]
		name, key, hasKey := strings.Cut(inner, ":")
		valid := validTokenIdentifier(name)
		if hasKey {
			valid = valid && validTokenIdentifier(key)
		}
		if !valid {
			*issues = append(*issues, Issue{
				Feature:      FeatureProperty,
				PropertyName: propertyName,
				Severity:     SeverityError,
				Message:      fmt.Sprintf("Syntax error in message token %q.", message[open:end+1]),
			})
		} else if hasKey {
			c.CheckLookupKeyProperty(propertyName, key, ServiceFormatter, vh, issues, "DataTypeFormatter", "DataTypeFormatterService")
		}

		i = end + 1
	}
}

// validTokenIdentifier reports whether s is a placeholder identifier: a
// letter followed by letters and digits, with no whitespace anywhere.
func validTokenIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
