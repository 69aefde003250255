// Package redact strips sensitive fragments from strings before they are
// logged or echoed in error responses. Storage and driver errors routinely
// carry connection strings, SQL text, hostnames, and file paths that must not
// leak to clients or logs.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

// Precompiled patterns, applied in order. Credentials go first so a DSN is
// collapsed before the host pattern sees its remainder.
var replacements = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	// Connection strings with embedded credentials
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`), RedactedCredentialPlaceholder},

	// password=... style key-value credentials
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},

	// SQL statement fragments surfaced by driver errors
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|WHERE)(?:[\s\w,*()='"$]+)?`), RedactedSQLPlaceholder},

	// File paths
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},

	// host:port endpoints
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`), RedactedHostPlaceholder},
}

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}

	return result
}

// Error redacts sensitive fragments from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
