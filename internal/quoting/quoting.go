// Package quoting provides shared identifier quoting utilities.
package quoting

import (
	"regexp"
	"strings"
)

// DoubleQuote quotes a SQL identifier using double quotes (PostgreSQL, SQLite, ANSI SQL).
// Internal double quotes are escaped by doubling them.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a SQL identifier using backticks (MySQL).
// Internal backticks are escaped by doubling them.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// None returns s unchanged.
func None(s string) string { return s }

var plainIdentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// keywordValues are identifier-shaped words that name values, not columns.
var keywordValues = map[string]bool{
	"TRUE":              true,
	"FALSE":             true,
	"NULL":              true,
	"UNKNOWN":           true,
	"CURRENT_DATE":      true,
	"CURRENT_TIME":      true,
	"CURRENT_TIMESTAMP": true,
}

// IsPlainIdentifier reports whether s is a bare identifier that can be
// quoted without changing its meaning. Already-quoted names, expressions
// and value keywords such as TRUE or NULL are not.
func IsPlainIdentifier(s string) bool {
	return plainIdentRe.MatchString(s) && !keywordValues[strings.ToUpper(s)]
}

// IfPlain wraps quote so that it only applies to plain identifiers; any
// other text passes through verbatim.
func IfPlain(quote func(string) string) func(string) string {
	return func(s string) string {
		if IsPlainIdentifier(s) {
			return quote(s)
		}
		return s
	}
}
