package scan

import (
	"regexp"
	"strings"

	"github.com/bawdo/selql/nodes"
)

var (
	identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	columnRefRe  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// IsIdentifier reports whether s is a plain identifier: letters, digits and
// underscores, not starting with a digit.
func IsIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// IsColumnReference reports whether s has the shape of a possibly
// qualified column name (identifier characters and dots).
func IsColumnReference(s string) bool {
	return columnRefRe.MatchString(s)
}

// SplitQualified splits "table.column" on its dot. Unqualified names return
// an empty qualifier; names with more than one dot are returned whole.
func SplitQualified(s string) (qualifier, name string) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return "", s
}

// FindKeyword returns the byte index of the first top-level, whole-word,
// case-insensitive occurrence of keyword in s, or -1.
func FindKeyword(s, keyword string) int {
	var st State
	for i := 0; i < len(s); i++ {
		st = st.Next(s[i])
		if !st.TopLevel() || i+len(keyword) > len(s) {
			continue
		}
		if strings.EqualFold(s[i:i+len(keyword)], keyword) && wordBoundary(s, i, len(keyword)) {
			return i
		}
	}
	return -1
}

// ExtractAlias separates a trailing alias from an expression.
// A top-level AS wins; otherwise the token after the last top-level space is
// taken as the alias only when it is a plain identifier.
func ExtractAlias(s string) (expr, alias string) {
	s = strings.TrimSpace(s)
	if idx := FindKeyword(s, "AS"); idx >= 0 {
		return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len("AS"):])
	}
	last := -1
	var st State
	for i := 0; i < len(s); i++ {
		st = st.Next(s[i])
		if s[i] == ' ' && st.TopLevel() {
			last = i
		}
	}
	if last >= 0 {
		if candidate := s[last+1:]; IsIdentifier(candidate) {
			return strings.TrimSpace(s[:last]), candidate
		}
	}
	return s, ""
}

// IsSubquery reports whether s is a parenthesized SELECT.
func IsSubquery(s string) bool {
	s = strings.TrimSpace(s)
	if !enclosed(s) {
		return false
	}
	return StartsWithWord(strings.TrimSpace(s[1:]), "SELECT")
}

// enclosed reports whether s opens with '(' and the matching ')' is its
// last byte.
func enclosed(s string) bool {
	if len(s) < 2 || s[0] != '(' {
		return false
	}
	var st State
	for i := 0; i < len(s); i++ {
		st = st.Next(s[i])
		if st.TopLevel() {
			return i == len(s)-1
		}
	}
	return false
}

// Unwrap strips one pair of enclosing parentheses and surrounding space.
func Unwrap(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// StartsWithWord reports whether s begins with word (case-insensitive)
// followed by a non-word byte or the end of s.
func StartsWithWord(s, word string) bool {
	if len(s) < len(word) || !strings.EqualFold(s[:len(word)], word) {
		return false
	}
	return len(s) == len(word) || !isWordByte(s[len(word)])
}

// Aggregate is the decomposed text of an aggregate call.
type Aggregate struct {
	Func     nodes.AggregateFunc
	Arg      string
	Distinct bool
}

// IsAggregate reports whether s starts with a known aggregate name
// immediately followed by '('.
func IsAggregate(s string) bool {
	_, ok := aggregatePrefix(s)
	return ok
}

// ParseAggregate splits an aggregate call into function, argument text and
// DISTINCT flag. ok is false when s is not an aggregate call.
func ParseAggregate(s string) (Aggregate, bool) {
	s = strings.TrimSpace(s)
	fn, ok := aggregatePrefix(s)
	if !ok {
		return Aggregate{}, false
	}
	inner := s[strings.IndexByte(s, '(')+1:]
	if end := strings.LastIndexByte(inner, ')'); end >= 0 {
		inner = inner[:end]
	}
	inner = strings.TrimSpace(inner)
	agg := Aggregate{Func: fn, Arg: inner}
	if StartsWithWord(inner, "DISTINCT") {
		agg.Distinct = true
		agg.Arg = strings.TrimSpace(inner[len("DISTINCT"):])
	}
	return agg, true
}

func aggregatePrefix(s string) (nodes.AggregateFunc, bool) {
	s = strings.TrimSpace(s)
	for _, fn := range nodes.AggregateFuncs {
		name := fn.String()
		if len(s) > len(name) && strings.EqualFold(s[:len(name)], name) && enclosed(s[len(name):]) {
			return fn, true
		}
	}
	return 0, false
}

// comparisonOrder is the fixed search priority of comparison symbols.
var comparisonOrder = []struct {
	symbol string
	op     nodes.ComparisonOp
}{
	{">=", nodes.OpGtEq},
	{"<=", nodes.OpLtEq},
	{"!=", nodes.OpNotEq},
	{"<>", nodes.OpNotEq},
	{">", nodes.OpGt},
	{"<", nodes.OpLt},
	{"=", nodes.OpEq},
}

// FindComparison returns the first comparison symbol, in priority order
// >=, <=, !=, <>, >, <, =, found outside quotes. Symbols at top level are
// preferred; when there are none the search is repeated inside parentheses,
// so "(a = 1 OR b = 2)" still splits at its first '='. Without any symbol it
// falls back to OpEq with index -1.
func FindComparison(s string) (op nodes.ComparisonOp, symbol string, index int) {
	for _, masked := range []string{Mask(s), MaskQuotes(s)} {
		for _, c := range comparisonOrder {
			if idx := strings.Index(masked, c.symbol); idx >= 0 {
				return c.op, c.symbol, idx
			}
		}
	}
	return nodes.OpEq, "=", -1
}

func wordBoundary(s string, start, length int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	end := start + length
	return end >= len(s) || !isWordByte(s[end])
}

// isWordByte treats bytes of multi-byte UTF-8 sequences as word bytes so
// that keywords glued to non-ASCII letters are not matched.
func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// IsSpace reports whether c is an ASCII whitespace byte.
func IsSpace(c byte) bool { return isSpace(c) }

// IsWordByte reports whether c can be part of an identifier or keyword.
func IsWordByte(c byte) bool { return isWordByte(c) }
