package scan

import (
	"strings"

	"github.com/bawdo/selql/nodes"
)

// SplitTopLevel cuts s at every delim that is outside quotes and
// parentheses. A trailing empty piece is dropped.
func SplitTopLevel(s string, delim byte) []string {
	var parts []string
	var st State
	start := 0
	for i := 0; i < len(s); i++ {
		st = st.Next(s[i])
		if s[i] == delim && st.TopLevel() {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// SplitByComma is SplitTopLevel on ','.
func SplitByComma(s string) []string {
	return SplitTopLevel(s, ',')
}

// Segment is one operand of a flat AND/OR chain together with the
// connector that followed it. The last segment has nodes.NoConnector.
type Segment struct {
	Text      string
	Connector nodes.Connector
}

// SplitLogical splits s at top-level whole-word AND / OR.
//
// An AND that closes a pending BETWEEN (one not yet followed by its own AND)
// belongs to the range and does not split, so
// "x BETWEEN 1 AND 5 AND y = 2" yields two segments.
func SplitLogical(s string) []Segment {
	var segs []Segment
	var st State
	var cur strings.Builder
	for i := 0; i < len(s); {
		st = st.Next(s[i])
		if st.TopLevel() && (i == 0 || !isWordByte(s[i-1])) {
			if matchesConnector(s[i:], "AND") && !pendingBetween(cur.String()) {
				segs = append(segs, Segment{Text: strings.TrimSpace(cur.String()), Connector: nodes.And})
				cur.Reset()
				i += len("AND")
				continue
			}
			if matchesConnector(s[i:], "OR") {
				segs = append(segs, Segment{Text: strings.TrimSpace(cur.String()), Connector: nodes.Or})
				cur.Reset()
				i += len("OR")
				continue
			}
		}
		cur.WriteByte(s[i])
		i++
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		segs = append(segs, Segment{Text: rest})
	}
	return segs
}

// matchesConnector reports whether rest starts with op followed by a space
// or an opening parenthesis.
func matchesConnector(rest, op string) bool {
	if len(rest) <= len(op) || !strings.EqualFold(rest[:len(op)], op) {
		return false
	}
	next := rest[len(op)]
	return isSpace(next) || next == '('
}

// pendingBetween reports whether text contains a BETWEEN whose own AND has
// not been seen yet.
func pendingBetween(text string) bool {
	upper := strings.ToUpper(Mask(text))
	idx := lastWord(upper, "BETWEEN")
	if idx < 0 {
		return false
	}
	return lastWord(upper[idx:], "AND") < 0
}

// lastWord returns the index of the last whole-word occurrence of word in
// upper, or -1.
func lastWord(upper, word string) int {
	for end := len(upper); end > 0; {
		idx := strings.LastIndex(upper[:end], word)
		if idx < 0 {
			return -1
		}
		if wordBoundary(upper, idx, len(word)) {
			return idx
		}
		end = idx
	}
	return -1
}
