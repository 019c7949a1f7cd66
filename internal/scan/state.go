// Package scan provides nesting-aware text helpers shared by the splitter
// and the clause parsers. Every helper starts from a zero State, so each one
// is a pure function of its input string.
package scan

// State tracks parenthesis depth and quote state while scanning text.
// It is a value: Next returns the updated copy and never mutates shared data.
type State struct {
	Depth         int
	InSingleQuote bool
	InDoubleQuote bool
}

// Next returns the state after consuming c. A quote toggles its own flag
// unless the other kind is open; parentheses count only outside quotes.
func (s State) Next(c byte) State {
	switch c {
	case '\'':
		if !s.InDoubleQuote {
			s.InSingleQuote = !s.InSingleQuote
		}
	case '"':
		if !s.InSingleQuote {
			s.InDoubleQuote = !s.InDoubleQuote
		}
	case '(':
		if !s.quoted() {
			s.Depth++
		}
	case ')':
		if !s.quoted() {
			s.Depth--
		}
	}
	return s
}

// TopLevel reports whether the scan is at depth 0 and outside any quote.
func (s State) TopLevel() bool {
	return s.Depth == 0 && !s.quoted()
}

func (s State) quoted() bool {
	return s.InSingleQuote || s.InDoubleQuote
}

// Mask returns a copy of s of the same length in which every byte nested
// inside quotes or parentheses is replaced by '#'. The outermost quote and
// parenthesis characters are kept, so byte offsets found by matching
// against the mask can be used to slice s.
func Mask(s string) string {
	out := []byte(s)
	var st State
	for i := 0; i < len(s); i++ {
		prev := st
		st = st.Next(s[i])
		if prev.TopLevel() || st.TopLevel() {
			continue
		}
		out[i] = '#'
	}
	return string(out)
}

// MaskQuotes is like Mask but only hides quoted text; parenthesized text
// is left readable.
func MaskQuotes(s string) string {
	out := []byte(s)
	var st State
	for i := 0; i < len(s); i++ {
		prev := st
		st = st.Next(s[i])
		if prev.quoted() && st.quoted() {
			out[i] = '#'
		}
	}
	return string(out)
}
