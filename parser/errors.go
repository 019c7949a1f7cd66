package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped in *SplitError) by Split.
var (
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	ErrUnclosedQuote         = errors.New("unclosed quote")
	ErrUnclosedComment       = errors.New("unclosed block comment")
	ErrMissingSection        = errors.New("missing required section")
	ErrMaxDepthExceeded      = errors.New("maximum sub-query depth exceeded")
)

// QuoteKind says which quote character was left open.
type QuoteKind int

const (
	NoQuote QuoteKind = iota
	SingleQuote
	DoubleQuote
)

func (k QuoteKind) String() string {
	switch k {
	case SingleQuote:
		return "single"
	case DoubleQuote:
		return "double"
	default:
		return "none"
	}
}

// SplitError describes a structural failure found while splitting SQL text.
// Err is one of the package sentinels; the remaining fields carry the detail
// that applies to it.
type SplitError struct {
	Err      error
	Position int // byte offset of a stray ')'; -1 when not applicable
	Unclosed int // '(' left open at end of input
	Quote    QuoteKind
	Section  string // "SELECT" or "FROM" for ErrMissingSection
}

func (e *SplitError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnbalancedParentheses) && e.Position >= 0:
		return fmt.Sprintf("unbalanced parentheses at position %d", e.Position)
	case errors.Is(e.Err, ErrUnbalancedParentheses):
		return fmt.Sprintf("unbalanced parentheses: %d unclosed", e.Unclosed)
	case errors.Is(e.Err, ErrUnclosedQuote):
		return fmt.Sprintf("unclosed %s quote", e.Quote)
	case errors.Is(e.Err, ErrMissingSection):
		return fmt.Sprintf("no %s section", e.Section)
	default:
		return e.Err.Error()
	}
}

func (e *SplitError) Unwrap() error { return e.Err }

func strayParen(pos int) *SplitError {
	return &SplitError{Err: ErrUnbalancedParentheses, Position: pos}
}

func unclosedParens(n int) *SplitError {
	return &SplitError{Err: ErrUnbalancedParentheses, Position: -1, Unclosed: n}
}

func unclosedQuote(k QuoteKind) *SplitError {
	return &SplitError{Err: ErrUnclosedQuote, Position: -1, Quote: k}
}

func missingSection(name string) *SplitError {
	return &SplitError{Err: ErrMissingSection, Position: -1, Section: name}
}
