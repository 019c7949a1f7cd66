// Package selql splits and parses SQL SELECT statements into an immutable
// query tree and renders trees back to canonical SQL.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/selql/parser (splitting, parsing, validation)
//   - github.com/bawdo/selql/nodes (query tree)
//   - github.com/bawdo/selql/visitors (SQL generation)
//   - github.com/bawdo/selql/plugins (query transformers)
package selql

import (
	"github.com/bawdo/selql/nodes"
	"github.com/bawdo/selql/parser"
	"github.com/bawdo/selql/visitors"
)

// --- Parsing ---

// Sections holds the raw clause texts of one statement.
type Sections = parser.Sections

// SplitError describes a structural failure found while splitting.
type SplitError = parser.SplitError

// Parser builds query trees; see NewParser.
type Parser = parser.Parser

// Errors returned by Split and Parse.
var (
	ErrUnbalancedParentheses = parser.ErrUnbalancedParentheses
	ErrUnclosedQuote         = parser.ErrUnclosedQuote
	ErrUnclosedComment       = parser.ErrUnclosedComment
	ErrMissingSection        = parser.ErrMissingSection
	ErrMaxDepthExceeded      = parser.ErrMaxDepthExceeded
)

// Split divides sql into its clause sections.
func Split(sql string) (*Sections, error) {
	return parser.Split(sql)
}

// Parse builds a query tree from split sections.
func Parse(sec *Sections) (*SelectQuery, error) {
	return parser.Parse(sec)
}

// ParseSQL is Split followed by Parse.
func ParseSQL(sql string) (*SelectQuery, error) {
	return parser.ParseSQL(sql)
}

// Validate lists problems with a parsed query; nil means none.
func Validate(q *SelectQuery) []string {
	return parser.Validate(q)
}

// NewParser creates a Parser, e.g. NewParser(WithMaxDepth(32)) for
// untrusted input.
func NewParser(opts ...parser.Option) *Parser {
	return parser.New(opts...)
}

// WithMaxDepth caps sub-query nesting.
func WithMaxDepth(n int) parser.Option {
	return parser.WithMaxDepth(n)
}

// --- Core Node Types ---

// SelectQuery is the root of a parsed statement.
type SelectQuery = nodes.SelectQuery

// Node is implemented by every tree node.
type Node = nodes.Node

// Table represents a table in FROM or JOIN.
type Table = nodes.Table

// Attribute represents a column reference (e.g., table.column).
type Attribute = nodes.Attribute

// PredicateNode is one WHERE or HAVING condition.
type PredicateNode = nodes.PredicateNode

// JoinNode is one JOIN clause.
type JoinNode = nodes.JoinNode

// --- Rendering ---

// Serialize renders a node in canonical form.
func Serialize(n Node) string {
	return visitors.Serialize(n)
}

// Format renders q as indented multi-line canonical SQL.
func Format(q *SelectQuery) string {
	return q.Accept(visitors.NewFormattingVisitor(visitors.NewCanonicalVisitor()))
}

// NewPostgresVisitor creates a visitor rendering PostgreSQL SQL.
func NewPostgresVisitor(opts ...visitors.Option) *visitors.PostgresVisitor {
	return visitors.NewPostgresVisitor(opts...)
}

// NewMySQLVisitor creates a visitor rendering MySQL SQL.
func NewMySQLVisitor(opts ...visitors.Option) *visitors.MySQLVisitor {
	return visitors.NewMySQLVisitor(opts...)
}

// NewSQLiteVisitor creates a visitor rendering SQLite SQL.
func NewSQLiteVisitor(opts ...visitors.Option) *visitors.SQLiteVisitor {
	return visitors.NewSQLiteVisitor(opts...)
}

// Canonicalize parses sql and returns its canonical form.
func Canonicalize(sql string) (string, error) {
	q, err := ParseSQL(sql)
	if err != nil {
		return "", err
	}
	return Serialize(q), nil
}
