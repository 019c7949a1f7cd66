package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/selql/internal/scan"
	"github.com/bawdo/selql/nodes"
)

// Parser builds query trees from split sections. A Parser holds only its
// options and is safe for concurrent use.
type Parser struct {
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth caps sub-query nesting. A query nested deeper than n levels
// fails with ErrMaxDepthExceeded. Zero or a negative n means no limit,
// which is the default.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// New creates a Parser with the given options applied.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// Parse builds a query tree from sections with the default Parser.
func Parse(sec *Sections) (*nodes.SelectQuery, error) {
	return defaultParser.Parse(sec)
}

// ParseSQL splits and parses sql with the default Parser.
func ParseSQL(sql string) (*nodes.SelectQuery, error) {
	return defaultParser.ParseSQL(sql)
}

// Parse builds a query tree from sections. Malformed clause text is absorbed
// by fallbacks rather than rejected; the only errors come from splitting a
// nested sub-query (returned unchanged) or from the depth limit.
func (p *Parser) Parse(sec *Sections) (*nodes.SelectQuery, error) {
	if sec == nil {
		return nil, missingSection("SELECT")
	}
	a := &assembler{p: p}
	return a.query(sec)
}

// ParseSQL is Split followed by Parse.
func (p *Parser) ParseSQL(sql string) (*nodes.SelectQuery, error) {
	sec, err := Split(sql)
	if err != nil {
		return nil, err
	}
	return p.Parse(sec)
}

// assembler carries the nesting depth of one query being built. Each
// sub-query gets its own assembler, so nothing is shared between levels.
type assembler struct {
	p     *Parser
	depth int
}

func (a *assembler) query(sec *Sections) (*nodes.SelectQuery, error) {
	q := &nodes.SelectQuery{}
	var err error

	if q.Distinct, q.Projections, err = a.selectList(sec.Select); err != nil {
		return nil, err
	}
	if q.Sources, err = a.sources(sec.From); err != nil {
		return nil, err
	}
	if q.Joins, err = a.joins(sec.Join); err != nil {
		return nil, err
	}
	if q.Wheres, err = a.predicates(sec.Where); err != nil {
		return nil, err
	}
	q.Groups = groupBy(sec.GroupBy)
	if q.Havings, err = a.predicates(sec.Having); err != nil {
		return nil, err
	}
	if q.Orders, err = a.orderBy(sec.OrderBy); err != nil {
		return nil, err
	}
	q.Limit = parseCount(sec.Limit)
	q.Offset = parseCount(sec.Offset)
	return q, nil
}

// subquery parses the text of a parenthesized SELECT one level deeper.
func (a *assembler) subquery(text string) (*nodes.SelectQuery, error) {
	depth := a.depth + 1
	if a.p.maxDepth > 0 && depth > a.p.maxDepth {
		return nil, fmt.Errorf("%w: limit is %d", ErrMaxDepthExceeded, a.p.maxDepth)
	}
	sec, err := Split(scan.Unwrap(text))
	if err != nil {
		return nil, err
	}
	child := &assembler{p: a.p, depth: depth}
	return child.query(sec)
}

// parseCount reads a LIMIT or OFFSET value; text that is not an integer
// yields nil.
func parseCount(text string) *int {
	if text == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &n
}

// column builds an Attribute from column-shaped text, splitting one
// qualifier. Any other text is kept whole as the name.
func column(text string) *nodes.Attribute {
	text = strings.TrimSpace(text)
	if !scan.IsColumnReference(text) {
		return &nodes.Attribute{Name: text}
	}
	table, name := scan.SplitQualified(text)
	return nodes.NewAttribute(table, name)
}

// nonEmpty trims every part and drops the empty ones.
func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
