package parser

import (
	"regexp"
	"strings"

	"github.com/bawdo/selql/internal/scan"
	"github.com/bawdo/selql/nodes"
)

// Special predicate forms, tried in order. They run against scan.Mask of the
// predicate so that quoted or parenthesized text never matches; captured
// offsets are then used to slice the original text.
var (
	isNotNullRe = regexp.MustCompile(`(?is)^(.+?)\s+IS\s+NOT\s+NULL$`)
	isNullRe    = regexp.MustCompile(`(?is)^(.+?)\s+IS\s+NULL$`)
	betweenRe   = regexp.MustCompile(`(?is)^(.+?)\s+(NOT\s+)?BETWEEN\s+(.+?)\s+AND\s+(.+)$`)
	notInRe     = regexp.MustCompile(`(?is)^(.+?)\s+NOT\s+IN\s*(\(.*\))$`)
	inRe        = regexp.MustCompile(`(?is)^(.+?)\s+IN\s*(\(.*\))$`)
	notLikeRe   = regexp.MustCompile(`(?is)^(.+?)\s+NOT\s+LIKE\s+(.+)$`)
	likeRe      = regexp.MustCompile(`(?is)^(.+?)\s+LIKE\s+(.+)$`)
)

const notPrefix = "NOT "

func (a *assembler) predicates(text string) ([]*nodes.PredicateNode, error) {
	var out []*nodes.PredicateNode
	for _, seg := range scan.SplitLogical(text) {
		p, err := a.predicate(seg.Text)
		if err != nil {
			return nil, err
		}
		p.Connector = seg.Connector
		out = append(out, p)
	}
	return out, nil
}

// predicate parses one condition of a WHERE or HAVING chain.
func (a *assembler) predicate(text string) (*nodes.PredicateNode, error) {
	text = strings.TrimSpace(text)
	p := &nodes.PredicateNode{}
	if len(text) > len(notPrefix) && strings.EqualFold(text[:len(notPrefix)], notPrefix) {
		p.Negated = true
		text = strings.TrimSpace(text[len(notPrefix):])
	}

	var err error
	if g := matchForm(isNotNullRe, text); g != nil {
		p.Op = nodes.OpIsNotNull
		p.Left, err = a.operand(g[1])
		return p, err
	}
	if g := matchForm(isNullRe, text); g != nil {
		p.Op = nodes.OpIsNull
		p.Left, err = a.operand(g[1])
		return p, err
	}
	if g := matchForm(betweenRe, text); g != nil {
		p.Op = nodes.OpBetween
		if g[2] != "" {
			p.Negated = !p.Negated
		}
		p.Right = &nodes.RangeNode{From: strings.TrimSpace(g[3]), To: strings.TrimSpace(g[4])}
		p.Left, err = a.operand(g[1])
		return p, err
	}
	if g := matchForm(notInRe, text); g != nil {
		return a.inPredicate(p, nodes.OpNotIn, g[1], g[2])
	}
	if g := matchForm(inRe, text); g != nil {
		return a.inPredicate(p, nodes.OpIn, g[1], g[2])
	}
	if g := matchForm(notLikeRe, text); g != nil {
		p.Op = nodes.OpNotLike
		p.Right = nodes.Literal(strings.TrimSpace(g[2]))
		p.Left, err = a.operand(g[1])
		return p, err
	}
	if g := matchForm(likeRe, text); g != nil {
		p.Op = nodes.OpLike
		p.Right = nodes.Literal(strings.TrimSpace(g[2]))
		p.Left, err = a.operand(g[1])
		return p, err
	}

	op, symbol, idx := scan.FindComparison(text)
	p.Op = op
	if idx < 0 {
		p.Left, err = a.operand(text)
		return p, err
	}
	if p.Left, err = a.operand(text[:idx]); err != nil {
		return nil, err
	}
	if right := strings.TrimSpace(text[idx+len(symbol):]); right != "" {
		if p.Right, err = a.operand(right); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// inPredicate fills an IN / NOT IN predicate. The parenthesized list is a
// sub-query when it starts with SELECT, otherwise a list of values.
func (a *assembler) inPredicate(p *nodes.PredicateNode, op nodes.ComparisonOp, left, list string) (*nodes.PredicateNode, error) {
	var err error
	p.Op = op
	if p.Left, err = a.operand(left); err != nil {
		return nil, err
	}
	if scan.IsSubquery(list) {
		q, err := a.subquery(list)
		if err != nil {
			return nil, err
		}
		p.Right = &nodes.SubqueryNode{Query: q}
		return p, nil
	}
	p.Right = &nodes.ValueListNode{Values: nonEmpty(scan.SplitByComma(scan.Unwrap(list)))}
	return p, nil
}

// operand classifies one side of a comparison: sub-query, aggregate call,
// column, or verbatim literal.
func (a *assembler) operand(text string) (nodes.Node, error) {
	text = strings.TrimSpace(text)
	switch {
	case scan.IsSubquery(text):
		q, err := a.subquery(text)
		if err != nil {
			return nil, err
		}
		return &nodes.SubqueryNode{Query: q}, nil
	case scan.IsAggregate(text):
		return a.aggregate(text)
	case scan.IsColumnReference(text):
		return column(text), nil
	default:
		return nodes.Literal(text), nil
	}
}

// matchForm matches re against the masked text and returns the captured
// groups sliced from the original text, or nil. Unmatched optional groups
// are empty strings.
func matchForm(re *regexp.Regexp, text string) []string {
	loc := re.FindStringSubmatchIndex(scan.Mask(text))
	if loc == nil {
		return nil
	}
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if start := loc[2*i]; start >= 0 {
			groups[i] = text[start:loc[2*i+1]]
		}
	}
	return groups
}
