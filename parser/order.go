package parser

import (
	"strings"

	"github.com/bawdo/selql/internal/scan"
	"github.com/bawdo/selql/nodes"
)

func groupBy(text string) []*nodes.Attribute {
	var out []*nodes.Attribute
	for _, part := range nonEmpty(scan.SplitByComma(text)) {
		out = append(out, column(part))
	}
	return out
}

func (a *assembler) orderBy(text string) ([]*nodes.OrderingNode, error) {
	var out []*nodes.OrderingNode
	for _, part := range nonEmpty(scan.SplitByComma(text)) {
		o, err := a.ordering(part)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// ordering parses "<expr> [ASC|DESC] [NULLS FIRST|NULLS LAST]". A leading
// parenthesized group is taken whole up to its matching close paren.
func (a *assembler) ordering(text string) (*nodes.OrderingNode, error) {
	o := &nodes.OrderingNode{}
	var rest string

	if strings.HasPrefix(text, "(") {
		if end := closingParen(text); end > 0 {
			group := text[:end+1]
			rest = text[end+1:]
			if scan.IsSubquery(group) {
				q, err := a.subquery(group)
				if err != nil {
					return nil, err
				}
				o.Expr = &nodes.SubqueryNode{Query: q}
			} else {
				o.Expr = &nodes.Attribute{Name: group}
			}
		}
	}
	if o.Expr == nil {
		fields := nonEmpty(scan.SplitTopLevel(text, ' '))
		o.Expr = column(fields[0])
		rest = strings.Join(fields[1:], " ")
	}

	o.Direction, o.Nulls = orderModifiers(rest)
	return o, nil
}

// closingParen returns the index of the ')' that closes the '(' at index 0,
// or -1.
func closingParen(text string) int {
	var st scan.State
	for i := 0; i < len(text); i++ {
		st = st.Next(text[i])
		if st.TopLevel() {
			return i
		}
	}
	return -1
}

func orderModifiers(text string) (nodes.OrderDirection, nodes.NullsDirection) {
	dir, nulls := nodes.Asc, nodes.NullsDefault
	tokens := strings.Fields(strings.ToUpper(text))
	for i, tok := range tokens {
		switch tok {
		case "ASC":
			dir = nodes.Asc
		case "DESC":
			dir = nodes.Desc
		case "NULLS":
			if i+1 < len(tokens) {
				switch tokens[i+1] {
				case "FIRST":
					nulls = nodes.NullsFirst
				case "LAST":
					nulls = nodes.NullsLast
				}
			}
		}
	}
	return dir, nulls
}
