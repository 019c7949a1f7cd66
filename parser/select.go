package parser

import (
	"strings"

	"github.com/bawdo/selql/internal/scan"
	"github.com/bawdo/selql/nodes"
)

func (a *assembler) selectList(text string) (bool, []*nodes.SelectItem, error) {
	distinct := false
	if scan.StartsWithWord(text, "DISTINCT") {
		distinct = true
		text = strings.TrimSpace(text[len("DISTINCT"):])
	}

	var items []*nodes.SelectItem
	for _, part := range nonEmpty(scan.SplitByComma(text)) {
		exprText, alias := scan.ExtractAlias(part)
		expr, err := a.selectExpr(exprText)
		if err != nil {
			return false, nil, err
		}
		items = append(items, &nodes.SelectItem{Expr: expr, Alias: alias})
	}
	return distinct, items, nil
}

// selectExpr classifies one SELECT item (alias already removed): star,
// qualified star, scalar sub-query, aggregate call or column.
func (a *assembler) selectExpr(text string) (nodes.Node, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "*":
		return nodes.Star(), nil
	case strings.HasSuffix(text, ".*") && scan.IsColumnReference(strings.TrimSuffix(text, ".*")):
		return &nodes.StarNode{Table: strings.TrimSuffix(text, ".*")}, nil
	case scan.IsSubquery(text):
		q, err := a.subquery(text)
		if err != nil {
			return nil, err
		}
		return &nodes.SubqueryNode{Query: q}, nil
	case scan.IsAggregate(text):
		return a.aggregate(text)
	default:
		return column(text), nil
	}
}

// aggregate builds an AggregateNode; the argument goes through selectExpr
// so COUNT(*), COUNT(t.*) and SUM(t.col) all resolve.
func (a *assembler) aggregate(text string) (nodes.Node, error) {
	agg, _ := scan.ParseAggregate(text)
	arg, err := a.selectExpr(agg.Arg)
	if err != nil {
		return nil, err
	}
	return &nodes.AggregateNode{Func: agg.Func, Arg: arg, Distinct: agg.Distinct}, nil
}
