package main

import (
	"fmt"
	"strings"

	"github.com/bawdo/selql/nodes"
	"github.com/bawdo/selql/plugins"
	"github.com/bawdo/selql/visitors"
)

// --- AST display helpers ---

func (s *Session) printASTSelect(q *nodes.SelectQuery) {
	if q.Distinct {
		_, _ = fmt.Fprintln(s.out, "  DISTINCT: true")
	}
	names := make([]string, len(q.Projections))
	for i, p := range q.Projections {
		names[i] = nodeSummary(p.Expr)
		if p.Alias != "" {
			names[i] += " AS " + p.Alias
		}
	}
	_, _ = fmt.Fprintf(s.out, "  SELECT: %s\n", strings.Join(names, ", "))
}

func (s *Session) printASTSources(q *nodes.SelectQuery) {
	names := make([]string, len(q.Sources))
	for i, src := range q.Sources {
		names[i] = nodeSummary(src)
	}
	_, _ = fmt.Fprintf(s.out, "  FROM:   %s\n", strings.Join(names, ", "))
}

func (s *Session) printASTJoins(q *nodes.SelectQuery) {
	for i, j := range q.Joins {
		line := fmt.Sprintf("  JOIN[%d]: %s %s", i, j.Type, nodeSummary(j.Source))
		if n := len(j.Conditions); n > 0 {
			line += fmt.Sprintf(" ON %d condition(s)", n)
		}
		_, _ = fmt.Fprintln(s.out, line)
	}
}

func (s *Session) printASTConditions(label string, preds []*nodes.PredicateNode) {
	if len(preds) > 0 {
		_, _ = fmt.Fprintf(s.out, "  %s %d condition(s)\n", label, len(preds))
	}
}

func (s *Session) printASTGroups(q *nodes.SelectQuery) {
	if len(q.Groups) > 0 {
		names := make([]string, len(q.Groups))
		for i, g := range q.Groups {
			names[i] = nodeSummary(g)
		}
		_, _ = fmt.Fprintf(s.out, "  GROUP:  %s\n", strings.Join(names, ", "))
	}
}

func (s *Session) printASTOrders(q *nodes.SelectQuery) {
	if len(q.Orders) > 0 {
		names := make([]string, len(q.Orders))
		for i, o := range q.Orders {
			dir := o.Direction.String()
			switch o.Nulls {
			case nodes.NullsFirst:
				dir += " NULLS FIRST"
			case nodes.NullsLast:
				dir += " NULLS LAST"
			}
			names[i] = nodeSummary(o.Expr) + " " + dir
		}
		_, _ = fmt.Fprintf(s.out, "  ORDER:  %s\n", strings.Join(names, ", "))
	}
}

func (s *Session) printASTLimitOffset(q *nodes.SelectQuery) {
	if q.Limit != nil {
		_, _ = fmt.Fprintf(s.out, "  LIMIT:  %d\n", *q.Limit)
	}
	if q.Offset != nil {
		_, _ = fmt.Fprintf(s.out, "  OFFSET: %d\n", *q.Offset)
	}
}

func (s *Session) printASTFooter() {
	for _, entry := range s.plugins.entries {
		_, _ = fmt.Fprintf(s.out, "  Plugin: %s (%s)\n", entry.name, entry.status())
	}
	if s.conn != nil {
		_, _ = fmt.Fprintf(s.out, "  Connected: %s (%s)\n", sanitizeDSN(s.conn.dsn), s.conn.engine)
	}
}

// --- Node summary helpers ---

// nodeSummary returns a concise label for a node. Sub-queries are
// collapsed; everything else is shown in canonical form.
func nodeSummary(n nodes.Node) string {
	switch v := n.(type) {
	case *nodes.SubqueryNode:
		return "(subquery)"
	case *nodes.DerivedTable:
		if v.Alias != "" {
			return "(subquery) AS " + v.Alias
		}
		return "(subquery)"
	case *nodes.AggregateNode:
		if _, ok := v.Arg.(*nodes.SubqueryNode); ok {
			return v.Func.String() + "((subquery))"
		}
		return visitors.Serialize(v)
	default:
		return visitors.Serialize(n)
	}
}

// countSubqueries counts the queries nested at any depth inside q.
func countSubqueries(q *nodes.SelectQuery) int {
	n := 0
	for _, sub := range plugins.Subqueries(q) {
		n += 1 + countSubqueries(sub)
	}
	return n
}
