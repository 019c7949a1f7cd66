// Package visitors renders query trees: canonical SQL, dialect SQL for
// PostgreSQL, MySQL and SQLite, indented multi-line SQL and Graphviz DOT.
package visitors

import (
	"strconv"
	"strings"

	"github.com/bawdo/selql/internal/quoting"
	"github.com/bawdo/selql/nodes"
)

// Option configures a visitor at construction time.
type Option func(*baseVisitor)

// WithoutQuoting renders identifiers exactly as parsed, with no dialect
// quoting.
func WithoutQuoting() Option {
	return func(b *baseVisitor) {
		b.quoteIdent = quoting.None
	}
}

// baseVisitor implements the shared SQL generation logic used by all dialects.
// Dialect-specific visitors embed *baseVisitor and set the outer field to
// themselves, enabling correct virtual dispatch through the Visitor interface.
type baseVisitor struct {
	// outer is the concrete dialect visitor. All recursive Accept calls
	// go through outer so that dialect overrides are respected.
	outer nodes.Visitor

	// quoteIdent quotes a SQL identifier (table name, column name, alias).
	quoteIdent func(string) string
}

// applyOptions applies functional options to the baseVisitor.
func (b *baseVisitor) applyOptions(opts []Option) {
	for _, o := range opts {
		o(b)
	}
}

func (b *baseVisitor) VisitSelectQuery(n *nodes.SelectQuery) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(joinNodes(b.outer, n.Projections, ", "))
	if len(n.Sources) > 0 {
		sb.WriteString(" FROM ")
		sb.WriteString(joinNodes(b.outer, n.Sources, ", "))
	}
	for _, j := range n.Joins {
		sb.WriteString(" ")
		sb.WriteString(j.Accept(b.outer))
	}
	if len(n.Wheres) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(predicateChain(b.outer, n.Wheres, " "))
	}
	if len(n.Groups) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(joinNodes(b.outer, n.Groups, ", "))
	}
	if len(n.Havings) > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(predicateChain(b.outer, n.Havings, " "))
	}
	if len(n.Orders) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(joinNodes(b.outer, n.Orders, ", "))
	}
	if n.Limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*n.Limit))
	}
	if n.Offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(*n.Offset))
	}
	return sb.String()
}

func (b *baseVisitor) VisitSelectItem(n *nodes.SelectItem) string {
	return renderSelectItem(b.outer, n)
}

func (b *baseVisitor) VisitStar(n *nodes.StarNode) string {
	if n.Table != "" {
		return b.quoteIdent(n.Table) + ".*"
	}
	return "*"
}

func (b *baseVisitor) VisitAttribute(n *nodes.Attribute) string {
	if n.Table != "" {
		return b.quoteIdent(n.Table) + "." + b.quoteIdent(n.Name)
	}
	return b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitAggregate(n *nodes.AggregateNode) string {
	return renderAggregate(b.outer, n)
}

func (b *baseVisitor) VisitSubquery(n *nodes.SubqueryNode) string {
	return "(" + n.Query.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitTable(n *nodes.Table) string {
	var sb strings.Builder
	if n.Schema != "" {
		sb.WriteString(b.quoteIdent(n.Schema))
		sb.WriteString(".")
	}
	sb.WriteString(b.quoteIdent(n.Name))
	if n.Alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(b.quoteIdent(n.Alias))
	}
	return sb.String()
}

func (b *baseVisitor) VisitDerivedTable(n *nodes.DerivedTable) string {
	return "(" + n.Query.Accept(b.outer) + ")" + aliasSuffix(b.outer, n.Alias)
}

func (b *baseVisitor) VisitJoin(n *nodes.JoinNode) string {
	return renderJoin(b.outer, n)
}

func (b *baseVisitor) VisitJoinCondition(n *nodes.JoinCondition) string {
	return renderJoinCondition(b.outer, n)
}

func (b *baseVisitor) VisitPredicate(n *nodes.PredicateNode) string {
	return renderPredicate(b.outer, n)
}

func (b *baseVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return n.Text
}

func (b *baseVisitor) VisitValueList(n *nodes.ValueListNode) string {
	return "(" + strings.Join(n.Values, ", ") + ")"
}

func (b *baseVisitor) VisitRange(n *nodes.RangeNode) string {
	return n.From + " AND " + n.To
}

func (b *baseVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	expr := n.Expr.Accept(b.outer) + " " + n.Direction.String()
	switch n.Nulls {
	case nodes.NullsFirst:
		expr += " NULLS FIRST"
	case nodes.NullsLast:
		expr += " NULLS LAST"
	}
	return expr
}

// --- rendering shared with FormattingVisitor ---
//
// The helpers below render composite nodes and send every child through v,
// so a wrapping visitor controls how nested sub-queries are laid out.

func renderSelectItem(v nodes.Visitor, n *nodes.SelectItem) string {
	return n.Expr.Accept(v) + aliasSuffix(v, n.Alias)
}

// aliasSuffix renders " AS alias", quoting the alias the way v quotes a
// bare column name.
func aliasSuffix(v nodes.Visitor, alias string) string {
	if alias == "" {
		return ""
	}
	return " AS " + (&nodes.Attribute{Name: alias}).Accept(v)
}

func renderAggregate(v nodes.Visitor, n *nodes.AggregateNode) string {
	var sb strings.Builder
	sb.WriteString(n.Func.String())
	sb.WriteString("(")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	if n.Arg == nil {
		sb.WriteString("*")
	} else {
		sb.WriteString(n.Arg.Accept(v))
	}
	sb.WriteString(")")
	return sb.String()
}

func renderJoin(v nodes.Visitor, n *nodes.JoinNode) string {
	var sb strings.Builder
	sb.WriteString(n.Type.String())
	sb.WriteString(" ")
	sb.WriteString(n.Source.Accept(v))
	if len(n.Conditions) > 0 {
		parts := make([]string, len(n.Conditions))
		conns := make([]nodes.Connector, len(n.Conditions))
		for i, c := range n.Conditions {
			parts[i] = c.Accept(v)
			conns[i] = c.Connector
		}
		sb.WriteString(" ON ")
		sb.WriteString(chain(parts, conns, " "))
	}
	return sb.String()
}

func renderJoinCondition(v nodes.Visitor, n *nodes.JoinCondition) string {
	s := n.Left.Accept(v) + " " + n.Op.String()
	if n.Right != nil && !n.Op.Unary() {
		s += " " + n.Right.Accept(v)
	}
	return s
}

func renderPredicate(v nodes.Visitor, n *nodes.PredicateNode) string {
	var sb strings.Builder
	if n.Negated {
		sb.WriteString("NOT ")
	}
	sb.WriteString(n.Left.Accept(v))
	sb.WriteString(" ")
	sb.WriteString(n.Op.String())
	if n.Right != nil && !n.Op.Unary() {
		sb.WriteString(" ")
		sb.WriteString(n.Right.Accept(v))
	}
	return sb.String()
}

// predicateChain renders a WHERE or HAVING list. sep goes before each
// connector, which lets the formatter break lines there.
func predicateChain(v nodes.Visitor, preds []*nodes.PredicateNode, sep string) string {
	parts := make([]string, len(preds))
	conns := make([]nodes.Connector, len(preds))
	for i, p := range preds {
		parts[i] = p.Accept(v)
		conns[i] = p.Connector
	}
	return chain(parts, conns, sep)
}

// chain joins parts with the connector stored on the preceding element.
// A missing connector between two elements renders as AND.
func chain(parts []string, conns []nodes.Connector, sep string) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			c := conns[i-1]
			if c == nodes.NoConnector {
				c = nodes.And
			}
			sb.WriteString(sep)
			sb.WriteString(c.String())
			sb.WriteString(" ")
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// joinNodes renders each item with v and joins the results with sep.
func joinNodes[T nodes.Node](v nodes.Visitor, items []T, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Accept(v)
	}
	return strings.Join(parts, sep)
}
