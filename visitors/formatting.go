package visitors

import (
	"strconv"
	"strings"

	"github.com/bawdo/selql/nodes"
)

// FormattingVisitor wraps any nodes.Visitor (canonical or dialect) and
// produces human-readable multi-line SQL. Each clause starts on a new line
// and sub-queries are indented one tab per level. Leaf nodes are rendered
// by the inner visitor, so its identifier quoting is kept.
type FormattingVisitor struct {
	inner nodes.Visitor
}

var _ nodes.Visitor = (*FormattingVisitor)(nil)

// NewFormattingVisitor constructs a FormattingVisitor wrapping the given
// visitor.
func NewFormattingVisitor(inner nodes.Visitor) *FormattingVisitor {
	if inner == nil {
		panic("selql: FormattingVisitor requires a non-nil inner visitor")
	}
	return &FormattingVisitor{inner: inner}
}

// --- Delegation to the inner visitor ---

func (f *FormattingVisitor) VisitStar(node *nodes.StarNode) string {
	return f.inner.VisitStar(node)
}

func (f *FormattingVisitor) VisitAttribute(node *nodes.Attribute) string {
	return f.inner.VisitAttribute(node)
}

func (f *FormattingVisitor) VisitTable(node *nodes.Table) string {
	return f.inner.VisitTable(node)
}

func (f *FormattingVisitor) VisitLiteral(node *nodes.LiteralNode) string {
	return f.inner.VisitLiteral(node)
}

func (f *FormattingVisitor) VisitValueList(node *nodes.ValueListNode) string {
	return f.inner.VisitValueList(node)
}

func (f *FormattingVisitor) VisitRange(node *nodes.RangeNode) string {
	return f.inner.VisitRange(node)
}

func (f *FormattingVisitor) VisitOrdering(node *nodes.OrderingNode) string {
	return f.inner.VisitOrdering(node)
}

// --- Composite nodes: children are rendered through f ---

func (f *FormattingVisitor) VisitSelectItem(node *nodes.SelectItem) string {
	return renderSelectItem(f, node)
}

func (f *FormattingVisitor) VisitAggregate(node *nodes.AggregateNode) string {
	return renderAggregate(f, node)
}

func (f *FormattingVisitor) VisitJoin(node *nodes.JoinNode) string {
	return renderJoin(f, node)
}

func (f *FormattingVisitor) VisitJoinCondition(node *nodes.JoinCondition) string {
	return renderJoinCondition(f, node)
}

func (f *FormattingVisitor) VisitPredicate(node *nodes.PredicateNode) string {
	return renderPredicate(f, node)
}

func (f *FormattingVisitor) VisitSubquery(node *nodes.SubqueryNode) string {
	return f.nested(node.Query)
}

func (f *FormattingVisitor) VisitDerivedTable(node *nodes.DerivedTable) string {
	return f.nested(node.Query) + aliasSuffix(f, node.Alias)
}

// nested renders a sub-query in parentheses with its lines indented.
func (f *FormattingVisitor) nested(q *nodes.SelectQuery) string {
	body := q.Accept(f)
	return "(\n\t" + strings.ReplaceAll(body, "\n", "\n\t") + "\n)"
}

// VisitSelectQuery renders a SELECT statement in multi-line formatted style.
// Lists use leading-comma continuation; WHERE and HAVING put each connector
// at the start of a continuation line.
func (f *FormattingVisitor) VisitSelectQuery(node *nodes.SelectQuery) string {
	var sb strings.Builder

	sb.WriteString("SELECT")
	if node.Distinct {
		sb.WriteString(" DISTINCT")
	}
	sb.WriteString(" ")
	sb.WriteString(joinNodes(f, node.Projections, "\n\t,"))

	if len(node.Sources) > 0 {
		sb.WriteString("\nFROM ")
		sb.WriteString(joinNodes(f, node.Sources, "\n\t,"))
	}

	for _, j := range node.Joins {
		sb.WriteString("\n")
		sb.WriteString(j.Accept(f))
	}

	if len(node.Wheres) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(predicateChain(f, node.Wheres, "\n\t"))
	}

	if len(node.Groups) > 0 {
		sb.WriteString("\nGROUP BY ")
		sb.WriteString(joinNodes(f, node.Groups, "\n\t,"))
	}

	if len(node.Havings) > 0 {
		sb.WriteString("\nHAVING ")
		sb.WriteString(predicateChain(f, node.Havings, "\n\t"))
	}

	if len(node.Orders) > 0 {
		sb.WriteString("\nORDER BY ")
		sb.WriteString(joinNodes(f, node.Orders, "\n\t,"))
	}

	if node.Limit != nil {
		sb.WriteString("\nLIMIT ")
		sb.WriteString(strconv.Itoa(*node.Limit))
	}

	if node.Offset != nil {
		sb.WriteString("\nOFFSET ")
		sb.WriteString(strconv.Itoa(*node.Offset))
	}

	return sb.String()
}
