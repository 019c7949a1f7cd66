// Package testutil provides shared test helpers for the selql project.
package testutil

import "github.com/bawdo/selql/nodes"

// StubVisitor implements nodes.Visitor with minimal return values for testing.
// Methods return meaningful short strings to aid in test assertions.
type StubVisitor struct{}

var _ nodes.Visitor = StubVisitor{}

func (sv StubVisitor) VisitSelectQuery(n *nodes.SelectQuery) string     { return "select" }
func (sv StubVisitor) VisitSelectItem(n *nodes.SelectItem) string       { return n.Expr.Accept(sv) }
func (sv StubVisitor) VisitStar(n *nodes.StarNode) string               { return "*" }
func (sv StubVisitor) VisitAttribute(n *nodes.Attribute) string         { return "attr" }
func (sv StubVisitor) VisitAggregate(n *nodes.AggregateNode) string     { return "aggregate" }
func (sv StubVisitor) VisitSubquery(n *nodes.SubqueryNode) string       { return "subquery" }
func (sv StubVisitor) VisitTable(n *nodes.Table) string                 { return n.Name }
func (sv StubVisitor) VisitDerivedTable(n *nodes.DerivedTable) string   { return n.Alias }
func (sv StubVisitor) VisitJoin(n *nodes.JoinNode) string               { return "join" }
func (sv StubVisitor) VisitJoinCondition(n *nodes.JoinCondition) string { return "on" }
func (sv StubVisitor) VisitPredicate(n *nodes.PredicateNode) string {
	return n.Left.Accept(sv) + " " + n.Op.String()
}
func (sv StubVisitor) VisitLiteral(n *nodes.LiteralNode) string     { return "lit" }
func (sv StubVisitor) VisitValueList(n *nodes.ValueListNode) string { return "list" }
func (sv StubVisitor) VisitRange(n *nodes.RangeNode) string         { return "range" }
func (sv StubVisitor) VisitOrdering(n *nodes.OrderingNode) string   { return "ordering" }
