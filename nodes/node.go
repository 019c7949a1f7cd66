// Package nodes defines the AST node types produced by parsing a SQL SELECT
// statement.
//
// A tree is built once by the parser and is read-only afterwards. Nodes that
// hold a nested *SelectQuery (sub-queries and derived tables) make the overall
// structure a finite tree whose depth follows the nesting of the input text.
package nodes

// Node is the interface that all AST nodes implement.
type Node interface {
	Accept(visitor Visitor) string
}

// Visitor defines the interface for walking the AST and producing output.
// Concrete visitors (canonical, Postgres, MySQL, DOT, ...) implement it.
type Visitor interface {
	VisitSelectQuery(node *SelectQuery) string
	VisitSelectItem(node *SelectItem) string
	VisitStar(node *StarNode) string
	VisitAttribute(node *Attribute) string
	VisitAggregate(node *AggregateNode) string
	VisitSubquery(node *SubqueryNode) string
	VisitTable(node *Table) string
	VisitDerivedTable(node *DerivedTable) string
	VisitJoin(node *JoinNode) string
	VisitJoinCondition(node *JoinCondition) string
	VisitPredicate(node *PredicateNode) string
	VisitLiteral(node *LiteralNode) string
	VisitValueList(node *ValueListNode) string
	VisitRange(node *RangeNode) string
	VisitOrdering(node *OrderingNode) string
}
