package nodes

// SelectQuery is the parsed form of one SELECT statement.
// Optional clauses that were absent in the input are empty slices or nil.
type SelectQuery struct {
	Distinct    bool
	Projections []*SelectItem
	Sources     []Node // *Table or *DerivedTable
	Joins       []*JoinNode
	Wheres      []*PredicateNode
	Groups      []*Attribute
	Havings     []*PredicateNode
	Orders      []*OrderingNode
	Limit       *int
	Offset      *int
}

func (n *SelectQuery) Accept(v Visitor) string { return v.VisitSelectQuery(n) }

// SelectItem is one entry of the SELECT list.
type SelectItem struct {
	Expr  Node   // *StarNode, *Attribute, *AggregateNode or *SubqueryNode
	Alias string // empty when the item has no alias
}

func (n *SelectItem) Accept(v Visitor) string { return v.VisitSelectItem(n) }

// SubqueryNode is a parenthesized SELECT used where a single value is
// expected: a scalar sub-query in the SELECT list, a predicate operand, the
// right side of IN, or an ORDER BY item.
type SubqueryNode struct {
	Query *SelectQuery
}

func (n *SubqueryNode) Accept(v Visitor) string { return v.VisitSubquery(n) }
