package nodes

// OrderDirection represents ASC or DESC ordering.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

func (d OrderDirection) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// NullsDirection controls NULLS FIRST/LAST positioning.
type NullsDirection int

const (
	NullsDefault NullsDirection = iota
	NullsFirst
	NullsLast
)

// OrderingNode represents one ORDER BY item.
type OrderingNode struct {
	Expr      Node // *Attribute or *SubqueryNode
	Direction OrderDirection
	Nulls     NullsDirection
}

func (n *OrderingNode) Accept(v Visitor) string { return v.VisitOrdering(n) }
