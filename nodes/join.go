package nodes

// JoinType represents the type of SQL JOIN.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

// String returns the canonical keyword for this join type.
func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "INNER JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return "JOIN"
	}
}

// JoinNode represents one JOIN clause.
type JoinNode struct {
	Type       JoinType
	Source     Node             // *Table or *DerivedTable
	Conditions []*JoinCondition // empty for CROSS JOIN
}

func (n *JoinNode) Accept(v Visitor) string { return v.VisitJoin(n) }

// JoinCondition is one comparison of an ON clause. Connector links it to
// the next condition in the list.
type JoinCondition struct {
	Left      *Attribute
	Op        ComparisonOp
	Right     Node // *Attribute or *LiteralNode; nil when the text had no right side
	Connector Connector
}

func (n *JoinCondition) Accept(v Visitor) string { return v.VisitJoinCondition(n) }
