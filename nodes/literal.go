package nodes

// LiteralNode holds operand text that is not a column, aggregate or
// sub-query. Text is verbatim, surrounding quotes included, and is never
// re-interpreted.
type LiteralNode struct {
	Text string
}

func Literal(text string) *LiteralNode {
	return &LiteralNode{Text: text}
}

func (n *LiteralNode) Accept(v Visitor) string { return v.VisitLiteral(n) }

// ValueListNode is the parenthesized value list of IN / NOT IN.
type ValueListNode struct {
	Values []string
}

func (n *ValueListNode) Accept(v Visitor) string { return v.VisitValueList(n) }

// RangeNode is the low/high pair of a BETWEEN predicate. It only appears as
// the right operand of an OpBetween PredicateNode.
type RangeNode struct {
	From string
	To   string
}

func (n *RangeNode) Accept(v Visitor) string { return v.VisitRange(n) }
