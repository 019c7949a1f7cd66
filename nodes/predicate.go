package nodes

// ComparisonOp identifies the comparison of a predicate or join condition.
type ComparisonOp int

const (
	OpEq ComparisonOp = iota
	OpNotEq
	OpGt
	OpLt
	OpGtEq
	OpLtEq
	OpLike
	OpNotLike
	OpIn
	OpNotIn
	OpBetween
	OpIsNull
	OpIsNotNull
)

var comparisonSymbols = [...]string{
	OpEq:        "=",
	OpNotEq:     "!=",
	OpGt:        ">",
	OpLt:        "<",
	OpGtEq:      ">=",
	OpLtEq:      "<=",
	OpLike:      "LIKE",
	OpNotLike:   "NOT LIKE",
	OpIn:        "IN",
	OpNotIn:     "NOT IN",
	OpBetween:   "BETWEEN",
	OpIsNull:    "IS NULL",
	OpIsNotNull: "IS NOT NULL",
}

// String returns the SQL spelling of the operator. Both != and <> parse to
// OpNotEq, which renders as !=.
func (op ComparisonOp) String() string {
	if int(op) < len(comparisonSymbols) {
		return comparisonSymbols[op]
	}
	return "?"
}

// Unary reports whether the operator takes no right operand.
func (op ComparisonOp) Unary() bool {
	return op == OpIsNull || op == OpIsNotNull
}

// Connector is the logical operator chaining one list element to the next.
// Chains are flat and read left to right.
type Connector int

const (
	NoConnector Connector = iota
	And
	Or
)

func (c Connector) String() string {
	switch c {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return ""
	}
}

// PredicateNode is one WHERE or HAVING condition.
type PredicateNode struct {
	Left      Node
	Op        ComparisonOp
	Right     Node // nil for IS [NOT] NULL; *RangeNode for BETWEEN
	Negated   bool // leading NOT
	Connector Connector
}

func (n *PredicateNode) Accept(v Visitor) string { return v.VisitPredicate(n) }
