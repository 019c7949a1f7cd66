package nodes

import "strings"

// AggregateFunc identifies the aggregate function.
type AggregateFunc int

const (
	AggCount AggregateFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

var aggregateNames = [...]string{
	AggCount: "COUNT",
	AggSum:   "SUM",
	AggAvg:   "AVG",
	AggMin:   "MIN",
	AggMax:   "MAX",
}

// AggregateFuncs lists every supported aggregate in declaration order.
var AggregateFuncs = []AggregateFunc{AggCount, AggSum, AggAvg, AggMin, AggMax}

// String returns the SQL function name.
func (f AggregateFunc) String() string {
	if int(f) < len(aggregateNames) {
		return aggregateNames[f]
	}
	return "UNKNOWN"
}

// LookupAggregate maps a function name (any case) to its AggregateFunc.
func LookupAggregate(name string) (AggregateFunc, bool) {
	upper := strings.ToUpper(name)
	for _, f := range AggregateFuncs {
		if aggregateNames[f] == upper {
			return f, true
		}
	}
	return 0, false
}

// AggregateNode represents an aggregate function call (COUNT, SUM, AVG, MIN, MAX).
type AggregateNode struct {
	Func     AggregateFunc
	Arg      Node // *StarNode for COUNT(*)
	Distinct bool // COUNT(DISTINCT ...)
}

func (n *AggregateNode) Accept(v Visitor) string { return v.VisitAggregate(n) }
