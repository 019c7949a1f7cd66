package parser

import "github.com/bawdo/selql/nodes"

// Diagnostics reported by Validate.
const (
	EmptySelect = "SELECT clause is empty"
	EmptyFrom   = "FROM clause is empty"
)

// Validate returns human-readable problems with a parsed query. It checks
// only the top-level query and is not a semantic check: a query whose
// single item is a scalar sub-query still needs a FROM.
func Validate(q *nodes.SelectQuery) []string {
	var problems []string
	if q == nil || len(q.Projections) == 0 {
		problems = append(problems, EmptySelect)
	}
	if q == nil || len(q.Sources) == 0 {
		problems = append(problems, EmptyFrom)
	}
	return problems
}
