package plugins

import "github.com/bawdo/selql/nodes"

// TableRef is one table referenced by a query.
type TableRef struct {
	Table *nodes.Table
	Depth int // 0 for the statement itself, 1 for its sub-queries, and so on
}

// Qualifier returns the name columns of the table are qualified with: the
// alias when set, otherwise the table name.
func (r TableRef) Qualifier() string {
	return nodes.RelationName(r.Table)
}

// CollectTables returns the tables in the FROM and JOIN clauses of q itself.
// Derived tables and other sub-queries are skipped.
func CollectTables(q *nodes.SelectQuery) []TableRef {
	var refs []TableRef
	for _, src := range q.Sources {
		if t, ok := src.(*nodes.Table); ok {
			refs = append(refs, TableRef{Table: t})
		}
	}
	for _, j := range q.Joins {
		if t, ok := j.Source.(*nodes.Table); ok {
			refs = append(refs, TableRef{Table: t})
		}
	}
	return refs
}

// CollectAllTables returns every table referenced anywhere in q, walking
// derived tables and sub-queries depth first. Tables of q come first.
func CollectAllTables(q *nodes.SelectQuery) []TableRef {
	var refs []TableRef
	var walk func(q *nodes.SelectQuery, depth int)
	walk = func(q *nodes.SelectQuery, depth int) {
		for _, ref := range CollectTables(q) {
			ref.Depth = depth
			refs = append(refs, ref)
		}
		for _, sub := range Subqueries(q) {
			walk(sub, depth+1)
		}
	}
	walk(q, 0)
	return refs
}

// Subqueries returns the queries nested directly inside q, in clause order.
func Subqueries(q *nodes.SelectQuery) []*nodes.SelectQuery {
	var out []*nodes.SelectQuery
	add := func(n nodes.Node) {
		if sub := nested(n); sub != nil {
			out = append(out, sub)
		}
	}
	for _, item := range q.Projections {
		add(item.Expr)
	}
	for _, src := range q.Sources {
		add(src)
	}
	for _, j := range q.Joins {
		add(j.Source)
	}
	for _, p := range q.Wheres {
		add(p.Left)
		add(p.Right)
	}
	for _, p := range q.Havings {
		add(p.Left)
		add(p.Right)
	}
	for _, o := range q.Orders {
		add(o.Expr)
	}
	return out
}

func nested(n nodes.Node) *nodes.SelectQuery {
	switch v := n.(type) {
	case *nodes.SubqueryNode:
		return v.Query
	case *nodes.DerivedTable:
		return v.Query
	case *nodes.AggregateNode:
		return nested(v.Arg)
	default:
		return nil
	}
}
