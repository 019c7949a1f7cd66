// Package plugins defines the Transformer interface for rewriting parsed
// queries, plus helpers shared by transformers.
package plugins

import "github.com/bawdo/selql/nodes"

// Transformer rewrites a parsed query. Implementations must not modify the
// query they are given; they return a changed copy (see Clone) or the input
// itself when nothing applies.
type Transformer interface {
	TransformSelect(q *nodes.SelectQuery) (*nodes.SelectQuery, error)
}

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc func(q *nodes.SelectQuery) (*nodes.SelectQuery, error)

func (f TransformerFunc) TransformSelect(q *nodes.SelectQuery) (*nodes.SelectQuery, error) {
	return f(q)
}

// Apply runs the transformers in order, feeding each the previous result.
// The first error stops the chain.
func Apply(q *nodes.SelectQuery, ts ...Transformer) (*nodes.SelectQuery, error) {
	var err error
	for _, t := range ts {
		if q, err = t.TransformSelect(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Clone returns a copy of q whose top-level slices and WHERE/HAVING
// predicates are fresh, so a transformer can append to or relink them
// without touching q. Nested nodes are shared.
func Clone(q *nodes.SelectQuery) *nodes.SelectQuery {
	c := *q
	c.Projections = append([]*nodes.SelectItem(nil), q.Projections...)
	c.Sources = append([]nodes.Node(nil), q.Sources...)
	c.Joins = append([]*nodes.JoinNode(nil), q.Joins...)
	c.Groups = append([]*nodes.Attribute(nil), q.Groups...)
	c.Orders = append([]*nodes.OrderingNode(nil), q.Orders...)
	c.Wheres = clonePredicates(q.Wheres)
	c.Havings = clonePredicates(q.Havings)
	return &c
}

func clonePredicates(preds []*nodes.PredicateNode) []*nodes.PredicateNode {
	if preds == nil {
		return nil
	}
	out := make([]*nodes.PredicateNode, len(preds))
	for i, p := range preds {
		cp := *p
		out[i] = &cp
	}
	return out
}
