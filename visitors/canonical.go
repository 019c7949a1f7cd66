package visitors

import (
	"github.com/bawdo/selql/internal/quoting"
	"github.com/bawdo/selql/nodes"
)

// CanonicalVisitor renders the canonical SQL form of a tree: upper-case
// keywords, single spaces, identifiers and literals exactly as parsed.
// Parsing its output again yields the same output.
type CanonicalVisitor struct {
	*baseVisitor
}

// NewCanonicalVisitor creates a CanonicalVisitor ready for use.
func NewCanonicalVisitor() *CanonicalVisitor {
	v := &CanonicalVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:      v,
		quoteIdent: quoting.None,
	}
	return v
}

// Serialize renders n in canonical form. A nil node renders as "".
func Serialize(n nodes.Node) string {
	if n == nil {
		return ""
	}
	return n.Accept(NewCanonicalVisitor())
}
