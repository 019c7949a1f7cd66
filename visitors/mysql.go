package visitors

import (
	"github.com/bawdo/selql/internal/quoting"
	"github.com/bawdo/selql/nodes"
)

// MySQLVisitor generates MySQL-dialect SQL.
// Plain identifiers are quoted with backticks: `table`.`column`.
type MySQLVisitor struct {
	*baseVisitor
}

// NewMySQLVisitor creates a MySQLVisitor ready for use.
func NewMySQLVisitor(opts ...Option) *MySQLVisitor {
	v := &MySQLVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:      v,
		quoteIdent: quoting.IfPlain(quoting.Backtick),
	}
	v.applyOptions(opts)
	return v
}

// VisitOrdering emulates NULLS FIRST / NULLS LAST, which MySQL lacks, with
// a leading "expr IS NULL" sort key.
func (v *MySQLVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	expr := n.Expr.Accept(v)
	sort := expr + " " + n.Direction.String()
	switch n.Nulls {
	case nodes.NullsFirst:
		return expr + " IS NULL DESC, " + sort
	case nodes.NullsLast:
		return expr + " IS NULL ASC, " + sort
	default:
		return sort
	}
}
