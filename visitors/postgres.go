package visitors

import "github.com/bawdo/selql/internal/quoting"

// PostgresVisitor generates PostgreSQL-dialect SQL.
// Plain identifiers are quoted with double quotes: "table"."column".
type PostgresVisitor struct {
	*baseVisitor
}

// NewPostgresVisitor creates a PostgresVisitor ready for use.
func NewPostgresVisitor(opts ...Option) *PostgresVisitor {
	v := &PostgresVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:      v,
		quoteIdent: quoting.IfPlain(quoting.DoubleQuote),
	}
	v.applyOptions(opts)
	return v
}
