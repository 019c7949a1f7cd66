package visitors

import "github.com/bawdo/selql/internal/quoting"

// SQLiteVisitor generates SQLite-dialect SQL.
// Plain identifiers are quoted with double quotes (ANSI SQL).
type SQLiteVisitor struct {
	*baseVisitor
}

// NewSQLiteVisitor creates a SQLiteVisitor ready for use.
func NewSQLiteVisitor(opts ...Option) *SQLiteVisitor {
	v := &SQLiteVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:      v,
		quoteIdent: quoting.IfPlain(quoting.DoubleQuote),
	}
	v.applyOptions(opts)
	return v
}
