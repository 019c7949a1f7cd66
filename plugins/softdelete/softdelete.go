// Package softdelete provides a Transformer that appends "column IS NULL"
// conditions to parsed SELECT queries, filtering out soft-deleted rows.
//
// By default it appends <qualifier>.deleted_at IS NULL for every table in
// the FROM and JOIN clauses of the statement, where the qualifier is the
// table alias or, without one, the table name. Sub-queries are left alone.
//
// # Custom column
//
//	sd := softdelete.New(softdelete.WithColumn("removed_at"))
//	// SELECT * FROM users WHERE users.removed_at IS NULL
//
// # Restrict to specific tables
//
//	sd := softdelete.New(softdelete.WithTables("users"))
//
// # Per-table columns
//
//	sd := softdelete.New(
//	    softdelete.WithTableColumn("users", "deleted_at"),
//	    softdelete.WithTableColumn("posts", "removed_at"),
//	)
//
// # REPL usage
//
//	selql> plugin softdelete
//	selql> plugin softdelete removed_at
//	selql> plugin off
package softdelete

import (
	"errors"

	"github.com/bawdo/selql/nodes"
	"github.com/bawdo/selql/plugins"
)

// ErrDisjunction is returned for a WHERE clause that contains OR. Appending
// AND conditions to it would bind to the last OR operand only, and the tree
// has no grouping node to wrap the existing clause in.
var ErrDisjunction = errors.New("softdelete: WHERE clause contains OR")

// SoftDelete is a Transformer that appends IS NULL conditions for a
// soft-delete column on every referenced table (or a configured subset).
type SoftDelete struct {
	Column  string
	Columns map[string]string // per-table column overrides (table name → column name)
	tables  map[string]bool   // nil means apply to all tables
}

var _ plugins.Transformer = (*SoftDelete)(nil)

// Option configures a SoftDelete transformer.
type Option func(*SoftDelete)

// WithColumn sets the soft-delete column name. Default is "deleted_at".
func WithColumn(name string) Option {
	return func(sd *SoftDelete) { sd.Column = name }
}

// WithTables restricts the plugin to the named tables.
func WithTables(names ...string) Option {
	return func(sd *SoftDelete) {
		sd.tables = make(map[string]bool, len(names))
		for _, n := range names {
			sd.tables[n] = true
		}
	}
}

// WithTableColumn sets a per-table column override. The table is added to
// the whitelist, restricting the plugin's scope.
func WithTableColumn(table, column string) Option {
	return func(sd *SoftDelete) {
		if sd.Columns == nil {
			sd.Columns = make(map[string]string)
		}
		sd.Columns[table] = column
		if sd.tables == nil {
			sd.tables = make(map[string]bool)
		}
		sd.tables[table] = true
	}
}

// New creates a SoftDelete transformer with the given options.
func New(opts ...Option) *SoftDelete {
	sd := &SoftDelete{Column: "deleted_at"}
	for _, o := range opts {
		o(sd)
	}
	return sd
}

// TransformSelect returns a copy of q with one "column IS NULL" predicate
// appended per matching table, joined to the existing chain with AND.
// q is returned unchanged when no table matches.
func (sd *SoftDelete) TransformSelect(q *nodes.SelectQuery) (*nodes.SelectQuery, error) {
	var added []*nodes.PredicateNode
	for _, ref := range plugins.CollectTables(q) {
		if !sd.appliesTo(ref.Table.Name) {
			continue
		}
		added = append(added, &nodes.PredicateNode{
			Left: nodes.NewAttribute(ref.Qualifier(), sd.columnFor(ref.Table.Name)),
			Op:   nodes.OpIsNull,
		})
	}
	if len(added) == 0 {
		return q, nil
	}
	for _, p := range q.Wheres {
		if p.Connector == nodes.Or {
			return nil, ErrDisjunction
		}
	}

	out := plugins.Clone(q)
	if n := len(out.Wheres); n > 0 {
		out.Wheres[n-1].Connector = nodes.And
	}
	for i, p := range added {
		if i < len(added)-1 {
			p.Connector = nodes.And
		}
		out.Wheres = append(out.Wheres, p)
	}
	return out, nil
}

func (sd *SoftDelete) appliesTo(tableName string) bool {
	if sd.tables == nil {
		return true
	}
	return sd.tables[tableName]
}

// columnFor returns the column name to use for the given table.
func (sd *SoftDelete) columnFor(tableName string) string {
	if col, ok := sd.Columns[tableName]; ok {
		return col
	}
	return sd.Column
}
