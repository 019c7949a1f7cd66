package nodes

// Table represents a table reference in FROM or JOIN.
type Table struct {
	Name   string
	Schema string // empty when unqualified
	Alias  string
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) Accept(v Visitor) string { return v.VisitTable(t) }

// DerivedTable is a sub-query used in place of a table.
type DerivedTable struct {
	Query *SelectQuery
	Alias string
}

func (n *DerivedTable) Accept(v Visitor) string { return v.VisitDerivedTable(n) }

// RelationName returns the name used to qualify columns of a source:
// the alias when set, otherwise the table name.
func RelationName(n Node) string {
	switch r := n.(type) {
	case *Table:
		if r.Alias != "" {
			return r.Alias
		}
		return r.Name
	case *DerivedTable:
		return r.Alias
	default:
		return ""
	}
}
