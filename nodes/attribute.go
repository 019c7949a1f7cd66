package nodes

// Attribute represents a column reference, optionally qualified by a table
// name or alias. Names with more than one dot are kept whole in Name.
type Attribute struct {
	Name  string
	Table string // empty when unqualified
}

// NewAttribute creates a column reference qualified by table (may be empty).
func NewAttribute(table, name string) *Attribute {
	return &Attribute{Name: name, Table: table}
}

func (a *Attribute) Accept(v Visitor) string { return v.VisitAttribute(a) }

// StarNode represents a SQL star (*) or qualified star (table.*).
type StarNode struct {
	Table string // empty for unqualified *
}

func (n *StarNode) Accept(v Visitor) string { return v.VisitStar(n) }

// Star returns an unqualified StarNode representing SQL *.
func Star() *StarNode {
	return &StarNode{}
}
