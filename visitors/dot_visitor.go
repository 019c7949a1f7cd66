package visitors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/selql/nodes"
)

// Color constants for DOT node categories.
const (
	colorQuery      = "#6CA6CD" // blue: queries, tables
	colorAttribute  = "#B0D4E8" // light blue: attributes, stars
	colorComparison = "#FFB347" // orange: predicates, join conditions
	colorLogical    = "#FFEB80" // yellow: DISTINCT, NOT
	colorLiteral    = "#D3D3D3" // grey: literals, value lists, ranges
	colorJoin       = "#77DD77" // green: joins
	colorOrdering   = "#CDA0E0" // purple: ordering
	colorFunction   = "#87CEEB" // sky blue: aggregates
)

// dotNode represents a single node in the DOT graph.
type dotNode struct {
	id    string
	label string
	color string
}

// dotEdge represents a directed edge between two nodes in the DOT graph.
type dotEdge struct {
	from  string
	to    string
	label string
}

// pluginCluster groups nodes added by a plugin into a DOT subgraph cluster.
type pluginCluster struct {
	name    string
	color   string
	nodeIDs []string
}

// PluginProvenance records which WHERE predicates of the top-level query
// were added by a plugin.
type PluginProvenance struct {
	entries []provenanceEntry
}

type provenanceEntry struct {
	plugin string
	color  string
	index  int
}

// NewPluginProvenance creates a new PluginProvenance tracker.
func NewPluginProvenance() *PluginProvenance {
	return &PluginProvenance{}
}

// AddWhere marks a WHERE predicate index as belonging to a plugin.
func (pp *PluginProvenance) AddWhere(plugin, color string, index int) {
	pp.entries = append(pp.entries, provenanceEntry{plugin: plugin, color: color, index: index})
}

func (pp *PluginProvenance) pluginForWhere(index int) (string, string, bool) {
	for _, e := range pp.entries {
		if e.index == index {
			return e.plugin, e.color, true
		}
	}
	return "", "", false
}

// DotVisitor walks the AST and produces Graphviz DOT output.
// It implements nodes.Visitor; call ToDot after walking a tree.
type DotVisitor struct {
	nextID     int
	nodes      []dotNode
	edges      []dotEdge
	clusters   []pluginCluster
	parentID   string
	edgeLabel  string
	depth      int
	provenance *PluginProvenance
}

var _ nodes.Visitor = (*DotVisitor)(nil)

// NewDotVisitor creates a new DotVisitor ready to walk an AST.
func NewDotVisitor() *DotVisitor {
	return &DotVisitor{}
}

// SetProvenance configures plugin attribution for top-level WHERE predicates.
func (dv *DotVisitor) SetProvenance(p *PluginProvenance) {
	dv.provenance = p
}

// addNode creates a new DOT node with the given label and color, returning its ID.
func (dv *DotVisitor) addNode(label, color string) string {
	id := fmt.Sprintf("n%d", dv.nextID)
	dv.nextID++
	dv.nodes = append(dv.nodes, dotNode{id: id, label: label, color: color})
	return id
}

// addEdge records a directed edge from one node to another.
func (dv *DotVisitor) addEdge(from, to, label string) {
	dv.edges = append(dv.edges, dotEdge{from: from, to: to, label: label})
}

// visitChild saves and restores the parent context, sets the edge label,
// and calls child.Accept to recursively visit the child node.
func (dv *DotVisitor) visitChild(parentID, label string, child nodes.Node) string {
	savedParent := dv.parentID
	savedLabel := dv.edgeLabel
	dv.parentID = parentID
	dv.edgeLabel = label
	result := child.Accept(dv)
	dv.parentID = savedParent
	dv.edgeLabel = savedLabel
	return result
}

// connectToParent adds an edge from the current parentID to nodeID if a parent exists.
func (dv *DotVisitor) connectToParent(nodeID string) {
	if dv.parentID != "" {
		dv.addEdge(dv.parentID, nodeID, dv.edgeLabel)
	}
}

// leaf adds a childless node under the current parent.
func (dv *DotVisitor) leaf(label, color string) string {
	id := dv.addNode(label, color)
	dv.connectToParent(id)
	return id
}

// AddPluginCluster registers a plugin cluster for grouped rendering in the DOT output.
func (dv *DotVisitor) AddPluginCluster(name, color string, nodeIDs []string) {
	if len(nodeIDs) > 0 {
		dv.clusters = append(dv.clusters, pluginCluster{name: name, color: color, nodeIDs: nodeIDs})
	}
}

// NodeCount returns the number of nodes accumulated so far.
func (dv *DotVisitor) NodeCount() int {
	return len(dv.nodes)
}

// NodeIDsSince returns the IDs of nodes added since (and including) the given index.
func (dv *DotVisitor) NodeIDsSince(start int) []string {
	if start >= len(dv.nodes) {
		return nil
	}
	ids := make([]string, len(dv.nodes)-start)
	for i := start; i < len(dv.nodes); i++ {
		ids[i-start] = dv.nodes[i].id
	}
	return ids
}

// ToDot generates the complete DOT graph text.
func (dv *DotVisitor) ToDot() string {
	var sb strings.Builder

	sb.WriteString("digraph AST {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	clustered := make(map[string]bool)
	for _, c := range dv.clusters {
		for _, id := range c.nodeIDs {
			clustered[id] = true
		}
	}
	byID := make(map[string]dotNode, len(dv.nodes))
	for _, n := range dv.nodes {
		byID[n.id] = n
		if !clustered[n.id] {
			fmt.Fprintf(&sb, "  %s [label=\"%s\", fillcolor=\"%s\"];\n", n.id, escapeLabel(n.label), n.color)
		}
	}

	for i, c := range dv.clusters {
		fmt.Fprintf(&sb, "  subgraph cluster_%d_%s {\n", i, c.name)
		fmt.Fprintf(&sb, "    label=\"%s\";\n", c.name)
		sb.WriteString("    style=dashed;\n")
		fmt.Fprintf(&sb, "    color=\"%s\";\n", c.color)
		sb.WriteString("    fontname=\"Helvetica\";\n")
		for _, id := range c.nodeIDs {
			n := byID[id]
			fmt.Fprintf(&sb, "    %s [label=\"%s\", fillcolor=\"%s\"];\n", n.id, escapeLabel(n.label), n.color)
		}
		sb.WriteString("  }\n")
	}

	for _, e := range dv.edges {
		if e.label != "" {
			fmt.Fprintf(&sb, "  %s -> %s [label=\"%s\"];\n", e.from, e.to, e.label)
		} else {
			fmt.Fprintf(&sb, "  %s -> %s;\n", e.from, e.to)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// escapeLabel escapes double quotes in DOT labels.
// Backslash sequences like \n are intentional DOT line breaks and are preserved.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

// --- Visitor interface implementation ---

func (dv *DotVisitor) VisitSelectQuery(n *nodes.SelectQuery) string {
	id := dv.addNode("SelectQuery", colorQuery)
	dv.connectToParent(id)
	top := dv.depth == 0
	dv.depth++
	defer func() { dv.depth-- }()

	if n.Distinct {
		dv.addEdge(id, dv.addNode("DISTINCT", colorLogical), "")
	}
	visitList(dv, id, "SELECT", n.Projections)
	visitList(dv, id, "FROM", n.Sources)
	visitList(dv, id, "JOIN", n.Joins)

	clusters := map[string]*pluginCluster{}
	var order []string
	for i, w := range n.Wheres {
		snapshot := dv.NodeCount()
		dv.visitChild(id, fmt.Sprintf("WHERE[%d]", i), w)
		if !top || dv.provenance == nil {
			continue
		}
		if plugin, color, ok := dv.provenance.pluginForWhere(i); ok {
			c, exists := clusters[plugin]
			if !exists {
				c = &pluginCluster{name: plugin, color: color}
				clusters[plugin] = c
				order = append(order, plugin)
			}
			c.nodeIDs = append(c.nodeIDs, dv.NodeIDsSince(snapshot)...)
		}
	}
	for _, name := range order {
		dv.AddPluginCluster(name, clusters[name].color, clusters[name].nodeIDs)
	}

	visitList(dv, id, "GROUP", n.Groups)
	visitList(dv, id, "HAVING", n.Havings)
	visitList(dv, id, "ORDER", n.Orders)
	if n.Limit != nil {
		dv.addEdge(id, dv.addNode("Limit\\n"+strconv.Itoa(*n.Limit), colorLiteral), "LIMIT")
	}
	if n.Offset != nil {
		dv.addEdge(id, dv.addNode("Offset\\n"+strconv.Itoa(*n.Offset), colorLiteral), "OFFSET")
	}
	return id
}

// visitList visits a slice of nodes as indexed children (e.g. "SELECT[0]", "SELECT[1]").
func visitList[T nodes.Node](dv *DotVisitor, parentID, prefix string, items []T) {
	for i, item := range items {
		dv.visitChild(parentID, fmt.Sprintf("%s[%d]", prefix, i), item)
	}
}

func (dv *DotVisitor) VisitSelectItem(n *nodes.SelectItem) string {
	if n.Alias == "" {
		return n.Expr.Accept(dv)
	}
	id := dv.leaf("Alias\\n"+n.Alias, colorAttribute)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitStar(n *nodes.StarNode) string {
	label := "Star\\n*"
	if n.Table != "" {
		label = "Star\\n" + n.Table + ".*"
	}
	return dv.leaf(label, colorAttribute)
}

func (dv *DotVisitor) VisitAttribute(n *nodes.Attribute) string {
	label := "Attribute\\n"
	if n.Table != "" {
		label += n.Table + "."
	}
	return dv.leaf(label+n.Name, colorAttribute)
}

func (dv *DotVisitor) VisitAggregate(n *nodes.AggregateNode) string {
	label := "Aggregate\\n" + n.Func.String()
	if n.Distinct {
		label += "\\nDISTINCT"
	}
	id := dv.leaf(label, colorFunction)
	if n.Arg != nil {
		dv.visitChild(id, "ARG", n.Arg)
	}
	return id
}

func (dv *DotVisitor) VisitSubquery(n *nodes.SubqueryNode) string {
	id := dv.leaf("Subquery", colorQuery)
	dv.visitChild(id, "QUERY", n.Query)
	return id
}

func (dv *DotVisitor) VisitTable(n *nodes.Table) string {
	label := "Table\\n"
	if n.Schema != "" {
		label += n.Schema + "."
	}
	label += n.Name
	if n.Alias != "" {
		label += "\\nAS " + n.Alias
	}
	return dv.leaf(label, colorQuery)
}

func (dv *DotVisitor) VisitDerivedTable(n *nodes.DerivedTable) string {
	label := "DerivedTable"
	if n.Alias != "" {
		label += "\\nAS " + n.Alias
	}
	id := dv.leaf(label, colorQuery)
	dv.visitChild(id, "QUERY", n.Query)
	return id
}

func (dv *DotVisitor) VisitJoin(n *nodes.JoinNode) string {
	id := dv.leaf("Join\\n"+n.Type.String(), colorJoin)
	dv.visitChild(id, "SOURCE", n.Source)
	visitList(dv, id, "ON", n.Conditions)
	return id
}

func (dv *DotVisitor) VisitJoinCondition(n *nodes.JoinCondition) string {
	id := dv.leaf(conditionLabel("JoinCondition", n.Op, n.Connector), colorComparison)
	dv.visitChild(id, "LEFT", n.Left)
	if n.Right != nil {
		dv.visitChild(id, "RIGHT", n.Right)
	}
	return id
}

func (dv *DotVisitor) VisitPredicate(n *nodes.PredicateNode) string {
	label := conditionLabel("Predicate", n.Op, n.Connector)
	if n.Negated {
		label = "NOT " + label
	}
	id := dv.leaf(label, colorComparison)
	dv.visitChild(id, "LEFT", n.Left)
	if n.Right != nil {
		dv.visitChild(id, "RIGHT", n.Right)
	}
	return id
}

// conditionLabel names a condition node and, when one follows, the
// connector that links it to the next condition.
func conditionLabel(kind string, op nodes.ComparisonOp, next nodes.Connector) string {
	label := kind + "\\n" + op.String()
	if next != nodes.NoConnector {
		label += "\\nthen " + next.String()
	}
	return label
}

func (dv *DotVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return dv.leaf("Literal\\n"+n.Text, colorLiteral)
}

func (dv *DotVisitor) VisitValueList(n *nodes.ValueListNode) string {
	return dv.leaf("Values\\n"+strings.Join(n.Values, ", "), colorLiteral)
}

func (dv *DotVisitor) VisitRange(n *nodes.RangeNode) string {
	return dv.leaf("Range\\n"+n.From+" .. "+n.To, colorLiteral)
}

func (dv *DotVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	dir := n.Direction.String()
	switch n.Nulls {
	case nodes.NullsFirst:
		dir += "\\nNULLS FIRST"
	case nodes.NullsLast:
		dir += "\\nNULLS LAST"
	}
	id := dv.leaf("Order\\n"+dir, colorOrdering)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}
