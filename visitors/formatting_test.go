package visitors

import (
	"testing"

	"github.com/bawdo/selql/internal/testutil"
	"github.com/bawdo/selql/nodes"
)

func TestFormattingVisitorPanicsOnNilInner(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil inner visitor")
		}
	}()
	NewFormattingVisitor(nil)
}

func TestFormattingVisitorDelegatesLeafNodes(t *testing.T) {
	t.Parallel()
	fv := NewFormattingVisitor(NewPostgresVisitor())
	testutil.AssertSQL(t, fv, nodes.NewTable("users"), `"users"`)
	testutil.AssertSQL(t, fv, nodes.NewAttribute("users", "id"), `"users"."id"`)
	testutil.AssertSQL(t, fv, nodes.Literal("'alice'"), `'alice'`)
	testutil.AssertSQL(t, fv, nodes.Star(), `*`)
}

func TestFormattingVisitorSelectQuery(t *testing.T) {
	t.Parallel()
	fv := NewFormattingVisitor(NewCanonicalVisitor())
	want := "SELECT DISTINCT u.id\n" +
		"\t,COUNT(*) AS total\n" +
		"FROM public.users AS u\n" +
		"LEFT JOIN orders AS o ON u.id = o.user_id AND o.state = 'paid'\n" +
		"WHERE u.age BETWEEN 18 AND 65\n" +
		"\tOR u.name LIKE 'A%'\n" +
		"GROUP BY u.id\n" +
		"HAVING COUNT(*) > 1\n" +
		"ORDER BY total DESC NULLS LAST\n" +
		"LIMIT 10\n" +
		"OFFSET 5"
	testutil.AssertSQL(t, fv, sampleQuery(), want)
}

func TestFormattingVisitorIndentsSubqueries(t *testing.T) {
	t.Parallel()
	inner := &nodes.SelectQuery{
		Projections: []*nodes.SelectItem{{Expr: nodes.NewAttribute("", "id")}},
		Sources:     []nodes.Node{nodes.NewTable("t")},
	}
	q := &nodes.SelectQuery{
		Projections: []*nodes.SelectItem{{Expr: nodes.Star()}},
		Sources:     []nodes.Node{&nodes.DerivedTable{Query: inner, Alias: "d"}},
		Wheres: []*nodes.PredicateNode{{
			Left:  nodes.NewAttribute("d", "id"),
			Op:    nodes.OpIn,
			Right: &nodes.SubqueryNode{Query: inner},
		}},
	}
	want := "SELECT *\n" +
		"FROM (\n" +
		"\tSELECT id\n" +
		"\tFROM t\n" +
		") AS d\n" +
		"WHERE d.id IN (\n" +
		"\tSELECT id\n" +
		"\tFROM t\n" +
		")"
	testutil.AssertSQL(t, NewFormattingVisitor(NewCanonicalVisitor()), q, want)
}

func TestFormattingVisitorKeepsDialectQuoting(t *testing.T) {
	t.Parallel()
	fv := NewFormattingVisitor(NewMySQLVisitor())
	item := &nodes.SelectItem{Expr: nodes.NewAttribute("u", "id"), Alias: "uid"}
	testutil.AssertSQL(t, fv, item, "`u`.`id` AS `uid`")
}
