package visitors

import (
	"testing"

	"github.com/bawdo/selql/internal/testutil"
	"github.com/bawdo/selql/nodes"
)

func intPtr(n int) *int { return &n }

// sampleQuery is
// SELECT DISTINCT u.id, COUNT(*) AS total FROM public.users AS u
// LEFT JOIN orders AS o ON u.id = o.user_id AND o.state = 'paid'
// WHERE u.age BETWEEN 18 AND 65 OR u.name LIKE 'A%'
// GROUP BY u.id HAVING COUNT(*) > 1 ORDER BY total DESC NULLS LAST LIMIT 10 OFFSET 5
func sampleQuery() *nodes.SelectQuery {
	return &nodes.SelectQuery{
		Distinct: true,
		Projections: []*nodes.SelectItem{
			{Expr: nodes.NewAttribute("u", "id")},
			{Expr: &nodes.AggregateNode{Func: nodes.AggCount, Arg: nodes.Star()}, Alias: "total"},
		},
		Sources: []nodes.Node{&nodes.Table{Schema: "public", Name: "users", Alias: "u"}},
		Joins: []*nodes.JoinNode{{
			Type:   nodes.LeftJoin,
			Source: &nodes.Table{Name: "orders", Alias: "o"},
			Conditions: []*nodes.JoinCondition{
				{Left: nodes.NewAttribute("u", "id"), Op: nodes.OpEq, Right: nodes.NewAttribute("o", "user_id"), Connector: nodes.And},
				{Left: nodes.NewAttribute("o", "state"), Op: nodes.OpEq, Right: nodes.Literal("'paid'")},
			},
		}},
		Wheres: []*nodes.PredicateNode{
			{Left: nodes.NewAttribute("u", "age"), Op: nodes.OpBetween, Right: &nodes.RangeNode{From: "18", To: "65"}, Connector: nodes.Or},
			{Left: nodes.NewAttribute("u", "name"), Op: nodes.OpLike, Right: nodes.Literal("'A%'")},
		},
		Groups: []*nodes.Attribute{nodes.NewAttribute("u", "id")},
		Havings: []*nodes.PredicateNode{
			{Left: &nodes.AggregateNode{Func: nodes.AggCount, Arg: nodes.Star()}, Op: nodes.OpGt, Right: nodes.Literal("1")},
		},
		Orders: []*nodes.OrderingNode{{Expr: nodes.NewAttribute("", "total"), Direction: nodes.Desc, Nulls: nodes.NullsLast}},
		Limit:  intPtr(10),
		Offset: intPtr(5),
	}
}

func TestSerializeFullQuery(t *testing.T) {
	t.Parallel()
	want := "SELECT DISTINCT u.id, COUNT(*) AS total FROM public.users AS u" +
		" LEFT JOIN orders AS o ON u.id = o.user_id AND o.state = 'paid'" +
		" WHERE u.age BETWEEN 18 AND 65 OR u.name LIKE 'A%'" +
		" GROUP BY u.id HAVING COUNT(*) > 1 ORDER BY total DESC NULLS LAST LIMIT 10 OFFSET 5"
	testutil.AssertEqual(t, Serialize(sampleQuery()), want)
}

func TestSerializeNil(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, Serialize(nil), "")
}

func TestSerializeOmitsAbsentClauses(t *testing.T) {
	t.Parallel()
	q := &nodes.SelectQuery{
		Projections: []*nodes.SelectItem{{Expr: nodes.Star()}},
		Sources:     []nodes.Node{nodes.NewTable("users")},
	}
	testutil.AssertEqual(t, Serialize(q), "SELECT * FROM users")
}

func TestSerializeWithoutSources(t *testing.T) {
	t.Parallel()
	q := &nodes.SelectQuery{Projections: []*nodes.SelectItem{{Expr: nodes.NewAttribute("", "1")}}}
	testutil.AssertEqual(t, Serialize(q), "SELECT 1")
}

func TestVisitStar(t *testing.T) {
	t.Parallel()
	v := NewCanonicalVisitor()
	testutil.AssertSQL(t, v, nodes.Star(), "*")
	testutil.AssertSQL(t, v, &nodes.StarNode{Table: "u"}, "u.*")
	testutil.AssertSQL(t, NewPostgresVisitor(), &nodes.StarNode{Table: "u"}, `"u".*`)
	testutil.AssertSQL(t, NewMySQLVisitor(), &nodes.StarNode{Table: "u"}, "`u`.*")
}

func TestVisitAttribute(t *testing.T) {
	t.Parallel()
	col := nodes.NewAttribute("users", "name")
	testutil.AssertSQL(t, NewCanonicalVisitor(), col, "users.name")
	testutil.AssertSQL(t, NewPostgresVisitor(), col, `"users"."name"`)
	testutil.AssertSQL(t, NewMySQLVisitor(), col, "`users`.`name`")
	testutil.AssertSQL(t, NewSQLiteVisitor(), col, `"users"."name"`)
}

func TestVisitAttributeVerbatimNames(t *testing.T) {
	t.Parallel()
	pg := NewPostgresVisitor()
	testutil.AssertSQL(t, pg, &nodes.Attribute{Name: "db.schema.col"}, "db.schema.col")
	testutil.AssertSQL(t, pg, &nodes.Attribute{Name: `"Mixed"`}, `"Mixed"`)
	testutil.AssertSQL(t, pg, &nodes.Attribute{Name: "TRUE"}, "TRUE")
	testutil.AssertSQL(t, pg, &nodes.Attribute{Name: "UPPER(name)"}, "UPPER(name)")
}

func TestWithoutQuoting(t *testing.T) {
	t.Parallel()
	col := nodes.NewAttribute("users", "name")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutQuoting()), col, "users.name")
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutQuoting()), col, "users.name")
}

func TestVisitTable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		table *nodes.Table
		want  string
		pg    string
	}{
		{"bare", nodes.NewTable("users"), "users", `"users"`},
		{"schema", &nodes.Table{Schema: "public", Name: "users"}, "public.users", `"public"."users"`},
		{"alias", &nodes.Table{Name: "users", Alias: "u"}, "users AS u", `"users" AS "u"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertSQL(t, NewCanonicalVisitor(), tt.table, tt.want)
			testutil.AssertSQL(t, NewPostgresVisitor(), tt.table, tt.pg)
		})
	}
}

func TestVisitDerivedTable(t *testing.T) {
	t.Parallel()
	inner := &nodes.SelectQuery{
		Projections: []*nodes.SelectItem{{Expr: nodes.NewAttribute("", "id")}},
		Sources:     []nodes.Node{nodes.NewTable("t")},
	}
	testutil.AssertSQL(t, NewCanonicalVisitor(), &nodes.DerivedTable{Query: inner, Alias: "d"}, "(SELECT id FROM t) AS d")
	testutil.AssertSQL(t, NewCanonicalVisitor(), &nodes.DerivedTable{Query: inner}, "(SELECT id FROM t)")
	testutil.AssertSQL(t, NewMySQLVisitor(), &nodes.DerivedTable{Query: inner, Alias: "d"}, "(SELECT `id` FROM `t`) AS `d`")
}

func TestVisitAggregate(t *testing.T) {
	t.Parallel()
	v := NewCanonicalVisitor()
	testutil.AssertSQL(t, v, &nodes.AggregateNode{Func: nodes.AggCount, Arg: nodes.Star()}, "COUNT(*)")
	testutil.AssertSQL(t, v, &nodes.AggregateNode{Func: nodes.AggCount, Arg: nodes.NewAttribute("", "id"), Distinct: true}, "COUNT(DISTINCT id)")
	testutil.AssertSQL(t, v, &nodes.AggregateNode{Func: nodes.AggSum, Arg: nodes.NewAttribute("o", "total")}, "SUM(o.total)")
	testutil.AssertSQL(t, v, &nodes.AggregateNode{Func: nodes.AggMax}, "MAX(*)")
}

func TestVisitPredicate(t *testing.T) {
	t.Parallel()
	age := nodes.NewAttribute("", "age")
	tests := []struct {
		name string
		pred *nodes.PredicateNode
		want string
	}{
		{"comparison", &nodes.PredicateNode{Left: age, Op: nodes.OpGtEq, Right: nodes.Literal("18")}, "age >= 18"},
		{"not equal", &nodes.PredicateNode{Left: age, Op: nodes.OpNotEq, Right: nodes.Literal("3")}, "age != 3"},
		{"negated", &nodes.PredicateNode{Left: age, Op: nodes.OpEq, Right: nodes.Literal("3"), Negated: true}, "NOT age = 3"},
		{"is null", &nodes.PredicateNode{Left: age, Op: nodes.OpIsNull}, "age IS NULL"},
		{"is not null", &nodes.PredicateNode{Left: age, Op: nodes.OpIsNotNull}, "age IS NOT NULL"},
		{"between", &nodes.PredicateNode{Left: age, Op: nodes.OpBetween, Right: &nodes.RangeNode{From: "1", To: "9"}}, "age BETWEEN 1 AND 9"},
		{"in list", &nodes.PredicateNode{Left: age, Op: nodes.OpIn, Right: &nodes.ValueListNode{Values: []string{"1", "2"}}}, "age IN (1, 2)"},
		{"not in", &nodes.PredicateNode{Left: age, Op: nodes.OpNotIn, Right: &nodes.ValueListNode{Values: []string{"'a'"}}}, "age NOT IN ('a')"},
		{"not like", &nodes.PredicateNode{Left: age, Op: nodes.OpNotLike, Right: nodes.Literal("'1%'")}, "age NOT LIKE '1%'"},
		{"missing right", &nodes.PredicateNode{Left: age, Op: nodes.OpEq}, "age ="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertSQL(t, NewCanonicalVisitor(), tt.pred, tt.want)
		})
	}
}

func TestVisitSubquery(t *testing.T) {
	t.Parallel()
	inner := &nodes.SelectQuery{
		Projections: []*nodes.SelectItem{{Expr: &nodes.AggregateNode{Func: nodes.AggMax, Arg: nodes.NewAttribute("", "x")}}},
		Sources:     []nodes.Node{nodes.NewTable("t")},
	}
	pred := &nodes.PredicateNode{
		Left:  nodes.NewAttribute("", "id"),
		Op:    nodes.OpIn,
		Right: &nodes.SubqueryNode{Query: inner},
	}
	testutil.AssertSQL(t, NewCanonicalVisitor(), pred, "id IN (SELECT MAX(x) FROM t)")
}

func TestConnectorDefaultsToAnd(t *testing.T) {
	t.Parallel()
	q := &nodes.SelectQuery{
		Projections: []*nodes.SelectItem{{Expr: nodes.Star()}},
		Sources:     []nodes.Node{nodes.NewTable("t")},
		Wheres: []*nodes.PredicateNode{
			{Left: nodes.NewAttribute("", "a"), Op: nodes.OpEq, Right: nodes.Literal("1")},
			{Left: nodes.NewAttribute("", "b"), Op: nodes.OpEq, Right: nodes.Literal("2"), Connector: nodes.Or},
			{Left: nodes.NewAttribute("", "c"), Op: nodes.OpEq, Right: nodes.Literal("3")},
		},
	}
	testutil.AssertEqual(t, Serialize(q), "SELECT * FROM t WHERE a = 1 AND b = 2 OR c = 3")
}

func TestVisitJoin(t *testing.T) {
	t.Parallel()
	cross := &nodes.JoinNode{Type: nodes.CrossJoin, Source: nodes.NewTable("b")}
	testutil.AssertSQL(t, NewCanonicalVisitor(), cross, "CROSS JOIN b")

	full := &nodes.JoinNode{
		Type:   nodes.FullJoin,
		Source: nodes.NewTable("b"),
		Conditions: []*nodes.JoinCondition{
			{Left: nodes.NewAttribute("a", "id"), Op: nodes.OpEq, Right: nodes.NewAttribute("b", "id"), Connector: nodes.Or},
			{Left: nodes.NewAttribute("a", "x"), Op: nodes.OpGt, Right: nodes.Literal("5")},
		},
	}
	testutil.AssertSQL(t, NewCanonicalVisitor(), full, "FULL JOIN b ON a.id = b.id OR a.x > 5")
	testutil.AssertSQL(t, NewPostgresVisitor(), full, `FULL JOIN "b" ON "a"."id" = "b"."id" OR "a"."x" > 5`)
}

func TestVisitOrdering(t *testing.T) {
	t.Parallel()
	col := nodes.NewAttribute("", "name")
	tests := []struct {
		name  string
		order *nodes.OrderingNode
		want  string
		mysql string
	}{
		{"asc", &nodes.OrderingNode{Expr: col}, "name ASC", "`name` ASC"},
		{"desc", &nodes.OrderingNode{Expr: col, Direction: nodes.Desc}, "name DESC", "`name` DESC"},
		{"nulls first", &nodes.OrderingNode{Expr: col, Nulls: nodes.NullsFirst}, "name ASC NULLS FIRST", "`name` IS NULL DESC, `name` ASC"},
		{"nulls last", &nodes.OrderingNode{Expr: col, Direction: nodes.Desc, Nulls: nodes.NullsLast}, "name DESC NULLS LAST", "`name` IS NULL ASC, `name` DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertSQL(t, NewCanonicalVisitor(), tt.order, tt.want)
			testutil.AssertSQL(t, NewMySQLVisitor(), tt.order, tt.mysql)
		})
	}
}

func TestDialectSelectItemAlias(t *testing.T) {
	t.Parallel()
	item := &nodes.SelectItem{Expr: nodes.NewAttribute("u", "name"), Alias: "who"}
	testutil.AssertSQL(t, NewCanonicalVisitor(), item, "u.name AS who")
	testutil.AssertSQL(t, NewPostgresVisitor(), item, `"u"."name" AS "who"`)
	testutil.AssertSQL(t, NewMySQLVisitor(), item, "`u`.`name` AS `who`")
}

func TestDialectLiteralsVerbatim(t *testing.T) {
	t.Parallel()
	pred := &nodes.PredicateNode{Left: nodes.NewAttribute("", "name"), Op: nodes.OpEq, Right: nodes.Literal(`'O''Brien'`)}
	testutil.AssertSQL(t, NewPostgresVisitor(), pred, `"name" = 'O''Brien'`)
	testutil.AssertSQL(t, NewSQLiteVisitor(), pred, `"name" = 'O''Brien'`)
}

func TestDialectFullQuery(t *testing.T) {
	t.Parallel()
	got := sampleQuery().Accept(NewPostgresVisitor())
	testutil.AssertContains(t, got, `SELECT DISTINCT "u"."id", COUNT(*) AS "total" FROM "public"."users" AS "u"`)
	testutil.AssertContains(t, got, `LEFT JOIN "orders" AS "o" ON "u"."id" = "o"."user_id" AND "o"."state" = 'paid'`)
	testutil.AssertContains(t, got, `ORDER BY "total" DESC NULLS LAST LIMIT 10 OFFSET 5`)
}
