package scan

import (
	"testing"

	"github.com/bawdo/selql/nodes"
)

func TestExtractAlias(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, expr, alias string
	}{
		{"u.name AS who", "u.name", "who"},
		{"u.name as who", "u.name", "who"},
		{"COUNT(*) total", "COUNT(*)", "total"},
		{"users u", "users", "u"},
		{"users", "users", ""},
		{"(SELECT a AS b FROM t) AS d", "(SELECT a AS b FROM t)", "d"},
		{"(SELECT a FROM t) d", "(SELECT a FROM t)", "d"},
		{"'a b' 'c d'", "'a b' 'c d'", ""},
		{"name 2x", "name 2x", ""},
		{"x AS", "x", ""},
		{"cast_as_text", "cast_as_text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			expr, alias := ExtractAlias(tt.in)
			if expr != tt.expr || alias != tt.alias {
				t.Errorf("ExtractAlias(%q) = (%q, %q), want (%q, %q)", tt.in, expr, alias, tt.expr, tt.alias)
			}
		})
	}
}

func TestFindKeyword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s, kw string
		want  int
	}{
		{"b ON a.id = b.id", "ON", 2},
		{"b on a.id = b.id", "ON", 2},
		{"person p", "ON", -1},
		{"(x ON y) ON z", "ON", 9},
		{"'ON' ON z", "ON", 5},
		{"ON", "ON", 0},
	}
	for _, tt := range tests {
		if got := FindKeyword(tt.s, tt.kw); got != tt.want {
			t.Errorf("FindKeyword(%q, %q) = %d, want %d", tt.s, tt.kw, got, tt.want)
		}
	}
}

func TestIsSubquery(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"(SELECT 1 FROM t)", true},
		{" ( select a from t ) ", true},
		{"(SELECTED)", false},
		{"(1, 2)", false},
		{"SELECT 1 FROM t", false},
		{"(SELECT 1 FROM t", false},
		{"(SELECT a FROM t) + (SELECT b FROM u)", false},
	}
	for _, tt := range tests {
		if got := IsSubquery(tt.in); got != tt.want {
			t.Errorf("IsSubquery(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAggregate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want Aggregate
	}{
		{"COUNT(*)", Aggregate{Func: nodes.AggCount, Arg: "*"}},
		{"count(DISTINCT id)", Aggregate{Func: nodes.AggCount, Arg: "id", Distinct: true}},
		{"SUM(o.total)", Aggregate{Func: nodes.AggSum, Arg: "o.total"}},
		{"AVG( price )", Aggregate{Func: nodes.AggAvg, Arg: "price"}},
		{"MIN(x)", Aggregate{Func: nodes.AggMin, Arg: "x"}},
		{"MAX(x)", Aggregate{Func: nodes.AggMax, Arg: "x"}},
		{"COUNT(distinctive)", Aggregate{Func: nodes.AggCount, Arg: "distinctive"}},
	}
	for _, tt := range tests {
		got, ok := ParseAggregate(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseAggregate(%q) = %+v, %v; want %+v", tt.in, got, ok, tt.want)
		}
	}
	for _, in := range []string{"COUNT (x)", "counter(x)", "x", "UPPER(x)", "SUM(a) + SUM(b)"} {
		if IsAggregate(in) {
			t.Errorf("IsAggregate(%q) = true, want false", in)
		}
	}
}

func TestFindComparison(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		op     nodes.ComparisonOp
		symbol string
		index  int
	}{
		{"a >= 1", nodes.OpGtEq, ">=", 2},
		{"a <= 1", nodes.OpLtEq, "<=", 2},
		{"a != 1", nodes.OpNotEq, "!=", 2},
		{"a <> 1", nodes.OpNotEq, "<>", 2},
		{"a > 1", nodes.OpGt, ">", 2},
		{"a < 1", nodes.OpLt, "<", 2},
		{"a = 1", nodes.OpEq, "=", 2},
		{"a = '>='", nodes.OpEq, "=", 2},
		{"(SELECT MAX(x) FROM t WHERE y >= 2) = a", nodes.OpEq, "=", 36},
		{"(a = 1 OR b = 2)", nodes.OpEq, "=", 3},
		{"active", nodes.OpEq, "=", -1},
	}
	for _, tt := range tests {
		op, symbol, index := FindComparison(tt.in)
		if op != tt.op || symbol != tt.symbol || index != tt.index {
			t.Errorf("FindComparison(%q) = (%v, %q, %d), want (%v, %q, %d)",
				tt.in, op, symbol, index, tt.op, tt.symbol, tt.index)
		}
	}
}

func TestIdentifierShapes(t *testing.T) {
	t.Parallel()
	if !IsIdentifier("user_id") || IsIdentifier("u.id") || IsIdentifier("1x") {
		t.Error("IsIdentifier mismatch")
	}
	if !IsColumnReference("u.id") || !IsColumnReference("a.b.c") || IsColumnReference("'u.id'") || IsColumnReference("18") {
		t.Error("IsColumnReference mismatch")
	}
}

func TestSplitQualified(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, qualifier, name string
	}{
		{"users.id", "users", "id"},
		{"id", "", "id"},
		{"db.public.users", "", "db.public.users"},
	}
	for _, tt := range tests {
		q, n := SplitQualified(tt.in)
		if q != tt.qualifier || n != tt.name {
			t.Errorf("SplitQualified(%q) = (%q, %q), want (%q, %q)", tt.in, q, n, tt.qualifier, tt.name)
		}
	}
}

func TestStartsWithWord(t *testing.T) {
	t.Parallel()
	if !StartsWithWord("DISTINCT a", "DISTINCT") || !StartsWithWord("distinct", "DISTINCT") {
		t.Error("expected DISTINCT prefix to match")
	}
	if StartsWithWord("DISTINCTIVE", "DISTINCT") || StartsWithWord("DIST", "DISTINCT") {
		t.Error("expected partial word not to match")
	}
}
