package softdelete

import (
	"errors"
	"testing"

	"github.com/bawdo/selql/nodes"
	"github.com/bawdo/selql/parser"
	"github.com/bawdo/selql/plugins"
	"github.com/bawdo/selql/visitors"
)

func transform(t *testing.T, sd *SoftDelete, sql string) string {
	t.Helper()
	q, err := parser.ParseSQL(sql)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	result, err := sd.TransformSelect(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return visitors.Serialize(result)
}

func TestSoftDelete(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		sd   *SoftDelete
		sql  string
		want string
	}{
		{
			name: "default column",
			sd:   New(),
			sql:  "SELECT * FROM users",
			want: "SELECT * FROM users WHERE users.deleted_at IS NULL",
		},
		{
			name: "custom column",
			sd:   New(WithColumn("removed_at")),
			sql:  "SELECT * FROM users",
			want: "SELECT * FROM users WHERE users.removed_at IS NULL",
		},
		{
			name: "alias qualifies the column",
			sd:   New(),
			sql:  "SELECT u.id FROM public.users u",
			want: "SELECT u.id FROM public.users AS u WHERE u.deleted_at IS NULL",
		},
		{
			name: "preserves existing wheres",
			sd:   New(),
			sql:  "SELECT * FROM users WHERE active = true AND age > 18",
			want: "SELECT * FROM users WHERE active = true AND age > 18 AND users.deleted_at IS NULL",
		},
		{
			name: "joined tables",
			sd:   New(),
			sql:  "SELECT * FROM users u JOIN posts p ON p.user_id = u.id",
			want: "SELECT * FROM users AS u INNER JOIN posts AS p ON p.user_id = u.id WHERE u.deleted_at IS NULL AND p.deleted_at IS NULL",
		},
		{
			name: "restricted tables",
			sd:   New(WithTables("posts")),
			sql:  "SELECT * FROM users u JOIN posts p ON p.user_id = u.id",
			want: "SELECT * FROM users AS u INNER JOIN posts AS p ON p.user_id = u.id WHERE p.deleted_at IS NULL",
		},
		{
			name: "per-table columns",
			sd:   New(WithTableColumn("users", "deleted_at"), WithTableColumn("posts", "removed_at")),
			sql:  "SELECT * FROM users, posts, tags",
			want: "SELECT * FROM users, posts, tags WHERE users.deleted_at IS NULL AND posts.removed_at IS NULL",
		},
		{
			name: "sub-queries untouched",
			sd:   New(),
			sql:  "SELECT * FROM (SELECT id FROM archived) AS a",
			want: "SELECT * FROM (SELECT id FROM archived) AS a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := transform(t, tt.sd, tt.sql); got != tt.want {
				t.Errorf("expected:\n  %s\ngot:\n  %s", tt.want, got)
			}
		})
	}
}

func TestInputNotModified(t *testing.T) {
	t.Parallel()
	q, err := parser.ParseSQL("SELECT * FROM users WHERE active = true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := visitors.Serialize(q)

	result, err := New().TransformSelect(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == q {
		t.Fatal("expected a new query")
	}
	if got := visitors.Serialize(q); got != before {
		t.Errorf("input modified:\n  before: %s\n  after:  %s", before, got)
	}
	if q.Wheres[0].Connector != nodes.NoConnector {
		t.Error("expected original predicate connector unchanged")
	}
}

func TestNoMatchReturnsInput(t *testing.T) {
	t.Parallel()
	q, err := parser.ParseSQL("SELECT * FROM users WHERE a = 1 OR b = 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := New(WithTables("posts")).TransformSelect(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != q {
		t.Error("expected input returned when no table matches")
	}
}

func TestDisjunctionRejected(t *testing.T) {
	t.Parallel()
	q, err := parser.ParseSQL("SELECT * FROM users WHERE a = 1 OR b = 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = New().TransformSelect(q)
	if !errors.Is(err, ErrDisjunction) {
		t.Fatalf("expected ErrDisjunction, got %v", err)
	}
}

func TestComposesThroughApply(t *testing.T) {
	t.Parallel()
	q, err := parser.ParseSQL("SELECT * FROM users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := plugins.Apply(q, New(), New(WithColumn("purged_at")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT * FROM users WHERE users.deleted_at IS NULL AND users.purged_at IS NULL"
	if got := visitors.Serialize(result); got != want {
		t.Errorf("expected:\n  %s\ngot:\n  %s", want, got)
	}
}
