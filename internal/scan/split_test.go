package scan

import (
	"reflect"
	"testing"

	"github.com/bawdo/selql/nodes"
)

func TestSplitByComma(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "a, b, c", []string{"a", " b", " c"}},
		{"nested", "COUNT(a, b), c", []string{"COUNT(a, b)", " c"}},
		{"quoted", "'a,b', c", []string{"'a,b'", " c"}},
		{"single", "a", []string{"a"}},
		{"trailing", "a,", []string{"a"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SplitByComma(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitByComma(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLogical(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "single",
			in:   "a = 1",
			want: []Segment{{Text: "a = 1"}},
		},
		{
			name: "and or",
			in:   "a = 1 AND b = 2 or c = 3",
			want: []Segment{{"a = 1", nodes.And}, {"b = 2", nodes.Or}, {"c = 3", nodes.NoConnector}},
		},
		{
			name: "between keeps its and",
			in:   "age BETWEEN 18 AND 65 AND status = 'active'",
			want: []Segment{{"age BETWEEN 18 AND 65", nodes.And}, {"status = 'active'", nodes.NoConnector}},
		},
		{
			name: "two betweens",
			in:   "a BETWEEN 1 AND 2 OR b BETWEEN 3 AND 4",
			want: []Segment{{"a BETWEEN 1 AND 2", nodes.Or}, {"b BETWEEN 3 AND 4", nodes.NoConnector}},
		},
		{
			name: "nested and stays",
			in:   "(a = 1 AND b = 2) OR c = 3",
			want: []Segment{{"(a = 1 AND b = 2)", nodes.Or}, {"c = 3", nodes.NoConnector}},
		},
		{
			name: "quoted and stays",
			in:   "name = 'Tom AND Jerry'",
			want: []Segment{{"name = 'Tom AND Jerry'", nodes.NoConnector}},
		},
		{
			name: "word containing or",
			in:   "brand = 1 AND color = 2",
			want: []Segment{{"brand = 1", nodes.And}, {"color = 2", nodes.NoConnector}},
		},
		{
			name: "connector before paren",
			in:   "a = 1 AND(b = 2)",
			want: []Segment{{"a = 1", nodes.And}, {"(b = 2)", nodes.NoConnector}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SplitLogical(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLogical(%q) =\n  %+v\nwant\n  %+v", tt.in, got, tt.want)
			}
		})
	}
}
