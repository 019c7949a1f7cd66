package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bawdo/selql/plugins"
	"github.com/bawdo/selql/plugins/softdelete"
)

// configureSoftdelete parses softdelete arguments and registers the plugin.
//
//	plugin softdelete
//	plugin softdelete removed_at
//	plugin softdelete removed_at on users posts
//	plugin softdelete users.deleted_at, posts.removed_at
func configureSoftdelete(s *Session, args string) error {
	var opts []softdelete.Option
	var status string
	lower := strings.ToLower(args)

	switch {
	case strings.Contains(args, "."):
		var pairs []string
		for _, pair := range strings.Split(args, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			table, col, ok := strings.Cut(pair, ".")
			if !ok || table == "" || col == "" {
				return fmt.Errorf("invalid table.column pair: %q", pair)
			}
			opts = append(opts, softdelete.WithTableColumn(table, col))
			pairs = append(pairs, table+"."+col)
		}
		sort.Strings(pairs)
		status = strings.Join(pairs, ", ")

	case strings.Contains(lower, " on "):
		idx := strings.Index(lower, " on ")
		col := strings.TrimSpace(args[:idx])
		tables := strings.Fields(args[idx+len(" on "):])
		if col == "" || len(tables) == 0 {
			return errors.New("usage: plugin softdelete <column> on <table1> [table2 ...]")
		}
		opts = append(opts, softdelete.WithColumn(col), softdelete.WithTables(tables...))
		status = fmt.Sprintf("column: %s, tables: %s", col, strings.Join(tables, ", "))

	case args != "":
		col := strings.Fields(args)[0]
		opts = append(opts, softdelete.WithColumn(col))
		status = "column: " + col

	default:
		status = "column: deleted_at"
	}

	s.plugins.enable(pluginEntry{
		name:    "softdelete",
		factory: func() plugins.Transformer { return softdelete.New(opts...) },
		status:  func() string { return status },
		color:   "#CC6666",
	})
	_, _ = fmt.Fprintf(s.out, "  Soft-delete enabled (%s)\n", status)
	return nil
}
