package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var driverName = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

// explainPrefix is prepended to a rendered statement by the explain command.
var explainPrefix = map[string]string{
	"postgres": "EXPLAIN ",
	"mysql":    "EXPLAIN ",
	"sqlite":   "EXPLAIN QUERY PLAN ",
}

const maxRows = 1000

// dbConn is an open database handle plus the table names found on it.
type dbConn struct {
	db     *sql.DB
	dsn    string
	engine string
	tables []string
}

func connect(ctx context.Context, engine, dsn string, log *slog.Logger) (*dbConn, error) {
	driver, ok := driverName[engine]
	if !ok {
		return nil, fmt.Errorf("no driver for engine %q", engine)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if engine == "sqlite" {
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	conn := &dbConn{db: db, dsn: dsn, engine: engine}
	if err := conn.loadTables(ctx); err != nil {
		log.Warn("schema introspection failed", "engine", engine, "err", err)
	}
	log.Debug("connected", "engine", engine, "dsn", sanitizeDSN(dsn), "tables", len(conn.tables))
	return conn, nil
}

func (c *dbConn) close() error {
	return c.db.Close()
}

// query runs a statement and renders its rows as a text table.
func (c *dbConn) query(ctx context.Context, stmt string) (string, error) {
	rows, err := c.db.QueryContext(ctx, stmt)
	if err != nil {
		return "", fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return formatRows(rows)
}

// explain runs the engine's EXPLAIN form of stmt.
func (c *dbConn) explain(ctx context.Context, stmt string) (string, error) {
	return c.query(ctx, explainPrefix[c.engine]+stmt)
}

func formatRows(rows *sql.Rows) (string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("columns: %w", err)
	}

	var data [][]string
	truncated := false
	for rows.Next() {
		if len(data) >= maxRows {
			truncated = true
			break
		}
		cells := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return "", fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(columns))
		for i, cell := range cells {
			row[i] = "NULL"
			if cell.Valid {
				row[i] = cell.String
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("rows: %w", err)
	}

	out := formatTable(columns, data)
	if truncated {
		out += fmt.Sprintf("(truncated at %d rows)\n", maxRows)
	}
	return out, nil
}

// formatTable lays rows out in a bordered grid followed by a row count.
func formatTable(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	rule := separator(widths)
	writeRow := func(cells []string) {
		b.WriteByte('|')
		for i, cell := range cells {
			fmt.Fprintf(&b, " %-*s |", widths[i], cell)
		}
		b.WriteByte('\n')
	}

	b.WriteString(rule)
	writeRow(columns)
	b.WriteString(rule)
	for _, row := range rows {
		writeRow(row)
	}
	b.WriteString(rule)

	if len(rows) == 1 {
		b.WriteString("(1 row)\n")
	} else {
		fmt.Fprintf(&b, "(%d rows)\n", len(rows))
	}
	return b.String()
}

func separator(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

func (c *dbConn) loadTables(ctx context.Context) error {
	var stmt string
	switch c.engine {
	case "postgres":
		stmt = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	case "mysql":
		stmt = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name"
	case "sqlite":
		stmt = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return fmt.Errorf("unsupported engine: %s", c.engine)
	}
	rows, err := c.db.QueryContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	c.tables = tables
	return nil
}

// sanitizeDSN masks the password of a URL-style or MySQL-style DSN.
func sanitizeDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, hasPass := u.User.Password(); !hasPass {
			return dsn
		}
		masked := u.Scheme + "://" + u.User.Username() + ":****@" + u.Host + u.Path
		if u.RawQuery != "" {
			masked += "?" + u.RawQuery
		}
		return masked
	}

	// user:pass@tcp(host)/db
	if at := strings.Index(dsn, "@"); at > 0 {
		if colon := strings.Index(dsn[:at], ":"); colon >= 0 {
			return dsn[:colon+1] + "****" + dsn[at:]
		}
	}
	return dsn
}
