package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bawdo/selql/internal/logging"
	"github.com/bawdo/selql/internal/scan"
	"github.com/bawdo/selql/nodes"
	"github.com/bawdo/selql/parser"
	"github.com/bawdo/selql/plugins"
	"github.com/bawdo/selql/visitors"
)

var (
	errNoQuery      = errors.New("no query yet (enter a SELECT statement first)")
	errNotConnected = errors.New("not connected (use 'connect <dsn>' first)")
)

// maxNesting caps sub-query depth for statements typed into the REPL.
const maxNesting = 64

const defaultTimeout = 30 * time.Second

// Session holds the REPL state: the last parsed statement, the engine used
// for dialect rendering and execution, enabled plugins and the database
// connection.
type Session struct {
	engine      string
	format      bool
	timeout     time.Duration
	parser      *parser.Parser
	query       *nodes.SelectQuery
	pending     []string           // lines of an unfinished statement
	plugins     pluginRegistry     // enabled plugins
	configurers []pluginConfigurer // all known plugins
	commands    []commandEntry     // command registry (sorted by prefix length desc)
	conn        *dbConn            // nil when disconnected
	lastDSN     string             // remembers the previous DSN for reconnect
	out         io.Writer          // destination for REPL output (default os.Stdout)
	log         *slog.Logger
}

// NewSession creates a session rendering for the given engine. A nil log
// discards log records.
func NewSession(engine string, log *slog.Logger) *Session {
	if log == nil {
		log = logging.Discard()
	}
	s := &Session{
		timeout: defaultTimeout,
		parser:  parser.New(parser.WithMaxDepth(maxNesting)),
		out:     os.Stdout,
		log:     log,
	}
	s.configurers = []pluginConfigurer{
		{name: "softdelete", configure: configureSoftdelete},
	}
	s.setEngine(engine)
	s.initCommands()
	return s
}

// pluginNames returns the names of all known plugins (for tab completion).
func (s *Session) pluginNames() []string {
	names := make([]string, len(s.configurers))
	for i, c := range s.configurers {
		names[i] = c.name
	}
	return names
}

func (s *Session) setEngine(engine string) {
	if !isValidEngine(engine) {
		s.log.Warn("unknown engine, using postgres", "engine", engine)
		engine = "postgres"
	}
	s.engine = engine
}

func isValidEngine(engine string) bool {
	_, ok := driverName[engine]
	return ok
}

// dialect returns the visitor for the session's engine, wrapped in the
// formatter when formatting is on.
func (s *Session) dialect() nodes.Visitor {
	var v nodes.Visitor
	switch s.engine {
	case "mysql":
		v = visitors.NewMySQLVisitor()
	case "sqlite":
		v = visitors.NewSQLiteVisitor()
	default:
		v = visitors.NewPostgresVisitor()
	}
	return s.wrap(v)
}

func (s *Session) wrap(v nodes.Visitor) nodes.Visitor {
	if s.format {
		return visitors.NewFormattingVisitor(v)
	}
	return v
}

// Close releases the database connection, if any.
func (s *Session) Close() {
	if s.conn != nil {
		_ = s.conn.close()
		s.conn = nil
	}
}

// Pending reports whether part of a statement is buffered.
func (s *Session) Pending() bool {
	return len(s.pending) > 0
}

// Feed consumes one line of input. A line typed while nothing is buffered
// is a command unless it starts a statement. Statement lines are buffered
// until one ends with ';' or a blank line follows them.
func (s *Session) Feed(line string) error {
	trimmed := strings.TrimSpace(line)
	if !s.Pending() {
		if trimmed == "" {
			return nil
		}
		if !startsStatement(trimmed) {
			return s.Execute(trimmed)
		}
	}
	if trimmed == "" {
		return s.flush()
	}
	s.pending = append(s.pending, line)
	if strings.HasSuffix(trimmed, ";") {
		return s.flush()
	}
	return nil
}

func (s *Session) flush() error {
	text := strings.Join(s.pending, "\n")
	s.pending = nil
	return s.Statement(text)
}

func startsStatement(line string) bool {
	return scan.StartsWithWord(line, "SELECT") ||
		strings.HasPrefix(line, "--") ||
		strings.HasPrefix(line, "/*")
}

// Statement parses a SELECT statement, makes it the current query and
// prints its canonical form followed by any diagnostics.
func (s *Session) Statement(text string) error {
	q, err := s.parser.ParseSQL(text)
	if err != nil {
		return err
	}
	s.query = q
	s.log.Debug("parsed statement",
		"projections", len(q.Projections),
		"sources", len(q.Sources),
		"joins", len(q.Joins),
		"predicates", len(q.Wheres))

	out, err := s.render(s.wrap(visitors.NewCanonicalVisitor()))
	if err != nil {
		return err
	}
	s.printSQL(out)
	for _, problem := range parser.Validate(q) {
		_, _ = fmt.Fprintf(s.out, "  Warning: %s\n", problem)
	}
	return nil
}

// transformed returns the current query with every enabled plugin applied.
// The stored query itself is never modified.
func (s *Session) transformed() (*nodes.SelectQuery, error) {
	if s.query == nil {
		return nil, errNoQuery
	}
	return plugins.Apply(s.query, s.plugins.transformers()...)
}

func (s *Session) render(v nodes.Visitor) (string, error) {
	q, err := s.transformed()
	if err != nil {
		return "", err
	}
	return q.Accept(v), nil
}

func (s *Session) printSQL(sql string) {
	_, _ = fmt.Fprintf(s.out, "  %s;\n", strings.ReplaceAll(sql, "\n", "\n  "))
}

// Execute runs a single REPL command.
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	lower := strings.ToLower(line)

	for _, cmd := range s.commands {
		if strings.HasSuffix(cmd.prefix, " ") {
			if strings.HasPrefix(lower, cmd.prefix) {
				return cmd.handler(strings.TrimSpace(line[len(cmd.prefix):]))
			}
		} else if lower == cmd.prefix {
			return cmd.handler("")
		}
	}

	word := strings.Fields(line)[0]
	return fmt.Errorf("unknown command: %s (type 'help' for commands)", word)
}

// --- Command handlers ---

func (s *Session) cmdSQL() error {
	out, err := s.render(s.dialect())
	if err != nil {
		return err
	}
	s.printSQL(out)
	return nil
}

func (s *Session) cmdEngine(args string) error {
	name := strings.ToLower(args)
	if !isValidEngine(name) {
		return fmt.Errorf("unknown engine %q (choose: postgres, mysql, sqlite)", name)
	}
	s.setEngine(name)
	_, _ = fmt.Fprintf(s.out, "  Engine set to %s\n", s.engine)
	return nil
}

func (s *Session) cmdFormat(args string) error {
	switch strings.ToLower(args) {
	case "on":
		s.format = true
	case "off":
		s.format = false
	default:
		return errors.New("usage: format on|off")
	}
	_, _ = fmt.Fprintf(s.out, "  Formatting %s\n", strings.ToLower(args))
	return nil
}

// cmdPlugin enables a plugin by name, or disables plugins with "off".
func (s *Session) cmdPlugin(args string) error {
	parts := strings.Fields(args)
	if len(parts) == 0 {
		return errors.New("usage: plugin <name> [args] | plugin off [name]")
	}
	name := strings.ToLower(parts[0])
	if name == "off" {
		return s.cmdPluginOff(parts[1:])
	}
	for _, c := range s.configurers {
		if c.name == name {
			return c.configure(s, strings.TrimSpace(args[len(parts[0]):]))
		}
	}
	return fmt.Errorf("unknown plugin: %s", name)
}

func (s *Session) cmdPluginOff(parts []string) error {
	if len(parts) == 0 {
		s.plugins.reset()
		_, _ = fmt.Fprintln(s.out, "  All plugins disabled")
		return nil
	}
	name := strings.ToLower(parts[0])
	if !s.plugins.disable(name) {
		return fmt.Errorf("plugin %q is not enabled", name)
	}
	_, _ = fmt.Fprintf(s.out, "  %s disabled\n", name)
	return nil
}

func (s *Session) cmdPlugins() {
	_, _ = fmt.Fprintln(s.out, "  Available plugins:")
	for _, c := range s.configurers {
		if entry, ok := s.plugins.lookup(c.name); ok {
			_, _ = fmt.Fprintf(s.out, "    %-14s on   (%s)\n", c.name, entry.status())
		} else {
			_, _ = fmt.Fprintf(s.out, "    %-14s off\n", c.name)
		}
	}
}

func (s *Session) deadline() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// cmdConnect connects to dsn, or reconnects to the previous DSN when none
// is given.
func (s *Session) cmdConnect(dsn string) error {
	if s.conn != nil {
		return fmt.Errorf("already connected to %s (use 'disconnect' first)", sanitizeDSN(s.conn.dsn))
	}
	if dsn == "" {
		if s.lastDSN == "" {
			return errors.New("usage: connect <dsn>")
		}
		dsn = s.lastDSN
	}

	ctx, cancel := s.deadline()
	defer cancel()
	conn, err := connect(ctx, s.engine, dsn, s.log)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	s.conn = conn
	s.lastDSN = dsn
	_, _ = fmt.Fprintf(s.out, "  Connected to %s (%s)\n", sanitizeDSN(dsn), s.engine)
	return nil
}

func (s *Session) cmdDisconnect() error {
	if s.conn == nil {
		return errNotConnected
	}
	dsn := sanitizeDSN(s.conn.dsn)
	if err := s.conn.close(); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	s.conn = nil
	_, _ = fmt.Fprintf(s.out, "  Disconnected from %s\n", dsn)
	return nil
}

// executable renders the current query for the connected engine. Output is
// always single-line so that it can be sent as is.
func (s *Session) executable() (string, error) {
	if s.conn == nil {
		return "", errNotConnected
	}
	if s.conn.engine != s.engine {
		_, _ = fmt.Fprintf(s.out, "  Warning: connected to %s but engine is set to %s\n", s.conn.engine, s.engine)
	}
	format := s.format
	s.format = false
	defer func() { s.format = format }()
	return s.render(s.dialect())
}

// cmdRun executes the current query against the connected database.
func (s *Session) cmdRun() error {
	stmt, err := s.executable()
	if err != nil {
		return err
	}
	s.printSQL(stmt)

	ctx, cancel := s.deadline()
	defer cancel()
	result, err := s.conn.query(ctx, stmt)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, result)
	return nil
}

// cmdExplain prints the database's plan for the current query.
func (s *Session) cmdExplain() error {
	stmt, err := s.executable()
	if err != nil {
		return err
	}
	ctx, cancel := s.deadline()
	defer cancel()
	result, err := s.conn.explain(ctx, stmt)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, result)
	return nil
}

// cmdAST displays a summary of the current query tree, one clause per line.
func (s *Session) cmdAST() error {
	q, err := s.transformed()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  Engine: %s\n", s.engine)
	s.printASTSelect(q)
	s.printASTSources(q)
	s.printASTJoins(q)
	s.printASTConditions("WHERE: ", q.Wheres)
	s.printASTGroups(q)
	s.printASTConditions("HAVING:", q.Havings)
	s.printASTOrders(q)
	s.printASTLimitOffset(q)
	if n := countSubqueries(q); n > 0 {
		_, _ = fmt.Fprintf(s.out, "  SUBQUERIES: %d\n", n)
	}
	s.printASTFooter()
	return nil
}

// cmdDot exports the current query as a Graphviz DOT file, with the
// predicates added by each plugin grouped in a cluster.
func (s *Session) cmdDot(path string) error {
	if path == "" {
		return errors.New("usage: dot <filepath>")
	}
	if s.query == nil {
		return errNoQuery
	}

	q, prov, err := s.plugins.traced(s.query)
	if err != nil {
		return err
	}

	dv := visitors.NewDotVisitor()
	dv.SetProvenance(prov)
	q.Accept(dv)

	if err = os.WriteFile(path, []byte(dv.ToDot()), 0o600); err != nil {
		return fmt.Errorf("failed to write DOT file: %w", err)
	}
	_, _ = fmt.Fprintf(s.out, "  Wrote DOT to %s\n", path)
	return nil
}

// cmdTables lists every table the current query reads, sub-queries
// included, and the tables of the connected database.
func (s *Session) cmdTables() error {
	if s.query == nil && s.conn == nil {
		return errNoQuery
	}
	if s.query != nil {
		refs := plugins.CollectAllTables(s.query)
		if len(refs) == 0 {
			_, _ = fmt.Fprintln(s.out, "  No tables referenced")
		}
		for _, ref := range refs {
			indent := strings.Repeat("  ", ref.Depth)
			_, _ = fmt.Fprintf(s.out, "  %stable: %s\n", indent, visitors.Serialize(ref.Table))
		}
	}
	if s.conn != nil {
		_, _ = fmt.Fprintf(s.out, "  Database tables: %s\n", strings.Join(s.conn.tables, ", "))
	}
	return nil
}

func (s *Session) cmdHelp() {
	_, _ = fmt.Fprintln(s.out, `
  Statements:
    SELECT ...;               Parse a statement and print its canonical form.
                              Statements may span lines; end with ';' or a
                              blank line.

  Display:
    sql                       Print the current query in the engine's dialect
    ast                       Summarise the current query tree
    dot <path>                Write the query tree as a Graphviz DOT file
    tables                    List tables read by the query (and the database)
    format on|off             Toggle multi-line output

  Engine:
    engine <name>             Set dialect: postgres, mysql, sqlite

  Plugins:
    plugin softdelete         Append <table>.deleted_at IS NULL per table
    plugin softdelete <col>   Use a custom column
    plugin softdelete <col> on <t1> [t2 ...]
    plugin softdelete t1.col, t2.col
    plugin off [name]         Disable one or all plugins
    plugins                   Show plugin status

  Database:
    connect <dsn>             Connect (no DSN: reconnect to the last one)
    disconnect                Close the connection
    run                       Execute the current query
    explain                   Show the database's plan for the current query

    help                      Show this help
    exit | quit               Leave the REPL`)
}
