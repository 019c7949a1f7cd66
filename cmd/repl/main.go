// REPL binary for parsing SELECT statements and inspecting, rewriting and
// executing them.
//
// Configuration (flags, or the env vars shown):
//
//	--engine=postgres|mysql|sqlite   SELQL_ENGINE
//	--dsn=<dsn>                      DATABASE_URL (auto-connects if set)
//	--format                         SELQL_FORMAT
//	--log-level=debug|info|warn|error SELQL_LOG_LEVEL
//	--timeout=30s                    SELQL_TIMEOUT
//
// Usage:
//
//	go run ./cmd/repl
//	go run ./cmd/repl "select a from t where x = 1"
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ergochat/readline"

	"github.com/bawdo/selql/internal/logging"
)

// CLI is the command-line configuration.
type CLI struct {
	Engine   string        `help:"SQL dialect and database engine." enum:"postgres,mysql,sqlite" default:"postgres" env:"SELQL_ENGINE"`
	DSN      string        `name:"dsn" help:"Database to connect to on start." env:"DATABASE_URL"`
	Format   bool          `help:"Print multi-line SQL." env:"SELQL_FORMAT"`
	LogLevel string        `help:"Log level." enum:"debug,info,warn,error" default:"warn" env:"SELQL_LOG_LEVEL"`
	Timeout  time.Duration `help:"Timeout for database operations." default:"30s" env:"SELQL_TIMEOUT"`

	SQL string `arg:"" optional:"" help:"Statement to canonicalize; starts the interactive prompt when omitted."`
}

func newCLIParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("selql"),
		kong.Description("Parse, canonicalize and run SQL SELECT statements"),
		kong.UsageOnError(),
	)
}

func main() {
	var cli CLI
	kp, err := newCLIParser(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selql: %v\n", err)
		os.Exit(2)
	}
	_, err = kp.Parse(os.Args[1:])
	kp.FatalIfErrorf(err)

	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selql: %v\n", err)
		os.Exit(2)
	}
	os.Exit(run(&cli, logging.New(os.Stderr, level)))
}

// run starts a session from the configuration and returns the exit status.
func run(cli *CLI, log *slog.Logger) int {
	sess := NewSession(cli.Engine, log)
	defer sess.Close()
	sess.format = cli.Format
	if cli.Timeout > 0 {
		sess.timeout = cli.Timeout
	}
	log.Debug("configuration",
		"engine", sess.engine,
		"format", sess.format,
		"timeout", sess.timeout,
		"dsn", sanitizeDSN(cli.DSN))

	if cli.SQL != "" {
		return oneShot(sess, cli.SQL, cli.DSN, os.Stderr)
	}
	return interactive(sess, cli.DSN, log)
}

// oneShot prints the canonical form of sql and, when a DSN is given, runs
// it. Any error is reported on stderr and yields exit status 1.
func oneShot(sess *Session, sql, dsn string, stderr io.Writer) int {
	if err := sess.Statement(sql); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if dsn == "" {
		return 0
	}
	if err := sess.cmdConnect(dsn); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := sess.cmdRun(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

const (
	prompt             = "selql> "
	continuationPrompt = "  ...> "
)

func interactive(sess *Session, dsn string, log *slog.Logger) int {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyPath(log),
		HistoryLimit:    500,
		AutoComplete:    &replCompleter{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Error("readline init failed", "err", err)
		return 1
	}
	defer func() { _ = rl.Close() }()

	if dsn != "" {
		if err := sess.cmdConnect(dsn); err != nil {
			log.Warn("DATABASE_URL connect failed", "dsn", sanitizeDSN(dsn), "err", err)
		}
	}

	fmt.Println("selql: type a SELECT statement ending in ';', 'help' for commands, 'exit' to quit")
	fmt.Println()

	for {
		if sess.Pending() {
			rl.SetPrompt(continuationPrompt)
		} else {
			rl.SetPrompt(prompt)
		}
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			sess.pending = nil
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error("read failed", "err", err)
			}
			break
		}
		if !sess.Pending() {
			lower := strings.ToLower(strings.TrimSpace(line))
			if lower == "exit" || lower == "quit" {
				break
			}
		}
		if err := sess.Feed(line); err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		}
	}
	fmt.Println()
	return 0
}

func historyPath(log *slog.Logger) string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("history disabled", "err", err)
		return ""
	}
	return filepath.Join(home, ".selql_history")
}
