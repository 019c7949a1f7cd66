package main

import (
	"errors"
	"sort"
	"strings"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
	hidden    bool                                          // excluded from commandNames()
}

// initCommands builds the command registry and sorts by prefix length descending.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- display ---
		{prefix: "sql", handler: func(_ string) error { return s.cmdSQL() }},
		{prefix: "ast", handler: func(_ string) error { return s.cmdAST() }},
		{prefix: "dot ", handler: func(a string) error { return s.cmdDot(a) }},
		{prefix: "dot", handler: func(_ string) error { return s.cmdDot("") }},
		{prefix: "tables", handler: func(_ string) error { return s.cmdTables() }},
		{prefix: "format ", handler: func(a string) error { return s.cmdFormat(a) }, completer: completeFormatArgs},
		{prefix: "format", handler: func(_ string) error { return s.cmdFormat("") }},
		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},

		// --- engine / plugins ---
		{prefix: "engine ", handler: func(a string) error { return s.cmdEngine(a) }, completer: completeEngineArgs},
		{prefix: "engine", handler: func(_ string) error { return errors.New("usage: engine postgres|mysql|sqlite") }},
		{prefix: "plugin ", handler: func(a string) error { return s.cmdPlugin(a) }, completer: completePluginArgs},
		{prefix: "plugins", handler: func(_ string) error { s.cmdPlugins(); return nil }},

		// --- database connectivity ---
		{prefix: "connect ", handler: func(a string) error { return s.cmdConnect(a) }},
		{prefix: "connect", handler: func(_ string) error { return s.cmdConnect("") }},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "run", handler: func(_ string) error { return s.cmdRun() }},
		{prefix: "exec", handler: func(_ string) error { return s.cmdRun() }, hidden: true},
		{prefix: "explain", handler: func(_ string) error { return s.cmdExplain() }},
	}

	// Sort by prefix length descending so longest prefixes match first.
	sort.SliceStable(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command name list from the registry for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the REPL loop, not Execute().
	for _, extra := range []string{"exit", "quit"} {
		if !seen[extra] {
			names = append(names, extra)
		}
	}
	sort.Strings(names)
	return names
}

// --- Argument completers ---

func completeEngineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}

func completeFormatArgs(args string) (completionContext, string) {
	return contextFormat, strings.TrimSpace(args)
}

// completePluginArgs completes a plugin name, or an enabled plugin after
// "off".
func completePluginArgs(args string) (completionContext, string) {
	lower := strings.ToLower(args)
	if strings.HasPrefix(lower, "off ") {
		return contextPluginOff, strings.TrimSpace(args[len("off "):])
	}
	if strings.Contains(args, " ") {
		return contextNone, ""
	}
	return contextPlugin, args
}
