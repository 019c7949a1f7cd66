package main

import (
	"sort"
	"strings"
)

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextNone       completionContext = iota // nothing to offer
	contextCommand                             // start of line or partial command
	contextEngine                              // after engine
	contextPlugin                              // after plugin
	contextPluginOff                           // after plugin off
	contextFormat                              // after format
	contextStatement                           // inside a SELECT statement
)

var engineNames = []string{"mysql", "postgres", "sqlite"}
var formatModes = []string{"off", "on"}

var keywords = []string{
	"AND", "AS", "ASC", "BETWEEN", "BY", "CROSS JOIN", "DESC", "DISTINCT",
	"FROM", "FULL JOIN", "GROUP BY", "HAVING", "IN", "INNER JOIN", "IS NOT NULL",
	"IS NULL", "JOIN", "LEFT JOIN", "LIKE", "LIMIT", "NOT", "NULLS FIRST",
	"NULLS LAST", "OFFSET", "ON", "OR", "ORDER BY", "RIGHT JOIN", "SELECT", "WHERE",
}

var functionNames = []string{"AVG(", "COUNT(", "COUNT(DISTINCT ", "MAX(", "MIN(", "SUM("}

// replCompleter implements readline's AutoCompleter interface.
type replCompleter struct {
	sess *Session
}

// Do returns completion candidates for the current line/cursor position.
// length is the number of chars from end of line[:pos] that form the prefix being completed.
// newLine contains the suffixes to append for each candidate.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	ctx, prefix := c.parseContext(lineStr)

	var candidates []string
	switch ctx {
	case contextCommand:
		// A statement is started by typing its first keyword.
		candidates = filterPrefix(append(c.sess.commandNames(), "select"), prefix)
	case contextEngine:
		candidates = filterPrefix(engineNames, prefix)
	case contextPlugin:
		candidates = filterPrefix(append([]string{"off"}, c.sess.pluginNames()...), prefix)
	case contextPluginOff:
		candidates = filterPrefix(c.sess.plugins.names(), prefix)
	case contextFormat:
		candidates = filterPrefix(formatModes, prefix)
	case contextStatement:
		candidates = c.completeStatement(prefix)
	}

	for _, cand := range candidates {
		suffix := cand[len(prefix):]
		if !strings.HasSuffix(cand, "(") && !strings.HasSuffix(cand, " ") {
			suffix += " "
		}
		newLine = append(newLine, []rune(suffix))
	}
	length = len([]rune(prefix))
	return
}

// parseContext examines the line up to cursor and determines what kind of
// completion is needed and the current prefix being typed.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	trimmed := strings.TrimLeft(line, " \t")
	if c.sess.Pending() || startsStatement(trimmed) {
		return contextStatement, lastToken(line)
	}
	lower := strings.ToLower(trimmed)
	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") {
			continue // exact-match commands have no arg completion
		}
		if strings.HasPrefix(lower, cmd.prefix) {
			if cmd.completer == nil {
				return contextNone, ""
			}
			return cmd.completer(trimmed[len(cmd.prefix):])
		}
	}

	return contextCommand, strings.TrimSpace(line)
}

// completeStatement offers keywords, aggregate functions and the connected
// database's tables.
func (c *replCompleter) completeStatement(prefix string) []string {
	var names []string
	if c.sess.conn != nil {
		names = append(names, c.sess.conn.tables...)
	}
	names = dedup(names)
	sort.Strings(names)

	candidates := filterPrefix(names, prefix)
	for _, kw := range filterPrefix(keywords, prefix) {
		candidates = append(candidates, matchCase(kw, prefix))
	}
	for _, fn := range filterPrefix(functionNames, prefix) {
		candidates = append(candidates, matchCase(fn, prefix))
	}
	return candidates
}

// matchCase lowercases a keyword when the user is typing in lowercase.
func matchCase(word, prefix string) string {
	if prefix != "" && prefix == strings.ToLower(prefix) {
		return strings.ToLower(word)
	}
	return word
}

// filterPrefix returns items that start with prefix (case-insensitive).
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		result := make([]string, len(items))
		copy(result, items)
		return result
	}
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}

// dedup removes duplicate strings.
func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	var result []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

// lastToken returns the text after the last space, tab, comma or open
// paren.
func lastToken(s string) string {
	if i := strings.LastIndexAny(s, " \t,("); i >= 0 {
		return s[i+1:]
	}
	return s
}
