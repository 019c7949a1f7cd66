// Package parser splits SQL SELECT text into clause sections and parses the
// sections into a nodes.SelectQuery tree.
//
// Splitting is a single forward scan that tracks quotes, comments and
// parenthesis depth; only keywords found outside quotes and at depth 0 start
// a new section. Sub-queries are parsed by running the same split and parse
// steps again on their text.
package parser

import (
	"strings"

	"github.com/bawdo/selql/internal/scan"
)

// Sections holds the raw text of each clause of a statement. An empty field
// means the clause was absent. Join holds every JOIN clause in input order,
// each prefixed by its keyword.
type Sections struct {
	Select  string
	From    string
	Join    string
	Where   string
	GroupBy string
	Having  string
	OrderBy string
	Limit   string
	Offset  string
}

// joinKeywords lists the JOIN family, longest form first.
var joinKeywords = []string{
	"LEFT OUTER JOIN",
	"RIGHT OUTER JOIN",
	"FULL OUTER JOIN",
	"INNER JOIN",
	"LEFT JOIN",
	"RIGHT JOIN",
	"FULL JOIN",
	"CROSS JOIN",
	"JOIN",
}

// sectionKeywords is the full boundary list. Multi-word forms precede any
// keyword that is a prefix of them.
var sectionKeywords = append(append([]string{}, joinKeywords...),
	"GROUP BY",
	"ORDER BY",
	"SELECT",
	"FROM",
	"WHERE",
	"HAVING",
	"LIMIT",
	"OFFSET",
)

type scanMode int

const (
	modeNormal scanMode = iota
	modeSingleQuote
	modeDoubleQuote
	modeLineComment
	modeBlockComment
)

// boundary is a keyword occurrence in normalized text.
type boundary struct {
	keyword    string
	start, end int
}

// Split normalizes sql and cuts it into clause sections.
//
// It fails with a *SplitError wrapping ErrUnbalancedParentheses,
// ErrUnclosedQuote, ErrUnclosedComment or ErrMissingSection.
func Split(sql string) (*Sections, error) {
	norm, bounds, err := normalize(sql)
	if err != nil {
		return nil, err
	}
	return extract(norm, bounds)
}

// normalize collapses whitespace, drops comments, checks quote and
// parenthesis balance and records top-level keyword positions. Keywords are
// written to the output in upper case with single spaces.
func normalize(sql string) (string, []boundary, error) {
	out := make([]byte, 0, len(sql))
	var bounds []boundary
	mode := modeNormal
	depth := 0

	space := func() {
		if len(out) > 0 && out[len(out)-1] != ' ' {
			out = append(out, ' ')
		}
	}
	next := func(i int) byte {
		if i+1 < len(sql) {
			return sql[i+1]
		}
		return 0
	}

	for i := 0; i < len(sql); {
		c := sql[i]
		switch mode {
		case modeSingleQuote, modeDoubleQuote:
			q := byte('\'')
			if mode == modeDoubleQuote {
				q = '"'
			}
			out = append(out, c)
			if c == q {
				if next(i) == q {
					out = append(out, q)
					i += 2
					continue
				}
				mode = modeNormal
			}
			i++

		case modeLineComment:
			if c == '\n' {
				mode = modeNormal
				space()
			}
			i++

		case modeBlockComment:
			if c == '*' && next(i) == '/' {
				mode = modeNormal
				space()
				i += 2
				continue
			}
			i++

		default:
			switch {
			case c == '-' && next(i) == '-':
				mode = modeLineComment
				i += 2
			case c == '/' && next(i) == '*':
				mode = modeBlockComment
				i += 2
			case c == '\'':
				mode = modeSingleQuote
				out = append(out, c)
				i++
			case c == '"':
				mode = modeDoubleQuote
				out = append(out, c)
				i++
			case scan.IsSpace(c):
				space()
				i++
			case c == '(':
				depth++
				out = append(out, c)
				i++
			case c == ')':
				depth--
				if depth < 0 {
					return "", nil, strayParen(i)
				}
				out = append(out, c)
				i++
			default:
				if depth == 0 {
					if kw, end, ok := matchKeyword(sql, i, sectionKeywords); ok {
						bounds = append(bounds, boundary{keyword: kw, start: len(out), end: len(out) + len(kw)})
						out = append(out, kw...)
						i = end
						continue
					}
				}
				out = append(out, c)
				i++
			}
		}
	}

	switch mode {
	case modeSingleQuote:
		return "", nil, unclosedQuote(SingleQuote)
	case modeDoubleQuote:
		return "", nil, unclosedQuote(DoubleQuote)
	case modeBlockComment:
		return "", nil, &SplitError{Err: ErrUnclosedComment, Position: -1}
	}
	if depth != 0 {
		return "", nil, unclosedParens(depth)
	}
	return string(out), bounds, nil
}

// matchKeyword tries each keyword in order at position i of s and returns
// the first that matches as a whole word, with the index just past it.
func matchKeyword(s string, i int, keywords []string) (string, int, bool) {
	if i > 0 && scan.IsWordByte(s[i-1]) {
		return "", 0, false
	}
	for _, kw := range keywords {
		if end, ok := matchAt(s, i, kw); ok {
			return kw, end, true
		}
	}
	return "", 0, false
}

// matchAt matches kw case-insensitively at i. A space inside kw matches one
// or more whitespace bytes.
func matchAt(s string, i int, kw string) (int, bool) {
	pos := i
	for n, word := range strings.Fields(kw) {
		if n > 0 {
			start := pos
			for pos < len(s) && scan.IsSpace(s[pos]) {
				pos++
			}
			if pos == start {
				return 0, false
			}
		}
		if pos+len(word) > len(s) || !strings.EqualFold(s[pos:pos+len(word)], word) {
			return 0, false
		}
		pos += len(word)
	}
	if pos < len(s) && scan.IsWordByte(s[pos]) {
		return 0, false
	}
	return pos, true
}

func extract(norm string, bounds []boundary) (*Sections, error) {
	sec := &Sections{}
	var joins []string
	for k, b := range bounds {
		end := len(norm)
		if k+1 < len(bounds) {
			end = bounds[k+1].start
		}
		text := cleanSection(norm[b.end:end])
		if text == "" {
			continue
		}
		switch b.keyword {
		case "SELECT":
			sec.Select = text
		case "FROM":
			sec.From = text
		case "WHERE":
			sec.Where = text
		case "GROUP BY":
			sec.GroupBy = text
		case "HAVING":
			sec.Having = text
		case "ORDER BY":
			sec.OrderBy = text
		case "LIMIT":
			sec.Limit = text
		case "OFFSET":
			sec.Offset = text
		default:
			joins = append(joins, b.keyword+" "+text)
		}
	}
	sec.Join = strings.Join(joins, " ")

	if sec.Select == "" {
		return nil, missingSection("SELECT")
	}
	if sec.From == "" {
		return nil, missingSection("FROM")
	}
	return sec, nil
}

// cleanSection trims a section and strips trailing statement terminators.
func cleanSection(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	}
	return s
}
