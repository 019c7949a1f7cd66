package parser

import (
	"strings"

	"github.com/bawdo/selql/internal/scan"
	"github.com/bawdo/selql/nodes"
)

// joinMatch is one JOIN keyword found in a join section.
type joinMatch struct {
	keyword    string
	start, end int
}

func (a *assembler) joins(text string) ([]*nodes.JoinNode, error) {
	matches := findJoinKeywords(text)
	var out []*nodes.JoinNode
	for k, m := range matches {
		end := len(text)
		if k+1 < len(matches) {
			end = matches[k+1].start
		}
		j, err := a.join(m.keyword, strings.TrimSpace(text[m.end:end]))
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

// findJoinKeywords locates top-level JOIN keywords, longest form first.
func findJoinKeywords(text string) []joinMatch {
	var out []joinMatch
	var st scan.State
	for i := 0; i < len(text); i++ {
		st = st.Next(text[i])
		if !st.TopLevel() {
			continue
		}
		if kw, end, ok := matchKeyword(text, i, joinKeywords); ok {
			out = append(out, joinMatch{keyword: kw, start: i, end: end})
			i = end - 1
		}
	}
	return out
}

func joinType(keyword string) nodes.JoinType {
	switch {
	case strings.Contains(keyword, "LEFT"):
		return nodes.LeftJoin
	case strings.Contains(keyword, "RIGHT"):
		return nodes.RightJoin
	case strings.Contains(keyword, "FULL"):
		return nodes.FullJoin
	case strings.Contains(keyword, "CROSS"):
		return nodes.CrossJoin
	default:
		return nodes.InnerJoin
	}
}

// join parses "<source> [ON <conditions>]".
func (a *assembler) join(keyword, text string) (*nodes.JoinNode, error) {
	srcText, condText := text, ""
	if idx := scan.FindKeyword(text, "ON"); idx >= 0 {
		srcText, condText = text[:idx], text[idx+len("ON"):]
	}
	src, err := a.source(srcText)
	if err != nil {
		return nil, err
	}
	return &nodes.JoinNode{
		Type:       joinType(keyword),
		Source:     src,
		Conditions: joinConditions(condText),
	}, nil
}

func joinConditions(text string) []*nodes.JoinCondition {
	var out []*nodes.JoinCondition
	for _, seg := range scan.SplitLogical(strings.TrimSpace(text)) {
		cond := &nodes.JoinCondition{Connector: seg.Connector}
		op, symbol, idx := scan.FindComparison(seg.Text)
		cond.Op = op
		if idx < 0 {
			cond.Left = column(seg.Text)
			out = append(out, cond)
			continue
		}
		cond.Left = column(seg.Text[:idx])
		if right := strings.TrimSpace(seg.Text[idx+len(symbol):]); right != "" {
			if scan.IsColumnReference(right) {
				cond.Right = column(right)
			} else {
				cond.Right = nodes.Literal(right)
			}
		}
		out = append(out, cond)
	}
	return out
}
