package parser

import (
	"github.com/bawdo/selql/internal/scan"
	"github.com/bawdo/selql/nodes"
)

func (a *assembler) sources(text string) ([]nodes.Node, error) {
	var out []nodes.Node
	for _, part := range nonEmpty(scan.SplitByComma(text)) {
		src, err := a.source(part)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

// source parses one FROM or JOIN source: a derived table when the text is a
// parenthesized SELECT, otherwise a table with an optional schema.
func (a *assembler) source(text string) (nodes.Node, error) {
	exprText, alias := scan.ExtractAlias(text)
	if scan.IsSubquery(exprText) {
		q, err := a.subquery(exprText)
		if err != nil {
			return nil, err
		}
		return &nodes.DerivedTable{Query: q, Alias: alias}, nil
	}
	schema, name := scan.SplitQualified(exprText)
	return &nodes.Table{Name: name, Schema: schema, Alias: alias}, nil
}
