package main

import (
	"errors"
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/nagi/internal/ebnf/grammar"
	"github.com/dekarrin/nagi/internal/ebnf/lex"
	"github.com/dekarrin/nagi/internal/nagilang"
)

// renderTokens lays out a shaped token stream as a table: index, kind, and
// the token's own text, the same way the teacher's parse tables are laid
// out with rosed.InsertTableOpts instead of one fmt.Println per row.
func renderTokens(tokens []lex.Token) string {
	data := [][]string{{"#", "kind", "token"}}
	for i, tok := range tokens {
		data = append(data, []string{fmt.Sprintf("%d", i), tok.Kind.String(), tok.String()})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// renderAST lays out an assembled nagilang.Node as a field/value table.
// Only the fields relevant to the node's Kind are populated, so the other
// rows are blank (or 0 for the numeric ones) — that's expected, not an
// error.
func renderAST(node nagilang.Node) string {
	data := [][]string{
		{"field", "value"},
		{"kind", nodeKindName(node.Kind)},
		{"ident", node.Ident},
		{"int", fmt.Sprintf("%d", node.Int)},
		{"float", fmt.Sprintf("%g", node.Float)},
		{"suffix", node.Suffix},
		{"op", node.Op},
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 60, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func nodeKindName(k nagilang.NodeKind) string {
	switch k {
	case nagilang.NodeNone:
		return "none"
	case nagilang.NodeIdentifier:
		return "identifier"
	case nagilang.NodeIntLiteral:
		return "int_literal"
	case nagilang.NodeFloatLiteral:
		return "float_literal"
	case nagilang.NodeOperator:
		return "operator"
	case nagilang.NodeProgram:
		return "program"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// formatSourceError renders err against src, wrapping and indenting the
// offending source line with a caret under the byte offset at fault, the
// way the teacher uses rosed to lay out diagnostic text blocks instead of
// hand-rolled string padding. Errors that carry no byte offset (a bare
// NoMatchError, for instance) fall back to their plain Error() text.
func formatSourceError(src []byte, err error) string {
	offset, ok := sourceOffset(err)
	if !ok {
		return err.Error()
	}

	line, col, lineText := lineAndColumn(src, offset)
	caret := ""
	for i := 0; i < col; i++ {
		caret += " "
	}
	caret += "^"

	body := fmt.Sprintf("line %d, col %d: %s\n\n%s\n%s", line, col+1, err.Error(), lineText, caret)

	return rosed.
		Edit(body).
		Wrap(100).
		String()
}

// sourceOffset extracts the byte offset a known error type is positioned
// at, if any.
func sourceOffset(err error) (int, bool) {
	var invalidChar *lex.InvalidCharacterError
	if errors.As(err, &invalidChar) {
		return invalidChar.Offset, true
	}
	var unusableChar *lex.UnusableCharacterError
	if errors.As(err, &unusableChar) {
		return unusableChar.Offset, true
	}
	var unusableSpace *lex.UnusableWhitespaceError
	if errors.As(err, &unusableSpace) {
		return unusableSpace.Offset, true
	}
	var cannotConvert *lex.CannotConvertTextToNumbersError
	if errors.As(err, &cannotConvert) {
		return cannotConvert.Offset, true
	}
	var unexpectedTok *lex.UnexpectedTokenError
	if errors.As(err, &unexpectedTok) {
		return unexpectedTok.Offset, true
	}
	var unmatchedTok *lex.UnmatchedTokenError
	if errors.As(err, &unmatchedTok) {
		return unmatchedTok.Offset, true
	}
	var grammarParse *grammar.ParseError
	if errors.As(err, &grammarParse) {
		return grammarParse.Offset, true
	}
	return 0, false
}

// lineAndColumn converts a byte offset into a 1-indexed line number, a
// 0-indexed column, and the text of that line.
func lineAndColumn(src []byte, offset int) (line, col int, lineText string) {
	line = 1
	lineStart := 0
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	lineEnd := lineStart
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}

	col = offset - lineStart
	return line, col, string(src[lineStart:lineEnd])
}
