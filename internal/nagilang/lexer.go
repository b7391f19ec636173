package nagilang

import "github.com/dekarrin/nagi/internal/ebnf/lex"

// Config is the lex.Config nagilang's rule tables assume — exported so
// callers wiring their own tokenize/shape pipeline don't have to rebuild
// it.
func Config() lex.Config {
	return lex.Config{
		Keywords:  Keywords,
		Symbols:   Symbols,
		Operators: Operators,
	}
}

// Lex tokenizes and shapes nagilang source text into a token cursor ready
// for Rules's Engine.
func Lex(src []byte) (*lex.Cursor[lex.Token], error) {
	atoms, err := lex.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return lex.Shape(atoms, Config())
}
