package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_S1(t *testing.T) {
	atoms, err := Tokenize([]byte("ab 12+_"))
	require.NoError(t, err)
	require.Len(t, atoms, 5)

	assert.Equal(t, Atom{Kind: AtomIdentifier, Text: "ab", Offset: 0}, atoms[0])
	assert.Equal(t, Atom{Kind: AtomWhitespace, Text: " ", Offset: 2}, atoms[1])
	assert.Equal(t, Atom{Kind: AtomNumber, Text: "12", Offset: 3}, atoms[2])
	assert.Equal(t, Atom{Kind: AtomSymbol, Char: '+', Offset: 5}, atoms[3])
	assert.Equal(t, Atom{Kind: AtomSymbol, Char: '_', Offset: 6}, atoms[4])
}

func TestTokenize_Totality(t *testing.T) {
	src := "foo_bar 123\r\n+ != <<= x0y"
	atoms, err := Tokenize([]byte(src))
	require.NoError(t, err)

	var rebuilt string
	for _, a := range atoms {
		if a.Kind == AtomSymbol {
			rebuilt += string(a.Char)
		} else {
			rebuilt += a.Text
		}
	}
	assert.Equal(t, src, rebuilt)
}

func TestTokenize_InvalidCharacter(t *testing.T) {
	_, err := Tokenize([]byte("ok \x00"))
	require.Error(t, err)
	var invalid *InvalidCharacterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 3, invalid.Offset)
}

func TestTokenize_NonASCIIIdentifier(t *testing.T) {
	atoms, err := Tokenize([]byte("日本語 abc"))
	require.NoError(t, err)
	require.Len(t, atoms, 3)
	assert.Equal(t, "日本語", atoms[0].Text)
}

func TestTokenize_LineBreakRunsSeparateFromWhitespace(t *testing.T) {
	atoms, err := Tokenize([]byte("a \r\n b"))
	require.NoError(t, err)
	require.Len(t, atoms, 5)
	assert.Equal(t, AtomWhitespace, atoms[1].Kind)
	assert.Equal(t, AtomLineBreak, atoms[2].Kind)
	assert.Equal(t, "\r\n", atoms[2].Text)
	assert.Equal(t, AtomWhitespace, atoms[3].Kind)
}
