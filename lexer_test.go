package es5

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src, false)
	var toks []Token
	for {
		tok := lex.Next()
		toks = append(toks, tok)
		if tok.Type == EOF || tok.Type == ERROR {
			break
		}
	}
	return toks
}

func TestLexerPunctuatorMaximalMunch(t *testing.T) {
	toks := scanAll(t, ">>>= >> > >=")
	kinds := []Kind{USHR_ASSIGN, SHR, GT, GE, EOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Type, "token %d", i)
	}
}

func TestLexerIdentifierVsKeyword(t *testing.T) {
	toks := scanAll(t, "function foo")
	require.Len(t, toks, 3)
	assert.Equal(t, FUNCTION, toks[0].Type)
	assert.Equal(t, ID, toks[1].Type)
	assert.Equal(t, "foo", toks[1].Value)
}

func TestLexerNumberLiterals(t *testing.T) {
	toks := scanAll(t, "0xFF 3.14 1e10 .5")
	require.Len(t, toks, 5)
	for _, tok := range toks[:4] {
		assert.Equal(t, NUMBER, tok.Type)
	}
	assert.Equal(t, "0xFF", toks[0].Value)
	assert.Equal(t, "3.14", toks[1].Value)
	assert.Equal(t, "1e10", toks[2].Value)
	assert.Equal(t, ".5", toks[3].Value)
}

func TestLexerStringLiteral(t *testing.T) {
	toks := scanAll(t, `"a\"b" 'c'`)
	require.Len(t, toks, 3)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, `"a\"b"`, toks[0].Value)
	assert.Equal(t, STRING, toks[1].Type)
	assert.Equal(t, `'c'`, toks[1].Value)
}

func TestLexerNewlineBetweenTokens(t *testing.T) {
	toks := scanAll(t, "a\nb")
	kinds := []Kind{ID, NEWLINE, ID, EOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Type, "token %d", i)
	}
}

func TestLexerBlockCommentCollapsesToOneNewline(t *testing.T) {
	toks := scanAll(t, "a /* line1\nline2\nline3 */ b")
	kinds := []Kind{ID, NEWLINE, ID, EOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Type, "token %d", i)
	}
}

func TestLexerLineCommentConsumesToEndOfLine(t *testing.T) {
	toks := scanAll(t, "a // comment\nb")
	kinds := []Kind{ID, NEWLINE, ID, EOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Type, "token %d", i)
	}
}

func TestLexerFutureReservedGatedByFlag(t *testing.T) {
	lex := NewLexer("class", false)
	tok := lex.Next()
	assert.Equal(t, ID, tok.Type)

	lex = NewLexer("class", true)
	tok = lex.Next()
	assert.Equal(t, CLASS, tok.Type)
}

func TestLexerRegExpReinterpretation(t *testing.T) {
	lex := NewLexer("/ab+c/gi", false)
	div := lex.Next()
	require.Equal(t, DIV, div.Type)

	// lex.mark already points at the '/' from the Next call above.
	re := lex.LexRegExp()
	assert.Equal(t, REGEXP, re.Type)
	assert.Equal(t, "/ab+c/gi", re.Value)
}

func TestLexerUnterminatedStringIsError(t *testing.T) {
	lex := NewLexer(`"abc`, false)
	tok := lex.Next()
	assert.Equal(t, ERROR, tok.Type)
	assert.Error(t, lex.Err())
}

func TestLexerBareCarriageReturnIsUnexpectedCharacter(t *testing.T) {
	// '\r' is neither a blank nor a line terminator here; it falls through
	// to the default unexpected-character path instead of being swallowed.
	lex := NewLexer("a\rb", false)
	tok := lex.Next()
	assert.Equal(t, ID, tok.Type)
	tok = lex.Next()
	assert.Equal(t, ERROR, tok.Type)
	assert.Error(t, lex.Err())
}
