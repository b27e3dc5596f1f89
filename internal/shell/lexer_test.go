package shell_test

import (
	"testing"

	"github.com/gYonder/posh/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(texts ...string) []shell.Word {
	ws := make([]shell.Word, len(texts))
	for i, t := range texts {
		ws[i] = shell.Word{Text: t}
	}
	return ws
}

func TestLex_Basic(t *testing.T) {
	got, err := shell.Lex("echo hello world")
	require.NoError(t, err)
	assert.Equal(t, words("echo", "hello", "world"), got)
}

func TestLex_EmptyLine(t *testing.T) {
	got, err := shell.Lex("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLex_WhitespaceOnly(t *testing.T) {
	got, err := shell.Lex("   \t  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLex_CollapsesConsecutiveWhitespace(t *testing.T) {
	got, err := shell.Lex("echo   hello    world")
	require.NoError(t, err)
	assert.Equal(t, words("echo", "hello", "world"), got)
}

func TestLex_SingleQuotePreservesSpaces(t *testing.T) {
	got, err := shell.Lex("echo 'a  b' c")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a  b", got[1].Text)
	assert.True(t, got[1].Quoted)
}

func TestLex_SingleQuoteBackslashDoesNotClose(t *testing.T) {
	got, err := shell.Lex(`'hello\'world'`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `hello\'world`, got[0].Text)
}

func TestLex_DoubleQuoteBackslashN(t *testing.T) {
	got, err := shell.Lex(`"hello\nworld"`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `hello\nworld`, got[0].Text)
}

func TestLex_DoubleQuoteEscapesQuoteAndBackslash(t *testing.T) {
	got, err := shell.Lex(`echo "\"q\""`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, `"q"`, got[1].Text)
}

func TestLex_OutsideQuoteBackslashEscapesSpace(t *testing.T) {
	got, err := shell.Lex(`echo hello\ world`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hello world", got[1].Text)
}

func TestLex_UnclosedSingleQuote(t *testing.T) {
	_, err := shell.Lex("echo 'unterminated")
	assert.ErrorIs(t, err, shell.ErrUnclosedQuote)
}

func TestLex_UnclosedDoubleQuote(t *testing.T) {
	_, err := shell.Lex(`echo "unterminated`)
	assert.ErrorIs(t, err, shell.ErrUnclosedQuote)
}

func TestLex_TrailingEscape(t *testing.T) {
	_, err := shell.Lex(`echo hello\`)
	assert.ErrorIs(t, err, shell.ErrTrailingEscape)
}

func TestLex_OperatorsAreOrdinaryWords(t *testing.T) {
	got, err := shell.Lex("echo one > out.txt")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, ">", got[2].Text)
	assert.False(t, got[2].Quoted)
}

func TestLex_QuotedOperatorIsMarkedQuoted(t *testing.T) {
	got, err := shell.Lex(`echo '|'`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "|", got[1].Text)
	assert.True(t, got[1].Quoted)
}

func TestLex_RoundTripSimpleWord(t *testing.T) {
	got, err := shell.Lex("hello")
	require.NoError(t, err)
	assert.Equal(t, words("hello"), got)
}
