/*
File    : lox/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	src := "(){}, . - + ; * / ! != = == < <= > >="
	lex := NewLexer(src)
	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT, MINUS, PLUS,
		SEMICOLON, STAR, SLASH, BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS,
		LESS_EQUAL, GREATER, GREATER_EQUAL, EOF,
	}
	for i, w := range want {
		tok := lex.NextToken()
		assert.Equal(t, w, tok.Type, "token %d", i)
	}
}

func TestNextTokenKeywordsAndIdentifiers(t *testing.T) {
	src := "class fun var for while if else true false nil and or return super this print foo_bar"
	lex := NewLexer(src)
	want := []TokenType{
		CLASS, FUN, VAR, FOR, WHILE, IF, ELSE, TRUE, FALSE, NIL, AND, OR,
		RETURN, SUPER, THIS, PRINT, IDENTIFIER, EOF,
	}
	for _, w := range want {
		tok := lex.NextToken()
		assert.Equal(t, w, tok.Type)
	}
}

func TestNextTokenStringLiteral(t *testing.T) {
	lex := NewLexer(`"hello world"`)
	tok := lex.NextToken()
	assert.Equal(t, STRING, tok.Type)
	assert.Equal(t, "hello world", tok.Literal)
}

func TestNextTokenUnterminatedString(t *testing.T) {
	lex := NewLexer(`"hello`)
	tok := lex.NextToken()
	assert.Equal(t, ERROR, tok.Type)
	assert.Equal(t, "Unterminated string.", tok.Literal)
}

func TestNextTokenNumberLiteral(t *testing.T) {
	lex := NewLexer("123 45.67")
	tok := lex.NextToken()
	assert.Equal(t, NUMBER, tok.Type)
	assert.Equal(t, float64(123), tok.Literal)

	tok = lex.NextToken()
	assert.Equal(t, NUMBER, tok.Type)
	assert.Equal(t, 45.67, tok.Literal)
}

func TestNextTokenUnexpectedCharacter(t *testing.T) {
	lex := NewLexer("@")
	tok := lex.NextToken()
	assert.Equal(t, ERROR, tok.Type)
	assert.Equal(t, "Unexpected character.", tok.Literal)
}

func TestNextTokenLineTracking(t *testing.T) {
	lex := NewLexer("var a = 1;\nvar b = 2;")
	var last Token
	for {
		tok := lex.NextToken()
		if tok.Type == EOF {
			break
		}
		last = tok
	}
	assert.Equal(t, 2, last.Line)
}

func TestNextTokenSkipsLineComments(t *testing.T) {
	lex := NewLexer("// a comment\nvar")
	tok := lex.NextToken()
	assert.Equal(t, VAR, tok.Type)
	assert.Equal(t, 2, tok.Line)
}
