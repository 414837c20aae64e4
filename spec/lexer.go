package spec

import (
	"bufio"
	"io"
	"strings"

	verr "github.com/ailang-dev/ailang/error"
)

type tokenKind string

const (
	tokenKindKWModel    = tokenKind("model")
	tokenKindKWInput    = tokenKind("input")
	tokenKindKWLayer    = tokenKind("layer")
	tokenKindKWTrain    = tokenKind("train")
	tokenKindID         = tokenKind("id")
	tokenKindInt        = tokenKind("integer")
	tokenKindFloat      = tokenKind("float")
	tokenKindString     = tokenKind("string")
	tokenKindColon      = tokenKind(":")
	tokenKindSemicolon  = tokenKind(";")
	tokenKindLBrace     = tokenKind("{")
	tokenKindRBrace     = tokenKind("}")
	tokenKindLBracket   = tokenKind("[")
	tokenKindRBracket   = tokenKind("]")
	tokenKindLParen     = tokenKind("(")
	tokenKindRParen     = tokenKind(")")
	tokenKindComma      = tokenKind(",")
	tokenKindEq         = tokenKind("=")
	tokenKindUnderscore = tokenKind("_")
	tokenKindEOF        = tokenKind("eof")
	tokenKindInvalid    = tokenKind("invalid")
)

var keywords = map[string]tokenKind{
	"model": tokenKindKWModel,
	"input": tokenKindKWInput,
	"layer": tokenKindKWLayer,
	"train": tokenKindKWTrain,
}

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newTextToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

type lexer struct {
	r       *bufio.Reader
	row     int
	col     int
	lastCol int
}

func newLexer(src io.Reader) *lexer {
	return &lexer{
		r:   bufio.NewReader(src),
		row: 1,
		col: 1,
	}
}

func (l *lexer) readRune() (rune, bool) {
	c, _, err := l.r.ReadRune()
	if err != nil {
		return 0, false
	}
	if c == '\n' {
		l.row++
		l.lastCol = l.col
		l.col = 1
	} else {
		l.col++
	}
	return c, true
}

func (l *lexer) unreadRune(c rune) {
	_ = l.r.UnreadRune()
	if c == '\n' {
		l.row--
		l.col = l.lastCol
	} else {
		l.col--
	}
}

func (l *lexer) pos() Position {
	return newPosition(l.row, l.col)
}

func (l *lexer) next() (*token, error) {
	l.skipWSsAndComments()

	pos := l.pos()
	c, ok := l.readRune()
	if !ok {
		return newEOFToken(pos), nil
	}

	switch c {
	case ':':
		return newSymbolToken(tokenKindColon, pos), nil
	case ';':
		return newSymbolToken(tokenKindSemicolon, pos), nil
	case '{':
		return newSymbolToken(tokenKindLBrace, pos), nil
	case '}':
		return newSymbolToken(tokenKindRBrace, pos), nil
	case '[':
		return newSymbolToken(tokenKindLBracket, pos), nil
	case ']':
		return newSymbolToken(tokenKindRBracket, pos), nil
	case '(':
		return newSymbolToken(tokenKindLParen, pos), nil
	case ')':
		return newSymbolToken(tokenKindRParen, pos), nil
	case ',':
		return newSymbolToken(tokenKindComma, pos), nil
	case '=':
		return newSymbolToken(tokenKindEq, pos), nil
	case '"':
		return l.lexString(pos)
	}

	switch {
	case isDigit(c):
		l.unreadRune(c)
		return l.lexNumber(pos)
	case isIDHead(c):
		l.unreadRune(c)
		return l.lexIdentifier(pos)
	}

	return newInvalidToken(string(c), pos), nil
}

func (l *lexer) skipWSsAndComments() {
	for {
		c, ok := l.readRune()
		if !ok {
			return
		}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			continue
		case c == '#':
			for {
				c, ok := l.readRune()
				if !ok || c == '\n' {
					break
				}
			}
			continue
		}
		l.unreadRune(c)
		return
	}
}

func (l *lexer) lexString(pos Position) (*token, error) {
	var b strings.Builder
	for {
		c, ok := l.readRune()
		if !ok {
			return nil, &verr.SpecError{
				Cause: synErrUnclosedString,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		if c == '\n' {
			return nil, &verr.SpecError{
				Cause: synErrUnclosedString,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		if c == '"' {
			return newTextToken(tokenKindString, b.String(), pos), nil
		}
		b.WriteRune(c)
	}
}

func (l *lexer) lexNumber(pos Position) (*token, error) {
	var b strings.Builder
	kind := tokenKindInt
	for {
		c, ok := l.readRune()
		if !ok {
			break
		}
		if isDigit(c) {
			b.WriteRune(c)
			continue
		}
		if c == '.' && kind == tokenKindInt {
			kind = tokenKindFloat
			b.WriteRune(c)
			continue
		}
		l.unreadRune(c)
		break
	}
	text := b.String()
	if strings.HasSuffix(text, ".") {
		return nil, &verr.SpecError{
			Cause:  synErrInvalidNumber,
			Detail: text,
			Row:    pos.Row,
			Col:    pos.Col,
		}
	}
	return newTextToken(kind, text, pos), nil
}

func (l *lexer) lexIdentifier(pos Position) (*token, error) {
	var b strings.Builder
	for {
		c, ok := l.readRune()
		if !ok {
			break
		}
		if isIDHead(c) || isDigit(c) {
			b.WriteRune(c)
			continue
		}
		l.unreadRune(c)
		break
	}
	text := b.String()
	if text == "_" {
		return newSymbolToken(tokenKindUnderscore, pos), nil
	}
	if kind, ok := keywords[text]; ok {
		return newSymbolToken(kind, pos), nil
	}
	return newTextToken(tokenKindID, text, pos), nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIDHead(c rune) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
