package spec

import (
	"io"

	verr "github.com/ailang-dev/ailang/error"
)

type RootNode struct {
	Model *ModelNode
	Train *TrainNode
}

type ModelNode struct {
	Name   string
	Input  *InputNode
	Layers []*LayerNode
	Pos    Position
}

type InputNode struct {
	Size  string
	Shape []string
	Pos   Position
}

// LayerNode is either the minimal form (Units and an optional Activation) or
// the keyed form (Attrs).
type LayerNode struct {
	Units      string
	Activation string
	Quoted     bool
	Attrs      []*AttrNode
	Pos        Position
}

type TrainNode struct {
	Attrs []*AttrNode
	Pos   Position
}

type AttrNode struct {
	Key   string
	Value *ValueNode
	Pos   Position
}

type ValueKind string

const (
	ValueKindInt    = ValueKind("integer")
	ValueKindFloat  = ValueKind("float")
	ValueKindString = ValueKind("string")
	ValueKindID     = ValueKind("id")
	ValueKindList   = ValueKind("list")
	ValueKindCall   = ValueKind("call")
)

type ValueNode struct {
	Kind  ValueKind
	Text  string
	Elems []string
	Call  *CallNode
	Pos   Position
}

type CallNode struct {
	Name string
	Args []*ArgNode
	Pos  Position
}

type ArgNode struct {
	Key   string
	Value string
	Pos   Position
}

func raiseSyntaxError(synErr *SyntaxError, pos Position) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

func Parse(src io.Reader) (*RootNode, error) {
	p := newParser(src)
	return p.parse()
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) *parser {
	return &parser{
		lex: newLexer(src),
	}
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			retErr = err.(error)
			return
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	if !p.consume(tokenKindKWModel) {
		raiseSyntaxError(synErrNoModel, p.peek().pos)
	}
	model := p.parseModel()
	root := &RootNode{
		Model: model,
	}
	if p.consume(tokenKindKWTrain) {
		root.Train = p.parseTrain(p.lastTok.pos)
	}
	if !p.consume(tokenKindEOF) {
		raiseSyntaxError(synErrTrailingContent, p.peek().pos)
	}
	return root
}

func (p *parser) parseModel() *ModelNode {
	pos := p.lastTok.pos
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoModelName, p.peek().pos)
	}
	name := p.lastTok.text
	if !p.consume(tokenKindLBrace) {
		raiseSyntaxError(synErrNoModelBody, p.peek().pos)
	}
	model := &ModelNode{
		Name: name,
		Pos:  pos,
	}
	for {
		switch {
		case p.consume(tokenKindKWInput):
			input := p.parseInput(p.lastTok.pos)
			if model.Input != nil {
				raiseSyntaxError(synErrDupInput, input.Pos)
			}
			model.Input = input
		case p.consume(tokenKindKWLayer):
			model.Layers = append(model.Layers, p.parseLayer(p.lastTok.pos))
		case p.consume(tokenKindSemicolon):
			continue
		case p.consume(tokenKindRBrace):
			if model.Input == nil {
				raiseSyntaxError(synErrNoInput, pos)
			}
			return model
		default:
			raiseSyntaxError(synErrUnclosedBlock, pos)
		}
	}
}

func (p *parser) parseInput(pos Position) *InputNode {
	input := &InputNode{
		Pos: pos,
	}
	if p.consume(tokenKindLBrace) {
		// configuration form: input { shape: [...] }
		bracePos := p.lastTok.pos
		for {
			switch {
			case p.consume(tokenKindID):
				key := p.lastTok.text
				keyPos := p.lastTok.pos
				if key != "shape" {
					raiseSyntaxError(synErrNoShape, keyPos)
				}
				if !p.consume(tokenKindColon) {
					raiseSyntaxError(synErrNoColon, p.peek().pos)
				}
				input.Shape = p.parseShapeList()
			case p.consume(tokenKindSemicolon):
				continue
			case p.consume(tokenKindRBrace):
				if input.Shape == nil {
					raiseSyntaxError(synErrNoShape, pos)
				}
				return input
			default:
				raiseSyntaxError(synErrUnclosedBlock, bracePos)
			}
		}
	}
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(synErrNoColon, p.peek().pos)
	}
	if !p.consume(tokenKindInt) {
		raiseSyntaxError(synErrNoInputSize, p.peek().pos)
	}
	input.Size = p.lastTok.text
	return input
}

func (p *parser) parseShapeList() []string {
	if !p.consume(tokenKindLBracket) {
		raiseSyntaxError(synErrNoShape, p.peek().pos)
	}
	bracketPos := p.lastTok.pos
	var dims []string
	for {
		switch {
		case p.consume(tokenKindInt):
			dims = append(dims, p.lastTok.text)
		case p.consume(tokenKindUnderscore):
			dims = append(dims, "_")
		case p.consume(tokenKindRBracket):
			if len(dims) == 0 {
				raiseSyntaxError(synErrNoShapeDim, bracketPos)
			}
			return dims
		case p.consume(tokenKindComma):
			continue
		default:
			raiseSyntaxError(synErrUnclosedList, bracketPos)
		}
	}
}

func (p *parser) parseLayer(pos Position) *LayerNode {
	layer := &LayerNode{
		Pos: pos,
	}
	if p.consume(tokenKindLBrace) {
		// keyed form: layer { type: conv2d; filters: 32 }
		bracePos := p.lastTok.pos
		for {
			switch {
			case p.consume(tokenKindID):
				layer.Attrs = append(layer.Attrs, p.parseAttr(p.lastTok))
			case p.consume(tokenKindSemicolon):
				continue
			case p.consume(tokenKindRBrace):
				return layer
			default:
				raiseSyntaxError(synErrUnclosedBlock, bracePos)
			}
		}
	}
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(synErrNoColon, p.peek().pos)
	}
	if !p.consume(tokenKindInt) {
		raiseSyntaxError(synErrNoLayerUnits, p.peek().pos)
	}
	layer.Units = p.lastTok.text
	if p.consume(tokenKindString) {
		layer.Activation = p.lastTok.text
		layer.Quoted = true
	}
	return layer
}

func (p *parser) parseAttr(keyTok *token) *AttrNode {
	key := keyTok.text
	pos := keyTok.pos
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(synErrNoColon, p.peek().pos)
	}
	return &AttrNode{
		Key:   key,
		Value: p.parseValue(),
		Pos:   pos,
	}
}

func (p *parser) parseValue() *ValueNode {
	switch {
	case p.consume(tokenKindInt):
		return &ValueNode{
			Kind: ValueKindInt,
			Text: p.lastTok.text,
			Pos:  p.lastTok.pos,
		}
	case p.consume(tokenKindFloat):
		return &ValueNode{
			Kind: ValueKindFloat,
			Text: p.lastTok.text,
			Pos:  p.lastTok.pos,
		}
	case p.consume(tokenKindString):
		return &ValueNode{
			Kind: ValueKindString,
			Text: p.lastTok.text,
			Pos:  p.lastTok.pos,
		}
	case p.peek().kind == tokenKindLBracket:
		pos := p.peek().pos
		return &ValueNode{
			Kind:  ValueKindList,
			Elems: p.parseIDList(),
			Pos:   pos,
		}
	case p.consume(tokenKindID):
		idTok := p.lastTok
		if p.consume(tokenKindLParen) {
			return &ValueNode{
				Kind: ValueKindCall,
				Call: p.parseCall(idTok),
				Pos:  idTok.pos,
			}
		}
		return &ValueNode{
			Kind: ValueKindID,
			Text: idTok.text,
			Pos:  idTok.pos,
		}
	}
	raiseSyntaxError(synErrNoAttrValue, p.peek().pos)
	return nil
}

func (p *parser) parseIDList() []string {
	if !p.consume(tokenKindLBracket) {
		raiseSyntaxError(synErrNoAttrValue, p.peek().pos)
	}
	bracketPos := p.lastTok.pos
	var elems []string
	for {
		switch {
		case p.consume(tokenKindID):
			elems = append(elems, p.lastTok.text)
		case p.consume(tokenKindString):
			elems = append(elems, p.lastTok.text)
		case p.consume(tokenKindInt):
			elems = append(elems, p.lastTok.text)
		case p.consume(tokenKindComma):
			continue
		case p.consume(tokenKindRBracket):
			return elems
		default:
			raiseSyntaxError(synErrUnclosedList, bracketPos)
		}
	}
}

func (p *parser) parseCall(nameTok *token) *CallNode {
	call := &CallNode{
		Name: nameTok.text,
		Pos:  nameTok.pos,
	}
	parenPos := p.lastTok.pos
	for {
		switch {
		case p.consume(tokenKindID):
			arg := &ArgNode{
				Key: p.lastTok.text,
				Pos: p.lastTok.pos,
			}
			if !p.consume(tokenKindEq) {
				raiseSyntaxError(synErrNoCallArgValue, p.peek().pos)
			}
			if !p.consume(tokenKindInt) && !p.consume(tokenKindFloat) && !p.consume(tokenKindString) && !p.consume(tokenKindID) {
				raiseSyntaxError(synErrNoCallArgValue, p.peek().pos)
			}
			arg.Value = p.lastTok.text
			call.Args = append(call.Args, arg)
		case p.consume(tokenKindComma):
			continue
		case p.consume(tokenKindRParen):
			return call
		default:
			raiseSyntaxError(synErrUnclosedCall, parenPos)
		}
	}
}

func (p *parser) parseTrain(pos Position) *TrainNode {
	if !p.consume(tokenKindLBrace) {
		raiseSyntaxError(synErrNoTrainBody, p.peek().pos)
	}
	bracePos := p.lastTok.pos
	train := &TrainNode{
		Pos: pos,
	}
	for {
		switch {
		case p.consume(tokenKindID):
			train.Attrs = append(train.Attrs, p.parseAttr(p.lastTok))
		case p.consume(tokenKindSemicolon):
			continue
		case p.consume(tokenKindRBrace):
			return train
		default:
			raiseSyntaxError(synErrUnclosedBlock, bracePos)
		}
	}
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		var err error
		tok, err = p.lex.next()
		if err != nil {
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(synErrInvalidToken, tok.pos)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}

func (p *parser) peek() *token {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		p.peekedTok = tok
	}
	return p.peekedTok
}
