package parser

import (
	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/lexer"
)

// SingleType ::= EQName "?"?, used by "cast as"/"castable as".
func (p *parser) parseSingleType() (ast.SequenceType, error) {
	tok, err := p.tl.ExpectKind(lexer.KindQName)
	if err != nil {
		return ast.SequenceType{}, err
	}
	st := ast.SequenceType{TypeName: tok.Text}
	if p.tl.Peek().Kind == lexer.KindOperator && p.tl.Peek().Text == "?" {
		p.tl.Next()
		st.Occurrence = "?"
	}
	return st, nil
}

// SequenceType ::= ("empty-sequence" "(" ")") | (ItemType OccurrenceIndicator?)
func (p *parser) parseSequenceType() (ast.SequenceType, error) {
	tok := p.tl.Peek()
	if tok.Kind == lexer.KindQName && tok.Text == "empty-sequence" && p.tl.PeekAt(1).Kind == lexer.KindOpenParen {
		p.tl.Next()
		p.tl.Next()
		p.tl.ExpectKind(lexer.KindCloseParen)
		return ast.SequenceType{EmptySequence: true}, nil
	}
	if tok.Kind == lexer.KindQName && isKindTestName(tok.Text) && p.tl.PeekAt(1).Kind == lexer.KindOpenParen {
		kt, err := p.parseKindTest()
		if err != nil {
			return ast.SequenceType{}, err
		}
		st := ast.SequenceType{KindTest: kt}
		if occ, ok := p.tl.AcceptOperator("?", "*", "+"); ok {
			st.Occurrence = occ
		}
		return st, nil
	}
	nameTok, err := p.tl.ExpectKind(lexer.KindQName)
	if err != nil {
		return ast.SequenceType{}, err
	}
	st := ast.SequenceType{TypeName: nameTok.Text}
	if occ, ok := p.tl.AcceptOperator("?", "*", "+"); ok {
		st.Occurrence = occ
	}
	return st, nil
}
