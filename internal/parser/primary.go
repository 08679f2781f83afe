package parser

import (
	"strconv"

	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/lexer"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

// PostfixExpr ::= PrimaryExpr (Predicate | Lookup)*
func (p *parser) parsePostfixExpr() (ast.Node, error) {
	base, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.tl.Peek()
		switch {
		case tok.Kind == lexer.KindOpenBracket:
			p.tl.Next()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.tl.ExpectKind(lexer.KindCloseBracket); err != nil {
				return nil, err
			}
			if fe, ok := base.(*ast.FilterExpr); ok {
				fe.Predicates = append(fe.Predicates, e)
			} else {
				base = &ast.FilterExpr{Base: base, Predicates: []ast.Node{e}, Offset: tok.Offset}
			}
		case tok.Kind == lexer.KindOperator && tok.Text == "?":
			p.tl.Next()
			key, err := p.parseLookupKey()
			if err != nil {
				return nil, err
			}
			base = &ast.LookupExpr{Base: base, Key: key, Offset: tok.Offset}
		default:
			return base, nil
		}
	}
}

func (p *parser) parseLookupKey() (string, error) {
	tok := p.tl.Peek()
	switch {
	case tok.Kind == lexer.KindOperator && tok.Text == "*":
		p.tl.Next()
		return "*", nil
	case tok.Kind == lexer.KindQName:
		p.tl.Next()
		return tok.Text, nil
	case tok.Kind == lexer.KindNumber:
		p.tl.Next()
		return strconv.FormatFloat(tok.Num, 'f', -1, 64), nil
	}
	return "", xerr.Parsef(tok.Offset, "expected a lookup key, got %s", tok.Kind)
}

// PrimaryExpr ::= Literal | VarRef | ParenthesizedExpr | ContextItemExpr
//   | FunctionCall | MapConstructor | ArrayConstructor
func (p *parser) parsePrimaryExpr() (ast.Node, error) {
	tok := p.tl.Peek()
	switch tok.Kind {
	case lexer.KindNumber:
		p.tl.Next()
		return &ast.Literal{Kind: tok.NumKind, Num: tok.Num, Offset: tok.Offset}, nil
	case lexer.KindString:
		p.tl.Next()
		return &ast.Literal{Kind: "string", Text: tok.Text, Offset: tok.Offset}, nil
	case lexer.KindVarname:
		p.tl.Next()
		return &ast.VarRef{Name: tok.Text, Offset: tok.Offset}, nil
	case lexer.KindOpenParen:
		return p.parseParenthesizedExpr()
	case lexer.KindOpenBracket:
		return p.parseArrayLiteral()
	case lexer.KindOperator:
		if tok.Text == "." {
			p.tl.Next()
			return &ast.ContextItem{Offset: tok.Offset}, nil
		}
	case lexer.KindQName:
		switch tok.Text {
		case "map":
			if p.tl.PeekAt(1).Kind == lexer.KindOpenBrace {
				return p.parseMapConstructor()
			}
		case "array":
			if p.tl.PeekAt(1).Kind == lexer.KindOpenBrace {
				return p.parseArrayConstructorBrace()
			}
		}
		if p.tl.PeekAt(1).Kind == lexer.KindOpenParen {
			return p.parseFunctionCall()
		}
	}
	return nil, xerr.Parsef(tok.Offset, "unexpected token %s in primary expression", tok.Kind)
}

// ParenthesizedExpr ::= "(" Expr? ")"
func (p *parser) parseParenthesizedExpr() (ast.Node, error) {
	off := p.tl.Peek().Offset
	p.tl.Next() // "("
	if p.tl.Peek().Kind == lexer.KindCloseParen {
		p.tl.Next()
		return &ast.Parenthesized{Offset: off}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.tl.ExpectKind(lexer.KindCloseParen); err != nil {
		return nil, err
	}
	if par, ok := e.(*ast.Parenthesized); ok {
		return par, nil
	}
	return &ast.Parenthesized{Items: []ast.Node{e}, Offset: off}, nil
}

// FunctionCall ::= EQName ArgumentList
func (p *parser) parseFunctionCall() (ast.Node, error) {
	tok := p.tl.Next()
	off := tok.Offset
	prefix, name := "", tok.Text
	if idx := indexByte(tok.Text, ':'); idx >= 0 {
		prefix, name = tok.Text[:idx], tok.Text[idx+1:]
	}
	args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Prefix: prefix, Name: name, Args: args, Offset: off}, nil
}

func (p *parser) parseArgumentList() ([]ast.Node, error) {
	if _, err := p.tl.ExpectKind(lexer.KindOpenParen); err != nil {
		return nil, err
	}
	var args []ast.Node
	if p.tl.Peek().Kind == lexer.KindCloseParen {
		p.tl.Next()
		return args, nil
	}
	for {
		a, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.tl.Peek().Kind != lexer.KindComma {
			break
		}
		p.tl.Next()
	}
	if _, err := p.tl.ExpectKind(lexer.KindCloseParen); err != nil {
		return nil, err
	}
	return args, nil
}

// ArrayConstructor (square form) ::= "[" (ExprSingle ("," ExprSingle)*)? "]"
func (p *parser) parseArrayLiteral() (ast.Node, error) {
	off := p.tl.Peek().Offset
	p.tl.Next() // "["
	var members []ast.Node
	if p.tl.Peek().Kind != lexer.KindCloseBracket {
		for {
			e, err := p.parseExprSingle()
			if err != nil {
				return nil, err
			}
			members = append(members, e)
			if p.tl.Peek().Kind != lexer.KindComma {
				break
			}
			p.tl.Next()
		}
	}
	if _, err := p.tl.ExpectKind(lexer.KindCloseBracket); err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{Members: members, Offset: off}, nil
}

// ArrayConstructor (curly form) ::= "array" "{" Expr? "}"
func (p *parser) parseArrayConstructorBrace() (ast.Node, error) {
	off := p.tl.Peek().Offset
	p.tl.Next() // "array"
	p.tl.Next() // "{"
	if p.tl.Peek().Kind == lexer.KindCloseBrace {
		p.tl.Next()
		return &ast.ArrayLiteral{Offset: off}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.tl.ExpectKind(lexer.KindCloseBrace); err != nil {
		return nil, err
	}
	var members []ast.Node
	if par, ok := e.(*ast.Parenthesized); ok {
		members = par.Items
	} else {
		members = []ast.Node{e}
	}
	return &ast.ArrayLiteral{Members: members, Offset: off}, nil
}

// MapConstructor ::= "map" "{" (MapConstructorEntry ("," MapConstructorEntry)*)? "}"
// MapConstructorEntry ::= ExprSingle ":" ExprSingle
func (p *parser) parseMapConstructor() (ast.Node, error) {
	off := p.tl.Peek().Offset
	p.tl.Next() // "map"
	p.tl.Next() // "{"
	var entries []ast.MapEntryNode
	if p.tl.Peek().Kind != lexer.KindCloseBrace {
		for {
			key, err := p.parseExprSingle()
			if err != nil {
				return nil, err
			}
			if err := p.tl.ExpectOperator(":"); err != nil {
				return nil, err
			}
			val, err := p.parseExprSingle()
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.MapEntryNode{Key: key, Value: val})
			if p.tl.Peek().Kind != lexer.KindComma {
				break
			}
			p.tl.Next()
		}
	}
	if _, err := p.tl.ExpectKind(lexer.KindCloseBrace); err != nil {
		return nil, err
	}
	return &ast.MapConstructor{Entries: entries, Offset: off}, nil
}
