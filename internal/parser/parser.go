// Package parser implements a recursive-descent XPath 3.1 parser: a
// precedence chain of parseOrExpr -> parseAndExpr -> parseComparisonExpr
// -> ... -> parsePrimaryExpr that builds an ast.Node tree (internal/ast)
// instead of compiling directly to a closure, so internal/rewrite can
// run a static pass between parsing and evaluation.
package parser

import (
	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/lexer"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

// Parse tokenizes and parses src as an XPath 3.1 Expr, returning the
// root of the syntax tree.
func Parse(src string) (ast.Node, error) {
	tl, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tl: tl}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.tl.AtEOF() {
		tok := p.tl.Peek()
		return nil, xerr.Parsef(tok.Offset, "unexpected trailing input at %s", tok.Kind)
	}
	return n, nil
}

type parser struct {
	tl *lexer.TokenList
}

// [1] XPath ::= Expr
// [2] Expr ::= ExprSingle ("," ExprSingle)*
func (p *parser) parseExpr() (ast.Node, error) {
	first, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	if p.tl.Peek().Kind != lexer.KindComma {
		return first, nil
	}
	items := []ast.Node{first}
	off := p.tl.Peek().Offset
	for p.tl.Peek().Kind == lexer.KindComma {
		p.tl.Next()
		n, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return &ast.Parenthesized{Items: items, Offset: off}, nil
}

// [3] ExprSingle ::= ForExpr | LetExpr | QuantifiedExpr | IfExpr | OrExpr
func (p *parser) parseExprSingle() (ast.Node, error) {
	tok := p.tl.Peek()
	if tok.Kind == lexer.KindQName {
		switch tok.Text {
		case "for":
			return p.parseForExpr()
		case "let":
			return p.parseLetExpr()
		case "some", "every":
			return p.parseQuantifiedExpr()
		case "if":
			return p.parseIfExpr()
		}
	}
	return p.parseOrExpr()
}

// [4][5][6] ForExpr / SimpleForClause / SimpleForBinding
func (p *parser) parseForExpr() (ast.Node, error) {
	off := p.tl.Peek().Offset
	p.tl.Next() // "for"
	var bindings []ast.ForBinding
	for {
		v, err := p.tl.ExpectKind(lexer.KindVarname)
		if err != nil {
			return nil, err
		}
		if err := p.tl.ExpectOperator("in"); err != nil {
			return nil, err
		}
		seq, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.ForBinding{Var: v.Text, Seq: seq})
		if p.tl.Peek().Kind != lexer.KindComma {
			break
		}
		p.tl.Next()
	}
	if err := p.tl.ExpectOperator("return"); err != nil {
		return nil, err
	}
	body, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	return &ast.ForExpr{Bindings: bindings, Body: body, Offset: off}, nil
}

// LetExpr ::= SimpleLetClause "return" ExprSingle
// SimpleLetClause ::= "let" SimpleLetBinding ("," SimpleLetBinding)*
// SimpleLetBinding ::= "$" VarName ":=" ExprSingle
func (p *parser) parseLetExpr() (ast.Node, error) {
	off := p.tl.Peek().Offset
	p.tl.Next() // "let"
	var bindings []ast.LetBinding
	for {
		v, err := p.tl.ExpectKind(lexer.KindVarname)
		if err != nil {
			return nil, err
		}
		if err := p.tl.ExpectOperator(":="); err != nil {
			return nil, err
		}
		e, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.LetBinding{Var: v.Text, Expr: e})
		if p.tl.Peek().Kind != lexer.KindComma {
			break
		}
		p.tl.Next()
	}
	if err := p.tl.ExpectOperator("return"); err != nil {
		return nil, err
	}
	body, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	return &ast.LetExpr{Bindings: bindings, Body: body, Offset: off}, nil
}

// QuantifiedExpr ::= ("some"|"every") "$" VarName "in" ExprSingle
//   ("," "$" VarName "in" ExprSingle)* "satisfies" ExprSingle
func (p *parser) parseQuantifiedExpr() (ast.Node, error) {
	tok := p.tl.Next()
	every := tok.Text == "every"
	var bindings []ast.ForBinding
	for {
		v, err := p.tl.ExpectKind(lexer.KindVarname)
		if err != nil {
			return nil, err
		}
		if err := p.tl.ExpectOperator("in"); err != nil {
			return nil, err
		}
		seq, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.ForBinding{Var: v.Text, Seq: seq})
		if p.tl.Peek().Kind != lexer.KindComma {
			break
		}
		p.tl.Next()
	}
	if err := p.tl.ExpectOperator("satisfies"); err != nil {
		return nil, err
	}
	test, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	return &ast.QuantifiedExpr{Every: every, Bindings: bindings, Test: test, Offset: tok.Offset}, nil
}

// IfExpr ::= "if" "(" Expr ")" "then" ExprSingle "else" ExprSingle
func (p *parser) parseIfExpr() (ast.Node, error) {
	off := p.tl.Peek().Offset
	p.tl.Next() // "if"
	if _, err := p.tl.ExpectKind(lexer.KindOpenParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.tl.ExpectKind(lexer.KindCloseParen); err != nil {
		return nil, err
	}
	if err := p.tl.ExpectOperator("then"); err != nil {
		return nil, err
	}
	thenE, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	if err := p.tl.ExpectOperator("else"); err != nil {
		return nil, err
	}
	elseE, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	return &ast.IfExpr{Cond: cond, Then: thenE, Else: elseE, Offset: off}, nil
}

// OrExpr ::= AndExpr ("or" AndExpr)*
func (p *parser) parseOrExpr() (ast.Node, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for p.tl.PeekIsOperator("or") {
		off := p.tl.Peek().Offset
		p.tl.Next()
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: "or", Left: left, Right: right, Offset: off}
	}
	return left, nil
}

// AndExpr ::= ComparisonExpr ("and" ComparisonExpr)*
func (p *parser) parseAndExpr() (ast.Node, error) {
	left, err := p.parseComparisonExpr()
	if err != nil {
		return nil, err
	}
	for p.tl.PeekIsOperator("and") {
		off := p.tl.Peek().Offset
		p.tl.Next()
		right, err := p.parseComparisonExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: "and", Left: left, Right: right, Offset: off}
	}
	return left, nil
}

var generalCompareOps = []string{"=", "!=", "<", "<=", ">", ">="}
var valueCompareOps = []string{"eq", "ne", "lt", "le", "gt", "ge"}
var nodeCompareOps = []string{"is", "<<", ">>"}

// ComparisonExpr ::= RangeExpr ( (ValueComp|GeneralComp|NodeComp) RangeExpr )?
// This is genuinely non-associative: a second comparison operator at the
// same level is a syntax error, matching the grammar.
func (p *parser) parseComparisonExpr() (ast.Node, error) {
	left, err := p.parseRangeExpr()
	if err != nil {
		return nil, err
	}
	tok := p.tl.Peek()
	var op string
	var matched bool
	for _, o := range generalCompareOps {
		if tok.Kind == lexer.KindOperator && tok.Text == o {
			op, matched = o, true
			break
		}
	}
	if !matched {
		for _, o := range valueCompareOps {
			if tok.Kind == lexer.KindQName && tok.Text == o {
				op, matched = o, true
				break
			}
		}
	}
	if !matched {
		for _, o := range nodeCompareOps {
			if (tok.Kind == lexer.KindQName || tok.Kind == lexer.KindOperator) && tok.Text == o {
				op, matched = o, true
				break
			}
		}
	}
	if !matched {
		return left, nil
	}
	off := tok.Offset
	p.tl.Next()
	right, err := p.parseRangeExpr()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right, Offset: off}, nil
}

// RangeExpr ::= AdditiveExpr ("to" AdditiveExpr)?
func (p *parser) parseRangeExpr() (ast.Node, error) {
	left, err := p.parseAdditiveExpr()
	if err != nil {
		return nil, err
	}
	if !p.tl.PeekIsOperator("to") {
		return left, nil
	}
	off := p.tl.Peek().Offset
	p.tl.Next()
	right, err := p.parseAdditiveExpr()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: "to", Left: left, Right: right, Offset: off}, nil
}

// AdditiveExpr ::= MultiplicativeExpr (("+"|"-") MultiplicativeExpr)*
func (p *parser) parseAdditiveExpr() (ast.Node, error) {
	left, err := p.parseMultiplicativeExpr()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.tl.AcceptOperator("+", "-")
		if !ok {
			return left, nil
		}
		off := p.tl.PeekAt(-1).Offset
		right, err := p.parseMultiplicativeExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Offset: off}
	}
}

// MultiplicativeExpr ::= UnionExpr (("*"|"div"|"idiv"|"mod") UnionExpr)*
func (p *parser) parseMultiplicativeExpr() (ast.Node, error) {
	left, err := p.parseUnionExpr()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.tl.AcceptOperator("*", "div", "idiv", "mod")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnionExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// UnionExpr ::= IntersectExceptExpr (("union"|"|") IntersectExceptExpr)*
func (p *parser) parseUnionExpr() (ast.Node, error) {
	left, err := p.parseIntersectExceptExpr()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.tl.AcceptOperator("union", "|"); !ok {
			return left, nil
		}
		right, err := p.parseIntersectExceptExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: "union", Left: left, Right: right}
	}
}

// IntersectExceptExpr ::= InstanceofExpr (("intersect"|"except") InstanceofExpr)*
func (p *parser) parseIntersectExceptExpr() (ast.Node, error) {
	left, err := p.parseInstanceofExpr()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.tl.AcceptOperator("intersect", "except")
		if !ok {
			return left, nil
		}
		right, err := p.parseInstanceofExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// InstanceofExpr ::= TreatExpr ("instance" "of" SequenceType)?
func (p *parser) parseInstanceofExpr() (ast.Node, error) {
	left, err := p.parseTreatExpr()
	if err != nil {
		return nil, err
	}
	if !p.tl.PeekIsOperator("instance") {
		return left, nil
	}
	off := p.tl.Peek().Offset
	p.tl.Next()
	if err := p.tl.ExpectOperator("of"); err != nil {
		return nil, err
	}
	st, err := p.parseSequenceType()
	if err != nil {
		return nil, err
	}
	return &ast.InstanceOfExpr{Operand: left, Type: st, Offset: off}, nil
}

// TreatExpr ::= CastableExpr ("treat" "as" SequenceType)?
func (p *parser) parseTreatExpr() (ast.Node, error) {
	left, err := p.parseCastableExpr()
	if err != nil {
		return nil, err
	}
	if !p.tl.PeekIsOperator("treat") {
		return left, nil
	}
	off := p.tl.Peek().Offset
	p.tl.Next()
	if err := p.tl.ExpectOperator("as"); err != nil {
		return nil, err
	}
	st, err := p.parseSequenceType()
	if err != nil {
		return nil, err
	}
	return &ast.TreatExpr{Operand: left, Type: st, Offset: off}, nil
}

// CastableExpr ::= CastExpr ("castable" "as" SingleType)?
func (p *parser) parseCastableExpr() (ast.Node, error) {
	left, err := p.parseCastExpr()
	if err != nil {
		return nil, err
	}
	if !p.tl.PeekIsOperator("castable") {
		return left, nil
	}
	off := p.tl.Peek().Offset
	p.tl.Next()
	if err := p.tl.ExpectOperator("as"); err != nil {
		return nil, err
	}
	st, err := p.parseSingleType()
	if err != nil {
		return nil, err
	}
	return &ast.CastableExpr{Operand: left, Type: st, Offset: off}, nil
}

// CastExpr ::= UnaryExpr ("cast" "as" SingleType)?
func (p *parser) parseCastExpr() (ast.Node, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	if !p.tl.PeekIsOperator("cast") {
		return left, nil
	}
	off := p.tl.Peek().Offset
	p.tl.Next()
	if err := p.tl.ExpectOperator("as"); err != nil {
		return nil, err
	}
	st, err := p.parseSingleType()
	if err != nil {
		return nil, err
	}
	return &ast.CastExpr{Operand: left, Type: st, Offset: off}, nil
}

// UnaryExpr ::= ("-"|"+")* ValueExpr
func (p *parser) parseUnaryExpr() (ast.Node, error) {
	op, ok := p.tl.AcceptOperator("-", "+")
	if !ok {
		return p.parseValueExpr()
	}
	off := p.tl.PeekAt(-1).Offset
	operand, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Offset: off}, nil
}

// ValueExpr ::= SimpleMapExpr
func (p *parser) parseValueExpr() (ast.Node, error) {
	return p.parseSimpleMapExpr()
}

// SimpleMapExpr ::= PathExpr ("!" PathExpr)*
func (p *parser) parseSimpleMapExpr() (ast.Node, error) {
	left, err := p.parsePathExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.tl.Peek()
		if tok.Kind != lexer.KindOperator || tok.Text != "!" {
			return left, nil
		}
		off := tok.Offset
		p.tl.Next()
		right, err := p.parsePathExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.SimpleMapExpr{Left: left, Right: right, Offset: off}
	}
}
