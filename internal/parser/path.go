package parser

import (
	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/lexer"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

var forwardAxisNames = map[string]bool{
	"child": true, "descendant": true, "attribute": true, "self": true,
	"descendant-or-self": true, "following-sibling": true, "following": true,
	"namespace": true,
}

var reverseAxisNames = map[string]bool{
	"parent": true, "ancestor": true, "preceding-sibling": true,
	"preceding": true, "ancestor-or-self": true,
}

// PathExpr ::= ("/" RelativePathExpr?) | ("//" RelativePathExpr) | RelativePathExpr
func (p *parser) parsePathExpr() (ast.Node, error) {
	tok := p.tl.Peek()
	if tok.Kind == lexer.KindOperator && (tok.Text == "/" || tok.Text == "//") {
		p.tl.Next()
		descendant := tok.Text == "//"
		if p.atStepStart() {
			rel, err := p.parseRelativePathExpr()
			if err != nil {
				return nil, err
			}
			relPath, ok := rel.(*ast.PathExpr)
			if !ok {
				relPath = &ast.PathExpr{Steps: []ast.Node{rel}}
			}
			return &ast.PathExpr{Rooted: true, Descendant: descendant, Steps: relPath.Steps, Offset: tok.Offset}, nil
		}
		return &ast.PathExpr{Rooted: true, Offset: tok.Offset}, nil
	}
	return p.parseRelativePathExpr()
}

// atStepStart reports whether the next token could begin a StepExpr,
// used to distinguish a bare "/" (the document root alone) from "/foo".
func (p *parser) atStepStart() bool {
	tok := p.tl.Peek()
	switch tok.Kind {
	case lexer.KindEOF, lexer.KindCloseParen, lexer.KindCloseBracket, lexer.KindCloseBrace, lexer.KindComma:
		return false
	case lexer.KindOperator:
		return tok.Text == "@" || tok.Text == "." || tok.Text == ".." || tok.Text == "*"
	case lexer.KindDoubleColon:
		return false
	}
	return true
}

// RelativePathExpr ::= StepExpr (("/"|"//") StepExpr)*
func (p *parser) parseRelativePathExpr() (ast.Node, error) {
	off := p.tl.Peek().Offset
	first, err := p.parseStepExpr()
	if err != nil {
		return nil, err
	}
	steps := []ast.Node{first}
	for {
		tok := p.tl.Peek()
		if tok.Kind != lexer.KindOperator || (tok.Text != "/" && tok.Text != "//") {
			break
		}
		p.tl.Next()
		if tok.Text == "//" {
			// "//" between steps abbreviates "/descendant-or-self::node()/".
			steps = append(steps, &ast.Step{
				Axis: "descendant-or-self",
				Test: ast.NodeTest{KindTest: &ast.KindTest{Kind: "node"}},
			})
		}
		next, err := p.parseStepExpr()
		if err != nil {
			return nil, err
		}
		steps = append(steps, next)
	}
	if len(steps) == 1 {
		return steps[0], nil
	}
	return &ast.PathExpr{Steps: steps, Offset: off}, nil
}

// StepExpr ::= PostfixExpr | AxisStep
func (p *parser) parseStepExpr() (ast.Node, error) {
	if p.looksLikeAxisStep() {
		return p.parseAxisStep()
	}
	return p.parsePostfixExpr()
}

func (p *parser) looksLikeAxisStep() bool {
	tok := p.tl.Peek()
	if tok.Kind == lexer.KindOperator && tok.Text == "@" {
		return true
	}
	if tok.Kind == lexer.KindOperator && tok.Text == ".." {
		return true
	}
	if tok.Kind == lexer.KindOperator && tok.Text == "*" {
		return true
	}
	if tok.Kind == lexer.KindDoubleColon {
		return forwardAxisNames[tok.Text] || reverseAxisNames[tok.Text]
	}
	if tok.Kind == lexer.KindQName {
		// A bare QName followed directly by "(" is a function call or
		// kind test, not a name test, unless it names a kind-test
		// keyword (node/text/comment/...); otherwise treat it as a
		// NameTest step, which is the common case for plain paths.
		next := p.tl.PeekAt(1)
		if next.Kind == lexer.KindOpenParen {
			return isKindTestName(tok.Text)
		}
		if next.Kind == lexer.KindOpenBrace && (tok.Text == "map" || tok.Text == "array") {
			return false
		}
		return true
	}
	return false
}

func isKindTestName(name string) bool {
	switch name {
	case "node", "text", "comment", "processing-instruction", "element", "attribute", "document-node", "schema-element", "schema-attribute":
		return true
	}
	return false
}

// AxisStep ::= (ReverseStep | ForwardStep) PredicateList
func (p *parser) parseAxisStep() (ast.Node, error) {
	off := p.tl.Peek().Offset
	axis, test, err := p.parseForwardOrReverseStep()
	if err != nil {
		return nil, err
	}
	preds, err := p.parsePredicateList()
	if err != nil {
		return nil, err
	}
	return &ast.Step{Axis: axis, Test: test, Predicates: preds, Offset: off}, nil
}

func (p *parser) parseForwardOrReverseStep() (string, ast.NodeTest, error) {
	tok := p.tl.Peek()
	if tok.Kind == lexer.KindOperator && tok.Text == ".." {
		p.tl.Next()
		return "parent", ast.NodeTest{KindTest: &ast.KindTest{Kind: "node"}}, nil
	}
	if tok.Kind == lexer.KindOperator && tok.Text == "@" {
		p.tl.Next()
		test, err := p.parseNodeTest()
		return "attribute", test, err
	}
	if tok.Kind == lexer.KindDoubleColon {
		name := tok.Text
		p.tl.Next()
		if forwardAxisNames[name] || reverseAxisNames[name] {
			test, err := p.parseNodeTest()
			return name, test, err
		}
		return "", ast.NodeTest{}, xerr.Parsef(tok.Offset, "unknown axis %q", name)
	}
	// AbbrevForwardStep: NodeTest alone means axis "child" (or
	// "attribute" for an attribute KindTest, though that shape is
	// unreachable here since "@" already dispatched above).
	test, err := p.parseNodeTest()
	if err != nil {
		return "", ast.NodeTest{}, err
	}
	return "child", test, nil
}

func (p *parser) parsePredicateList() ([]ast.Node, error) {
	var preds []ast.Node
	for p.tl.Peek().Kind == lexer.KindOpenBracket {
		p.tl.Next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.tl.ExpectKind(lexer.KindCloseBracket); err != nil {
			return nil, err
		}
		preds = append(preds, e)
	}
	return preds, nil
}

// NodeTest ::= KindTest | NameTest
func (p *parser) parseNodeTest() (ast.NodeTest, error) {
	tok := p.tl.Peek()
	if tok.Kind == lexer.KindQName && isKindTestName(tok.Text) && p.tl.PeekAt(1).Kind == lexer.KindOpenParen {
		kt, err := p.parseKindTest()
		if err != nil {
			return ast.NodeTest{}, err
		}
		return ast.NodeTest{KindTest: kt}, nil
	}
	nt, err := p.parseNameTest()
	if err != nil {
		return ast.NodeTest{}, err
	}
	return ast.NodeTest{NameTest: nt}, nil
}

func (p *parser) parseKindTest() (*ast.KindTest, error) {
	tok := p.tl.Next() // kind name
	if _, err := p.tl.ExpectKind(lexer.KindOpenParen); err != nil {
		return nil, err
	}
	kt := &ast.KindTest{Kind: tok.Text}
	if p.tl.Peek().Kind == lexer.KindQName {
		nameTok := p.tl.Next()
		kt.Name = nameTok.Text
	} else if p.tl.Peek().Kind == lexer.KindOperator && p.tl.Peek().Text == "*" {
		p.tl.Next()
		kt.Name = "*"
	}
	if _, err := p.tl.ExpectKind(lexer.KindCloseParen); err != nil {
		return nil, err
	}
	return kt, nil
}

// NameTest ::= EQName | Wildcard
func (p *parser) parseNameTest() (*ast.NameTest, error) {
	tok := p.tl.Peek()
	if tok.Kind == lexer.KindOperator && tok.Text == "*" {
		p.tl.Next()
		if p.tl.Peek().Kind == lexer.KindOperator && p.tl.Peek().Text == ":" {
			p.tl.Next()
			local, err := p.tl.ExpectKind(lexer.KindQName)
			if err != nil {
				return nil, err
			}
			return &ast.NameTest{AnyPrefix: true, Local: local.Text}, nil
		}
		return &ast.NameTest{AnyLocal: true}, nil
	}
	if tok.Kind != lexer.KindQName {
		return nil, xerr.Parsef(tok.Offset, "expected a name test, got %s", tok.Kind)
	}
	p.tl.Next()
	name := tok.Text
	// A prefix immediately followed by "*" (e.g. "a:*") lexes as a
	// QName ending in a trailing colon, since '*' is not a name
	// character; the wildcard local part arrives as a separate operator
	// token right behind it.
	if len(name) > 0 && name[len(name)-1] == ':' {
		if p.tl.Peek().Kind == lexer.KindOperator && p.tl.Peek().Text == "*" {
			p.tl.Next()
			return &ast.NameTest{Prefix: name[:len(name)-1], AnyLocal: true}, nil
		}
		return nil, xerr.Parsef(tok.Offset, "malformed QName %q", name)
	}
	if idx := indexByte(name, ':'); idx >= 0 {
		prefix, local := name[:idx], name[idx+1:]
		if local == "*" {
			return &ast.NameTest{Prefix: prefix, AnyLocal: true}, nil
		}
		return &ast.NameTest{Prefix: prefix, Local: local}, nil
	}
	if name == "*" {
		return &ast.NameTest{AnyLocal: true}, nil
	}
	return &ast.NameTest{Local: name, NoPrefix: true}, nil
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
