package expr

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// token kinds beyond the single runes reported by text/scanner
const (
	tokEOF = iota
	tokNum
	tokIdent
	tokSym
)

type token struct {
	kind int
	text string
	pos  int
}

type parser struct {
	src  string
	toks []token
	i    int
}

var twoRune = map[string]bool{"==": true, "!=": true, "<=": true, ">=": true, "||": true, "&&": true}

func lex(src string) ([]token, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	var errs []string
	s.Error = func(_ *scanner.Scanner, msg string) { errs = append(errs, msg) }

	var toks []token
	for r := s.Scan(); r != scanner.EOF; r = s.Scan() {
		pos := s.Position.Offset
		switch r {
		case scanner.Int:
			toks = append(toks, token{kind: tokNum, text: s.TokenText(), pos: pos})
		case scanner.Ident:
			toks = append(toks, token{kind: tokIdent, text: s.TokenText(), pos: pos})
		default:
			text := string(r)
			if pair := text + string(s.Peek()); twoRune[pair] {
				s.Next()
				text = pair
			}
			if !strings.Contains("+-*/%<>!=|&();", text[:1]) || text == "|" || text == "&" {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, text, pos)
			}
			toks = append(toks, token{kind: tokSym, text: text, pos: pos})
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrParse, errs[0])
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) accept(sym string) bool {
	if t := p.peek(); t.kind == tokSym && t.text == sym {
		p.i++
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrParse, fmt.Sprintf(format, args...), p.peek().pos, p.src)
}

// binary levels, lowest precedence first
var levels = [][]struct {
	sym string
	op  Operator
}{
	{{"||", Or}},
	{{"&&", And}},
	{{"==", Eq}, {"!=", Neq}},
	{{"<", Lt}, {"<=", Leq}, {">", Gt}, {">=", Geq}},
	{{"+", Plus}, {"-", Minus}},
	{{"*", Times}, {"/", Div}, {"%", Mod}},
}

func (p *parser) expr(level int) (*Expr, error) {
	if level == len(levels) {
		return p.unary()
	}
	l, err := p.expr(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, cand := range levels[level] {
			if p.accept(cand.sym) {
				r, err := p.expr(level + 1)
				if err != nil {
					return nil, err
				}
				l = Binary(cand.op, l, r)
				matched = true
				break
			}
		}
		if !matched {
			return l, nil
		}
	}
}

func (p *parser) unary() (*Expr, error) {
	switch {
	case p.accept("-"):
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Unary(Neg, r), nil
	case p.accept("!"):
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Unary(Not, r), nil
	}
	return p.primary()
}

func (p *parser) primary() (*Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		v, err := strconv.Atoi(t.text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return Number(v), nil
	case tokIdent:
		switch t.text {
		case "true":
			return Number(1), nil
		case "false":
			return Number(0), nil
		}
		return Variable(t.text), nil
	case tokSym:
		if t.text == "(" {
			e, err := p.expr(0)
			if err != nil {
				return nil, err
			}
			if !p.accept(")") {
				return nil, p.errorf("missing )")
			}
			e.Paren = true
			return e, nil
		}
	}
	if t.kind == tokEOF {
		return nil, p.errorf("unexpected end of expression")
	}
	p.i--
	return nil, p.errorf("unexpected %q", t.text)
}

func newParser(src string) (*parser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	return &parser{src: src, toks: toks}, nil
}

// Parse reads a single expression.
func Parse(src string) (*Expr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	e, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, p.errorf("trailing %q", p.peek().text)
	}
	return e, nil
}

// ParseAssignments reads "x = e1; y = e2" into an ordered assignment list.
// An empty source yields no assignments.
func ParseAssignments(src string) ([]Assignment, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	var out []Assignment
	for p.peek().kind != tokEOF {
		if p.accept(";") {
			continue
		}
		t := p.next()
		if t.kind != tokIdent {
			p.i--
			return nil, p.errorf("expected variable")
		}
		if !p.accept("=") {
			return nil, p.errorf("expected =")
		}
		e, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		out = append(out, Assignment{Var: t.text, Expr: e})
		if p.peek().kind != tokEOF && !p.accept(";") {
			return nil, p.errorf("expected ;")
		}
	}
	return out, nil
}
