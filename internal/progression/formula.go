package progression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/averyk/lifequest/internal/domain"
)

// Formula evaluation for derived stats.
//
// Formulas are stored configuration like "STR * 0.6 + INT * 0.4".
// Instead of filtering input for a generic evaluator, the grammar
// itself is restricted: numbers, the six attribute codes, + - * / and
// parentheses. Nothing else parses, so there is no execution surface.
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := number | stat-code | '(' expr ')' | '-' factor

// allowed runes outside digits and attribute-code letters
const formulaOperators = "+-*/(). "

// node is one vertex of a parsed formula AST.
type node struct {
	op    byte // 0 for leaves
	num   float64
	stat  string
	left  *node
	right *node
}

// ParseFormula validates and parses a formula into an AST that can be
// evaluated repeatedly against different stat maps.
func ParseFormula(formula string) (*Formula, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, fmt.Errorf("%w: empty formula", domain.ErrInvalidFormula)
	}
	for _, r := range formula {
		if r >= '0' && r <= '9' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if strings.ContainsRune(formulaOperators, r) {
			continue
		}
		return nil, fmt.Errorf("%w: illegal character %q", domain.ErrInvalidFormula, r)
	}

	p := &parser{input: formula}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("%w: unexpected %q at position %d", domain.ErrInvalidFormula, p.input[p.pos], p.pos)
	}

	return &Formula{root: root}, nil
}

// Formula is a parsed, reusable derived-stat expression.
type Formula struct {
	root *node
}

// Evaluate computes the formula against a character's attribute totals.
// Missing attributes evaluate as 0.
func (f *Formula) Evaluate(stats map[string]int) (float64, error) {
	return eval(f.root, stats)
}

// evaluateFormula parses and evaluates in one call.
func evaluateFormula(formula string, stats map[string]int) (float64, error) {
	f, err := ParseFormula(formula)
	if err != nil {
		return 0, err
	}
	return f.Evaluate(stats)
}

func eval(n *node, stats map[string]int) (float64, error) {
	if n.op == 0 {
		if n.stat != "" {
			return float64(stats[n.stat]), nil
		}
		return n.num, nil
	}

	left, err := eval(n.left, stats)
	if err != nil {
		return 0, err
	}
	right, err := eval(n.right, stats)
	if err != nil {
		return 0, err
	}

	switch n.op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, fmt.Errorf("%w: division by zero", domain.ErrInvalidFormula)
		}
		return left / right, nil
	}
	return 0, fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidFormula, n.op)
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) parseExpr() (*node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		c := p.peek()
		if c != '+' && c != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &node{op: c, left: left, right: right}
	}
}

func (p *parser) parseTerm() (*node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		c := p.peek()
		if c != '*' && c != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &node{op: c, left: left, right: right}
	}
}

func (p *parser) parseFactor() (*node, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("%w: missing closing parenthesis", domain.ErrInvalidFormula)
		}
		p.pos++
		return inner, nil

	case c == '-':
		p.pos++
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &node{op: '-', left: &node{num: 0}, right: inner}, nil

	case c >= '0' && c <= '9':
		return p.parseNumber()

	case c >= 'A' && c <= 'Z':
		return p.parseStatCode()
	}

	return nil, fmt.Errorf("%w: unexpected input at position %d", domain.ErrInvalidFormula, p.pos)
}

func (p *parser) parseNumber() (*node, error) {
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}
	num, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", domain.ErrInvalidFormula, p.input[start:p.pos])
	}
	return &node{num: num}, nil
}

func (p *parser) parseStatCode() (*node, error) {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= 'A' && p.input[p.pos] <= 'Z' {
		p.pos++
	}
	code := p.input[start:p.pos]
	if !domain.IsCoreStat(code) {
		return nil, fmt.Errorf("%w: unknown identifier %q", domain.ErrInvalidFormula, code)
	}
	return &node{stat: code}, nil
}
