package peano

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/borzacchiello/gorewrite"
)

// ErrParse is wrapped by every surface-syntax failure.
var ErrParse = errors.New("parse error")

const (
	tokEOF = iota
	tokLParen
	tokRParen
	tokPlus
	tokEq
	tokSucc
	tokNum
	tokVar
	tokTrue
	tokFalse
	tokWildcard
)

type token struct {
	kind int
	num  uint64
	pos  int
}

type lexer struct {
	input string
	pos   int
	cur   token
}

func newLexer(input string) (*lexer, error) {
	l := &lexer{input: input}
	if err := l.advance(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *lexer) advance() error {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos += 1
	}
	start := l.pos
	if l.pos >= len(l.input) {
		l.cur = token{kind: tokEOF, pos: start}
		return nil
	}

	c := l.input[l.pos]
	switch {
	case c == '(':
		l.pos += 1
		l.cur = token{kind: tokLParen, pos: start}
	case c == ')':
		l.pos += 1
		l.cur = token{kind: tokRParen, pos: start}
	case c == '+':
		l.pos += 1
		l.cur = token{kind: tokPlus, pos: start}
	case c == '=':
		l.pos += 1
		l.cur = token{kind: tokEq, pos: start}
	case c == '_':
		l.pos += 1
		l.cur = token{kind: tokWildcard, pos: start}
	case c == '/':
		l.pos += 1
		n, err := l.scanNumber()
		if err != nil {
			return fmt.Errorf("%w: offset %d: variable index expected after '/'",
				ErrParse, start)
		}
		l.cur = token{kind: tokVar, num: n, pos: start}
	case c >= '0' && c <= '9':
		n, err := l.scanNumber()
		if err != nil {
			return err
		}
		l.cur = token{kind: tokNum, num: n, pos: start}
	case isAlpha(c):
		word := l.scanWord()
		switch word {
		case "S":
			l.cur = token{kind: tokSucc, pos: start}
		case "true":
			l.cur = token{kind: tokTrue, pos: start}
		case "false":
			l.cur = token{kind: tokFalse, pos: start}
		default:
			return fmt.Errorf("%w: offset %d: unknown word %q", ErrParse,
				start, word)
		}
	default:
		return fmt.Errorf("%w: offset %d: unexpected character %q", ErrParse,
			start, string(c))
	}
	return nil
}

func (l *lexer) scanNumber() (uint64, error) {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		l.pos += 1
	}
	if l.pos == start {
		return 0, fmt.Errorf("%w: offset %d: digit expected", ErrParse, start)
	}
	n, err := strconv.ParseUint(l.input[start:l.pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: offset %d: %v", ErrParse, start, err)
	}
	return n, nil
}

func (l *lexer) scanWord() string {
	start := l.pos
	for l.pos < len(l.input) && isAlpha(l.input[l.pos]) {
		l.pos += 1
	}
	return l.input[start:l.pos]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

type parser struct {
	lex   *lexer
	store *gorewrite.TermStore
}

// expr := sum ('=' sum)?
// sum  := atom ('+' atom)*
// atom := 'S' '(' sum ')' | number | '/'digits | 'true' | 'false' | '_'
//       | '(' sum ')'
func (p *parser) parseExpr(allowEq bool) (*gorewrite.Pattern, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if allowEq && p.lex.cur.kind == tokEq {
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return gorewrite.Compound(OP_EQUALS, left, right), nil
	}
	return left, nil
}

func (p *parser) parseSum() (*gorewrite.Pattern, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.lex.cur.kind == tokPlus {
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = gorewrite.Compound(OP_ADD, left, right)
	}
	return left, nil
}

func (p *parser) parseAtom() (*gorewrite.Pattern, error) {
	tok := p.lex.cur
	switch tok.kind {
	case tokSucc:
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokLParen, "'('"); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr(false)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return gorewrite.Compound(OP_SUCC, inner), nil

	case tokNum:
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		return gorewrite.Const(NewNum(p.store, tok.num)), nil

	case tokVar:
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		return gorewrite.Var(uint32(tok.num)), nil

	case tokTrue:
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		return gorewrite.Const(NewTruth(p.store, true)), nil

	case tokFalse:
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		return gorewrite.Const(NewTruth(p.store, false)), nil

	case tokWildcard:
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		return gorewrite.Wildcard(), nil

	case tokLParen:
		if err := p.lex.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr(false)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, fmt.Errorf("%w: offset %d: term expected", ErrParse, tok.pos)
}

func (p *parser) expect(kind int, what string) error {
	if p.lex.cur.kind != kind {
		return fmt.Errorf("%w: offset %d: %s expected", ErrParse,
			p.lex.cur.pos, what)
	}
	return p.lex.advance()
}

func parse(store *gorewrite.TermStore, input string) (*gorewrite.Pattern, error) {
	lex, err := newLexer(input)
	if err != nil {
		return nil, err
	}
	p := &parser{lex: lex, store: store}
	pat, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if p.lex.cur.kind != tokEOF {
		return nil, fmt.Errorf("%w: offset %d: trailing input", ErrParse,
			p.lex.cur.pos)
	}
	return pat, nil
}

// ParsePattern parses an axiom-side schema: the term grammar extended with
// '=' and the wildcard '_'; de Bruijn references '/k' become pattern
// variables.
func ParsePattern(store *gorewrite.TermStore, input string) (*gorewrite.Pattern, error) {
	return parse(store, input)
}

// ParseTerm parses a term with no '=' and no wildcard; de Bruijn
// references become variable leaves.
func ParseTerm(store *gorewrite.TermStore, input string) (*gorewrite.TermPtr, error) {
	lex, err := newLexer(input)
	if err != nil {
		return nil, err
	}
	p := &parser{lex: lex, store: store}
	pat, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if p.lex.cur.kind != tokEOF {
		return nil, fmt.Errorf("%w: offset %d: trailing input", ErrParse,
			p.lex.cur.pos)
	}
	return patternToTerm(store, pat)
}

// ParseTheorem parses an equation "a = b" and returns the initial state
// for the prover: the interned equation on the left and the literal true
// on the right.
func ParseTheorem(store *gorewrite.TermStore, input string) (lhs, rhs *gorewrite.TermPtr, err error) {
	pat, err := parse(store, input)
	if err != nil {
		return nil, nil, err
	}
	if pat.Kind() != gorewrite.PAT_COMPOUND || pat.Opcode() != OP_EQUALS {
		return nil, nil, fmt.Errorf("%w: theorem must be an equation", ErrParse)
	}
	eq, err := patternToTerm(store, pat)
	if err != nil {
		return nil, nil, err
	}
	return eq, NewTruth(store, true), nil
}

func patternToTerm(store *gorewrite.TermStore, pat *gorewrite.Pattern) (*gorewrite.TermPtr, error) {
	switch pat.Kind() {
	case gorewrite.PAT_CONST:
		return pat.Const(), nil
	case gorewrite.PAT_VAR:
		return NewVar(store, pat.Index()), nil
	case gorewrite.PAT_WILDCARD:
		return nil, fmt.Errorf("%w: wildcard is not a term", ErrParse)
	case gorewrite.PAT_COMPOUND:
		args := pat.Args()
		children := make([]*gorewrite.TermPtr, len(args))
		for i := 0; i < len(args); i++ {
			child, err := patternToTerm(store, args[i])
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return store.Build(pat.Opcode(), children)
	}
	panic("unknown pattern kind")
}
