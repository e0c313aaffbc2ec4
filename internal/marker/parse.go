package marker

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenOp
	tokenLParen
	tokenRParen
	tokenAnd
	tokenOr
	tokenIn
	tokenNot
)

type token struct {
	kind  tokenKind
	text  string
	start int
}

var comparisonOps = []string{"===", "==", "!=", "~=", "<=", ">=", "<", ">"}

func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		ch := rune(input[i])
		switch {
		case unicode.IsSpace(ch):
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", start: i})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", start: i})
			i++
		case ch == '\'' || ch == '"':
			end := strings.IndexByte(input[i+1:], input[i])
			if end < 0 {
				return nil, syntaxError(input, i, "unterminated string")
			}
			tokens = append(tokens, token{kind: tokenString, text: input[i+1 : i+1+end], start: i})
			i += end + 2
		case strings.ContainsRune("=!~<>", ch):
			matched := ""
			for _, op := range comparisonOps {
				if strings.HasPrefix(input[i:], op) {
					matched = op
					break
				}
			}
			if matched == "" {
				return nil, syntaxError(input, i, "invalid operator")
			}
			tokens = append(tokens, token{kind: tokenOp, text: matched, start: i})
			i += len(matched)
		case isIdentRune(ch):
			start := i
			for i < len(input) && isIdentRune(rune(input[i])) {
				i++
			}
			word := input[start:i]
			kind := tokenIdent
			switch word {
			case "and":
				kind = tokenAnd
			case "or":
				kind = tokenOr
			case "in":
				kind = tokenIn
			case "not":
				kind = tokenNot
			}
			tokens = append(tokens, token{kind: kind, text: word, start: start})
		default:
			return nil, syntaxError(input, i, fmt.Sprintf("unexpected character %q", ch))
		}
	}
	return append(tokens, token{kind: tokenEOF, start: len(input)}), nil
}

func isIdentRune(ch rune) bool {
	return ch == '_' || ch == '.' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func syntaxError(input string, pos int, msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid marker %q at %d: %s", input, pos, msg))
}

type parser struct {
	input  string
	tokens []token
	pos    int
}

// Parse parses a PEP 508 marker expression. The empty string parses to
// the always-true expression.
func Parse(input string) (Tree, error) {
	if strings.TrimSpace(input) == "" {
		return True(), nil
	}
	tokens, err := lex(input)
	if err != nil {
		return Tree{}, err
	}
	p := &parser{input: input, tokens: tokens}
	out, err := p.parseOr()
	if err != nil {
		return Tree{}, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return Tree{}, syntaxError(input, tok.start, fmt.Sprintf("unexpected %q", tok.text))
	}
	return out, nil
}

// MustParse is Parse for expressions known to be valid; it panics
// otherwise.
func MustParse(input string) Tree {
	out, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return out
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseOr() (Tree, error) {
	left, err := p.parseAnd()
	if err != nil {
		return Tree{}, err
	}
	for p.peek().kind == tokenOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return Tree{}, err
		}
		left = left.Or(right)
	}
	return left, nil
}

func (p *parser) parseAnd() (Tree, error) {
	left, err := p.parseAtom()
	if err != nil {
		return Tree{}, err
	}
	for p.peek().kind == tokenAnd {
		p.next()
		right, err := p.parseAtom()
		if err != nil {
			return Tree{}, err
		}
		left = left.And(right)
	}
	return left, nil
}

func (p *parser) parseAtom() (Tree, error) {
	if p.peek().kind == tokenLParen {
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return Tree{}, err
		}
		if tok := p.next(); tok.kind != tokenRParen {
			return Tree{}, syntaxError(p.input, tok.start, "expected ')'")
		}
		return inner, nil
	}
	lhs := p.next()
	if lhs.kind != tokenIdent && lhs.kind != tokenString {
		return Tree{}, syntaxError(p.input, lhs.start, "expected a variable or a string")
	}
	op, err := p.parseOperator()
	if err != nil {
		return Tree{}, err
	}
	rhs := p.next()
	if rhs.kind != tokenIdent && rhs.kind != tokenString {
		return Tree{}, syntaxError(p.input, rhs.start, "expected a variable or a string")
	}
	out, err := comparison(lhs, op, rhs)
	if err != nil {
		return Tree{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid marker %q at %d", p.input, lhs.start)).
			WithCause(err)
	}
	return out, nil
}

func (p *parser) parseOperator() (string, error) {
	tok := p.next()
	switch tok.kind {
	case tokenOp:
		return tok.text, nil
	case tokenIn:
		return "in", nil
	case tokenNot:
		if p.next().kind != tokenIn {
			return "", syntaxError(p.input, tok.start, "expected 'in' after 'not'")
		}
		return "not in", nil
	default:
		return "", syntaxError(p.input, tok.start, "expected an operator")
	}
}
