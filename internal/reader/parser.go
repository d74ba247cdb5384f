// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reader

import (
	"fmt"
	"math/big"
	"strings"

	"code.hybscloud.com/kernel"
)

// Parser is a recursive-descent reader over a Scanner's token stream,
// producing kernel.Value trees: lists become chains of *kernel.Pair,
// atoms become the matching self-evaluating Value.
type Parser struct {
	sc   *Scanner
	tok  Token
	file string
}

func NewParser(file, src string) (*Parser, error) {
	p := &Parser{sc: NewScanner(file, src), file: file}
	return p, p.advance()
}

func (p *Parser) advance() error {
	t, err := p.sc.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// ReadAll parses every top-level expression in the source, implementing
// the grammar's top-level `sequence` production.
func ReadAll(file, src string) ([]kernel.Value, error) {
	p, err := NewParser(file, src)
	if err != nil {
		return nil, err
	}
	var exprs []kernel.Value
	for p.tok.Kind != TokenEOF {
		v, err := p.readExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, v)
	}
	return exprs, nil
}

// ReadOne parses exactly one expression. Returns ok=false at end of
// input.
func ReadOne(file, src string) (kernel.Value, bool, error) {
	p, err := NewParser(file, src)
	if err != nil {
		return nil, false, err
	}
	if p.tok.Kind == TokenEOF {
		return nil, false, nil
	}
	v, err := p.readExpr()
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d:%d: %s", p.file, p.tok.Line, p.tok.Col, fmt.Sprintf(format, args...))
}

func (p *Parser) readExpr() (kernel.Value, error) {
	switch p.tok.Kind {
	case TokenLParen:
		return p.readList()
	case TokenString:
		v := &kernel.KString{Value: p.tok.Text}
		return v, p.advance()
	case TokenNumber:
		return p.readNumber()
	case TokenBoolTrue:
		return kernel.True, p.advance()
	case TokenBoolFalse:
		return kernel.False, p.advance()
	case TokenIgnore:
		return kernel.Ignore, p.advance()
	case TokenInert:
		return kernel.Inert, p.advance()
	case TokenPosInfinity:
		return kernel.PosInf, p.advance()
	case TokenNegInfinity:
		return kernel.NegInf, p.advance()
	case TokenSymbol:
		v := kernel.Intern(strings.ToLower(p.tok.Text))
		return v, p.advance()
	case TokenDatumComment:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.readExpr(); err != nil { // discard the commented-out datum
			return nil, err
		}
		return p.readExpr()
	case TokenRParen:
		return nil, p.errorf("unexpected )")
	case TokenDot:
		return nil, p.errorf("unexpected .")
	default:
		return nil, p.errorf("unexpected end of input")
	}
}

func (p *Parser) readNumber() (kernel.Value, error) {
	text := p.tok.Text
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, p.errorf("invalid number literal %q", text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if n.IsInt64() {
		return &kernel.Fixnum{Value: n.Int64()}, nil
	}
	return &kernel.Bignum{Value: n}, nil
}

// readList parses both proper and dotted lists; an empty `()` yields
// kernel.Null.
func (p *Parser) readList() (kernel.Value, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	if p.tok.Kind == TokenRParen {
		return kernel.Null, p.advance()
	}
	var elems []kernel.Value
	tail := kernel.Value(kernel.Null)
	for {
		if p.tok.Kind == TokenRParen {
			break
		}
		if p.tok.Kind == TokenDot {
			if err := p.advance(); err != nil {
				return nil, err
			}
			v, err := p.readExpr()
			if err != nil {
				return nil, err
			}
			tail = v
			if p.tok.Kind != TokenRParen {
				return nil, p.errorf("expected ) after dotted tail")
			}
			break
		}
		v, err := p.readExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		if p.tok.Kind == TokenEOF {
			return nil, p.errorf("unexpected end of input inside list")
		}
	}
	if err := p.advance(); err != nil { // consume ')'
		return nil, err
	}
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = kernel.Cons(elems[i], result)
	}
	return result, nil
}
