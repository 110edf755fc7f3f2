package ucdparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser reads UCD data lines from an input reader.
type Parser struct {
	Token  *Token // last token produced
	lines  *bufio.Scanner
	lineNo int
	err    error
}

// New creates a parser for an input reader.
func New(inputReader io.Reader) (*Parser, error) {
	if inputReader == nil {
		return nil, errors.New("no input present")
	}
	return &Parser{lines: bufio.NewScanner(inputReader)}, nil
}

// Parse iterates over each data line of the input and calls callback f on it.
func Parse(r io.Reader, f func(token *Token)) error {
	p, err := New(r)
	if err != nil {
		return err
	}
	for p.Next() {
		f(p.Token)
	}
	return p.Err()
}

// Next is called to receive the next data line token. It returns false at
// the end of input or if a line could not be parsed; clients should then
// check Err().
func (p *Parser) Next() bool {
	if p.err != nil {
		return false
	}
	for p.lines.Scan() {
		p.lineNo++
		data, comment := splitComment(p.lines.Text())
		if strings.TrimSpace(data) == "" {
			continue
		}
		token, err := parseDataLine(data)
		if err != nil {
			p.err = fmt.Errorf("line %d: %w", p.lineNo, err)
			T().Errorf("ucdparse: %v", p.err)
			return false
		}
		token.LineNo = p.lineNo
		token.Comment = comment
		p.Token = token
		return true
	}
	p.err = p.lines.Err()
	return false
}

// Err returns the first error encountered, if any.
func (p *Parser) Err() error {
	return p.err
}

func parseDataLine(data string) (*Token, error) {
	cols := strings.Split(data, ";")
	token := &Token{Fields: make([]string, 0, len(cols)-1)}
	cp := strings.TrimSpace(cols[0])
	from, to := cp, cp
	if i := strings.Index(cp, ".."); i >= 0 {
		from, to = cp[:i], cp[i+2:]
	}
	var err error
	if token.runeFrom, err = parseHexRune(from); err != nil {
		return nil, err
	}
	if token.runeTo, err = parseHexRune(to); err != nil {
		return nil, err
	}
	if token.runeTo < token.runeFrom {
		return nil, fmt.Errorf("illegal code point range %s", cp)
	}
	for _, col := range cols[1:] {
		token.Fields = append(token.Fields, strings.TrimSpace(col))
	}
	return token, nil
}

func parseHexRune(hex string) (rune, error) {
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("hex decoding error: %w", err)
	}
	if n > 0x10FFFF {
		return 0, fmt.Errorf("code point %s out of range", hex)
	}
	return rune(n), nil
}
