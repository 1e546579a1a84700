package pdfinfo

import (
	"errors"
	"strconv"
)

// Value kinds. Only names, numbers, and references carry data the probe
// acts on; everything else is parsed solely to keep the lexer in sync.
const (
	kindNull = iota
	kindBool
	kindNumber
	kindString
	kindName
	kindArray
	kindDict
	kindRef
)

type value struct {
	kind int
	num  float64
	name string
	dict dict
}

// dict is a parsed PDF dictionary (name -> value).
type dict map[string]value

func (d dict) has(key string) bool {
	_, ok := d[key]
	return ok
}

// name returns the name value of an entry.
func (d dict) name(key string) (string, bool) {
	v, ok := d[key]
	if !ok || v.kind != kindName {
		return "", false
	}
	return v.name, true
}

// integer returns the integer value of an entry.
func (d dict) integer(key string) (int, bool) {
	v, ok := d[key]
	if !ok || v.kind != kindNumber {
		return 0, false
	}
	return int(v.num), true
}

var errSyntax = errors.New("pdfinfo: malformed object")

// lexer is a minimal tokenizer over the PDF object grammar.
type lexer struct {
	data []byte
	pos  int
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.data)
}

// skipSpace advances past whitespace and % comments.
func (l *lexer) skipSpace() {
	for !l.eof() {
		switch l.data[l.pos] {
		case ' ', '\t', '\r', '\n', '\f', 0:
			l.pos++
		case '%':
			for !l.eof() && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

// peek reports whether the input at the current position starts with s.
func (l *lexer) peek(s string) bool {
	if l.pos+len(s) > len(l.data) {
		return false
	}
	return string(l.data[l.pos:l.pos+len(s)]) == s
}

// parseDict parses "<< ... >>". Nested values are parsed recursively.
func (l *lexer) parseDict() (dict, error) {
	if !l.peek("<<") {
		return nil, errSyntax
	}
	l.pos += 2
	d := dict{}
	for {
		l.skipSpace()
		if l.peek(">>") {
			l.pos += 2
			return d, nil
		}
		if l.eof() || l.data[l.pos] != '/' {
			return nil, errSyntax
		}
		key, err := l.parseName()
		if err != nil {
			return nil, err
		}
		l.skipSpace()
		v, err := l.parseValue()
		if err != nil {
			return nil, err
		}
		d[key] = v
	}
}

func (l *lexer) parseValue() (value, error) {
	if l.eof() {
		return value{}, errSyntax
	}
	switch b := l.data[l.pos]; {
	case b == '<' && l.peek("<<"):
		d, err := l.parseDict()
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDict, dict: d}, nil
	case b == '<':
		return l.parseHexString()
	case b == '(':
		return l.parseString()
	case b == '/':
		name, err := l.parseName()
		if err != nil {
			return value{}, err
		}
		return value{kind: kindName, name: name}, nil
	case b == '[':
		return l.parseArray()
	case b >= '0' && b <= '9', b == '+', b == '-', b == '.':
		return l.parseNumber()
	case b == 't':
		return l.parseKeyword("true", value{kind: kindBool, num: 1})
	case b == 'f':
		return l.parseKeyword("false", value{kind: kindBool})
	case b == 'n':
		return l.parseKeyword("null", value{kind: kindNull})
	default:
		return value{}, errSyntax
	}
}

func (l *lexer) parseKeyword(kw string, v value) (value, error) {
	if !l.peek(kw) {
		return value{}, errSyntax
	}
	l.pos += len(kw)
	return v, nil
}

// parseName parses "/Name". Hash escapes are rare in the keys the probe
// cares about and are left undecoded.
func (l *lexer) parseName() (string, error) {
	if l.eof() || l.data[l.pos] != '/' {
		return "", errSyntax
	}
	l.pos++
	start := l.pos
	for !l.eof() && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos]), nil
}

// parseNumber parses a numeric literal, folding "N G R" into a reference.
func (l *lexer) parseNumber() (value, error) {
	first, err := l.scanNumber()
	if err != nil {
		return value{}, err
	}

	// Lookahead for an indirect reference.
	save := l.pos
	l.skipSpace()
	if !l.eof() && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
		if _, err := l.scanNumber(); err == nil {
			l.skipSpace()
			if !l.eof() && l.data[l.pos] == 'R' &&
				(l.pos+1 >= len(l.data) || isDelim(l.data[l.pos+1])) {
				l.pos++
				return value{kind: kindRef, num: first}, nil
			}
		}
	}
	l.pos = save
	return value{kind: kindNumber, num: first}, nil
}

func (l *lexer) scanNumber() (float64, error) {
	start := l.pos
	if !l.eof() && (l.data[l.pos] == '+' || l.data[l.pos] == '-') {
		l.pos++
	}
	for !l.eof() && (l.data[l.pos] == '.' || (l.data[l.pos] >= '0' && l.data[l.pos] <= '9')) {
		l.pos++
	}
	if l.pos == start {
		return 0, errSyntax
	}
	n, err := strconv.ParseFloat(string(l.data[start:l.pos]), 64)
	if err != nil {
		return 0, errSyntax
	}
	return n, nil
}

// parseString skips over "(...)" with nesting and backslash escapes.
func (l *lexer) parseString() (value, error) {
	l.pos++ // consume '('
	depth := 1
	for !l.eof() {
		switch l.data[l.pos] {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				l.pos++
				return value{kind: kindString}, nil
			}
		}
		l.pos++
	}
	return value{}, errSyntax
}

// parseHexString skips over "<...>".
func (l *lexer) parseHexString() (value, error) {
	l.pos++ // consume '<'
	for !l.eof() {
		if l.data[l.pos] == '>' {
			l.pos++
			return value{kind: kindString}, nil
		}
		l.pos++
	}
	return value{}, errSyntax
}

func (l *lexer) parseArray() (value, error) {
	l.pos++ // consume '['
	for {
		l.skipSpace()
		if l.eof() {
			return value{}, errSyntax
		}
		if l.data[l.pos] == ']' {
			l.pos++
			return value{kind: kindArray}, nil
		}
		if _, err := l.parseValue(); err != nil {
			return value{}, err
		}
	}
}
