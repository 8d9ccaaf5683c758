// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"dianabeauty/internal/models"
)

// overridesDecl is the declaration whose object literal holds the records.
const overridesDecl = "export const productOverrides"

// overridesHeader is regenerated verbatim on every write.
const overridesHeader = "import type { Product } from '@/contexts/CartContext';\n" +
	"\n" +
	"export interface ProductOverride extends Partial<Product> {\n" +
	"  price?: number;\n" +
	"}\n" +
	"\n" +
	"/**\n" +
	" * Surcharge facultative pour personnaliser les informations produits.\n" +
	" * - La clé correspond à l'ID généré automatiquement (`homme-1`, `femme-3`, etc.)\n" +
	" * - Remplissez uniquement les champs que vous souhaitez remplacer.\n" +
	" */\n" +
	overridesDecl + ": Record<string, ProductOverride> = {\n"

const overridesFooter = "\n};\n"

// errNoDeclaration means the file does not contain the overrides object.
var errNoDeclaration = errors.New("productOverrides declaration not found")

// EncodeOverrides renders the complete override file for set. Records with
// no field set are omitted.
func EncodeOverrides(set *models.OverrideSet) string {
	var entries []string
	for _, id := range set.IDs() {
		rec, _ := set.Get(id)
		if rec.IsEmpty() {
			continue
		}
		var parts []string
		if rec.Name != nil {
			parts = append(parts, "name: '"+escapeLiteral(*rec.Name)+"'")
		}
		if rec.Price != nil {
			parts = append(parts, "price: "+strconv.FormatFloat(*rec.Price, 'f', -1, 64))
		}
		if rec.Description != nil {
			parts = append(parts, "description: '"+escapeLiteral(*rec.Description)+"'")
		}
		entries = append(entries, "  '"+escapeLiteral(id)+"': {\n    "+strings.Join(parts, ",\n    ")+"\n  }")
	}
	return overridesHeader + strings.Join(entries, ",\n") + overridesFooter
}

// escapeLiteral escapes s for a single-quoted literal: backslashes are
// doubled, single quotes are backslash-escaped, newlines become the two
// characters \n and carriage returns are dropped.
func escapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecodeOverrides parses the records out of an override file. Entries that
// are not well-formed `key: { field: value, ... }` blocks are skipped and
// counted in skipped; only a missing declaration is an error.
func DecodeOverrides(text string) (set *models.OverrideSet, skipped int, err error) {
	decl := strings.Index(text, overridesDecl)
	if decl < 0 {
		return nil, 0, errNoDeclaration
	}
	eq := strings.IndexByte(text[decl:], '=')
	if eq < 0 {
		return nil, 0, errNoDeclaration
	}
	open := strings.IndexByte(text[decl+eq:], '{')
	if open < 0 {
		return nil, 0, errNoDeclaration
	}

	p := newLiteralParser(lex(text[decl+eq+open:]))
	set = models.NewOverrideSet()
	skipped = p.parseRecords(set)
	return set, skipped, nil
}

// --- lexer ---

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokString
	tokNumber
	tokIdent
	tokOther
	tokBad // unterminated string or comment; the rest of its line is dropped
)

type token struct {
	kind tokenKind
	text string // decoded value for strings, raw text otherwise
	bol  bool   // first token on its line
}

// lex tokenizes a JavaScript-like object literal. Whitespace and comments
// are dropped. An unterminated string or block comment becomes a tokBad
// token and lexing resumes on the following line.
func lex(src string) []token {
	var toks []token
	bol := true
	emit := func(t token) {
		t.bol = bol
		bol = false
		toks = append(toks, t)
	}
	// bad records a lexical error at i and returns the start of the next line.
	bad := func(i int) int {
		end := strings.IndexByte(src[i:], '\n')
		if end < 0 {
			end = len(src) - i
		}
		emit(token{kind: tokBad, text: src[i : i+end]})
		return i + end
	}
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			bol = true
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case strings.HasPrefix(src[i:], "//"):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				i = len(src)
			} else {
				i += end
			}
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				i = bad(i)
				continue
			}
			if strings.Contains(src[i:i+2+end], "\n") {
				bol = true
			}
			i += end + 4
		case c == '{':
			emit(token{kind: tokLBrace, text: "{"})
			i++
		case c == '}':
			emit(token{kind: tokRBrace, text: "}"})
			i++
		case c == '[':
			emit(token{kind: tokLBracket, text: "["})
			i++
		case c == ']':
			emit(token{kind: tokRBracket, text: "]"})
			i++
		case c == ':':
			emit(token{kind: tokColon, text: ":"})
			i++
		case c == ',':
			emit(token{kind: tokComma, text: ","})
			i++
		case c == '\'' || c == '"':
			s, n, ok := lexString(src[i:])
			if !ok {
				i = bad(i)
				continue
			}
			emit(token{kind: tokString, text: s})
			i += n
		case c == '-' || c == '.' || (c >= '0' && c <= '9'):
			n := lexNumber(src[i:])
			emit(token{kind: tokNumber, text: src[i : i+n]})
			i += n
		case isIdentByte(c):
			j := i
			for j < len(src) && (isIdentByte(src[j]) || (src[j] >= '0' && src[j] <= '9')) {
				j++
			}
			emit(token{kind: tokIdent, text: src[i:j]})
			i = j
		default:
			_, size := utf8.DecodeRuneInString(src[i:])
			emit(token{kind: tokOther, text: src[i : i+size]})
			i += size
		}
	}
	return append(toks, token{kind: tokEOF, bol: bol})
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func lexNumber(src string) int {
	n := 0
	if n < len(src) && (src[n] == '-' || src[n] == '+') {
		n++
	}
	for n < len(src) {
		c := src[n]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' {
			n++
			continue
		}
		if (c == '-' || c == '+') && (src[n-1] == 'e' || src[n-1] == 'E') {
			n++
			continue
		}
		break
	}
	if n == 0 {
		return 1
	}
	return n
}

// lexString decodes a quoted literal at the start of src. Escapes are
// resolved left to right in a single pass, so `\\'` is a backslash followed
// by the closing quote and never an escaped quote.
func lexString(src string) (value string, consumed int, ok bool) {
	quote := src[0]
	var b strings.Builder
	i := 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == quote:
			return b.String(), i + 1, true
		case c == '\n':
			return "", 0, false
		case c == '\\':
			if i+1 >= len(src) {
				return "", 0, false
			}
			e := src[i+1]
			i += 2
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'v':
				b.WriteByte('\v')
			case '0':
				b.WriteByte(0)
			case '\n':
				// line continuation
			case 'u':
				if i+4 <= len(src) {
					if v, err := strconv.ParseUint(src[i:i+4], 16, 32); err == nil {
						b.WriteRune(rune(v))
						i += 4
						continue
					}
				}
				b.WriteByte('u')
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, false
}

// --- parser ---

type literalParser struct {
	toks []token
	pos  int

	// closing is the index of the last '}', taken as the end of the outer
	// object when resynchronising after a lexical error.
	closing int
}

func newLiteralParser(toks []token) *literalParser {
	p := &literalParser{toks: toks, closing: len(toks) - 1}
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].kind == tokRBrace {
			p.closing = i
			break
		}
	}
	return p
}

func (p *literalParser) peek() token { return p.toks[p.pos] }

func (p *literalParser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// parseRecords reads the outer object. The opening brace is the first token.
func (p *literalParser) parseRecords(set *models.OverrideSet) (skipped int) {
	if p.next().kind != tokLBrace {
		return 0
	}
	for {
		switch p.peek().kind {
		case tokEOF, tokRBrace:
			return skipped
		case tokComma:
			p.next()
			continue
		}

		start := p.pos
		id, rec, err := p.parseEntry()
		if err != nil {
			p.pos = start
			p.skipEntry()
			skipped++
			continue
		}
		set.Set(id, rec)
	}
}

// parseEntry parses `key: { field: value, ... }` followed by ',' or '}'.
func (p *literalParser) parseEntry() (string, models.OverrideRecord, error) {
	var rec models.OverrideRecord

	key := p.next()
	if key.kind != tokString && key.kind != tokIdent && key.kind != tokNumber {
		return "", rec, fmt.Errorf("unexpected %q where a key was expected", key.text)
	}
	if key.text == "" {
		return "", rec, errors.New("empty key")
	}
	if t := p.next(); t.kind != tokColon {
		return "", rec, fmt.Errorf("expected ':' after key %q", key.text)
	}
	if t := p.next(); t.kind != tokLBrace {
		return "", rec, fmt.Errorf("value of %q is not an object", key.text)
	}

	for {
		t := p.next()
		switch t.kind {
		case tokRBrace:
			if k := p.peek().kind; k != tokComma && k != tokRBrace && k != tokEOF {
				return "", rec, fmt.Errorf("unexpected %q after entry %q", p.peek().text, key.text)
			}
			return key.text, rec, nil
		case tokComma:
			continue
		case tokString, tokIdent:
		default:
			return "", rec, fmt.Errorf("unexpected %q in entry %q", t.text, key.text)
		}

		if c := p.next(); c.kind != tokColon {
			return "", rec, fmt.Errorf("expected ':' after field %q", t.text)
		}

		switch t.text {
		case "name", "description":
			v := p.next()
			if v.kind != tokString {
				return "", rec, fmt.Errorf("field %q of %q is not a string", t.text, key.text)
			}
			s := v.text
			if t.text == "name" {
				rec.Name = &s
			} else {
				rec.Description = &s
			}
		case "price":
			v := p.next()
			if v.kind != tokNumber {
				return "", rec, fmt.Errorf("field price of %q is not a number", key.text)
			}
			f, err := strconv.ParseFloat(v.text, 64)
			if err != nil {
				return "", rec, fmt.Errorf("field price of %q: %w", key.text, err)
			}
			rec.Price = &f
		default:
			if err := p.skipValue(); err != nil {
				return "", rec, err
			}
		}

		if k := p.peek().kind; k != tokComma && k != tokRBrace {
			return "", rec, fmt.Errorf("unexpected %q in entry %q", p.peek().text, key.text)
		}
	}
}

// skipValue consumes one value of a field this store does not manage.
func (p *literalParser) skipValue() error {
	t := p.next()
	switch t.kind {
	case tokString, tokNumber, tokIdent:
		return nil
	case tokLBrace, tokLBracket:
		depth := 1
		for depth > 0 {
			switch p.next().kind {
			case tokLBrace, tokLBracket:
				depth++
			case tokRBrace, tokRBracket:
				depth--
			case tokEOF:
				return errors.New("unterminated value")
			}
		}
		return nil
	default:
		return fmt.Errorf("unexpected %q where a value was expected", t.text)
	}
}

// skipEntry advances past the current entry: up to and including the next
// comma at nesting depth zero, or up to (not including) the closing brace of
// the outer object. An entry holding a lexical error has unreliable nesting,
// so it is skipped line by line instead.
func (p *literalParser) skipEntry() {
	depth := 0
	for {
		switch p.peek().kind {
		case tokEOF:
			return
		case tokBad:
			p.resync()
			return
		case tokLBrace, tokLBracket:
			depth++
		case tokRBrace:
			if depth == 0 {
				return
			}
			depth--
		case tokRBracket:
			if depth > 0 {
				depth--
			}
		case tokComma:
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

// resync advances to the next line that starts a `key: {` entry, or to the
// closing brace of the outer object.
func (p *literalParser) resync() {
	p.next()
	for p.peek().kind != tokEOF && p.pos < p.closing {
		if p.atEntryStart() {
			return
		}
		p.next()
	}
}

func (p *literalParser) atEntryStart() bool {
	if p.pos+2 >= len(p.toks) {
		return false
	}
	key, colon, brace := p.toks[p.pos], p.toks[p.pos+1], p.toks[p.pos+2]
	switch key.kind {
	case tokString, tokIdent, tokNumber:
	default:
		return false
	}
	return key.bol && colon.kind == tokColon && brace.kind == tokLBrace
}
