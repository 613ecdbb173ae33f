package regexsyntax

import "github.com/OlegKalashnikov2001/lexergen/term"

// parseClass := '[' ['^'] class_content ']'
func (p *Parser) parseClass() (term.Term, error) {
	if err := p.expect('['); err != nil {
		return term.Term{}, err
	}
	negate := p.accept('^')
	body, err := p.parseClassContent()
	if err != nil {
		return term.Term{}, err
	}
	if err := p.expect(']'); err != nil {
		return term.Term{}, err
	}
	if negate {
		return term.New("NOT_CLASS", body), nil
	}
	return term.New("CLASS", body), nil
}

// parseClassContent reads one or more class items (a named class, a
// literal, or a literal range) and concatenates them, mirroring the
// CAT-chain NfaBuilder expects for a class body.
func (p *Parser) parseClassContent() (term.Term, error) {
	var items []term.Term
	for !p.isEOF() && p.peek() != ']' {
		item, err := p.parseClassItem()
		if err != nil {
			return term.Term{}, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return term.Term{}, p.errorf("empty character class")
	}
	out := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		r := out
		out = cat(items[i], &r)
	}
	return out, nil
}

func (p *Parser) parseClassItem() (term.Term, error) {
	if p.peek() == '[' && p.peekAt(1) == ':' {
		return p.parseNamedClass()
	}
	lo, err := p.parseLiteralChar()
	if err != nil {
		return term.Term{}, err
	}
	// a-z: a range, but "a-" at the end of a class (next is ']') is a
	// literal '-' rather than a dangling range.
	if p.peek() == '-' && p.peekAt(1) != ']' && p.peekAt(1) != 0 {
		p.advance() // consume '-'
		hi, err := p.parseLiteralChar()
		if err != nil {
			return term.Term{}, err
		}
		if hi < lo {
			return term.Term{}, p.errorf("invalid range %q-%q", lo, hi)
		}
		return term.New("RANGE", string(lo), string(hi)), nil
	}
	return term.New("LITERAL", string(lo)), nil
}

// parseNamedClass reads "[:name:]" and returns CHARACTER_CLASS(name).
func (p *Parser) parseNamedClass() (term.Term, error) {
	if err := p.expect('['); err != nil {
		return term.Term{}, err
	}
	if err := p.expect(':'); err != nil {
		return term.Term{}, err
	}
	start := p.pos
	for !p.isEOF() && p.peek() != ':' {
		p.advance()
	}
	if p.pos == start {
		return term.Term{}, p.errorf("empty named class")
	}
	name := string(p.runes[start:p.pos])
	if err := p.expect(':'); err != nil {
		return term.Term{}, err
	}
	if err := p.expect(']'); err != nil {
		return term.Term{}, err
	}
	return term.New("CHARACTER_CLASS", name), nil
}
