package ruledef

import (
	"strconv"
	"strings"

	"github.com/OlegKalashnikov2001/lexergen/regexsyntax"
	"github.com/OlegKalashnikov2001/lexergen/term"
)

// Parser holds the mutable cursor over one rule-file source plus the
// state accumulated while parsing it (aliases seen so far, the
// monotonic precedence counter).
type Parser struct {
	src          []rune
	pos          int
	precedence   int
	aliasText    map[string]string // name -> raw pattern, for $-expansion
	aliasNames   map[string]bool
	seenDefault  map[string]bool
	seenEOS      map[string]bool
	seenCatchAll map[string]bool
}

// Parse parses a complete rule-file source.
func Parse(source string) (*File, error) {
	p := &Parser{
		src:          []rune(source),
		aliasText:    map[string]string{},
		aliasNames:   map[string]bool{},
		seenDefault:  map[string]bool{},
		seenEOS:      map[string]bool{},
		seenCatchAll: map[string]bool{},
	}
	f := &File{}
	for {
		p.skipSpace()
		if p.isEOF() {
			break
		}
		if p.peek() == '<' {
			block, err := p.parseStateBlock()
			if err != nil {
				return nil, err
			}
			f.States = append(f.States, *block)
			continue
		}
		alias, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		f.Aliases = append(f.Aliases, *alias)
	}
	return f, nil
}

func (p *Parser) isEOF() bool { return p.pos >= len(p.src) }

func (p *Parser) peek() rune {
	if p.isEOF() {
		return 0
	}
	return p.src[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	i := p.pos + offset
	if i < 0 || i >= len(p.src) {
		return 0
	}
	return p.src[i]
}

func (p *Parser) advance() rune {
	r := p.peek()
	p.pos++
	return r
}

func (p *Parser) accept(r rune) bool {
	if p.peek() == r {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) expect(r rune) error {
	if !p.accept(r) {
		return p.errorf("expected %q, got %q", r, p.peek())
	}
	return nil
}

func (p *Parser) skipSpace() {
	for !p.isEOF() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.advance()
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentRune(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func (p *Parser) parseIdent() (string, error) {
	if !isIdentStart(p.peek()) {
		return "", p.errorf("expected identifier, got %q", p.peek())
	}
	start := p.pos
	for !p.isEOF() && isIdentRune(p.peek()) {
		p.advance()
	}
	return string(p.src[start:p.pos]), nil
}

// parseAlias := IDENT '=' regex ';'
func (p *Parser) parseAlias() (*Alias, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if err := p.expect('='); err != nil {
		return nil, err
	}
	p.skipSpace()
	start := p.pos
	for !p.isEOF() && p.peek() != ';' {
		p.advance()
	}
	if p.isEOF() {
		return nil, p.errorf("unterminated alias %q (missing ;)", name)
	}
	raw := strings.TrimSpace(string(p.src[start:p.pos]))
	p.advance() // consume ';'

	if p.aliasNames[name] {
		return nil, &ConflictError{Kind: ConflictAliasRedefined, Name: name}
	}
	expanded, err := expandAliases(raw, p.aliasText)
	if err != nil {
		return nil, err
	}
	t, err := regexsyntax.Parse(expanded)
	if err != nil {
		return nil, err
	}
	p.aliasNames[name] = true
	p.aliasText[name] = expanded
	return &Alias{Name: name, Pattern: expanded, Term: t}, nil
}

// parseStateBlock := '<' IDENT '>' rule*
func (p *Parser) parseStateBlock() (*StateBlock, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	p.skipSpace()
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	block := &StateBlock{Name: name}
	for {
		p.skipSpace()
		if p.isEOF() || p.peek() == '<' {
			break
		}
		rule, err := p.parseRule(name)
		if err != nil {
			return nil, err
		}
		block.Rules = append(block.Rules, *rule)
	}
	return block, nil
}

// parseRule handles the four rule shapes, tagging the result with the
// next precedence value.
func (p *Parser) parseRule(stateName string) (*Rule, error) {
	kind, regexTerm, err := p.parseRulePattern()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	action, err := p.parseAction()
	if err != nil {
		return nil, err
	}
	if action.Transition == "continue" && stateName == "default" {
		action.Transition = ""
	}

	switch kind {
	case RuleDefaultAction:
		if p.seenDefault[stateName] {
			return nil, &ConflictError{Kind: ConflictDefaultActionTwice, State: stateName}
		}
		p.seenDefault[stateName] = true
	case RuleEOS:
		if p.seenEOS[stateName] {
			return nil, &ConflictError{Kind: ConflictEOSTwice, State: stateName}
		}
		p.seenEOS[stateName] = true
	case RuleCatchAll:
		if p.seenCatchAll[stateName] {
			return nil, &ConflictError{Kind: ConflictCatchAllTwice, State: stateName}
		}
		p.seenCatchAll[stateName] = true
	}

	rule := &Rule{Kind: kind, Regex: regexTerm, Action: action, Precedence: p.precedence}
	p.precedence++
	return rule, nil
}

// parseRulePattern reads the left-hand side of a rule: one of the three
// reserved words (recognized only when not itself a bound alias name and
// followed directly by the action opener) or a regex.
func (p *Parser) parseRulePattern() (RuleKind, term.Term, error) {
	if isIdentStart(p.peek()) {
		save := p.pos
		word, err := p.parseIdent()
		if err == nil {
			kind, isReserved := reservedRuleKind(word)
			lookaheadPos := p.pos
			p.skipSpace()
			nextIsAction := p.peek() == '«' // «
			p.pos = lookaheadPos
			if isReserved && nextIsAction && !p.aliasNames[word] {
				return kind, term.Term{}, nil
			}
		}
		p.pos = save
	}
	start := p.pos
	for !p.isEOF() && p.peek() != '«' {
		p.advance()
	}
	if p.isEOF() {
		return 0, term.Term{}, p.errorf("unterminated rule (missing «)")
	}
	raw := strings.TrimSpace(string(p.src[start:p.pos]))
	if raw == "" {
		return 0, term.Term{}, p.errorf("empty rule pattern")
	}
	expanded, err := expandAliases(raw, p.aliasText)
	if err != nil {
		return 0, term.Term{}, err
	}
	t, err := regexsyntax.Parse(expanded)
	if err != nil {
		return 0, term.Term{}, err
	}
	return RuleRegex, t, nil
}

func reservedRuleKind(word string) (RuleKind, bool) {
	switch word {
	case "default_action":
		return RuleDefaultAction, true
	case "eos":
		return RuleEOS, true
	case "catch_all":
		return RuleCatchAll, true
	default:
		return 0, false
	}
}

// parseAction := '«' entry? '|' match? '|' transition? '»'
func (p *Parser) parseAction() (Action, error) {
	if err := p.expect('«'); err != nil {
		return Action{}, err
	}
	p.skipSpace()
	entry, err := p.parseMaybeCall()
	if err != nil {
		return Action{}, err
	}
	p.skipSpace()
	if err := p.expect('|'); err != nil {
		return Action{}, err
	}
	p.skipSpace()
	match, err := p.parseMaybeCall()
	if err != nil {
		return Action{}, err
	}
	p.skipSpace()
	if err := p.expect('|'); err != nil {
		return Action{}, err
	}
	p.skipSpace()
	transition, err := p.parseMaybeTransition()
	if err != nil {
		return Action{}, err
	}
	p.skipSpace()
	if err := p.expect('»'); err != nil {
		return Action{}, err
	}
	return Action{Entry: entry, Match: match, Transition: transition}, nil
}

func (p *Parser) parseMaybeTransition() (string, error) {
	p.skipSpace()
	if p.peek() == '|' || p.peek() == '»' {
		return "", nil
	}
	return p.parseIdent()
}

// parseMaybeCall := (IDENT ('(' args ')')?)?
func (p *Parser) parseMaybeCall() (term.Term, error) {
	p.skipSpace()
	if !isIdentStart(p.peek()) {
		return term.Term{}, nil
	}
	name, err := p.parseIdent()
	if err != nil {
		return term.Term{}, err
	}
	p.skipSpace()
	if !p.accept('(') {
		return term.New(name), nil
	}
	var args []any
	p.skipSpace()
	if p.peek() != ')' {
		for {
			arg, err := p.parseArg()
			if err != nil {
				return term.Term{}, err
			}
			args = append(args, arg)
			p.skipSpace()
			if !p.accept(',') {
				break
			}
			p.skipSpace()
		}
	}
	p.skipSpace()
	if err := p.expect(')'); err != nil {
		return term.Term{}, err
	}
	return term.New(name, args...), nil
}

func (p *Parser) parseArg() (any, error) {
	p.skipSpace()
	switch {
	case p.peek() == '"':
		return p.parseQuotedString()
	case p.peek() >= '0' && p.peek() <= '9':
		return p.parseInt()
	case isIdentStart(p.peek()):
		name, err := p.parseIdent()
		return name, err
	default:
		return nil, p.errorf("expected an action argument, got %q", p.peek())
	}
}

func (p *Parser) parseQuotedString() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	start := p.pos
	for !p.isEOF() && p.peek() != '"' {
		p.advance()
	}
	if p.isEOF() {
		return "", p.errorf("unterminated string")
	}
	s := string(p.src[start:p.pos])
	p.advance() // closing quote
	return s, nil
}

func (p *Parser) parseInt() (int, error) {
	start := p.pos
	for !p.isEOF() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil {
		return 0, p.errorf("invalid number: %v", err)
	}
	return n, nil
}
