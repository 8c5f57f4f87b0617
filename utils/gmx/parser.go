package gmx

import "strconv"

// Parser implements a recursive descent parser for the command grammar:
//
//	command    := GMX COMMAND option*
//	option     := FLAG value?
//	value      := FILENAME | STRING | FLOAT | INT | vector
//	vector     := '(' number+ ')'
//	number     := FLOAT | INT
//
// Each parse builds its own Parser; no state survives the call.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes and parses a single command string. On success the
// returned Command has its options merged left to right, a later
// duplicate flag overwriting an earlier one. Any structural mismatch
// returns a *ParseError and no Command.
func Parse(input string) (*Command, error) {
	tokens, _ := Tokenize(input)
	p := &Parser{tokens: tokens}
	return p.parseCommand()
}

// current returns the token at the cursor, or nil past the end.
func (p *Parser) current() *Token {
	if p.pos < len(p.tokens) {
		return &p.tokens[p.pos]
	}
	return nil
}

// match reports whether the current token has any of the given types.
func (p *Parser) match(types ...TokenType) bool {
	tok := p.current()
	if tok == nil {
		return false
	}
	for _, t := range types {
		if tok.Type == t {
			return true
		}
	}
	return false
}

// consume advances past the current token if it has the wanted type and
// returns it; otherwise it returns a ParseError describing what was
// expected.
func (p *Parser) consume(tokenType TokenType, expected string) (Token, error) {
	tok := p.current()
	if tok == nil {
		return Token{}, &ParseError{Expected: expected}
	}
	if tok.Type != tokenType {
		return Token{}, &ParseError{Token: tok, Expected: expected}
	}
	p.pos++
	return *tok, nil
}

func (p *Parser) parseCommand() (*Command, error) {
	if _, err := p.consume(GMX, "the 'gmx' keyword"); err != nil {
		return nil, err
	}
	name, err := p.consume(COMMAND, "a GROMACS command name")
	if err != nil {
		return nil, err
	}

	options := make(map[string]OptionValue)
	for p.match(FLAG) {
		flag := *p.current()
		p.pos++

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		options[flag.Value] = value
	}

	if tok := p.current(); tok != nil {
		return nil, &ParseError{Token: tok, Expected: "a flag or end of command"}
	}

	return &Command{Kind: CommandKind, Name: name.Value, Options: options}, nil
}

// parseValue parses the optional value following a flag. A flag directly
// followed by another flag, or by nothing, carries Boolean(true).
func (p *Parser) parseValue() (OptionValue, error) {
	tok := p.current()
	if tok == nil || tok.Type == FLAG {
		return Bool(), nil
	}

	switch tok.Type {
	case FILENAME:
		p.pos++
		return Filename(tok.Value), nil
	case STRING:
		p.pos++
		return Text(tok.Value), nil
	case FLOAT, INT:
		p.pos++
		return p.numberValue(*tok)
	case LPAREN:
		return p.parseVector()
	}
	return OptionValue{}, &ParseError{Token: tok, Expected: "a flag value"}
}

// parseVector parses '(' number+ ')'.
func (p *Parser) parseVector() (OptionValue, error) {
	if _, err := p.consume(LPAREN, "'('"); err != nil {
		return OptionValue{}, err
	}

	var members []OptionValue
	for p.match(FLOAT, INT) {
		member, err := p.numberValue(*p.current())
		if err != nil {
			return OptionValue{}, err
		}
		members = append(members, member)
		p.pos++
	}
	if len(members) == 0 {
		tok := p.current()
		return OptionValue{}, &ParseError{Token: tok, Expected: "a numeric vector member"}
	}

	if _, err := p.consume(RPAREN, "')' closing the vector"); err != nil {
		return OptionValue{}, err
	}
	return Vector(members...), nil
}

// numberValue converts a FLOAT or INT token into its value variant.
func (p *Parser) numberValue(tok Token) (OptionValue, error) {
	if tok.Type == FLOAT {
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return OptionValue{}, &ParseError{Token: &tok, Expected: "a float literal"}
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return OptionValue{}, &ParseError{Token: &tok, Expected: "an integer literal"}
	}
	return Int(i), nil
}
