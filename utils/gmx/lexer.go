package gmx

import "fmt"

// LexDiagnostic records a non-fatal lexical anomaly. Lexing never aborts:
// an unrecognized character is reported, skipped, and scanning resumes.
type LexDiagnostic struct {
	Char rune
	Line int
}

func (d LexDiagnostic) String() string {
	return fmt.Sprintf("illegal character %q at line %d", d.Char, d.Line)
}

// Lexer scans a single command string into tokens. Each call site builds
// its own Lexer; the shared classification tables are read-only.
type Lexer struct {
	input string
	pos   int
	line  int

	diagnostics []LexDiagnostic
}

// NewLexer creates a lexer for the given command string.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Tokenize scans the whole input and returns the token sequence along
// with any diagnostics collected on the way. The returned slice never
// includes an EOF token.
func Tokenize(input string) ([]Token, []LexDiagnostic) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.Next()
		if tok.Type == EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.diagnostics
}

// Diagnostics returns the lexical anomalies recorded so far.
func (l *Lexer) Diagnostics() []LexDiagnostic {
	return l.diagnostics
}

// Next returns the next token, or an EOF token when the input is
// exhausted. Classification follows a fixed precedence: flag, parens,
// filename, float, int, quoted/bare string. The most specific rule is
// tried first so a generic shorter match never shadows a longer one.
func (l *Lexer) Next() Token {
	for l.pos < len(l.input) {
		c := l.input[l.pos]

		switch {
		case c == ' ' || c == '\t':
			l.pos++
			continue
		case c == '\n':
			l.line++
			l.pos++
			continue
		}

		if tok, ok := l.lexFlag(); ok {
			return tok
		}
		if c == '(' {
			l.pos++
			return Token{Type: LPAREN, Value: "(", Line: l.line}
		}
		if c == ')' {
			l.pos++
			return Token{Type: RPAREN, Value: ")", Line: l.line}
		}
		if tok, ok := l.lexFilename(); ok {
			return tok
		}
		if tok, ok := l.lexNumber(); ok {
			return tok
		}
		if tok, ok := l.lexString(); ok {
			return tok
		}

		// Nothing matched: record the character and resume one byte on.
		l.diagnostics = append(l.diagnostics, LexDiagnostic{Char: rune(c), Line: l.line})
		l.pos++
	}
	return Token{Type: EOF, Line: l.line}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// lexFlag matches a dash followed by a letter and any run of letters and
// digits. A dash followed by a digit is left for the number rules.
func (l *Lexer) lexFlag() (Token, bool) {
	if l.input[l.pos] != '-' || l.pos+1 >= len(l.input) || !isLetter(l.input[l.pos+1]) {
		return Token{}, false
	}
	end := l.pos + 2
	for end < len(l.input) && (isLetter(l.input[end]) || isDigit(l.input[end])) {
		end++
	}
	tok := Token{Type: FLAG, Value: l.input[l.pos:end], Line: l.line}
	l.pos = end
	return tok, true
}

// lexFilename matches a run of letters, digits, underscores, slashes and
// dashes followed by a dot and a whitelisted three-letter extension.
func (l *Lexer) lexFilename() (Token, bool) {
	end := l.pos
	for end < len(l.input) {
		c := l.input[end]
		if isLetter(c) || isDigit(c) || c == '_' || c == '/' || c == '-' {
			end++
			continue
		}
		break
	}
	if end == l.pos || end >= len(l.input) || l.input[end] != '.' {
		return Token{}, false
	}
	if end+4 > len(l.input) || !fileExtensions[l.input[end+1:end+4]] {
		return Token{}, false
	}
	tok := Token{Type: FILENAME, Value: l.input[l.pos : end+4], Line: l.line}
	l.pos = end + 4
	return tok, true
}

// lexNumber matches a float (digits, dot, digits, optional exponent) or,
// failing the fractional part, a plain integer. Both accept a leading
// minus sign.
func (l *Lexer) lexNumber() (Token, bool) {
	start := l.pos
	end := start
	if end < len(l.input) && l.input[end] == '-' {
		end++
	}
	digitsStart := end
	for end < len(l.input) && isDigit(l.input[end]) {
		end++
	}
	if end == digitsStart {
		return Token{}, false
	}

	// Fractional part makes it a float; otherwise fall back to INT.
	if end+1 < len(l.input) && l.input[end] == '.' && isDigit(l.input[end+1]) {
		end += 2
		for end < len(l.input) && isDigit(l.input[end]) {
			end++
		}
		if exp, ok := l.lexExponent(end); ok {
			end = exp
		}
		tok := Token{Type: FLOAT, Value: l.input[start:end], Line: l.line}
		l.pos = end
		return tok, true
	}

	tok := Token{Type: INT, Value: l.input[start:end], Line: l.line}
	l.pos = end
	return tok, true
}

// lexExponent matches an optional e/E exponent suffix starting at pos.
func (l *Lexer) lexExponent(pos int) (int, bool) {
	if pos >= len(l.input) || (l.input[pos] != 'e' && l.input[pos] != 'E') {
		return pos, false
	}
	end := pos + 1
	if end < len(l.input) && (l.input[end] == '+' || l.input[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(l.input) && isDigit(l.input[end]) {
		end++
	}
	if end == digitsStart {
		return pos, false
	}
	return end, true
}

// lexString matches a double- or single-quoted literal (quotes stripped)
// or a bare identifier, which is then reclassified into GMX, COMMAND or
// STRING. An unterminated quote matches nothing and falls through to the
// illegal-character path.
func (l *Lexer) lexString() (Token, bool) {
	c := l.input[l.pos]

	if c == '"' || c == '\'' {
		for end := l.pos + 1; end < len(l.input); end++ {
			if l.input[end] == c {
				tok := Token{Type: STRING, Value: l.input[l.pos+1 : end], Line: l.line}
				l.pos = end + 1
				return tok, true
			}
		}
		return Token{}, false
	}

	if !isLetter(c) && c != '_' {
		return Token{}, false
	}
	end := l.pos + 1
	for end < len(l.input) {
		c := l.input[end]
		if isLetter(c) || isDigit(c) || c == '_' {
			end++
			continue
		}
		break
	}
	word := l.input[l.pos:end]
	l.pos = end
	return Token{Type: classifyWord(word), Value: word, Line: l.line}, true
}
