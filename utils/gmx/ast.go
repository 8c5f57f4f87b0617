package gmx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CommandKind identifies the envelope of a parsed record. Only one kind
// exists today; the validator still checks it so that anything else fed
// into it is rejected outright.
const CommandKind = "gromacs_command"

// ValueKind discriminates the variants of an OptionValue.
type ValueKind int

const (
	// BoolValue marks a flag supplied without a value.
	BoolValue ValueKind = iota
	FilenameValue
	TextValue
	FloatValue
	IntValue
	VectorValue
)

// OptionValue is the tagged union of values a flag can carry. Exactly one
// variant is populated, selected by Kind. Vector members are themselves
// OptionValues restricted to the Float and Int variants, preserving the
// order and int-versus-float identity of the input.
type OptionValue struct {
	Kind   ValueKind
	Text   string // FilenameValue, TextValue
	Float  float64
	Int    int64
	Vector []OptionValue
}

// Filename builds a FilenameValue.
func Filename(name string) OptionValue {
	return OptionValue{Kind: FilenameValue, Text: name}
}

// Text builds a TextValue.
func Text(s string) OptionValue {
	return OptionValue{Kind: TextValue, Text: s}
}

// Float builds a FloatValue.
func Float(f float64) OptionValue {
	return OptionValue{Kind: FloatValue, Float: f}
}

// Int builds an IntValue.
func Int(i int64) OptionValue {
	return OptionValue{Kind: IntValue, Int: i}
}

// Vector builds a VectorValue from numeric members.
func Vector(members ...OptionValue) OptionValue {
	return OptionValue{Kind: VectorValue, Vector: members}
}

// Bool builds the valueless-flag marker.
func Bool() OptionValue {
	return OptionValue{Kind: BoolValue}
}

// String renders the value back to command-line text.
func (v OptionValue) String() string {
	switch v.Kind {
	case FilenameValue, TextValue:
		return v.Text
	case FloatValue:
		// Keep a decimal point so the text re-lexes as a float, not an int.
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case IntValue:
		return strconv.FormatInt(v.Int, 10)
	case VectorValue:
		parts := make([]string, len(v.Vector))
		for i, m := range v.Vector {
			parts[i] = m.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case BoolValue:
		return "true"
	}
	return ""
}

// Command is the immutable result of parsing one command string.
type Command struct {
	Kind    string
	Name    string
	Options map[string]OptionValue

	// Validation is attached by ParseCommand when validation is
	// requested; nil otherwise.
	Validation *ValidationResult
}

// Render reconstructs a canonical command string from the parsed record.
// Flags are emitted in sorted order so the output is deterministic;
// valueless flags render with no trailing value. Re-parsing the result
// yields an equivalent Command.
func (c *Command) Render() string {
	var b strings.Builder
	b.WriteString("gmx ")
	b.WriteString(c.Name)

	flags := make([]string, 0, len(c.Options))
	for flag := range c.Options {
		flags = append(flags, flag)
	}
	sort.Strings(flags)

	for _, flag := range flags {
		b.WriteByte(' ')
		b.WriteString(flag)
		v := c.Options[flag]
		if v.Kind == BoolValue {
			continue
		}
		b.WriteByte(' ')
		if v.Kind == TextValue && !isBareWord(v.Text) {
			b.WriteByte('"')
			b.WriteString(v.Text)
			b.WriteByte('"')
		} else {
			b.WriteString(v.String())
		}
	}
	return b.String()
}

// isBareWord reports whether s survives re-lexing as a single generic
// identifier, so Render can leave it unquoted. Words that would
// reclassify as the gmx keyword or a command name must stay quoted.
func isBareWord(s string) bool {
	if s == "" || (!isLetter(s[0]) && s[0] != '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) && s[i] != '_' {
			return false
		}
	}
	return classifyWord(s) == STRING
}

// ParseError is the structured failure returned when a command string
// does not match the grammar. Parsing is all-or-nothing: no partial
// Command accompanies a ParseError.
type ParseError struct {
	Token    *Token // nil when input ended prematurely
	Expected string
}

func (e *ParseError) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("syntax error at end of input: expected %s", e.Expected)
	}
	return fmt.Sprintf("syntax error at %s: expected %s", e.Token, e.Expected)
}
