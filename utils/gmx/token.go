package gmx

import "fmt"

// TokenType classifies a single token of a GROMACS command line.
type TokenType int

const (
	// EOF marks the end of the token stream.
	EOF TokenType = iota

	// GMX is the program invocation keyword ("gmx").
	GMX
	// COMMAND is a recognized GROMACS subcommand (pdb2gmx, mdrun, ...).
	COMMAND
	// FLAG is a dash-prefixed option name (-f, -deffnm, ...).
	FLAG
	// FILENAME is an identifier ending in a whitelisted simulation
	// file extension (protein.pdb, topol.top, ...).
	FILENAME
	// STRING is a quoted literal (quotes stripped) or a bare identifier
	// that is neither the gmx keyword nor a known command.
	STRING
	// FLOAT is a decimal literal with a fractional part and optional
	// exponent (2.0, -1.5e-3).
	FLOAT
	// INT is an optionally signed digit sequence (42, -7).
	INT
	// LPAREN and RPAREN delimit vector literals.
	LPAREN
	RPAREN
)

var tokenNames = [...]string{
	EOF:      "EOF",
	GMX:      "GMX",
	COMMAND:  "COMMAND",
	FLAG:     "FLAG",
	FILENAME: "FILENAME",
	STRING:   "STRING",
	FLOAT:    "FLOAT",
	INT:      "INT",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single classified lexeme. Tokens are immutable: they are
// produced once by the lexer and only read afterwards.
type Token struct {
	Type  TokenType
	Value string // lexeme with quotes already stripped for STRING
	Line  int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q) at line %d", t.Type, t.Value, t.Line)
}

// knownCommands is the fixed set of GROMACS subcommands the parser
// accepts. Assembled once at init and never mutated.
var knownCommands = map[string]bool{
	// Core workflow commands
	"pdb2gmx":  true,
	"editconf": true,
	"solvate":  true,
	"grompp":   true,
	"mdrun":    true,
	"energy":   true,

	// Common analysis commands
	"trjconv":   true,
	"rms":       true,
	"rmsf":      true,
	"gyrate":    true,
	"distance":  true,
	"angle":     true,
	"mindist":   true,
	"hbond":     true,
	"sasa":      true,
	"cluster":   true,
	"density":   true,
	"potential": true,
	"genion":    true,
	"genrestr":  true,
	"make_ndx":  true,
	"do_dssp":   true,
	"rama":      true,
}

// IsKnownCommand reports whether name is a recognized GROMACS subcommand.
func IsKnownCommand(name string) bool {
	return knownCommands[name]
}

// fileExtensions is the whitelist of simulation file extensions the lexer
// treats as filenames. All entries are exactly three characters.
var fileExtensions = map[string]bool{
	"pdb": true, // structure
	"gro": true, // coordinates
	"top": true, // topology
	"mdp": true, // run parameters
	"tpr": true, // binary run input
	"xtc": true, // compressed trajectory
	"trr": true, // trajectory
	"edr": true, // energy
	"cpt": true, // checkpoint
	"xvg": true, // plot data
	"ndx": true, // index groups
	"itp": true, // include topology
	"dat": true, // generic data
	"log": true,
	"out": true,
	"tng": true, // trajectory (TNG)
	"pqr": true, // coordinates with charges
}

// classifyWord relabels a bare identifier after the generic match: the
// program keyword becomes GMX, a known subcommand becomes COMMAND, and
// anything else stays a plain STRING. Pure function; the token is built
// with its final type rather than mutated afterwards.
func classifyWord(word string) TokenType {
	if word == "gmx" {
		return GMX
	}
	if knownCommands[word] {
		return COMMAND
	}
	return STRING
}
