package gmx

import (
	"fmt"
	"strings"
)

// ValidationResult is the verdict of validating a single parsed command.
//
// Every current warning is advisory, which makes Valid true for any
// command with the right envelope. That mirrors the workflow rules this
// validator encodes: downstream policy should look at Warnings to decide
// what blocks, not at Valid alone.
type ValidationResult struct {
	Valid    bool
	Warnings []string
}

// WarningSummary returns the warnings as one newline-joined block,
// suitable for feeding back to a model for regeneration. Empty when the
// command produced no warnings.
func (r ValidationResult) WarningSummary() string {
	return strings.Join(r.Warnings, "\n")
}

// commandFlags maps the covered workflow commands to their accepted flag
// sets. Commands absent from this table skip flag-set checking entirely.
// Assembled once; never mutated.
var commandFlags = map[string]map[string]bool{
	"pdb2gmx":  flagSet("-f", "-o", "-p", "-i", "-n", "-q", "-ff", "-water"),
	"editconf": flagSet("-f", "-o", "-n", "-bf", "-box", "-angles", "-d", "-c", "-center"),
	"solvate":  flagSet("-cp", "-cs", "-o", "-p", "-box", "-radius"),
	"grompp":   flagSet("-f", "-c", "-r", "-p", "-n", "-o", "-t", "-maxwarn"),
	"mdrun":    flagSet("-s", "-o", "-x", "-c", "-e", "-g", "-cpi", "-cpo", "-deffnm", "-v", "-nt", "-ntmpi"),
	"energy":   flagSet("-f", "-o", "-xvg"),
}

func flagSet(flags ...string) map[string]bool {
	set := make(map[string]bool, len(flags))
	for _, f := range flags {
		set[f] = true
	}
	return set
}

// Validate checks one parsed command against the workflow rules and
// returns a verdict. Pure function of its input and the static tables;
// it never logs and has no side effects.
//
// The only hard failure is an input that is not a GROMACS command
// envelope at all. Everything else surfaces as warnings: unknown flags
// for the covered commands, and missing required flags for pdb2gmx,
// grompp and mdrun.
func Validate(cmd *Command) ValidationResult {
	if cmd == nil || cmd.Kind != CommandKind {
		return ValidationResult{Valid: false, Warnings: []string{"Not a valid GROMACS command"}}
	}

	var warnings []string

	if accepted, covered := commandFlags[cmd.Name]; covered {
		for flag := range cmd.Options {
			if !accepted[flag] {
				warnings = append(warnings,
					fmt.Sprintf("Warning: '%s' may not be a valid flag for 'gmx %s'", flag, cmd.Name))
			}
		}
	}

	switch cmd.Name {
	case "pdb2gmx":
		if _, ok := cmd.Options["-f"]; !ok {
			warnings = append(warnings, "Warning: 'pdb2gmx' typically requires -f (input PDB file)")
		}
	case "grompp":
		if _, ok := cmd.Options["-f"]; !ok {
			warnings = append(warnings, "Warning: 'grompp' requires -f (MDP file)")
		}
		if _, ok := cmd.Options["-c"]; !ok {
			warnings = append(warnings, "Warning: 'grompp' requires -c (coordinate file)")
		}
		if _, ok := cmd.Options["-p"]; !ok {
			warnings = append(warnings, "Warning: 'grompp' requires -p (topology file)")
		}
	case "mdrun":
		_, hasRunInput := cmd.Options["-s"]
		_, hasStem := cmd.Options["-deffnm"]
		if !hasRunInput && !hasStem {
			warnings = append(warnings, "Warning: 'mdrun' requires -s (TPR file) or -deffnm")
		}
	}

	return ValidationResult{Valid: allAdvisory(warnings), Warnings: warnings}
}

// allAdvisory reproduces the historical validity rule: a command is
// valid when it has no warnings, or when every warning is tagged as a
// warning. With all current rules advisory this is effectively always
// true; it is kept distinct from the warning list rather than repaired.
func allAdvisory(warnings []string) bool {
	for _, w := range warnings {
		if !strings.Contains(w, "Warning") {
			return false
		}
	}
	return true
}

// ParseCommand is the primary entry point for single commands: it parses
// the string and, when requested, attaches a validation verdict to the
// returned record.
func ParseCommand(input string, validate bool) (*Command, error) {
	cmd, err := Parse(input)
	if err != nil {
		return nil, err
	}
	if validate {
		result := Validate(cmd)
		cmd.Validation = &result
	}
	return cmd, nil
}
