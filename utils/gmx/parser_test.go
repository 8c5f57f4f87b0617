package gmx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, input string) *Command {
	t.Helper()
	cmd, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return cmd
}

func TestParse_BasicCommand(t *testing.T) {
	cmd := mustParse(t, "gmx pdb2gmx -f protein.pdb -o protein.gro")

	if cmd.Kind != CommandKind {
		t.Errorf("Kind = %q, want %q", cmd.Kind, CommandKind)
	}
	if cmd.Name != "pdb2gmx" {
		t.Errorf("Name = %q, want pdb2gmx", cmd.Name)
	}
	want := map[string]OptionValue{
		"-f": Filename("protein.pdb"),
		"-o": Filename("protein.gro"),
	}
	if diff := cmp.Diff(want, cmd.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NoOptions(t *testing.T) {
	cmd := mustParse(t, "gmx mdrun")
	if cmd.Name != "mdrun" {
		t.Errorf("Name = %q, want mdrun", cmd.Name)
	}
	if len(cmd.Options) != 0 {
		t.Errorf("Options = %v, want empty map", cmd.Options)
	}
}

func TestParse_ValuelessFlagIsBoolean(t *testing.T) {
	cmd := mustParse(t, "gmx mdrun -v -deffnm em")
	if got := cmd.Options["-v"]; got.Kind != BoolValue {
		t.Errorf("-v = %v, want Boolean(true)", got)
	}
	if diff := cmp.Diff(Text("em"), cmd.Options["-deffnm"]); diff != "" {
		t.Errorf("-deffnm mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TrailingValuelessFlag(t *testing.T) {
	cmd := mustParse(t, "gmx editconf -f a.gro -c")
	if got := cmd.Options["-c"]; got.Kind != BoolValue {
		t.Errorf("-c = %v, want Boolean(true)", got)
	}
}

func TestParse_DuplicateFlagKeepsLastValue(t *testing.T) {
	cmd := mustParse(t, "gmx editconf -f a.gro -f b.gro")
	if diff := cmp.Diff(Filename("b.gro"), cmd.Options["-f"]); diff != "" {
		t.Errorf("-f mismatch (-want +got):\n%s", diff)
	}
	if len(cmd.Options) != 1 {
		t.Errorf("Options has %d entries, want 1", len(cmd.Options))
	}
}

func TestParse_VectorValue(t *testing.T) {
	cmd := mustParse(t, "gmx editconf -box (2.0 2.0 2.0)")
	want := Vector(Float(2.0), Float(2.0), Float(2.0))
	if diff := cmp.Diff(want, cmd.Options["-box"]); diff != "" {
		t.Errorf("-box mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MixedVectorPreservesMembers(t *testing.T) {
	cmd := mustParse(t, "gmx editconf -box (2.0 3 -1.5e2)")
	want := Vector(Float(2.0), Int(3), Float(-150))
	if diff := cmp.Diff(want, cmd.Options["-box"]); diff != "" {
		t.Errorf("-box mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NumericAndStringValues(t *testing.T) {
	cmd := mustParse(t, `gmx grompp -maxwarn 2 -f em.mdp -t "restart file.cpt"`)
	want := map[string]OptionValue{
		"-maxwarn": Int(2),
		"-f":       Filename("em.mdp"),
		"-t":       Text("restart file.cpt"),
	}
	if diff := cmp.Diff(want, cmd.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"missing keyword", "pdb2gmx -f a.pdb"},
		{"missing command name", "gmx"},
		{"unknown command rejected at grammar level", "gmx frobnicate -f a.pdb"},
		{"value before any flag", "gmx mdrun em.tpr"},
		{"unmatched open paren", "gmx editconf -box (2.0 2.0"},
		{"empty vector", "gmx editconf -box ()"},
		{"stray close paren", "gmx editconf -box 2.0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded with %v, want error", tt.input, cmd)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error type %T, want *ParseError", err)
			}
			if cmd != nil {
				t.Errorf("got partial command %v alongside error", cmd)
			}
		})
	}
}

func TestParse_ErrorCarriesOffendingToken(t *testing.T) {
	_, err := Parse("gmx mdrun em.tpr")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type %T, want *ParseError", err)
	}
	if parseErr.Token == nil || parseErr.Token.Value != "em.tpr" {
		t.Errorf("offending token = %v, want em.tpr", parseErr.Token)
	}
}

func TestParse_ErrorAtEndOfInput(t *testing.T) {
	_, err := Parse("gmx")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type %T, want *ParseError", err)
	}
	if parseErr.Token != nil {
		t.Errorf("Token = %v, want nil end-of-input marker", parseErr.Token)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	inputs := []string{
		"gmx pdb2gmx -f protein.pdb -o protein.gro -water tip3p",
		"gmx editconf -f a.gro -c -d 1.0 -bt cubic",
		"gmx editconf -box (2.0 3 -1.5)",
		"gmx mdrun -v -deffnm em",
		"gmx grompp -maxwarn 2 -f em.mdp",
		"gmx mdrun",
	}
	for _, input := range inputs {
		first := mustParse(t, input)
		second := mustParse(t, first.Render())
		if first.Name != second.Name {
			t.Errorf("round-trip of %q changed name: %q -> %q", input, first.Name, second.Name)
		}
		if diff := cmp.Diff(first.Options, second.Options); diff != "" {
			t.Errorf("round-trip of %q changed options (-first +second):\n%s", input, diff)
		}
	}
}
