package gmx

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var orderedPlan = []string{
	"gmx pdb2gmx -f a.pdb",
	"gmx editconf -f a.gro",
	"gmx solvate -cp a.gro",
	"gmx grompp -f a.mdp",
	"gmx mdrun -deffnm a",
}

func TestValidateSequence_CompletePlanPasses(t *testing.T) {
	result := ValidateSequence(orderedPlan)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Message)
	}
	want := []string{
		"topology generation",
		"box configuration",
		"solvation",
		"preprocessing",
		"execution",
	}
	if diff := cmp.Diff(want, result.Matched); diff != "" {
		t.Errorf("matched stages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSequence_OutOfOrderFailsAtFirstGap(t *testing.T) {
	// Solvation before box configuration: the verdict names box
	// configuration as the missing stage, not solvation further on.
	plan := []string{
		"gmx pdb2gmx -f a.pdb",
		"gmx solvate -cp a.gro",
		"gmx editconf -f a.gro",
		"gmx grompp -f a.mdp",
		"gmx mdrun -deffnm a",
	}
	result := ValidateSequence(plan)
	if result.Passed {
		t.Fatal("expected failure for out-of-order plan")
	}
	if !strings.Contains(result.Message, "box configuration") {
		t.Errorf("message %q should name the box configuration stage", result.Message)
	}
	if !strings.Contains(result.Message, "topology generation") {
		t.Errorf("message %q should name the last matched stage", result.Message)
	}
	if diff := cmp.Diff([]string{"topology generation"}, result.Matched); diff != "" {
		t.Errorf("matched stages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSequence_OmittedStageFails(t *testing.T) {
	for skip := range orderedPlan {
		plan := make([]string, 0, len(orderedPlan)-1)
		for i, cmd := range orderedPlan {
			if i != skip {
				plan = append(plan, cmd)
			}
		}
		result := ValidateSequence(plan)
		if result.Passed {
			t.Errorf("plan without stage %d passed: %v", skip, plan)
		}
	}
}

func TestValidateSequence_DuplicateDoesNotSubstitute(t *testing.T) {
	plan := []string{
		"gmx pdb2gmx -f a.pdb",
		"gmx editconf -f a.gro",
		"gmx editconf -f b.gro",
		"gmx grompp -f a.mdp",
		"gmx mdrun -deffnm a",
	}
	result := ValidateSequence(plan)
	if result.Passed {
		t.Fatal("expected failure: solvation is missing")
	}
	if !strings.Contains(result.Message, "solvation") {
		t.Errorf("message %q should name the solvation stage", result.Message)
	}
}

func TestValidateSequence_MatchesByKeywordNotCommandName(t *testing.T) {
	// Stage detection is a lexical containment check, so descriptive
	// text matches as well as the command itself.
	plan := []string{
		"build the topology with the amber forcefield",
		"set up the periodic box",
		"add water molecules",
		"preprocess the mdp parameters",
		"start the production simulation",
	}
	result := ValidateSequence(plan)
	if !result.Passed {
		t.Fatalf("expected keyword-based pass, got: %s", result.Message)
	}
}

func TestValidateSequence_CaseInsensitive(t *testing.T) {
	plan := []string{
		"GMX PDB2GMX -F A.PDB",
		"GMX EDITCONF -F A.GRO",
		"GMX SOLVATE -CP A.GRO",
		"GMX GROMPP -F A.MDP",
		"GMX MDRUN -DEFFNM A",
	}
	result := ValidateSequence(plan)
	if !result.Passed {
		t.Fatalf("expected case-insensitive pass, got: %s", result.Message)
	}
}

func TestValidateSequence_EmptyPlan(t *testing.T) {
	result := ValidateSequence(nil)
	if result.Passed {
		t.Fatal("expected failure for empty plan")
	}
	if !strings.Contains(result.Message, "topology generation") {
		t.Errorf("message %q should name the first stage", result.Message)
	}
	if len(result.Matched) != 0 {
		t.Errorf("matched = %v, want none", result.Matched)
	}
}

func TestValidateSequence_MissingStageMessageNamesExampleKeyword(t *testing.T) {
	plan := []string{
		"gmx pdb2gmx -f a.pdb",
		"gmx solvate -cp a.gro",
	}
	result := ValidateSequence(plan)
	if result.Passed {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "editconf") {
		t.Errorf("message %q should offer an example keyword", result.Message)
	}
}
