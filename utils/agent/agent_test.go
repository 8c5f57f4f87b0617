package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmxagent/gmxagent/utils/prompt"
)

// stubProvider replays canned responses and records the prompts it saw.
type stubProvider struct {
	responses []string
	err       error
	prompts   []string
}

func (s *stubProvider) Name() string              { return "stub" }
func (s *stubProvider) SupportsModel(string) bool { return true }
func (s *stubProvider) SetVerbose(bool)           {}

func (s *stubProvider) SendPrompt(model, text string) (string, error) {
	s.prompts = append(s.prompts, text)
	if s.err != nil {
		return "", s.err
	}
	response := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return response, nil
}

const goodPlan = `gmx pdb2gmx -f protein.pdb -o protein.gro -p protein.top
gmx editconf -f protein.gro -o protein.gro -c -d 1.0
gmx solvate -cp protein.gro -cs spc216.gro -o protein.gro -p protein.top
gmx grompp -f em.mdp -c protein.gro -p protein.top -o em.tpr
gmx mdrun -deffnm em`

var testParams = prompt.PipelineParams{
	PDBFile: "protein.pdb", Workspace: ".", ForceField: "amber99sb-ildn",
	WaterModel: "tip3p", BoxSize: 1.0, Concentration: 0.15,
}

func TestGeneratePlan_CleanFirstAttempt(t *testing.T) {
	provider := &stubProvider{responses: []string{goodPlan}}
	a := New(provider, "qwen2.5:3b-instruct")

	plan, err := a.GeneratePlan(testParams)
	require.NoError(t, err)
	assert.True(t, plan.Clean(), "problems: %v", plan.Problems())
	assert.Equal(t, 1, plan.Attempts)
	assert.Len(t, plan.Commands, 5)
	assert.True(t, plan.Sequence.Passed)
}

func TestGeneratePlan_RetriesWithCorrectionPrompt(t *testing.T) {
	// First response misses the preprocessing stage; second is complete.
	badPlan := `gmx pdb2gmx -f protein.pdb -o protein.gro
gmx editconf -f protein.gro -c
gmx solvate -cp protein.gro -cs spc216.gro
gmx mdrun -deffnm em`
	provider := &stubProvider{responses: []string{badPlan, goodPlan}}
	a := New(provider, "qwen2.5:3b-instruct")

	plan, err := a.GeneratePlan(testParams)
	require.NoError(t, err)
	assert.True(t, plan.Clean(), "problems: %v", plan.Problems())
	assert.Equal(t, 2, plan.Attempts)

	require.Len(t, provider.prompts, 2)
	assert.Contains(t, provider.prompts[1], "IMPORTANT CORRECTION",
		"second prompt should carry the correction preamble")
	assert.Contains(t, provider.prompts[1], "preprocessing",
		"second prompt should name the missing stage")
}

func TestGeneratePlan_ReturnsDirtyPlanAfterExhaustion(t *testing.T) {
	badPlan := "gmx mdrun -deffnm em"
	provider := &stubProvider{responses: []string{badPlan}}
	a := New(provider, "qwen2.5:3b-instruct")
	a.SetMaxAttempts(2)

	plan, err := a.GeneratePlan(testParams)
	require.NoError(t, err)
	assert.False(t, plan.Clean())
	assert.Equal(t, 2, plan.Attempts)
	assert.NotEmpty(t, plan.Problems())
}

func TestGeneratePlan_ProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	a := New(provider, "qwen2.5:3b-instruct")

	_, err := a.GeneratePlan(testParams)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model execution failed")
}

func TestGeneratePlan_NoCommandsInResponse(t *testing.T) {
	provider := &stubProvider{responses: []string{"I cannot help with that."}}
	a := New(provider, "qwen2.5:3b-instruct")

	_, err := a.GeneratePlan(testParams)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no gmx commands")
}

func TestCheckPlan_CollectsAllProblemKinds(t *testing.T) {
	plan := CheckPlan([]string{
		"gmx pdb2gmx -f protein.pdb",
		"gmx editconf (",        // parse failure
		"gmx solvate -cp a.gro", // fine
		"gmx grompp",            // three missing-flag warnings
		"gmx mdrun -deffnm em",
	})

	problems := plan.Problems()
	assert.False(t, plan.Clean())

	var parseFailures, warnings int
	for _, p := range problems {
		switch {
		case len(p) >= 7 && p[:7] == "Command":
			parseFailures++
		case len(p) >= 7 && p[:7] == "Warning":
			warnings++
		}
	}
	assert.Equal(t, 1, parseFailures)
	assert.Equal(t, 3, warnings)
	assert.True(t, plan.Sequence.Passed, "sequence check works on raw strings regardless of parse failures")
}
