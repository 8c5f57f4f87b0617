package gmx

import (
	"fmt"
	"strings"
)

// PipelineStage is one required phase of the simulation workflow,
// detected in command text by case-insensitive keyword containment.
type PipelineStage struct {
	Name     string
	Keywords []string
}

// pipelineStages lists the five canonical stages in required order.
// Assembled once; never mutated.
var pipelineStages = []PipelineStage{
	{Name: "topology generation", Keywords: []string{"pdb2gmx", "topology", "forcefield"}},
	{Name: "box configuration", Keywords: []string{"editconf", "box", "periodic"}},
	{Name: "solvation", Keywords: []string{"solvate", "water"}},
	{Name: "preprocessing", Keywords: []string{"grompp", "mdp"}},
	{Name: "execution", Keywords: []string{"mdrun", "simulation"}},
}

// Stages returns the canonical pipeline stages in order.
func Stages() []PipelineStage {
	stages := make([]PipelineStage, len(pipelineStages))
	copy(stages, pipelineStages)
	return stages
}

// SequenceResult is the verdict of checking a command list against the
// pipeline stage order.
type SequenceResult struct {
	Passed  bool
	Message string
	// Matched lists the stage names matched in order before the check
	// passed or failed.
	Matched []string
}

// ValidateSequence checks whether the ordered command strings realize
// the five pipeline stages as an in-order subsequence. A cursor scans
// strictly forward: each stage must match a command after the previous
// stage's match, and a stage that finds no match in the remaining
// suffix fails the whole check immediately.
//
// This is a lexical ordering guard over generated plans, not a semantic
// dependency check between the commands.
func ValidateSequence(commands []string) SequenceResult {
	lowered := make([]string, len(commands))
	for i, cmd := range commands {
		lowered[i] = strings.ToLower(cmd)
	}

	var matched []string
	cursor := -1
	for stageIndex, stage := range pipelineStages {
		index := matchStageAfter(lowered, cursor, stageIndex)
		if index < 0 {
			return SequenceResult{
				Matched: matched,
				Message: missingStageMessage(stage, matched),
			}
		}
		cursor = index
		matched = append(matched, stage.Name)
	}

	return SequenceResult{
		Passed:  true,
		Matched: matched,
		Message: "All five pipeline stages found in the required order",
	}
}

// matchStageAfter returns the index of the first command past the cursor
// containing any of the expected stage's keywords, or -1. The scan stops
// as soon as it reaches a command belonging to a later stage: a plan
// that runs solvation before box configuration is reported as missing
// box configuration, not as missing solvation further on.
func matchStageAfter(lowered []string, cursor int, stageIndex int) int {
	for i := cursor + 1; i < len(lowered); i++ {
		if containsStageKeyword(lowered[i], pipelineStages[stageIndex]) {
			return i
		}
		for later := stageIndex + 1; later < len(pipelineStages); later++ {
			if containsStageKeyword(lowered[i], pipelineStages[later]) {
				return -1
			}
		}
	}
	return -1
}

func containsStageKeyword(command string, stage PipelineStage) bool {
	for _, keyword := range stage.Keywords {
		if strings.Contains(command, keyword) {
			return true
		}
	}
	return false
}

func missingStageMessage(stage PipelineStage, matched []string) string {
	after := "the start of the plan"
	if len(matched) > 0 {
		after = fmt.Sprintf("the %s stage", matched[len(matched)-1])
	}
	return fmt.Sprintf("Missing %s stage after %s: expected a command containing e.g. '%s' (stages matched so far: [%s])",
		stage.Name, after, stage.Keywords[0], strings.Join(matched, ", "))
}
