// Package prompt builds the prompts the agent sends to a local model.
// Templates are plain string assembly; no model or transport logic
// lives here.
package prompt

import (
	"fmt"
	"strings"
)

// PipelineParams carries the simulation parameters substituted into the
// plan-generation prompt.
type PipelineParams struct {
	PDBFile       string
	Workspace     string
	ForceField    string
	WaterModel    string
	BoxSize       float64
	Concentration float64
}

// Task names the user-selectable agent tasks.
type Task string

const (
	TaskPulseCheck         Task = "pulse_check"
	TaskConversionToGro    Task = "conversion_to_gro"
	TaskPrepareFiles       Task = "prepare_files"
	TaskGenerateBox        Task = "generate_box"
	TaskAddIons            Task = "add_ions"
	TaskEnergyMinimization Task = "energy_minimization"
	TaskPlotEnergy         Task = "plot_energy"
)

// Tasks lists the supported task names for CLI help output.
func Tasks() []Task {
	return []Task{
		TaskPulseCheck,
		TaskConversionToGro,
		TaskPrepareFiles,
		TaskGenerateBox,
		TaskAddIons,
		TaskEnergyMinimization,
		TaskPlotEnergy,
	}
}

// UserTask returns the task description for the given task name, with
// the pipeline parameters filled in.
func UserTask(task Task, p PipelineParams) (string, error) {
	switch task {
	case TaskPulseCheck:
		return "Check if GROMACS is installed.", nil
	case TaskConversionToGro:
		return fmt.Sprintf("Convert the %s file into GROMACS format. The workspace is %s.", p.PDBFile, p.Workspace), nil
	case TaskPrepareFiles:
		return fmt.Sprintf("Prepare the necessary files for a GROMACS simulation starting from the %s file. The force field is %s. The water model is %s. The workspace is %s.",
			p.PDBFile, p.ForceField, p.WaterModel, p.Workspace), nil
	case TaskGenerateBox:
		return fmt.Sprintf("Prepare a simulation box starting from the %s file. The force field is %s. The water model is %s. Simulation files must keep the same name as the PDB file. The workspace is %s.",
			p.PDBFile, p.ForceField, p.WaterModel, p.Workspace), nil
	case TaskAddIons:
		return fmt.Sprintf("Prepare a simulation box starting from the %s file and add ions once created. The force field is %s. The water model is %s. Created files must keep the same prefix as the PDB file. The workspace is %s.",
			p.PDBFile, p.ForceField, p.WaterModel, p.Workspace), nil
	case TaskEnergyMinimization:
		return fmt.Sprintf("Do energy minimization. The workspace is %s.", p.Workspace), nil
	case TaskPlotEnergy:
		return fmt.Sprintf("Plot the .edr file in the workspace and save it to PNG. The workspace is %s.", p.Workspace), nil
	}
	return "", fmt.Errorf("unknown task %q", task)
}

// GeneratePlan builds the prompt asking the model for a complete
// five-stage pipeline plan, one gmx command per line.
func GeneratePlan(p PipelineParams) string {
	return fmt.Sprintf(`SYSTEM: You generate GROMACS command-line plans. You MUST output ONLY gmx commands, one per line. No explanations, no markdown, no code blocks, no numbering - just the commands.

Produce the full simulation pipeline for the structure file %s, in this exact stage order:
1. topology generation (gmx pdb2gmx)
2. box configuration (gmx editconf)
3. solvation (gmx solvate)
4. preprocessing (gmx grompp)
5. execution (gmx mdrun)

Parameters:
- workspace directory: %s
- force field: %s
- water model: %s
- box size (nm): %g
- salt concentration (mol/L): %g

Every command must start with 'gmx'. Use filenames derived from the structure file's prefix.`,
		p.PDBFile, p.Workspace, p.ForceField, p.WaterModel, p.BoxSize, p.Concentration)
}

// Correction builds a regeneration prompt after validation failed,
// embedding the diagnostics so the model can repair the plan.
func Correction(basePrompt string, problems []string) string {
	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\nIMPORTANT CORRECTION: Your previous plan had the following problems:\n")
	for i, problem := range problems {
		fmt.Fprintf(&b, "%d. %s\n", i+1, problem)
	}
	b.WriteString("Regenerate the full plan with these problems fixed. Output ONLY the corrected gmx commands, one per line.")
	return b.String()
}

// ExtractCommands pulls the command lines out of a model response,
// tolerating code fences, numbering and surrounding prose: only lines
// containing a 'gmx ' invocation are kept, trimmed to start at it.
func ExtractCommands(response string) []string {
	var commands []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		if idx := strings.Index(line, "gmx "); idx >= 0 {
			commands = append(commands, line[idx:])
		}
	}
	return commands
}
