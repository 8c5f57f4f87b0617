// Package gmxrun is the thin execution layer between validated command
// records and the gmx binary. It never receives raw model text: argv is
// rebuilt from parsed commands, and anything that failed parsing or
// sequence validation never reaches this package.
package gmxrun

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gmxagent/gmxagent/utils/config"
	"github.com/gmxagent/gmxagent/utils/gmx"
)

// Runner executes gmx commands inside a workspace directory.
type Runner struct {
	workspace string

	// execCommand is swapped out by tests.
	execCommand func(name string, args ...string) *exec.Cmd
}

// New creates a runner rooted at the workspace directory.
func New(workspace string) *Runner {
	return &Runner{workspace: workspace, execCommand: exec.Command}
}

// IsGromacsInstalled reports whether the gmx binary is on the PATH and
// answers a version query.
func (r *Runner) IsGromacsInstalled() bool {
	cmd := r.execCommand("gmx", "-version")
	output, err := cmd.Output()
	if err != nil {
		config.DebugLog("[Runner] gmx -version failed: %v", err)
		return false
	}
	return strings.Contains(string(output), "GROMACS version")
}

// Argv rebuilds the argument vector for a parsed command. Flags are
// emitted in sorted order for determinism; vector members become
// separate arguments, matching what editconf expects for -box.
func Argv(cmd *gmx.Command) []string {
	argv := []string{"gmx", cmd.Name}

	flags := make([]string, 0, len(cmd.Options))
	for flag := range cmd.Options {
		flags = append(flags, flag)
	}
	sort.Strings(flags)

	for _, flag := range flags {
		argv = append(argv, flag)
		value := cmd.Options[flag]
		switch value.Kind {
		case gmx.BoolValue:
			// flag only
		case gmx.VectorValue:
			for _, member := range value.Vector {
				argv = append(argv, member.String())
			}
		default:
			argv = append(argv, value.String())
		}
	}
	return argv
}

// Run executes one validated command in the workspace and returns its
// combined output. Commands that were never validated are refused.
func (r *Runner) Run(cmd *gmx.Command) (string, error) {
	return r.run(cmd, "")
}

func (r *Runner) run(cmd *gmx.Command, stdin string) (string, error) {
	if cmd == nil || cmd.Validation == nil {
		return "", fmt.Errorf("refusing to run an unvalidated command")
	}
	if !cmd.Validation.Valid {
		return "", fmt.Errorf("refusing to run an invalid command: %s", cmd.Validation.WarningSummary())
	}

	argv := Argv(cmd)
	config.VerboseLog("[Runner] Executing: %s", strings.Join(argv, " "))

	proc := r.execCommand(argv[0], argv[1:]...)
	proc.Dir = r.workspace
	if stdin != "" {
		proc.Stdin = strings.NewReader(stdin)
	}
	output, err := proc.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("gmx %s failed: %w", cmd.Name, err)
	}
	return string(output), nil
}

// runText parses, validates and executes one command built from a
// template, optionally feeding a group selection on stdin.
func (r *Runner) runText(command, stdin string) error {
	cmd, err := gmx.ParseCommand(command, true)
	if err != nil {
		return fmt.Errorf("pipeline command %q: %w", command, err)
	}
	_, err = r.run(cmd, stdin)
	return err
}

// RunPlan parses, re-validates and executes each command of a plan in
// order, stopping at the first failure.
func (r *Runner) RunPlan(commands []string) error {
	if seq := gmx.ValidateSequence(commands); !seq.Passed {
		return fmt.Errorf("plan failed the stage order check: %s", seq.Message)
	}

	for _, raw := range commands {
		cmd, err := gmx.ParseCommand(raw, true)
		if err != nil {
			return fmt.Errorf("plan command %q: %w", raw, err)
		}
		if warnings := cmd.Validation.Warnings; len(warnings) > 0 {
			config.VerboseLog("[Runner] %s carries warnings:\n%s", raw, strings.Join(warnings, "\n"))
		}
		if _, err := r.Run(cmd); err != nil {
			return err
		}
	}
	return nil
}

// minimizationParameters are the default energy-minimization settings
// written when the workspace has no MDP file of its own.
const minimizationParameters = `integrator               = steep
dt                       = 0.001
nsteps                   = 1000
emtol                    = 1000
emstep                   = 0.01
nstxout                  = 10
nstlog                   = 10
nstenergy                = 10
cutoff-scheme            = Verlet
nstlist                  = 20
pbc                      = xyz
rlist                    = 1.0
coulombtype              = pme
rcoulomb                 = 1.0
vdw-type                 = cut-off
rvdw                     = 1.0
constraints              = none
constraint-algorithm     = Lincs
`

// EnsureMinimizationMDP writes the default minimization parameter file
// into the workspace unless one already exists, returning its name.
func (r *Runner) EnsureMinimizationMDP(prefix string) (string, error) {
	name := prefix + ".mdp"
	path := filepath.Join(r.workspace, name)
	if _, err := os.Stat(path); err == nil {
		return name, nil
	}
	if err := os.WriteFile(path, []byte(minimizationParameters), 0o644); err != nil {
		return "", fmt.Errorf("error writing %s: %w", name, err)
	}
	config.VerboseLog("[Runner] Wrote default minimization parameters to %s", name)
	return name, nil
}

// SystemParams carries the simulation parameters for the staged helpers.
// Prefix names the system: the input structure is <prefix>.pdb and every
// generated file keeps the same stem.
type SystemParams struct {
	Prefix        string
	ForceField    string
	WaterModel    string
	BoxSize       float64
	Concentration float64
}

// Prefix derives the system name from a structure file path.
func Prefix(structureFile string) string {
	base := filepath.Base(structureFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PrepareSystemFiles converts the structure file into GROMACS format,
// producing <prefix>.gro and <prefix>.top.
func (r *Runner) PrepareSystemFiles(p SystemParams) error {
	return r.runText(fmt.Sprintf(`gmx pdb2gmx -f %s.pdb -o %s.gro -p %s.top -ff "%s" -water "%s"`,
		p.Prefix, p.Prefix, p.Prefix, p.ForceField, p.WaterModel), "")
}

// BuildBox centers the system in a periodic box with the configured
// solute-to-edge distance.
func (r *Runner) BuildBox(p SystemParams) error {
	return r.runText(fmt.Sprintf("gmx editconf -f %s.gro -o %s.gro -c -d %g",
		p.Prefix, p.Prefix, p.BoxSize), "")
}

// Solvate fills the box with the pre-equilibrated water configuration.
func (r *Runner) Solvate(p SystemParams) error {
	return r.runText(fmt.Sprintf("gmx solvate -cp %s.gro -cs spc216.gro -o %s.gro -p %s.top",
		p.Prefix, p.Prefix, p.Prefix), "")
}

// AddIons neutralizes the system at the configured salt concentration,
// replacing solvent molecules selected from the SOL group.
func (r *Runner) AddIons(p SystemParams) error {
	mdp, err := r.EnsureMinimizationMDP("ions")
	if err != nil {
		return err
	}
	if err := r.runText(fmt.Sprintf("gmx grompp -f %s -c %s.gro -p %s.top -o ions.tpr -maxwarn 1",
		mdp, p.Prefix, p.Prefix), ""); err != nil {
		return err
	}
	return r.runText(fmt.Sprintf("gmx genion -s ions.tpr -o %s.gro -p %s.top -pname NA -nname CL -neutral -conc %g",
		p.Prefix, p.Prefix, p.Concentration), "SOL")
}

// Minimize runs a steepest-descent energy minimization of the prepared
// system under the em.mdp parameters.
func (r *Runner) Minimize(p SystemParams) error {
	mdp, err := r.EnsureMinimizationMDP("em")
	if err != nil {
		return err
	}
	if err := r.runText(fmt.Sprintf("gmx grompp -f %s -c %s.gro -p %s.top -o em.tpr",
		mdp, p.Prefix, p.Prefix), ""); err != nil {
		return err
	}
	return r.runText("gmx mdrun -deffnm em -v", "")
}

// PrepareSimulationBox runs the full preparation pipeline: topology,
// box, solvation, ions, minimization.
func (r *Runner) PrepareSimulationBox(p SystemParams) error {
	steps := []func(SystemParams) error{
		r.PrepareSystemFiles,
		r.BuildBox,
		r.Solvate,
		r.AddIons,
		r.Minimize,
	}
	for _, step := range steps {
		if err := step(p); err != nil {
			return err
		}
	}
	return nil
}
