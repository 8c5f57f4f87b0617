// Package agent drives plan generation: it asks a local model for a
// pipeline plan, runs every line through the command parser and
// validators, and retries generation with the diagnostics embedded in a
// correction prompt. The retry-on-invalid loop lives here, never inside
// the parsing core.
package agent

import (
	"fmt"

	"github.com/gmxagent/gmxagent/utils/config"
	"github.com/gmxagent/gmxagent/utils/gmx"
	"github.com/gmxagent/gmxagent/utils/models"
	"github.com/gmxagent/gmxagent/utils/prompt"
)

// DefaultMaxAttempts bounds plan regeneration.
const DefaultMaxAttempts = 3

// CommandReport is the verdict for one generated command line.
type CommandReport struct {
	Raw      string
	Command  *gmx.Command // nil when parsing failed
	ParseErr error
}

// Warnings returns the validation warnings, if any, for this command.
func (r CommandReport) Warnings() []string {
	if r.Command == nil || r.Command.Validation == nil {
		return nil
	}
	return r.Command.Validation.Warnings
}

// Plan is a generated command plan together with its verdicts.
type Plan struct {
	Commands []CommandReport
	Sequence gmx.SequenceResult
	Attempts int
}

// Clean reports whether every line parsed without warnings and the
// stage order check passed.
func (p *Plan) Clean() bool {
	return len(p.Problems()) == 0
}

// Raw returns the raw command strings of the plan in order.
func (p *Plan) Raw() []string {
	raw := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		raw[i] = c.Raw
	}
	return raw
}

// Problems collects every diagnostic across the plan: parse failures,
// validation warnings, and the sequence verdict when it failed. The
// list feeds the correction prompt verbatim.
func (p *Plan) Problems() []string {
	var problems []string
	for _, report := range p.Commands {
		if report.ParseErr != nil {
			problems = append(problems, fmt.Sprintf("Command %q could not be parsed: %v", report.Raw, report.ParseErr))
			continue
		}
		problems = append(problems, report.Warnings()...)
	}
	if !p.Sequence.Passed {
		problems = append(problems, p.Sequence.Message)
	}
	return problems
}

// Agent generates validated plans through a model provider.
type Agent struct {
	provider    models.Provider
	model       string
	maxAttempts int
}

// New creates an agent for the given provider and model.
func New(provider models.Provider, model string) *Agent {
	return &Agent{provider: provider, model: model, maxAttempts: DefaultMaxAttempts}
}

// SetMaxAttempts overrides the regeneration bound (minimum 1).
func (a *Agent) SetMaxAttempts(n int) {
	if n < 1 {
		n = 1
	}
	a.maxAttempts = n
}

// GeneratePlan asks the model for a full pipeline plan and validates
// it. A plan with problems is regenerated with a correction prompt up
// to the attempt bound; the last plan is returned either way, so the
// caller can surface the remaining diagnostics.
func (a *Agent) GeneratePlan(params prompt.PipelineParams) (*Plan, error) {
	basePrompt := prompt.GeneratePlan(params)

	var plan *Plan
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		promptText := basePrompt
		if plan != nil {
			problems := plan.Problems()
			config.VerboseLog("[Agent] Regenerating plan, attempt %d/%d (%d problems)",
				attempt, a.maxAttempts, len(problems))
			promptText = prompt.Correction(basePrompt, problems)
		}

		response, err := a.provider.SendPrompt(a.model, promptText)
		if err != nil {
			return nil, fmt.Errorf("model execution failed for %q: %w", a.model, err)
		}

		commands := prompt.ExtractCommands(response)
		if len(commands) == 0 {
			return nil, fmt.Errorf("model %q returned no gmx commands", a.model)
		}

		plan = a.check(commands)
		plan.Attempts = attempt
		if plan.Clean() {
			return plan, nil
		}
	}

	config.VerboseLog("[Agent] Plan still has %d problems after %d attempts",
		len(plan.Problems()), plan.Attempts)
	return plan, nil
}

// CheckPlan validates an existing command list without generation.
func CheckPlan(commands []string) *Plan {
	a := Agent{}
	return a.check(commands)
}

func (a *Agent) check(commands []string) *Plan {
	plan := &Plan{Sequence: gmx.ValidateSequence(commands)}
	for _, raw := range commands {
		report := CommandReport{Raw: raw}
		report.Command, report.ParseErr = gmx.ParseCommand(raw, true)
		plan.Commands = append(plan.Commands, report)
	}
	return plan
}
