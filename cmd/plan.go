package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gmxagent/gmxagent/utils/agent"
	"github.com/gmxagent/gmxagent/utils/models"
	"github.com/gmxagent/gmxagent/utils/prompt"
	"github.com/spf13/cobra"
)

var (
	planModelName string
	planAttempts  int
)

var planCmd = &cobra.Command{
	Use:   "plan <structure.pdb> <output.txt>",
	Short: "Generate a validated simulation plan from a structure file",
	Long: `Ask the configured local model for a full five-stage pipeline plan
for the given structure file. Every generated command is parsed and
validated, and the plan is regenerated with correction feedback until
it is clean or the attempt budget runs out. The plan is written one
command per line.`,
	Example: `  gmxagent plan protein.pdb plan.txt
  gmxagent plan protein.pdb plan.txt -m qwen2.5:1.5b-instruct --attempts 5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdbFile, outputFile := args[0], args[1]

		modelName := planModelName
		if modelName == "" {
			modelName = envConfig.DefaultModel
		}
		if modelName == "" {
			return fmt.Errorf("no model specified and no default_model configured. Use --model or run 'gmxagent configure'")
		}

		provider := models.DetectProvider(envConfig, modelName)
		if provider == nil {
			return fmt.Errorf("could not detect a provider for model: %s", modelName)
		}
		provider.SetVerbose(verbose)
		log.Printf("Generating plan using %s model: %s\n", provider.Name(), modelName)

		a := agent.New(provider, modelName)
		if planAttempts > 0 {
			a.SetMaxAttempts(planAttempts)
		}

		plan, err := a.GeneratePlan(prompt.PipelineParams{
			PDBFile:       pdbFile,
			Workspace:     envConfig.Workspace,
			ForceField:    envConfig.ForceField,
			WaterModel:    envConfig.WaterModel,
			BoxSize:       envConfig.BoxSize,
			Concentration: envConfig.Concentration,
		})
		if err != nil {
			return err
		}

		if !plan.Clean() {
			log.Printf("Plan still has problems after %d attempt(s):\n", plan.Attempts)
			log.Println(strings.Join(plan.Problems(), "\n"))
			return fmt.Errorf("could not generate a clean plan for %s", pdbFile)
		}

		content := strings.Join(plan.Raw(), "\n") + "\n"
		if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write plan to '%s': %w", outputFile, err)
		}

		log.Printf("\n%s Plan with %d commands saved to %s (attempt %d)\n",
			greenCheckmark, len(plan.Commands), outputFile, plan.Attempts)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planModelName, "model", "m", "", "Model to use for plan generation (optional, uses default if not set)")
	planCmd.Flags().IntVar(&planAttempts, "attempts", 0, "Maximum generation attempts (optional)")
	rootCmd.AddCommand(planCmd)
}
