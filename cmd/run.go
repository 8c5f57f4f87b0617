package cmd

import (
	"fmt"
	"log"

	"github.com/gmxagent/gmxagent/utils/fileutil"
	"github.com/gmxagent/gmxagent/utils/gmxrun"
	"github.com/spf13/cobra"
)

var runWorkspace string

var runCmd = &cobra.Command{
	Use:   "run <plan.txt>",
	Short: "Execute a validated simulation plan",
	Long: `Execute the commands of a plan file in order inside the workspace.
Before anything runs, the plan must pass the stage order check and
every command must parse and validate; execution stops at the first
failing command.`,
	Example: `  gmxagent run plan.txt
  gmxagent run plan.txt -w /data/sims`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commands, err := fileutil.ReadLines(args[0])
		if err != nil {
			return fmt.Errorf("error reading plan file %s: %w", args[0], err)
		}
		if len(commands) == 0 {
			return fmt.Errorf("plan file %s contains no commands", args[0])
		}

		workspace := runWorkspace
		if workspace == "" {
			workspace = envConfig.Workspace
		}

		runner := gmxrun.New(workspace)
		if !runner.IsGromacsInstalled() {
			return fmt.Errorf("gmx binary not found on PATH; install GROMACS first")
		}

		log.Printf("Executing %d commands in %s\n", len(commands), workspace)
		if err := runner.RunPlan(commands); err != nil {
			return err
		}
		log.Printf("%s Plan executed successfully\n", greenCheckmark)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runWorkspace, "workspace", "w", "", "Workspace directory (overrides configuration)")
	rootCmd.AddCommand(runCmd)
}
