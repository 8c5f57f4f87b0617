package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/gmxagent/gmxagent/utils/gmxrun"
	"github.com/spf13/cobra"
)

var prepWorkspace string

var prepCmd = &cobra.Command{
	Use:   "prep <structure.pdb>",
	Short: "Run the staged preparation pipeline for a structure file",
	Long: `Prepare a simulation box directly, without model generation: convert
the structure to GROMACS format, build and solvate the box, add ions
and run an energy minimization. Every step is a validated gmx command;
parameters come from the configuration file.`,
	Example: `  gmxagent prep protein.pdb
  gmxagent prep protein.pdb -w /data/sims`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		structureFile := args[0]
		if !strings.HasSuffix(structureFile, ".pdb") {
			return fmt.Errorf("expected a .pdb structure file, got %s", structureFile)
		}

		workspace := prepWorkspace
		if workspace == "" {
			workspace = envConfig.Workspace
		}

		runner := gmxrun.New(workspace)
		if !runner.IsGromacsInstalled() {
			return fmt.Errorf("gmx binary not found on PATH; install GROMACS first")
		}

		params := gmxrun.SystemParams{
			Prefix:        gmxrun.Prefix(structureFile),
			ForceField:    envConfig.ForceField,
			WaterModel:    envConfig.WaterModel,
			BoxSize:       envConfig.BoxSize,
			Concentration: envConfig.Concentration,
		}
		log.Printf("Preparing system %s in %s (%s, %s)\n",
			params.Prefix, workspace, params.ForceField, params.WaterModel)

		if err := runner.PrepareSimulationBox(params); err != nil {
			return err
		}
		log.Printf("%s System %s prepared and minimized\n", greenCheckmark, params.Prefix)
		return nil
	},
}

func init() {
	prepCmd.Flags().StringVarP(&prepWorkspace, "workspace", "w", "", "Workspace directory (overrides configuration)")
	rootCmd.AddCommand(prepCmd)
}
