package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/gmxagent/gmxagent/utils/fileutil"
	"github.com/gmxagent/gmxagent/utils/gmx"
	"github.com/spf13/cobra"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence <plan.txt | command...>",
	Short: "Check a command plan for the required stage order",
	Long: `Validate that a plan walks the five pipeline stages in order:
topology generation, box configuration, solvation, preprocessing,
execution. The plan is read from a file (one command per line, '#'
comments allowed) or passed as one argument per command.`,
	Example: `  gmxagent sequence plan.txt
  gmxagent sequence "gmx pdb2gmx -f p.pdb" "gmx editconf -f p.gro -c"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commands := args
		if len(args) == 1 && !strings.Contains(args[0], " ") {
			lines, err := fileutil.ReadLines(args[0])
			if err != nil {
				return fmt.Errorf("error reading plan file %s: %w", args[0], err)
			}
			commands = lines
		}

		result := gmx.ValidateSequence(commands)
		if len(result.Matched) > 0 {
			log.Printf("Stages matched: %s\n", strings.Join(result.Matched, ", "))
		}
		if !result.Passed {
			return fmt.Errorf("sequence check failed: %s", result.Message)
		}
		log.Printf("%s Plan covers all pipeline stages in order\n", greenCheckmark)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sequenceCmd)
}
