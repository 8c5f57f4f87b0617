package cmd

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/gmxagent/gmxagent/utils/gmx"
	"github.com/spf13/cobra"
)

var parseStrict bool

var parseCmd = &cobra.Command{
	Use:   "parse \"<command>\"",
	Short: "Parse and validate a single GROMACS command",
	Long: `Parse one gmx command string into its structured form and run the
per-command validator over it. Warnings are advisory; with --strict the
command exits non-zero when any warning is present.`,
	Example: `  gmxagent parse "gmx pdb2gmx -f protein.pdb -o protein.gro"
  gmxagent parse --strict "gmx grompp -f em.mdp"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := gmx.ParseCommand(args[0], true)
		if err != nil {
			var perr *gmx.ParseError
			if errors.As(err, &perr) {
				return fmt.Errorf("parse failed: %w", err)
			}
			return err
		}

		log.Printf("Command: %s\n", parsed.Name)
		flags := make([]string, 0, len(parsed.Options))
		for flag := range parsed.Options {
			flags = append(flags, flag)
		}
		sort.Strings(flags)
		for _, flag := range flags {
			log.Printf("  %-10s %s\n", flag, parsed.Options[flag])
		}

		warnings := parsed.Validation.Warnings
		if len(warnings) == 0 {
			log.Printf("%s Command is valid with no warnings\n", greenCheckmark)
			return nil
		}
		log.Println(strings.Join(warnings, "\n"))
		if parsed.Validation.Valid {
			log.Printf("Command is valid (%d advisory warning(s))\n", len(warnings))
		}
		if parseStrict || !parsed.Validation.Valid {
			return fmt.Errorf("command rejected with %d warning(s)", len(warnings))
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseStrict, "strict", false, "treat advisory warnings as errors")
	rootCmd.AddCommand(parseCmd)
}
