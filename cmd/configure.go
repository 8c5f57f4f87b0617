package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/gmxagent/gmxagent/utils/config"
	"github.com/gmxagent/gmxagent/utils/models"
	"github.com/spf13/cobra"
)

var (
	listFlag             bool
	setOllamaFlag        string
	setVLLMFlag          string
	setDefaultModelFlag  string
	setWorkspaceFlag     string
	setForceFieldFlag    string
	setWaterModelFlag    string
	setBoxSizeFlag       float64
	setConcentrationFlag float64
)

// Green checkmark for successful operations
const greenCheckmark = "✅"

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Show or update the environment configuration",
	Long: `Show the current configuration, or update individual settings and
save them back to the configuration file.`,
	Example: `  gmxagent configure --list
  gmxagent configure --default-model qwen2.5:1.5b-instruct
  gmxagent configure --water-model spce --box-size 1.2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listFlag || cmd.Flags().NFlag() == 0 {
			printConfig(envConfig)
			return nil
		}

		if setOllamaFlag != "" {
			envConfig.OllamaEndpoint = setOllamaFlag
		}
		if setVLLMFlag != "" {
			envConfig.VLLMEndpoint = setVLLMFlag
		}
		if setDefaultModelFlag != "" {
			registry := models.GetRegistry()
			if !registry.KnownModel("ollama", setDefaultModelFlag) && !registry.KnownModel("vllm", setDefaultModelFlag) {
				log.Printf("Warning: %q is not a registered model; keeping it anyway\n", setDefaultModelFlag)
			}
			envConfig.DefaultModel = setDefaultModelFlag
		}
		if setWorkspaceFlag != "" {
			envConfig.Workspace = setWorkspaceFlag
		}
		if setForceFieldFlag != "" {
			envConfig.ForceField = setForceFieldFlag
		}
		if setWaterModelFlag != "" {
			envConfig.WaterModel = setWaterModelFlag
		}
		if cmd.Flags().Changed("box-size") {
			envConfig.BoxSize = setBoxSizeFlag
		}
		if cmd.Flags().Changed("concentration") {
			envConfig.Concentration = setConcentrationFlag
		}

		if err := envConfig.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		envPath := config.GetEnvPath()
		if err := envConfig.Save(envPath); err != nil {
			return err
		}
		log.Printf("%s Configuration saved to %s\n", greenCheckmark, envPath)
		return nil
	},
}

func printConfig(cfg *config.EnvConfig) {
	log.Printf("Configuration file: %s\n\n", config.GetEnvPath())
	log.Printf("  ollama_endpoint: %s\n", cfg.OllamaEndpoint)
	log.Printf("  vllm_endpoint:   %s\n", cfg.VLLMEndpoint)
	log.Printf("  default_model:   %s\n", cfg.DefaultModel)
	log.Printf("  workspace:       %s\n", cfg.Workspace)
	log.Printf("  force_field:     %s\n", cfg.ForceField)
	log.Printf("  water_model:     %s\n", cfg.WaterModel)
	log.Printf("  box_size:        %g\n", cfg.BoxSize)
	log.Printf("  concentration:   %g\n", cfg.Concentration)

	log.Println("\nRegistered models:")
	log.Printf("  %s\n", strings.Join(models.GetRegistry().AllModels(), ", "))
}

func init() {
	configureCmd.Flags().BoolVarP(&listFlag, "list", "l", false, "Show the current configuration")
	configureCmd.Flags().StringVar(&setOllamaFlag, "ollama-endpoint", "", "Set the Ollama endpoint")
	configureCmd.Flags().StringVar(&setVLLMFlag, "vllm-endpoint", "", "Set the vLLM endpoint")
	configureCmd.Flags().StringVar(&setDefaultModelFlag, "default-model", "", "Set the default generation model")
	configureCmd.Flags().StringVar(&setWorkspaceFlag, "workspace", "", "Set the workspace directory")
	configureCmd.Flags().StringVar(&setForceFieldFlag, "force-field", "", "Set the default force field")
	configureCmd.Flags().StringVar(&setWaterModelFlag, "water-model", "", "Set the default water model")
	configureCmd.Flags().Float64Var(&setBoxSizeFlag, "box-size", 0, "Set the default box margin in nm")
	configureCmd.Flags().Float64Var(&setConcentrationFlag, "concentration", 0, "Set the default ion concentration in mol/L")
	rootCmd.AddCommand(configureCmd)
}
