package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gmxagent/gmxagent/utils/config"
	"github.com/spf13/cobra"
)

// version is a placeholder for the version string, which will be set at build time.
var version string

var verbose bool
var debug bool

// envConfig holds the loaded environment configuration, available to all commands
var envConfig *config.EnvConfig

// logFile holds the log file handle for proper cleanup
var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   "gmxagent",
	Short: "A GROMACS command assistant backed by local language models",
	Long: `Gmxagent parses, validates and generates GROMACS command pipelines.

Getting Started:
  1. gmxagent parse "gmx pdb2gmx -f protein.pdb"   Check a single command
  2. gmxagent plan protein.pdb plan.txt            Generate a full pipeline
  3. gmxagent run plan.txt                         Execute a validated plan

Configuration is stored in ~/.gmxagent/config.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Remove timestamps for cleaner CLI output
		log.SetFlags(0)

		// Optional file-based logging for debugging sessions
		if logFileName := os.Getenv("GMXAGENT_LOG_FILE"); logFileName != "" {
			if file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
				logFile = file
				log.SetOutput(file)
				log.Printf("[INFO] Logging session started at %s\n", time.Now().Format(time.RFC3339))
			} else {
				log.Printf("[WARN] Failed to open log file '%s': %v. Continuing with stdout logging.\n", logFileName, err)
			}
		}

		// Set global verbose and debug flags
		config.Verbose = verbose
		config.Debug = debug

		// Get environment file path from GMXAGENT_ENV or default
		envPath := config.GetEnvPath()
		if verbose {
			log.Printf("[DEBUG] Loading environment configuration from %s\n", envPath)
		}

		var err error
		envConfig, err = config.LoadEnvConfig(envPath)
		if err != nil {
			return fmt.Errorf("error loading environment configuration: %w", err)
		}

		if verbose {
			log.Println("[DEBUG] Environment configuration loaded successfully")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			log.Printf("[INFO] Logging session ended at %s\n", time.Now().Format(time.RFC3339))
			if err := logFile.Sync(); err != nil {
				log.Printf("[WARN] Failed to sync log file: %v\n", err)
			}
			logFile.Close()
			logFile = nil
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

// getVersion returns the version string.
// Priority: build-time ldflags > VERSION file (for development)
func getVersion() string {
	if version != "" {
		return version
	}

	// For local development: try to read VERSION file from project root
	_, filename, _, ok := runtime.Caller(0)
	if ok {
		sourceDir := filepath.Dir(filename)
		projectRoot := filepath.Dir(sourceDir)
		versionPath := filepath.Join(projectRoot, "VERSION")
		content, err := os.ReadFile(versionPath)
		if err == nil {
			return "v" + strings.TrimSpace(string(content)) + "-dev"
		}
	}

	return "unknown (build with: go build -ldflags \"-X 'github.com/gmxagent/gmxagent/cmd.version=vX.Y.Z'\")"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the current gmxagent version.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Printf("gmxagent version: %s\n", getVersion())
	},
}

func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
