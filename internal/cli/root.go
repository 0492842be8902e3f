package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"placeviz/internal/config"
)

const version = "placeviz v0.3.0"

var (
	cfgFile  string
	verbose  bool
	dataPath string
	dataType string

	cfg    *config.AppConfig
	logger *zap.Logger
)

// interactive marks commands that own the terminal; their logs go to a file.
const interactive = "interactive"

var rootCmd = &cobra.Command{
	Use:   "placeviz",
	Short: "Explore place mentions in annotated oral-history testimonies",
	Long: `placeviz loads a table of per-testimony entity word lists (BUILDING,
COUNTRY, RIVER, ...) and lets you filter testimonies by experience group,
country and survivor status, build word clouds for a category, and compare
male and female vocabulary.

Run without arguments to start the interactive dashboard.`,
	Annotations:   map[string]string{interactive: "true"},
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runDashboard,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./placeviz.yaml, then ~/.config/placeviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataType, "data-type", "", "dataset format: jsonl, csv or sqlite (overrides config)")

	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	}

	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and the config file, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	var err error
	if cfgFile == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgFile)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataPath != "" {
		cfg.Dataset.Path = dataPath
	}
	if dataType != "" {
		cfg.Dataset.Type = dataType
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err = newLogger(cfg.Log, verbose, cmd.Annotations[interactive] == "true")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}
