package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"cvrank/config"
	"cvrank/internal/logger"
)

const app = "cvrank"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "Rank PDF résumés by the keywords they mention",
	Long: `cvrank scans a directory of PDF résumés, extracts their text and ranks
candidates by how many configured terms (skills, languages, cities or any
other category) each document mentions.

Example usage:
  cvrank init ./cvs                          # Write a sample cvrank.yaml
  cvrank rank ./cvs                          # Rank with ./cvs/cvrank.yaml
  cvrank rank ./cvs -t Skills=go,python -f json`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is <dir>/cvrank.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().Bool("json-logs", false, "json format for logging")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json-logs", rootCmd.PersistentFlags().Lookup("json-logs"))

	viper.SetEnvPrefix("CVRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// resolveDir returns the absolute scan directory, the current directory
// when no argument is given.
func resolveDir(args []string) (string, error) {
	if len(args) == 0 {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return dir, nil
	}
	dir, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return dir, nil
}

// loadConfig reads --config (or CVRANK_CONFIG) if set, the scan
// directory's config otherwise.
func loadConfig(dir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := viper.GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Logging.Level
	if viper.GetBool("debug") {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Logging.JSON || viper.GetBool("json-logs"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return log, nil
}
