// actioncore answers "may this unit do that, and how likely is it to
// work" against a Lua-authored ruleset, and checks rulesets for enablers
// that break the game's hard requirements.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nathoo/actioncore/config"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/loader"
	"github.com/nathoo/actioncore/logging"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	// Global flags
	rulesetDir string
	reportDB   string
	logLevel   string
	debug      bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "actioncore",
	Short: "Action legality and probability engine for strategy game rulesets",
	Long: `actioncore loads a ruleset written in Lua, checks that its action enablers
respect the game's hard requirements, and answers queries about what a unit
may do to a target and how likely it is to succeed.

Settings come from ACTIONCORE_* environment variables; flags override them.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if rulesetDir == "" {
			rulesetDir = cfg.RulesetDir
		}
		if reportDB == "" {
			reportDB = cfg.ReportDB
		}
		if !cmd.Flags().Changed("log-level") {
			logLevel = cfg.LogLevel
		}
		if !cmd.Flags().Changed("debug") {
			debug = cfg.Debug
		}
		logger, err = logging.New(logLevel, debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "actioncore %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rulesetDir, "ruleset", "r", "", "Ruleset directory (or set ACTIONCORE_RULESET_DIR)")
	rootCmd.PersistentFlags().StringVar(&reportDB, "report", "", "SQLite file recording validation runs (or set ACTIONCORE_REPORT_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Human readable development logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuleset loads dir for querying. Consistency violations are logged
// and the ruleset is still used; structural errors fail.
func loadRuleset(dir string) (*ruleset.Ruleset, error) {
	if dir == "" {
		return nil, errors.New("no ruleset directory: use --ruleset or ACTIONCORE_RULESET_DIR")
	}
	rs, err := loader.Load(dir, loader.WithLogger(logger))
	if rs == nil {
		return nil, err
	}
	var ve *loader.ValidationError
	if errors.As(err, &ve) {
		logger.Warn("ruleset has consistency violations",
			zap.String("dir", dir), zap.Int("violations", len(ve.Violations)))
	}
	return rs, nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
