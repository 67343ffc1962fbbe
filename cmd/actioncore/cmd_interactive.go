package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nathoo/actioncore/cli"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/scenario"
	"github.com/nathoo/actioncore/tui"
)

var (
	scriptFile string
	plain      bool
)

var replCmd = &cobra.Command{
	Use:   "repl [scenario]",
	Short: "Line-oriented query console",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRepl,
}

var exploreCmd = &cobra.Command{
	Use:   "explore [scenario]",
	Short: "Terminal UI for exploring a ruleset",
	Long: `Opens the ruleset explorer. Falls back to the plain console when stdout is
not a terminal or --plain is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

func init() {
	replCmd.Flags().StringVar(&scriptFile, "script", "", "Read commands from a file and echo them")
	exploreCmd.Flags().BoolVar(&plain, "plain", false, "Use the plain console")
}

// openSession loads the optional scenario and the ruleset into a holder
// the console can reload. It returns the directory /reload reads.
func openSession(args []string) (*ruleset.Holder, *scenario.Scenario, string, error) {
	var sc *scenario.Scenario
	if len(args) == 1 {
		var err error
		if sc, err = scenario.Load(args[0]); err != nil {
			return nil, nil, "", err
		}
	}
	dir := rulesetDir
	if dir == "" && sc != nil {
		dir = sc.RulesetDir()
	}
	rs, err := loadRuleset(dir)
	if err != nil {
		return nil, nil, "", err
	}
	return ruleset.NewHolder(rs), sc, dir, nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	h, sc, dir, err := openSession(args)
	if err != nil {
		return err
	}
	c := cli.New(h, sc)
	c.RulesetDir = dir
	c.Log = logger
	c.Out = cmd.OutOrStdout()
	c.In = cmd.InOrStdin()

	// Script mode: read the file and echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c.In = f
		c.EchoInput = true
	}
	c.Run()
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	if plain || !isTerminal() {
		return runRepl(cmd, args)
	}
	h, sc, dir, err := openSession(args)
	if err != nil {
		return err
	}
	return tui.Run(h, sc, dir, logger)
}
