package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nathoo/actioncore/cli"
	"github.com/nathoo/actioncore/engine"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/scenario"
)

var (
	trials  int
	seed    int64
	from    int64
	workers int
)

// queryCmd answers questions about one scenario.
var queryCmd = &cobra.Command{
	Use:   "query <scenario> [action...]",
	Short: "Ask whether actions are enabled and how likely they succeed",
	Long: `Answers each named action for the scenario's actor and target. Without
actions the scenario's own queries run and their expectations are checked.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

var menuCmd = &cobra.Command{
	Use:   "menu <scenario>",
	Short: "Evaluate every action against the scenario's target",
	Args:  cobra.ExactArgs(1),
	RunE:  runMenu,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario>",
	Short: "Replay the diplomatic battle and compare with the estimate",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

// batchCmd checks many scenario files against one ruleset snapshot.
var batchCmd = &cobra.Command{
	Use:   "batch <scenario...>",
	Short: "Check the queries of many scenarios concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	simulateCmd.Flags().IntVarP(&trials, "trials", "n", cli.DefaultTrials, "Number of battles to fight")
	simulateCmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (default: the scenario's seed)")
	simulateCmd.Flags().Int64Var(&from, "from", 0, "Resume the seed's roll sequence at this position")
	batchCmd.Flags().IntVarP(&workers, "workers", "j", 0, "Scenarios checked at once (or set ACTIONCORE_WORKERS)")
}

// openScenario loads a scenario and the ruleset it is asked against:
// --ruleset when given, else the scenario's own ruleset.
func openScenario(path string) (*scenario.Scenario, *ruleset.Ruleset, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, nil, err
	}
	dir := rulesetDir
	if dir == "" {
		dir = sc.RulesetDir()
	}
	rs, err := loadRuleset(dir)
	if err != nil {
		return nil, nil, err
	}
	return sc, rs, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	sc, rs, err := openScenario(args[0])
	if err != nil {
		return err
	}
	defer rs.Teardown()
	eng := engine.New(rs, engine.WithLogger(logger))
	out := cmd.OutOrStdout()

	var answers []cli.Answer
	if len(args) > 1 {
		// Action names may be given as separate words or quoted.
		for _, name := range splitActions(args[1:]) {
			answers = append(answers, cli.Ask(eng, sc, scenario.Query{Action: name}))
		}
	} else {
		answers = cli.AskAll(eng, sc)
	}

	failed := 0
	for _, a := range answers {
		fmt.Fprintln(out, a)
		for _, m := range a.Mismatch {
			fmt.Fprintf(out, "  %s\n", m)
		}
		if !a.Pass() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(answers))
	}
	return nil
}

// splitActions joins arguments into action names separated by commas, so
// both `query s.yaml "bribe unit"` and `query s.yaml bribe unit, fortify`
// work.
func splitActions(args []string) []string {
	var out []string
	for _, part := range strings.Split(strings.Join(args, " "), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func runMenu(cmd *cobra.Command, args []string) error {
	sc, rs, err := openScenario(args[0])
	if err != nil {
		return err
	}
	defer rs.Teardown()
	eng := engine.New(rs, engine.WithLogger(logger))
	out := cmd.OutOrStdout()

	actor, target := sc.Contexts()
	for _, e := range eng.Menu(actor, target) {
		if e.Err != nil {
			fmt.Fprintf(out, "%-28s error: %v\n", e.Action.RuleName, e.Err)
			continue
		}
		fmt.Fprintf(out, "%-28s %-6s %s\n", e.Action.RuleName, e.Enabled, e.Prob)
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sc, rs, err := openScenario(args[0])
	if err != nil {
		return err
	}
	defer rs.Teardown()
	eng := engine.New(rs, engine.WithLogger(logger))

	s := sc.Seed
	if cmd.Flags().Changed("seed") {
		s = seed
	}
	actor, target := sc.Contexts()
	if from < 0 {
		return fmt.Errorf("--from %d must not be negative", from)
	}
	sim, err := eng.SimulateBattle(actor, target, trials, engine.RestoreRNG(s, from))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "defender %s: won %d of %d (%.1f%%), estimate %s, seed %d, position %d\n",
		sim.Defender, sim.Wins, sim.Trials, sim.Rate()*100, sim.Estimate, sim.Seed, sim.Position)
	if !sim.Agrees(0.05) {
		return fmt.Errorf("simulated rate %.3f disagrees with estimate %s", sim.Rate(), sim.Estimate)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := rulesetDir
	if dir == "" {
		sc, err := scenario.Load(args[0])
		if err != nil {
			return err
		}
		dir = sc.RulesetDir()
	}
	rs, err := loadRuleset(dir)
	if err != nil {
		return err
	}
	defer rs.Teardown()

	n := workers
	if n == 0 {
		n = cfg.Workers
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := cli.Batch(ctx, rs, args, n, logger)
	if err != nil {
		return err
	}
	if failed := cli.WriteBatch(cmd.OutOrStdout(), results); failed > 0 {
		return fmt.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}
