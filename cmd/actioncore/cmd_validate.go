package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nathoo/actioncore/loader"
	"github.com/nathoo/actioncore/report"
)

var historyLimit int

// validateCmd loads a ruleset and reports structural errors and
// consistency violations.
var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check a ruleset for errors and consistency violations",
	Long: `Loads the ruleset, rejects malformed definitions, and checks every action
enabler against the obligatory hard requirements of its action. With
--report the run is recorded for later comparison (see history).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

// historyCmd lists recorded validation runs.
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded validation runs, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to list")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := rulesetDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no ruleset directory: use an argument, --ruleset or ACTIONCORE_RULESET_DIR")
	}

	rs, err := loader.Load(dir, loader.WithLogger(logger))
	run := report.NewRun(dir, rs, err)
	if rs != nil {
		defer rs.Teardown()
	}

	out := cmd.OutOrStdout()
	writeValidation(out, run, err)

	if reportDB != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		store, err := report.Open(ctx, reportDB)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Record(ctx, run); err != nil {
			return err
		}
		fmt.Fprintf(out, "Recorded run %s.\n", run.ID)
	}

	if !run.OK() {
		return fmt.Errorf("ruleset %s is invalid: %d error(s)", run.Ruleset, run.Errors)
	}
	return nil
}

func writeValidation(w io.Writer, run report.Run, err error) {
	var ve *loader.ValidationError
	if errors.As(err, &ve) {
		for _, e := range ve.Errors {
			fmt.Fprintf(w, "error: %s\n", e)
		}
		for _, warn := range ve.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warn)
		}
	} else if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
	}

	if run.OK() {
		fmt.Fprintf(w, "%s %s: %d enablers, no errors", run.Ruleset, run.Version, run.Enablers)
	} else {
		fmt.Fprintf(w, "%s %s: %d enablers, %d error(s)", run.Ruleset, run.Version, run.Enablers, run.Errors)
	}
	if run.Warnings > 0 {
		fmt.Fprintf(w, ", %d warning(s)", run.Warnings)
	}
	fmt.Fprintln(w)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if reportDB == "" {
		return fmt.Errorf("no report database: use --report or ACTIONCORE_REPORT_DB")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := report.Open(ctx, reportDB)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		run, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s %s  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"), run.Ruleset, run.Version, run.Dir)
		if run.LoadError != "" {
			fmt.Fprintf(out, "  load error: %s\n", run.LoadError)
		}
		for _, v := range run.Violations {
			fmt.Fprintf(out, "  %s (%s): %s\n", v.EnablerID, v.Action, v.Message)
		}
		return nil
	}

	runs, err := store.Runs(ctx, rulesetDir, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		status := "ok"
		if !r.OK() {
			status = fmt.Sprintf("%d error(s)", r.Errors)
		}
		fmt.Fprintf(out, "%s  %s  %-16s %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Ruleset, status)
	}
	return nil
}
