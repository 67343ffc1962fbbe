package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/report"
	"github.com/nathoo/actioncore/watch"
)

// watchCmd revalidates a ruleset every time one of its files changes.
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Revalidate a ruleset whenever its files change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := rulesetDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no ruleset directory: use an argument, --ruleset or ACTIONCORE_RULESET_DIR")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	opts := []watch.Option{
		watch.WithLogger(logger),
		watch.WithDebounce(cfg.WatchDebounce),
		watch.OnReload(func(r watch.Result) {
			writeValidation(out, r.Run, r.Err)
		}),
	}
	if reportDB != "" {
		store, err := report.Open(ctx, reportDB)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, watch.WithStore(store))
	}

	h := ruleset.NewHolder(nil)
	w, err := watch.New(dir, h, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if rs := h.Swap(nil); rs != nil {
			rs.Teardown()
		}
	}()

	w.Reload(ctx)
	fmt.Fprintf(out, "Watching %s, press Ctrl+C to stop.\n", dir)
	return w.Run(ctx)
}
