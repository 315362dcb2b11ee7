package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/chazu/interpose/proxygen"
)

func newWatchCmd(opts *options) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate shells whenever their packages change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reqs, m, err := opts.plan()
			if err != nil {
				return err
			}
			genOpts := proxygen.Options{}
			var extra []string
			if m != nil {
				genOpts.Concurrency = m.Generate.Concurrency
				extra = m.WatchDirs()
			}

			regen := func() {
				results, err := proxygen.GenerateAll(ctx, reqs, genOpts)
				if err != nil {
					log.Errorf("%s", err)
					return
				}
				for _, res := range results {
					if res.Written {
						fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.Path)
					}
				}
			}

			w, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer w.Close()

			outputs := make(map[string]bool, len(reqs))
			dirs := make(map[string]bool)
			for _, req := range reqs {
				model, err := proxygen.Introspect(req)
				if err != nil {
					return err
				}
				outputs[filepath.Clean(model.Output)] = true
				dirs[model.Dir] = true
			}
			for _, d := range extra {
				dirs[filepath.Clean(d)] = true
			}
			for d := range dirs {
				if err := w.Add(d); err != nil {
					return fmt.Errorf("watching %s: %w", d, err)
				}
				log.Infof("watching %s", d)
			}

			regen()
			watchLoop(ctx, w.Events, w.Errors, outputs, debounce, regen)
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before regenerating")
	return cmd
}

// watchLoop calls regen once events for Go sources settle for the debounce
// delay. Events for generated outputs are ignored. It returns when ctx is done
// or either channel is closed.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, outputs map[string]bool, delay time.Duration, regen func()) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if !relevant(event, outputs) {
				continue
			}
			log.Debugf("%s %s", event.Op, event.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(delay)
			fire = timer.C

		case <-fire:
			fire = nil
			regen()

		case err, ok := <-errs:
			if !ok {
				return
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func relevant(event fsnotify.Event, outputs map[string]bool) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return !outputs[name]
}
