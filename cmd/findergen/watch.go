package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// settle is how long watch waits for a burst of writes to end.
const settle = 100 * time.Millisecond

func watchCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the descriptor changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return watch(cmd.Context(), o, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	o.register(cmd)
	return cmd
}

// watch runs a pass, then another one after every change of the descriptor,
// until ctx is done. Editors often replace files instead of writing them, so
// the directory is watched rather than the file.
func watch(ctx context.Context, o *options, out, logOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	path, err := filepath.Abs(o.config)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	pass := func() {
		report, err := run(ctx, o, logOut)
		if err != nil {
			fmt.Fprintln(out, color.New(color.FgRed).Sprint(err))
			return
		}
		printReport(out, report)
	}
	pass()

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			timer = time.After(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			o.logger(logOut).Warn("watch error", "err", err)
		case <-timer:
			timer = nil
			pass()
		}
	}
}
