package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/polyfloyd/shaderprep/depgraph"
)

const debounceInterval = 20 * time.Millisecond

func newWatchCmd() *cobra.Command {
	opts := &expandOptions{}
	cmd := &cobra.Command{
		Use:   "watch ENTRY",
		Short: "Expand a shader every time one of its files changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			return watchExpand(ctx, cmd, args[0], opts)
		},
	}
	opts.register(cmd)
	opts.registerOutput(cmd)
	return cmd
}

// expandOnce expands the entry file and returns all files that were read,
// even if expansion failed halfway.
func expandOnce(cmd *cobra.Command, entry string, opts *expandOptions) ([]string, error) {
	dg := depgraph.New()
	chunks, err := opts.process(entry, dg.Option())
	if err != nil {
		return dg.Files(), err
	}
	out, err := openWriter(cmd, opts.output)
	if err != nil {
		return dg.Files(), err
	}
	return dg.Files(), writeTo(out, func(w io.Writer) error {
		return writeExpanded(w, chunks, opts)
	})
}

func watchExpand(ctx context.Context, cmd *cobra.Command, entry string, opts *expandOptions) error {
	for ctx.Err() == nil {
		files, err := expandOnce(cmd, entry, opts)
		if err != nil {
			log.Println(err)
		}
		if entryPath, err := opts.entryPath(entry); err == nil {
			files = append(files, entryPath)
		}

		if err := waitForChange(ctx, opts.crawlConfig, files); err != nil {
			return err
		}
	}
	return nil
}

// waitForChange blocks until one of the files is written, created, removed or
// renamed, or the context is canceled.
func waitForChange(ctx context.Context, cfg crawlConfig, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors tend to replace files instead of writing to them, so the
	// directories are watched instead of the files themselves.
	watched := map[string]bool{}
	for _, f := range files {
		path := filepath.Clean(cfg.osPath(f))
		watched[path] = true
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			log.Println(err)
		}
	}
	isRelevant := func(event fsnotify.Event) bool {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
			!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
			return false
		}
		return watched[filepath.Clean(event.Name)]
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event) {
				continue
			}
			// Wait for the burst of events of a single save to settle.
			t := time.NewTimer(debounceInterval)
		outer:
			for {
				select {
				case <-watcher.Events:
				case <-t.C:
					break outer
				case <-ctx.Done():
					t.Stop()
					return nil
				}
			}
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println(err)
		}
	}
}
