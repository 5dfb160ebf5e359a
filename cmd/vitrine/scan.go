package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/library"
)

var (
	phaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

func newScanCmd() *cobra.Command {
	var (
		force bool
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "scan [directory...]",
		Short: "Index the library for the picker",
		Long: `Index the configured library sources, plus any directories given as
arguments. Only files changed since the last scan are read unless --force
is set. With --watch the index keeps following changes until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			sources := append([]string(nil), e.cfg.LibrarySources...)
			for _, a := range args {
				abs, err := filepath.Abs(a)
				if err != nil {
					return err
				}
				sources = append(sources, abs)
			}
			if len(sources) == 0 {
				return fmt.Errorf("no library sources: add library_sources to the config or pass directories")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := e.lib.SyncSources(ctx, sources); err != nil {
				return errmsg.Wrap(errmsg.OpSourceSync, err)
			}
			opts := library.ScanOptions{Exclude: e.cfg.Exclude, Force: force}
			out := cmd.ErrOrStderr()
			if err := runScan(ctx, e, sources, opts, out); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			fmt.Fprintln(out, phaseStyle.Render("watching for changes, press Ctrl+C to stop"))
			err = e.lib.Watch(ctx, sources, opts, e.log, func(b library.WatchBatch) {
				fmt.Fprintf(out, "indexed %d, removed %d\n", b.Indexed, b.Removed)
			})
			if err != nil && ctx.Err() == nil {
				return errmsg.Wrap(errmsg.OpIndexWatch, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "re-read every file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep the index in sync until interrupted")
	return cmd
}

// runScan refreshes the index and reports progress on w.
func runScan(ctx context.Context, e *env, sources []string, opts library.ScanOptions, w io.Writer) error {
	progress := make(chan library.ScanProgress, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- e.lib.Refresh(ctx, sources, opts, progress)
	}()

	phase := ""
	for p := range progress {
		if p.Phase != phase {
			phase = p.Phase
			if phase != "done" {
				fmt.Fprintln(w, phaseStyle.Render(phase+"…"))
			}
		}
		if p.Stats != nil {
			fmt.Fprintf(w, "%s %s images: %d added, %d updated, %d removed\n",
				doneStyle.Render("done"),
				humanize.Comma(int64(p.Total)),
				p.Stats.Added, p.Stats.Updated, p.Stats.Removed)
		}
	}
	if err := <-errc; err != nil {
		e.log.Error("scan failed", "err", err)
		return errmsg.Wrap(errmsg.OpIndexScan, err)
	}
	return nil
}
