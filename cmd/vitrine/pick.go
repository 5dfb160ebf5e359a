package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/vitrine/internal/app"
	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/library"
	"github.com/llehouerou/vitrine/internal/logger"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/notify"
	"github.com/llehouerou/vitrine/internal/picker"
	"github.com/llehouerou/vitrine/internal/stderr"
	"github.com/llehouerou/vitrine/internal/ui/gallery"
	"github.com/llehouerou/vitrine/internal/ui/thumbs"
)

type pickFlags struct {
	requestCode int
	max         int
	selection   []string
	types       []string
	output      string
}

func newPickCmd() *cobra.Command {
	var f pickFlags
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Open the picker and print the chosen images",
		Long: `Open the picker over the indexed library. On confirm the selection is
written to stdout, one path per line or as JSON. On cancel nothing is
written and the exit status is 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPick(cmd, f)
		},
	}
	cmd.Flags().IntVar(&f.requestCode, "request-code", 0, "code echoed back in the result (required)")
	cmd.Flags().IntVar(&f.max, "max", 0, "maximum number of images (default from config)")
	cmd.Flags().StringSliceVar(&f.selection, "select", nil, "initially selected image paths")
	cmd.Flags().StringSliceVar(&f.types, "type", nil, "MIME types to show (image/jpeg, image/png, image/bmp)")
	cmd.Flags().StringVarP(&f.output, "output", "o", string(picker.FormatPaths), "result format: paths or json")
	return cmd
}

// buildRequest validates the flags against the configured defaults.
func buildRequest(cmd *cobra.Command, f pickFlags, maxDefault int, typesDefault []string) (picker.Request, picker.Format, error) {
	format, err := picker.ParseFormat(f.output)
	if err != nil {
		return picker.Request{}, "", err
	}

	b := picker.New()
	if cmd.Flags().Changed("request-code") {
		b.RequestCode(f.requestCode)
	}
	maxSelection := maxDefault
	if cmd.Flags().Changed("max") {
		maxSelection = f.max
	}
	types := typesDefault
	if cmd.Flags().Changed("type") {
		types = f.types
	}
	refs := make([]media.Ref, len(f.selection))
	for i, s := range f.selection {
		refs[i] = media.Ref(s)
	}

	req, err := b.MaxSelection(maxSelection).Selection(refs...).MediaTypes(types...).Open()
	return req, format, err
}

func runPick(cmd *cobra.Command, f pickFlags) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	req, format, err := buildRequest(cmd, f, e.cfg.MaxSelection, e.cfg.MediaTypes)
	if err != nil {
		return err
	}
	log := logger.WithSession(e.log, req.Session)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := ensureIndexed(ctx, e); err != nil {
		return err
	}

	// stdout belongs to the host; the UI talks to the terminal directly.
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer tty.Close()

	cache, err := thumbs.NewCache("")
	if err != nil {
		log.Warn("thumbnail cache unavailable", "err", err)
	}
	renderer := thumbs.New(thumbs.Detect(e.cfg.ImageProtocol), cache)

	var toaster app.Toaster
	if e.cfg.Notifications {
		n, err := notify.New()
		if err != nil {
			log.Warn("desktop notifications unavailable", "err", err)
		} else {
			toaster = notify.NewToaster(n, log)
		}
	}

	grid := e.cfg.GetGridConfig()
	m := app.New(app.Options{
		Request: req,
		Loader:  media.NewLoader(ctx, e.lib),
		Info:    e.lib,
		Thumbs:  renderer,
		Toaster: toaster,
		Cell:    gallery.Cell{Width: grid.CellWidth, Height: grid.CellHeight},
		Logger:  log,
	})

	if err := stderr.Start(log); err != nil {
		log.Warn("stderr capture unavailable", "err", err)
	}
	final, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
		tea.WithContext(ctx),
	).Run()
	stderr.Stop()
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}

	fm, ok := final.(app.Model)
	if !ok {
		return fmt.Errorf("unexpected model %T", final)
	}
	if cleanup := fm.Cleanup(); cleanup != "" {
		_, _ = tty.WriteString(cleanup)
	}

	res, done := fm.Result()
	if !done || res.Canceled {
		log.Info("session ended without a selection")
		return errCanceled
	}
	if err := res.Write(cmd.OutOrStdout(), format); err != nil {
		return errmsg.Wrap(errmsg.OpResultWrite, err)
	}
	log.Info("selection written", "count", len(res.Selection), "format", format)
	return nil
}

// ensureIndexed runs a first scan when the index is empty and library
// sources are configured.
func ensureIndexed(ctx context.Context, e *env) error {
	if !e.cfg.HasLibrary() {
		return nil
	}
	n, err := e.lib.Count(ctx)
	if err != nil {
		return errmsg.Wrap(errmsg.OpIndexOpen, err)
	}
	if n > 0 {
		return nil
	}
	e.log.Info("index empty, scanning library", "sources", e.cfg.LibrarySources)
	return runScan(ctx, e, e.cfg.LibrarySources, library.ScanOptions{Exclude: e.cfg.Exclude}, os.Stderr)
}
