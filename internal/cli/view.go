package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pluton2d/pluton"
	"github.com/pluton2d/pluton/ebitenview"
)

type viewOpts struct {
	sets       []string
	scriptPath string
	showFPS    bool
	watch      bool
}

func newViewCmd(g *globalOpts) *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view [drawing]",
		Short: "Open a drawing in an interactive window",
		Long: `Opens a drawing in a window. Middle-drag or shift-drag pans, the wheel
zooms around the cursor, R resets the camera. With --watch the params
table of the --config file is reapplied whenever the file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, g, opts, args)
		},
	}

	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "override a param (key=value, repeatable)")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "replay a JSON input script, then exit")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show FPS and TPS")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload params when the --config file changes")
	return cmd
}

func runView(cmd *cobra.Command, g *globalOpts, opts viewOpts, args []string) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	d, err := resolveDrawing(args, cfg)
	if err != nil {
		return err
	}
	scene, err := buildScene(d, cfg, opts.sets)
	if err != nil {
		return err
	}
	defer scene.Dispose()

	if opts.scriptPath != "" {
		data, err := os.ReadFile(opts.scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := pluton.LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
	}

	run := ebitenview.RunConfig{
		Title:     fmt.Sprintf("%s - %s", cfg.Title, d.Name),
		Width:     cfg.Width,
		Height:    cfg.Height,
		ShowFPS:   opts.showFPS,
		Resizable: true,
	}

	if opts.watch {
		if g.configPath == "" {
			return fmt.Errorf("--watch needs --config")
		}
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		updates, err := watchParams(ctx, logger, g.configPath)
		if err != nil {
			return err
		}
		run.Update = func() error {
			select {
			case params := <-updates:
				if err := scene.Params().Update(params); err != nil {
					logger.Error("reload params", "err", err)
				} else {
					logger.Info("reloaded params", "keys", len(params))
				}
			default:
			}
			return nil
		}
	}

	logger.Debug("opening window", "drawing", d.Name, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	return ebitenview.Run(scene, run)
}

// watchParams watches the config file and delivers its params table after
// every change. Only the latest table is kept when the consumer lags.
func watchParams(ctx context.Context, logger *log.Logger, path string) (<-chan map[string]any, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	// editors replace files on save, so watch the directory
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}

	abs, _ := filepath.Abs(path)
	out := make(chan map[string]any, 1)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if p, _ := filepath.Abs(ev.Name); p != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := pluton.LoadConfig(path)
				if err != nil {
					logger.Warn("reload config", "err", err)
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- cfg.Params
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch config", "err", err)
			}
		}
	}()
	return out, nil
}
