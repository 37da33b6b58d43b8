package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pluton2d/pluton"
)

// maxScriptFrames bounds a headless script run.
const maxScriptFrames = 100_000

type scriptOpts struct {
	outDir string
	sets   []string
}

func newScriptCmd(g *globalOpts) *cobra.Command {
	opts := scriptOpts{outDir: "screenshots"}

	cmd := &cobra.Command{
		Use:   "script <script.json> [drawing]",
		Short: "Replay a JSON input script headlessly",
		Long: `Replays a script of camera input, param writes and captures against a
drawing without opening a window. Supported actions: wheel, drag, pinch,
reset, set, wait, snapshot (SVG) and screenshot (PNG).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, g, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", opts.outDir, "directory for snapshots and screenshots")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "override a param (key=value, repeatable)")
	return cmd
}

func runScript(cmd *cobra.Command, g *globalOpts, opts scriptOpts, path string, args []string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := pluton.LoadTestScript(data)
	if err != nil {
		return err
	}

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
	scene.ScreenshotDir = opts.outDir
	scene.SetTestRunner(runner)

	step := scene.Engine().FrameBudget()
	now := step
	frames := 0
	for !runner.Done() || scene.PendingInput() > 0 {
		if frames >= maxScriptFrames {
			return fmt.Errorf("script did not finish after %d frames", maxScriptFrames)
		}
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		scene.ProcessInput()
		if _, err := scene.RunFrame(now); err != nil {
			return err
		}
		now += step
		frames++
	}
	if _, err := settle(scene, now); err != nil {
		return err
	}

	prog.done("Replayed "+path, "drawing", d.Name, "frames", frames)
	return nil
}
