package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pluton2d/pluton"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOpts are the persistent flags shared by every command.
type globalOpts struct {
	verbose    bool
	configPath string
}

// Execute runs the pluton CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var g globalOpts

	root := &cobra.Command{
		Use:          "pluton",
		Short:        "pluton renders parametric technical drawings",
		Long:         `pluton is a reactive SVG drawing engine. The CLI renders the bundled demo drawings headlessly, replays input scripts, or opens them in an interactive window.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			l := newLogger(os.Stderr, level)
			pluton.SetLogger(l.WithPrefix("pluton"))
			cmd.SetContext(withLogger(cmd.Context(), l))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("pluton %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "TOML scene configuration")

	root.AddCommand(newListCmd())
	root.AddCommand(newSnapshotCmd(&g))
	root.AddCommand(newScriptCmd(&g))
	root.AddCommand(newViewCmd(&g))
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available drawings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range drawingNames() {
				d, _ := lookupDrawing(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", d.Name, d.Description)
			}
			return nil
		},
	}
}
