package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/taskfall/config"
)

// Set by the linker
var (
	version = "dev"
	commit  = "none"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath string
	source     string
	debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "taskfall",
		Short: "Tasks as falling bodies in a terminal day view.",
		Long: `Each task becomes a rigid body whose size, weight, bounce and color follow its
duration, age, importance and type. A strip sweeps down the view as the day passes.
Hold a body to open its details, drag it out of the view to remove it.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default $HOME/.taskfall.toml)")
	cmd.PersistentFlags().StringVarP(&opts.source, "source", "s", "", "Task source: a SQLite database or a .yaml file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write diagnostics to logs/taskfall.log")

	addRun(cmd, opts)
	addInspect(cmd, opts)
	addSeed(cmd, opts)
	addVersion(cmd)
	return cmd
}

// loadConfig resolves the configuration and applies flag overrides
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.source != "" {
		switch strings.ToLower(filepath.Ext(opts.source)) {
		case ".yaml", ".yml":
			cfg.SourceYAML = opts.source
		default:
			cfg.SourceYAML = ""
			cfg.SourceDB = opts.source
		}
	}
	if opts.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func addRun(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the day view.",
		Example: `
taskfall run
taskfall run --source ~/tasks.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), opts)
		},
	}
	topLevel.AddCommand(cmd)
}

func addVersion(topLevel *cobra.Command) {
	short := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the taskfall version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "taskfall %s (%s)\n", version, commit)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print just the version number.")
	topLevel.AddCommand(cmd)
}
