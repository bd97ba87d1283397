package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/artpar/blockade/internal/core/config"
	"github.com/artpar/blockade/internal/core/deployment"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// app carries state shared by every subcommand once settings are loaded.
type app struct {
	stdout       io.Writer
	stderr       io.Writer
	settingsPath string
	cfg          *Config
	logger       *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "blockade",
		Short: "Validate and order blockade container definitions",
		Long: `blockade reads a blockade.yaml file describing a set of linked containers,
validates it, and computes the order in which the containers can be started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(a.settingsPath, cmd.Flags())
			if err != nil {
				return &settingsError{Err: err}
			}
			a.cfg = cfg
			a.logger = SetupLogger(cfg, a.stderr)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.settingsPath, "config", "c", "", "settings file for the blockade CLI")
	flags.StringP("file", "f", config.DefaultFilename, "blockade config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	root.AddCommand(
		newValidateCmd(a),
		newOrderCmd(a),
		newPlanCmd(a),
		newVersionCmd(a),
	)
	return root
}

// loadBlockade reads and validates the blockade file and resolves its layers.
func (a *app) loadBlockade() (*config.Configuration, [][]*config.ContainerSpec, error) {
	path := a.cfg.File
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := config.ParseYAML(content)
	if err != nil {
		a.logger.Error("invalid blockade config", "file", path, "kind", config.KindOf(err), "error", err)
		return nil, nil, err
	}
	a.logger.Debug("loaded blockade config", "file", path, "containers", len(cfg.Containers))

	layers, err := deployment.DependencyLayers(cfg.ContainerList())
	if err != nil {
		a.logger.Error("cannot order containers", "file", path, "kind", config.KindOf(err), "error", err)
		return nil, nil, err
	}
	return cfg, layers, nil
}

// =============================================================================
// Commands
// =============================================================================

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the blockade file for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, layers, err := a.loadBlockade()
			if err != nil {
				return err
			}
			a.logger.Info("blockade config is valid", "file", a.cfg.File, "containers", len(cfg.Containers), "layers", len(layers))
			fmt.Fprintf(a.stdout, "%s: %d containers in %d layers\n", a.cfg.File, len(cfg.Containers), len(layers))
			return nil
		},
	}
}

func newOrderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the container start order, one layer per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, layers, err := a.loadBlockade()
			if err != nil {
				return err
			}
			for i, layer := range layers {
				names := make([]string, 0, len(layer))
				for _, c := range layer {
					names = append(names, c.Name)
				}
				sort.Strings(names)
				fmt.Fprintf(a.stdout, "%d: %s\n", i+1, strings.Join(names, " "))
			}
			return nil
		},
	}
}

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the staged Docker start plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := a.loadBlockade()
			if err != nil {
				return err
			}

			id := a.cfg.BlockadeID()
			stages, err := deployment.BuildStartPlan(cfg, id, environVariables())
			if err != nil {
				return err
			}
			a.logger.Debug("built start plan", "id", id, "stages", len(stages))

			return writePlan(a.stdout, a.cfg.Output, stages)
		},
	}
	cmd.Flags().String("id", "", "blockade id used to prefix container names (default: config directory name)")
	cmd.Flags().StringP("output", "o", "yaml", "output format (yaml, json)")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "blockade %s (built %s)\n", Version, BuildTime)
		},
	}
}

// =============================================================================
// Output
// =============================================================================

func writePlan(w io.Writer, format string, stages []deployment.Stage) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stages)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(stages); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// environVariables exposes the invoking environment to ${VAR} expansion.
func environVariables() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}
