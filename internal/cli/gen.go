package cli

// This file implements the "gen" command, which emits concrete error chain
// types for a package from a YAML config.

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"errchain/internal/gen"
	"errchain/pkg/errchain"
)

// NewGenCmd returns the gen command.
func NewGenCmd(logger *zap.Logger) *cobra.Command {
	var configPath string
	var output string

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate error types bound to a kind",
		Long: `Generate a concrete error type per kind from a YAML config.

Example config:

  package: store
  output: errors_gen.go
  types:
    - kind: Kind
      name: Error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &Printer{Out: cmd.OutOrStdout()}
			p.Info("reading " + configPath)
			path, err := runGen(configPath, output)
			if err != nil {
				logStructuredError(logger, err, "gen failed")
				return err
			}
			p.Success("wrote " + path)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "errchain.yaml", "Path to generator config (YAML)")
	cmd.Flags().StringVar(&output, "out", "", "Output file, relative to the current directory (overrides config output, which is relative to the config file)")

	return cmd
}

// runGen loads the config and writes the generated file. The config's own
// output is resolved against the config directory, output against the
// current directory.
func runGen(configPath, output string) (string, error) {
	cfg, err := gen.LoadConfig(configPath)
	if err != nil {
		return "", errchain.Context(err, StepLoadConfig)
	}
	if output != "" {
		abs, err := filepath.Abs(output)
		if err != nil {
			return "", errchain.Context(err, StepGenerate)
		}
		cfg.Output = abs
	}
	path, err := gen.Write(cfg, filepath.Dir(configPath))
	if err != nil {
		return "", errchain.Context(err, StepGenerate)
	}
	return path, nil
}
