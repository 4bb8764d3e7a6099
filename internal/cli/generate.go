package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autocrate/autocrate/pkg/pipeline"
	"github.com/autocrate/autocrate/pkg/spec"
)

// generateCommand creates the generate command, the main entry point.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output     string
		policyPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "generate [crate.toml]",
		Short: "Generate an NX expressions file from a crate spec",
		Long: `Generate an NX expressions file from a crate spec.

The crate spec is a TOML file describing the product envelope, the
clearances around it, and the run options:

    [product]
    length = 100.0
    width = 40.0
    height = 50.0
    weight = 300.0

    [clearance]
    side = 2.5
    end = 2.5
    above = 2.0
    ground = 1.0

    [options]
    allow_light_skids = true

Stock sizes, spacing rules, and the skid/cleat sizing tables come from
the built-in policy; use --policy to override it with a TOML file
(see 'autocrate policy --write').

Results are cached locally; identical inputs reuse the cached output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], output, policyPath, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.exp)")
	cmd.Flags().StringVar(&policyPath, "policy", "", "stock policy TOML file (default: built-in policy)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input, output, policyPath string, noCache bool) error {
	s, err := spec.LoadFile(input)
	if err != nil {
		return err
	}
	p, err := loadPolicy(policyPath)
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".toml") + ".exp"
	}

	runner := c.newRunner(noCache)
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Spec:    s,
		Policy:  p,
		Output:  output,
		NoCache: noCache,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	printSummary(result, output)
	return nil
}
