package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// policyCommand creates the policy command for inspecting and exporting
// the effective stock policy.
func (c *CLI) policyCommand() *cobra.Command {
	var (
		policyPath string
		write      string
	)

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show or export the effective stock policy",
		Long: `Show or export the effective stock policy.

Without flags, prints the effective policy (built-in defaults, or the
file given with --policy) as TOML to stdout. With --write, writes it to
a file instead - a convenient starting point for a custom policy:

    autocrate policy --write shop.toml
    autocrate generate crate.toml --policy shop.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPolicy(policyPath, write)
		},
	}

	cmd.Flags().StringVar(&policyPath, "policy", "", "stock policy TOML file (default: built-in policy)")
	cmd.Flags().StringVarP(&write, "write", "w", "", "write the policy to a file instead of stdout")

	return cmd
}

func (c *CLI) runPolicy(policyPath, write string) error {
	p, err := loadPolicy(policyPath)
	if err != nil {
		return err
	}

	if write == "" {
		return p.Write(os.Stdout)
	}

	if err := p.WriteFile(write); err != nil {
		return fmt.Errorf("write policy: %w", err)
	}
	printSuccess("wrote stock policy")
	printFile(write)
	return nil
}
