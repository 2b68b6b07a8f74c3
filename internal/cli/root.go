package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/backendgen/backendgen/internal/cli/wizard"
	"github.com/backendgen/backendgen/internal/core/project"
	"github.com/backendgen/backendgen/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "backendgen",
	Short: "Scaffold a Node.js backend project",
	Long: `backendgen asks a few questions and generates a ready-to-run Node.js
backend: Express routes, CORS, TypeScript, Zod validators, JWT auth
middleware, and either Prisma (PostgreSQL) or Mongoose (MongoDB).

It creates the project folder (or uses the current one with "."), writes
the source files, installs dependencies with the configured package manager
and configures package.json.

Configuration is read from $BACKENDGEN_CONFIG or the user config directory
(backendgen/config.yaml), with BACKENDGEN_* environment overrides.`,
	Args:          cobra.NoArgs,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if deps == nil {
			return fmt.Errorf("dependencies not initialized")
		}
		return runScaffold(cmd.Context(), deps, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("backendgen %s\n", version.GetFullVersion()))
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the backendgen CLI
// @MX:REASON: [AUTO] fan_in=2, called from cmd/backendgen/main.go and root_test.go
// Execute initializes dependencies and runs the root command.
func Execute(ctx context.Context) error {
	if err := InitDependencies(os.Stdin, os.Stdout, os.Stderr); err != nil {
		return err
	}
	return rootCmd.ExecuteContext(ctx)
}

// runScaffold asks the questions, resolves the target and generates the
// project. Declining the non-empty directory prompt or cancelling a
// question ends the run without error.
func runScaffold(ctx context.Context, d *Dependencies, out io.Writer) error {
	cwd, err := d.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	name, err := d.Prompter.AskProjectName(ctx)
	if err != nil {
		return endRun(out, d, err)
	}

	target, err := d.Resolver().Resolve(ctx, cwd, name)
	if err != nil {
		return endRun(out, d, err)
	}

	answers, err := d.Prompter.AskStack(ctx, name)
	if err != nil {
		return endRun(out, d, err)
	}

	gen, err := d.Generator(out)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, renderInfoCard(d.Theme, targetNotice(target)))

	result, err := gen.Generate(ctx, target, answers)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, renderSummary(d.Theme, result))
	_, _ = fmt.Fprintln(out, renderNextSteps(d.Theme, target, answers, d.Config.PackageManager))
	return nil
}

// endRun turns a decline or cancellation into a notice and a nil error.
func endRun(out io.Writer, d *Dependencies, err error) error {
	switch {
	case errors.Is(err, project.ErrDeclined):
		_, _ = fmt.Fprintln(out, renderWarningCard(d.Theme, "Aborted. No files were changed."))
		return nil
	case errors.Is(err, wizard.ErrCancelled), errors.Is(err, context.Canceled):
		_, _ = fmt.Fprintln(out, renderWarningCard(d.Theme, "Cancelled."))
		return nil
	default:
		return err
	}
}
