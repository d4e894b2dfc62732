// Package cli wires the cobra command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/git-repo-agent/internal/app"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd builds the container and the command tree. The returned cleanup
// releases the container's resources.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func(), error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := container.Close(); err != nil {
			container.Logger.Warn("close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return newRootCmd(container), cleanup, nil
}

func newRootCmd(container *app.Container) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "git-repo-agent",
		Short: "Repository health scoring and agent briefings",
		Long: "git-repo-agent scores repository health across docs, tests, security, quality and CI,\n" +
			"detects the technology stack, and prepares onboarding and maintenance briefings\n" +
			"for a coding agent. The same tools are available over MCP with `serve`.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !debug {
				return
			}
			if l, ok := container.Logger.(interface{ SetVerbose(bool) }); ok {
				l.SetVerbose(true)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable verbose logging")

	root.AddCommand(
		commands.NewHealthCommand(container),
		commands.NewAnalyzeCommand(container),
		commands.NewOnboardCommand(container),
		commands.NewMaintainCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewServeCommand(container),
		commands.NewVersionCommand(),
	)
	return root
}
