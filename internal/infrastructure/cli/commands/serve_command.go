package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/git-repo-agent/internal/app"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/mcpserver"
	"github.com/doeshing/git-repo-agent/internal/version"
)

// NewServeCommand runs the repository tools as an MCP stdio server.
func NewServeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve repo_analyze, health_score and report_generate over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container.Logger.Info("serving MCP tools on stdio", nil)
			s := mcpserver.New(version.Version, container.Scorer, container.Analyzer)
			return mcpserver.Serve(s)
		},
	}
}
