package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sdkview/internal/config"
	mcpserver "github.com/ziadkadry99/sdkview/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Loads one game and starts a Model Context Protocol (MCP) server on stdio, exposing SDK query tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Stdout carries the protocol; loadGame reports on stderr only.
		data, err := loadGame(context.Background(), cfg)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "sdkview MCP server started on stdio (game=%s, source=%s)\n", data.Game, describeSource(cfg))

		srv := mcpserver.NewServer(data)
		return srv.Serve()
	},
}

func init() {
	addGameFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

// describeSource is a one-line summary of where dumps come from.
func describeSource(cfg *config.Config) string {
	if cfg.Source == config.SourceLocal {
		return cfg.LocalDir
	}
	s := fmt.Sprintf("github.com/%s/%s/%s", cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Path)
	if cfg.GitHub.Branch != "" {
		s += "@" + cfg.GitHub.Branch
	}
	return s
}
