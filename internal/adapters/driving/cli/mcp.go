package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/mcp"
	"github.com/scrybe-labs/scrybe-cli/internal/core/services"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default)
  scrybe mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  scrybe mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	searchCfg := services.OrchestratorConfig{}
	if configStore != nil {
		searchCfg.SegmentPageSize = configStore.GetInt("search.segment_page_size")
		searchCfg.CappedLimit = configStore.GetInt("search.capped_limit")
		searchCfg.Language = configStore.GetString("search.language")
	}

	ports := &mcp.Ports{
		Archive:      archiveClient,
		History:      historyStore,
		SearchConfig: searchCfg,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
