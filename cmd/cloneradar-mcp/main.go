// Command cloneradar-mcp exposes clone detection over the Model Context
// Protocol so an editor or agent can call the engine directly instead of
// shelling out to the cloneradar CLI.
package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cloneradar/cloneradar/internal/config"
	"github.com/cloneradar/cloneradar/mcp"
)

const (
	serverName    = "cloneradar"
	serverVersion = "1.0.0"
)

func main() {
	// MCP uses stdout for JSON-RPC; all logging goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	configPath := os.Getenv("CLONERADAR_CONFIG")
	cfg, _, err := config.Load(configPath, nil)
	if err != nil {
		log.Printf("warning: failed to load config: %v, using defaults", err)
		cfg = config.DefaultConfig()
	}

	deps := mcp.NewDependencies(cfg, configPath)
	mcp.RegisterTools(server, deps)

	log.Printf("starting %s MCP server v%s", serverName, serverVersion)
	log.Println("registered tools:")
	log.Println("  - find_similar_fragments: detect structurally similar code under a path")
	log.Println("  - compare_fragments: score the similarity of two source snippets")
	log.Println("")
	log.Println("server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
