// Command stereocode-mcp exposes the engine as an MCP stdio tool server
// (spec §6's domain-stack MCP surface), a thin wrapper around mcpserver.
package main

import (
	"fmt"
	"os"

	"github.com/oxhq/stereocode/internal/config"
	"github.com/oxhq/stereocode/internal/telemetry"
	"github.com/oxhq/stereocode/mcpserver"
	"github.com/oxhq/stereocode/primitives"
)

func main() {
	cfg := config.Load()
	logger := telemetry.New(telemetry.LevelInfo)

	table, err := loadPrimitives(cfg.PrimitivesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading primitive table: %v\n", err)
		os.Exit(1)
	}

	srv := mcpserver.New(table, logger)
	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadPrimitives(path string) (*primitives.Table, error) {
	if path == "" {
		return primitives.New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return primitives.Load(f)
}
