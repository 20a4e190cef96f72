package main

import (
	"os"
	"strings"

	// Packages
	mcp "github.com/abeyrathna-np/meteo/pkg/mcp"
	version "github.com/abeyrathna-np/meteo/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MCPCommands struct {
	// Commands
	MCP MCPServerCmd `cmd:"" name:"mcp" help:"Start an MCP server exposing the data tools." group:"SERVER"`
}

type MCPServerCmd struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *MCPServerCmd) Run(ctx *Globals) error {
	// Open the store and create the toolkit
	s, err := ctx.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	toolkit, err := ctx.Toolkit(s)
	if err != nil {
		return err
	}

	// Log tools that will be exposed via MCP
	var toolNames []string
	for _, t := range toolkit.Tools() {
		toolNames = append(toolNames, t.Name())
	}
	ctx.log.Print(ctx.ctx, "Starting MCP server with tools:", strings.Join(toolNames, ", "))

	// Run the server on stdio
	server := mcp.New(ctx.execName, version.Version(), toolkit)
	return server.RunStdio(ctx.ctx, os.Stdin, os.Stdout)
}
