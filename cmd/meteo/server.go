package main

import (
	"crypto/tls"
	"fmt"
	"os"

	// Packages
	chat "github.com/abeyrathna-np/meteo/pkg/chat"
	httphandler "github.com/abeyrathna-np/meteo/pkg/httphandler"
	openai "github.com/abeyrathna-np/meteo/pkg/provider/openai"
	store "github.com/abeyrathna-np/meteo/pkg/store"
	tool "github.com/abeyrathna-np/meteo/pkg/tool"
	version "github.com/abeyrathna-np/meteo/pkg/version"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ServerCommands struct {
	// Commands
	RunServer RunServer `cmd:"" name:"server" help:"Run the weather service." group:"SERVER"`
}

type RunServer struct {
	// Generation parameters for the chat orchestrator
	SystemPrompt string  `name:"system-prompt" help:"System prompt for the chat orchestrator"`
	Temperature  float64 `name:"temperature" default:"0.2" help:"Sampling temperature"`
	MaxTokens    uint    `name:"max-tokens" default:"1024" help:"Completion token limit"`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunServer) Run(ctx *Globals) error {
	if ctx.OpenAIKey == "" {
		return fmt.Errorf("no API key configured. Set --open-ai-key (or OPENAI_API_KEY)")
	}

	// Open the store
	s, err := ctx.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	// Create the toolkit with the data-access tools
	toolkit, err := ctx.Toolkit(s)
	if err != nil {
		return err
	}

	// Create the provider client
	provider, err := openai.New(ctx.OpenAIKey, ctx.OpenAIModel, ctx.ClientOpts()...)
	if err != nil {
		return fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	// Create the chat orchestrator
	chatOpts := []chat.Opt{
		chat.WithTemperature(cmd.Temperature),
		chat.WithMaxTokens(cmd.MaxTokens),
	}
	if cmd.SystemPrompt != "" {
		chatOpts = append(chatOpts, chat.WithSystemPrompt(cmd.SystemPrompt))
	}
	orchestrator, err := chat.New(provider, toolkit, chatOpts...)
	if err != nil {
		return err
	}

	// Start the HTTP server and wait for shutdown
	return cmd.Serve(ctx, s, orchestrator, toolkit, version.Version())
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Serve creates the httpserver instance, logs the startup banner, and
// blocks until context cancellation (e.g. SIGINT).
func (cmd *RunServer) Serve(ctx *Globals, s *store.Store, orchestrator *chat.Chat, toolkit *tool.Toolkit, versionTag string) error {
	// Create the TLS config if TLS options are provided
	var tlsConfig *tls.Config
	if cmd.TLS.CertFile != "" || cmd.TLS.KeyFile != "" {
		var pemData [][]byte
		if cmd.TLS.CertFile != "" {
			certData, err := os.ReadFile(cmd.TLS.CertFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS certificate: %w", err)
			}
			pemData = append(pemData, certData)
		}
		if cmd.TLS.KeyFile != "" {
			keyData, err := os.ReadFile(cmd.TLS.KeyFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS key: %w", err)
			}
			pemData = append(pemData, keyData)
		}
		var err error
		tlsConfig, err = httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Create the HTTP router
	router, err := httprouter.NewRouter(ctx.ctx, ctx.HTTP.Prefix, ctx.HTTP.Origin, "Weather Server", versionTag)
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(router, s, orchestrator, toolkit); err != nil {
		return err
	}

	// Create the server
	server, err := httpserver.New(ctx.HTTP.Addr, router, tlsConfig)
	if err != nil {
		return err
	}

	// Run the server
	ctx.log.Printf(ctx.ctx, "%s@%s started on %s", ctx.execName, versionTag, ctx.HTTP.Addr)
	if err := server.Run(ctx.ctx); err != nil {
		return err
	}

	// Return success
	ctx.log.Printf(ctx.ctx, "%s@%s stopped", ctx.execName, versionTag)
	return nil
}
