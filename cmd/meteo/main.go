package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	store "github.com/abeyrathna-np/meteo/pkg/store"
	tool "github.com/abeyrathna-np/meteo/pkg/tool"
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Database
	Database string `name:"db" env:"METEO_DB" default:"meteo.db" help:"SQLite database path"`

	// Provider
	OpenAI `embed:"" help:"OpenAI configuration"`

	// Server
	HTTP `embed:"" prefix:"http." help:"HTTP configuration"`

	// Context
	ctx      context.Context
	log      *logger
	execName string
}

type OpenAI struct {
	OpenAIKey   string `env:"OPENAI_API_KEY" help:"OpenAI API Key"`
	OpenAIModel string `env:"OPENAI_MODEL" help:"OpenAI model for chat completions"`
}

type HTTP struct {
	Addr    string        `name:"addr" default:"localhost:8080" help:"HTTP listen address"`
	Prefix  string        `name:"prefix" default:"/api" help:"API path prefix"`
	Origin  string        `name:"origin" default:"*" help:"CORS origin"`
	Timeout time.Duration `name:"timeout" default:"30s" help:"Client timeout"`
}

type CLI struct {
	Globals

	// Commands
	ServerCommands
	DatabaseCommands
	MCPCommands
	ClientCommands

	Version VersionCmd `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Weather data service command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.log = &logger{debug: cli.Debug || cli.Verbose}
	cli.Globals.execName = execName()

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ClientOpts returns the HTTP client options from the global flags
func (g *Globals) ClientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.HTTP.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.HTTP.Timeout))
	}
	return opts
}

// Store opens the database and applies any pending migrations
func (g *Globals) Store() (*store.Store, error) {
	s, err := store.New(g.Database)
	if err != nil {
		return nil, err
	}
	applied, err := s.Migrate(g.ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	if applied > 0 {
		g.log.Printf(g.ctx, "applied %d migration(s) to %q", applied, g.Database)
	}
	return s, nil
}

// Toolkit returns the data-access tools registered in a toolkit
func (g *Globals) Toolkit(s *store.Store) (*tool.Toolkit, error) {
	return tool.NewToolkit(store.NewTools(s)...)
}

////////////////////////////////////////////////////////////////////////////////
// LOGGER

// logger writes progress messages to stderr
type logger struct {
	debug bool
}

func (l *logger) Print(_ context.Context, args ...any) {
	fmt.Fprintln(os.Stderr, args...)
}

func (l *logger) Printf(_ context.Context, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func (l *logger) Debugf(ctx context.Context, format string, args ...any) {
	if l.debug {
		l.Printf(ctx, format, args...)
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
