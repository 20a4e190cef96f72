package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"

	// Packages
	httpclient "github.com/abeyrathna-np/meteo/pkg/httpclient"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ClientCommands struct {
	// Commands
	Chat      ChatCmd           `cmd:"" help:"Ask a natural-language weather question." group:"CLIENT"`
	Weather   WeatherListCmd    `cmd:"" help:"List weather records." group:"CLIENT"`
	Get       WeatherGetCmd     `cmd:"" name:"get" help:"Get the weather record for one date." group:"CLIENT"`
	Locations LocationListCmd   `cmd:"" help:"List locations." group:"CLIENT"`
	Location  LocationGetCmd    `cmd:"" help:"Get a location by ID." group:"CLIENT"`
	AddPlace  LocationCreateCmd `cmd:"" name:"add-location" help:"Create a location." group:"CLIENT"`
	Health    HealthCmd         `cmd:"" help:"Check service health." group:"CLIENT"`
}

type ChatCmd struct {
	Message string `arg:"" help:"Message to send"`
}

type WeatherListCmd struct {
	Offset uint  `name:"offset" help:"Offset for pagination"`
	Limit  *uint `name:"limit" help:"Maximum number of records to return"`
}

type WeatherGetCmd struct {
	Date string `arg:"" help:"Date in YYYY-MM-DD form"`
}

type LocationListCmd struct {
	Offset uint  `name:"offset" help:"Offset for pagination"`
	Limit  *uint `name:"limit" help:"Maximum number of locations to return"`
}

type LocationGetCmd struct {
	ID int64 `arg:"" help:"Location ID"`
}

type LocationCreateCmd struct {
	Name string `arg:"" help:"Location name"`
	Geom string `arg:"" help:"Point geometry in well-known-text form, e.g. POINT(79.8612 6.9271)"`
}

type HealthCmd struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCmd) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := c.Chat(ctx.ctx, cmd.Message)
	if err != nil {
		return err
	}
	fmt.Println(response.Response)
	return nil
}

func (cmd *WeatherListCmd) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := c.ListWeather(ctx.ctx, schema.ListWeatherRequest{
		Offset: cmd.Offset,
		Limit:  cmd.Limit,
	})
	if err != nil {
		return err
	}
	return printJSON(response)
}

func (cmd *WeatherGetCmd) Run(ctx *Globals) error {
	date, err := schema.ParseDate(cmd.Date)
	if err != nil {
		return err
	}
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := c.GetWeather(ctx.ctx, date)
	if err != nil {
		return err
	}
	return printJSON(response)
}

func (cmd *LocationListCmd) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := c.ListLocations(ctx.ctx, schema.ListLocationRequest{
		Offset: cmd.Offset,
		Limit:  cmd.Limit,
	})
	if err != nil {
		return err
	}
	return printJSON(response)
}

func (cmd *LocationGetCmd) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := c.GetLocation(ctx.ctx, cmd.ID)
	if err != nil {
		return err
	}
	return printJSON(response)
}

func (cmd *LocationCreateCmd) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := c.CreateLocation(ctx.ctx, schema.CreateLocationRequest{
		Name: cmd.Name,
		Geom: cmd.Geom,
	})
	if err != nil {
		return err
	}
	return printJSON(response)
}

func (cmd *HealthCmd) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := c.Health(ctx.ctx)
	if err != nil {
		return err
	}
	return printJSON(response)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns an httpclient.Client configured from the global HTTP flags
func (g *Globals) Client() (*httpclient.Client, error) {
	endpoint, err := g.clientEndpoint()
	if err != nil {
		return nil, err
	}
	return httpclient.New(endpoint, g.ClientOpts()...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// clientEndpoint returns the endpoint URL for the configured server address
func (g *Globals) clientEndpoint() (string, error) {
	scheme := "http"
	host, port, err := net.SplitHostPort(g.HTTP.Addr)
	if err != nil {
		return "", err
	}

	// Default host to localhost if empty (e.g., ":8080")
	if host == "" {
		host = "localhost"
	}

	// Parse port
	portn, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return "", err
	}
	if portn == 443 {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s:%v%s", scheme, host, portn, types.NormalisePath(g.HTTP.Prefix)), nil
}

// printJSON writes the value to stdout as indented JSON
func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
