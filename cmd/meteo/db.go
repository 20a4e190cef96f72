package main

import (
	"errors"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	openmeteo "github.com/abeyrathna-np/meteo/pkg/openmeteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	store "github.com/abeyrathna-np/meteo/pkg/store"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type DatabaseCommands struct {
	// Commands
	Migrate MigrateCmd `cmd:"" help:"Apply pending database migrations." group:"DATABASE"`
	Import  ImportCmd  `cmd:"" help:"Import historical weather data from Open-Meteo." group:"DATABASE"`
}

type MigrateCmd struct{}

type ImportCmd struct {
	Location  string  `name:"location" default:"Colombo" help:"Location name"`
	Latitude  float64 `name:"latitude" default:"6.9271" help:"Location latitude"`
	Longitude float64 `name:"longitude" default:"79.8612" help:"Location longitude"`
	StartDate string  `name:"start-date" default:"2000-01-01" help:"First date to import (YYYY-MM-DD)"`
	EndDate   string  `name:"end-date" default:"2025-06-01" help:"Last date to import (YYYY-MM-DD)"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *MigrateCmd) Run(ctx *Globals) error {
	s, err := store.New(ctx.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	applied, err := s.Migrate(ctx.ctx)
	if err != nil {
		return err
	}
	version, err := s.Version(ctx.ctx)
	if err != nil {
		return err
	}
	ctx.log.Printf(ctx.ctx, "applied %d migration(s), database at version %d", applied, version)
	return nil
}

func (cmd *ImportCmd) Run(ctx *Globals) error {
	startDate, err := schema.ParseDate(cmd.StartDate)
	if err != nil {
		return err
	}
	endDate, err := schema.ParseDate(cmd.EndDate)
	if err != nil {
		return err
	}

	// Open the store
	s, err := ctx.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	// Create the location unless it already exists
	location, err := cmd.location(ctx, s)
	if err != nil {
		return err
	}

	// Fetch the daily series from Open-Meteo
	client, err := openmeteo.New(ctx.ClientOpts()...)
	if err != nil {
		return err
	}
	ctx.log.Printf(ctx.ctx, "fetching %s to %s for %q", startDate, endDate, location.Name)
	archive, err := client.Archive(ctx.ctx, openmeteo.ArchiveRequest{
		Latitude:  cmd.Latitude,
		Longitude: cmd.Longitude,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return err
	}

	// Insert the records in one transaction
	records, err := archive.Records(types.Ptr(location.ID))
	if err != nil {
		return err
	}
	count, err := s.InsertWeather(ctx.ctx, records)
	if err != nil {
		return err
	}
	ctx.log.Printf(ctx.ctx, "imported %d weather record(s)", count)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// location returns the named location, creating it if necessary
func (cmd *ImportCmd) location(ctx *Globals, s *store.Store) (*schema.Location, error) {
	location, err := s.GetLocationByName(ctx.ctx, cmd.Location)
	if errors.Is(err, meteo.ErrNotFound) {
		point := schema.Point{Longitude: cmd.Longitude, Latitude: cmd.Latitude}
		return s.CreateLocation(ctx.ctx, schema.CreateLocationRequest{
			Name: cmd.Location,
			Geom: point.WKT(),
		})
	}
	return location, err
}
