package main

import (
	"fmt"

	// Packages
	version "github.com/abeyrathna-np/meteo/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCmd struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCmd) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}
