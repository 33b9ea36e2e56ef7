// Package main is the entrypoint for the CLI.
package main

import (
	"github.com/alecthomas/kong"
	"github.com/rucio/ruciobot/cmd"
)

const ruciobotVersion = "0.1.0"

func main() {
	ctx := kong.Parse(
		&cmd.CLI,
		cmd.FlagsVars,
		kong.DefaultEnvars("RUCIOBOT"),
	)
	err := ctx.Run(&cmd.Context{
		Version: ruciobotVersion,
	})
	ctx.FatalIfErrorf(err)
}
