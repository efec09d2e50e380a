package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/assemble/cmd/assemble/commands"
	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}
	parser := kong.Must(&cli,
		kong.Name("assemble"),
		kong.Description("Assemble static pages from layouts, materials, data and docs."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&cli); err != nil {
		foundation.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
