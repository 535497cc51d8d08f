package main

import (
	"github.com/alecthomas/kong"
)

type Command struct {
	Render RenderCmd `cmd:"" help:"Render a record file to widget markup."`
	Tree   TreeCmd   `cmd:"" help:"Print a record file as an ASCII tree."`
}

func main() {
	command := new(Command)
	ctx := kong.Parse(
		command,
		kong.Name("pine"),
		kong.Description("Build and render collapsible trees from flat record files"),
		kong.UsageOnError(),
	)
	err := ctx.Run(&App{Stdout: ctx.Stdout})
	ctx.FatalIfErrorf(err)
}
