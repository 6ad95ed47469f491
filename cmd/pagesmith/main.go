package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagesmith/cmd/pagesmith/commands"
	ferrors "git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/pagesmith/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("pagesmith"),
		kong.Description("Compile a directory of content files into a static website."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := commands.NewGlobal(ctx, cli.Lang)
	err := parser.Run(global, &cli)
	if err != nil {
		stop()
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
