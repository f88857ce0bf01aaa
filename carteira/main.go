package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/andrelq/carteira/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// Credentials (BRAPI_TOKEN, GEMINI_API_KEY) may live in a local .env.
	// A missing file is fine, the environment still applies.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(subcommands.HelpCommand(), "help")
	commander.Register(subcommands.FlagsCommand(), "help")
	commander.Register(subcommands.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
