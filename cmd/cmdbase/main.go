package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Adirelle/cmdbase/pkg/commands"
	"github.com/Adirelle/cmdbase/pkg/discord"
	"github.com/Adirelle/cmdbase/pkg/prefixes"
	"github.com/Adirelle/cmdbase/pkg/store"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

func init() {
	log.SetHandler(cli.New(os.Stderr))
	log.SetLevel(log.DebugLevel)
}

func main() {
	conf, err := LoadConfig(FindConfigFile(ConfigSearchPath()))
	if err != nil {
		log.WithError(err).Fatal("could not load configuration")
	}
	logService := conf.Logging.Setup()

	if err = store.Migrate(*conf.Database); err != nil {
		log.WithError(err).Fatal("could not prepare the database")
	}

	cache := prefixes.NewCache(conf.Discord.Prefix)
	registry := commands.NewRegistry()
	discord.RegisterBuiltins(registry, cache, conf.Database)
	RegisterCommands(registry)

	rootSupervisor := MakeRootSupervisor(filepath.Base(os.Args[0]))
	if logService != nil {
		rootSupervisor.Add(logService)
	}

	bot := discord.NewBot(*conf.Discord, rootSupervisor.Dispatcher)
	rootSupervisor.AddHandler(&discord.Handler{
		Commands: commands.NewDispatcher(registry, cache, bot),
		Loader:   prefixes.NewLoader(conf.Database, cache),
	})
	rootSupervisor.Add(bot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("commands", registry.Len()).WithField("prefix", cache.Default()).Info("cmdbase.start")
	err = rootSupervisor.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("exit")
	}
	log.Info("cmdbase.stop")
}
