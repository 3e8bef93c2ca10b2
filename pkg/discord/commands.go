package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Adirelle/cmdbase/pkg/commands"
	"github.com/Adirelle/cmdbase/pkg/prefixes"
	"github.com/apex/log"
)

type (
	// PrefixSaver persists the prefix chosen by a guild.
	PrefixSaver interface {
		SavePrefix(ctx context.Context, guildID, prefix string) error
	}
)

const (
	HelpCommand   = "help"
	PrefixCommand = "prefix"

	MaxPrefixLen = 32
)

var ErrInvalidPrefix = errors.New("invalid prefix")

// RegisterBuiltins adds the help and prefix commands.
func RegisterBuiltins(registry *commands.Registry, cache *prefixes.Cache, saver PrefixSaver) {
	registry.MustRegister(commands.Options{
		Commands:    commands.Names(HelpCommand, "commands"),
		Description: "list all commands",
		MaxArgs:     commands.Limit(0),
		Handler:     helpHandler(registry),
	})
	registry.MustRegister(commands.Options{
		Commands:        commands.Names(PrefixCommand, "setprefix"),
		Permissions:     commands.Names("ADMINISTRATOR"),
		PermissionError: "Only administrators can change the command prefix.",
		MinArgs:         1,
		MaxArgs:         commands.Limit(1),
		ExpectedArgs:    "<new prefix>",
		Description:     "change the command prefix of this server",
		Handler:         prefixHandler(cache, saver),
	})
}

func helpHandler(registry *commands.Registry) commands.HandlerFunc {
	return func(_ context.Context, inv *commands.Invocation) error {
		return inv.Message.Reply(FormatHelp(registry.Definitions(), inv.Prefix))
	}
}

// FormatHelp lists the commands in a code block, one per line.
func FormatHelp(defs []*commands.Definition, prefix string) string {
	names := make([]string, len(defs))
	width := 0
	for i, def := range defs {
		names[i] = prefix + strings.Join(def.Aliases, ", "+prefix)
		if l := len(names[i]); l > width {
			width = l
		}
	}

	lineFmt := fmt.Sprintf("%%-%ds - %%s\n", width)
	builder := strings.Builder{}
	builder.WriteString("\n```\n")
	for i, def := range defs {
		fmt.Fprintf(&builder, lineFmt, names[i], def.Description)
	}
	builder.WriteString("```")
	return builder.String()
}

func prefixHandler(cache *prefixes.Cache, saver PrefixSaver) commands.HandlerFunc {
	return func(ctx context.Context, inv *commands.Invocation) error {
		prefix := inv.Args[0]
		if len(prefix) > MaxPrefixLen {
			return fmt.Errorf("%w: at most %d characters", ErrInvalidPrefix, MaxPrefixLen)
		}
		guildID := inv.Message.GuildID()

		if err := saver.SavePrefix(ctx, guildID, prefix); err != nil {
			log.WithFields(inv).WithError(err).Error("prefixes.save")
			return errors.New("could not save the new prefix")
		}
		cache.Update(guildID, prefix)

		log.WithFields(inv).WithField("newPrefix", prefix).Info("prefixes.update")
		return inv.Reply("The command prefix is now `%s`.", prefix)
	}
}
