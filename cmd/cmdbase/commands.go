package main

import (
	"context"
	"time"

	"github.com/Adirelle/cmdbase/pkg/commands"
)

func RegisterCommands(registry *commands.Registry) {
	registry.MustRegister(commands.Options{
		Commands:    commands.Names("ping", "p"),
		Description: "check that the bot answers",
		MaxArgs:     commands.Limit(1),
		Handler: func(_ context.Context, inv *commands.Invocation) error {
			return inv.Reply("pong! (%s)", time.Now().Format(time.Kitchen))
		},
	})
	registry.MustRegister(commands.Options{
		Commands:     commands.Names("echo", "say"),
		Permissions:  commands.Names("MANAGE_MESSAGES"),
		Description:  "repeat the given text",
		MinArgs:      1,
		ExpectedArgs: "<text>",
		Handler: func(_ context.Context, inv *commands.Invocation) error {
			return inv.Message.Reply(inv.Text)
		},
	})
}
