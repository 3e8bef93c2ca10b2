package discord

import (
	"context"

	"github.com/Adirelle/cmdbase/pkg/commands"
	"github.com/Adirelle/cmdbase/pkg/events"
	"github.com/Adirelle/cmdbase/pkg/prefixes"
	"github.com/apex/log"
)

type (
	// Handler consumes the events forwarded by Bot, from inside the event loop.
	Handler struct {
		Commands *commands.Dispatcher
		Loader   *prefixes.Loader
	}

	// PresenceUpdater is the part of the session used to advertise the help command.
	PresenceUpdater interface {
		UpdateGameStatus(idle int, name string) error
	}
)

var _ events.Handler = (*Handler)(nil)

func (h *Handler) HandleEvent(ev events.Event) {
	ctx := context.Background()
	switch e := ev.(type) {
	case *Message:
		h.HandleMessage(ctx, e)
	case ReadyEvent:
		h.HandleReady(ctx, e)
	}
}

// HandleMessage dispatches msg and answers handler errors in bold.
func (h *Handler) HandleMessage(ctx context.Context, msg commands.Message) {
	err := h.Commands.Dispatch(ctx, msg)
	if err == nil {
		return
	}
	if rerr := msg.Reply("**" + err.Error() + "**"); rerr != nil {
		log.WithField("guildID", msg.GuildID()).WithError(rerr).Warn("discord.reply")
	}
}

// HandleReady loads the prefixes of the guilds the bot is in, then updates its presence.
func (h *Handler) HandleReady(ctx context.Context, ready ReadyEvent) {
	if err := h.Loader.Load(ctx, ready.GuildIDs); err != nil {
		log.WithFields(ready).WithError(err).Error("prefixes.load")
	}
	if ready.Presence != nil {
		UpdateStatus(ready.Presence, h.Loader.Cache.Default())
	}
}
