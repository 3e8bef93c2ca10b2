package discord

import (
	"context"
	"fmt"

	"github.com/Adirelle/cmdbase/pkg/events"
	"github.com/Adirelle/cmdbase/pkg/utils"
	"github.com/apex/log"
	"github.com/bwmarrin/discordgo"
	"github.com/thejerf/suture/v4"
)

type (
	// Bot keeps the Discord session open and forwards gateway events to the event loop.
	Bot struct {
		Config
		*discordgo.Session
		dispatcher events.Dispatcher
	}

	ReadyEvent struct {
		Presence PresenceUpdater
		Username string
		GuildIDs []string
	}
)

var (
	_ suture.Service = (*Bot)(nil)
	_ events.Event   = ReadyEvent{}
	_ events.Event   = (*Message)(nil)
)

func NewBot(config Config, dispatcher events.Dispatcher) *Bot {
	return &Bot{
		Config:     config,
		dispatcher: dispatcher,
	}
}

func (b *Bot) GoString() string {
	return "Discord Bot"
}

func (b *Bot) String() string {
	return "discord bot"
}

func (b *Bot) Serve(ctx context.Context) (err error) {
	err = b.connect()
	if err != nil {
		return fmt.Errorf("could not connect to Discord: %w", err)
	}
	defer b.disconnect()

	<-ctx.Done()
	return nil
}

func (b *Bot) connect() (err error) {
	if b.Session != nil {
		return
	}
	log.Debug("discord.connecting")

	if b.Session, err = discordgo.New("Bot " + b.Config.Token.Reveal()); err == nil {
		b.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
		b.AddHandler(b.onReady)
		b.AddHandler(b.onMessage)

		err = b.Open()
	}

	if err != nil {
		log.WithError(err).Error("discord.connect")
		b.Session = nil
	}
	return
}

func (b *Bot) onReady(session *discordgo.Session, ready *discordgo.Ready) {
	log.WithField("username", ready.User.Username).WithField("guilds", len(ready.Guilds)).Info("discord.ready")
	_ = b.dispatcher.DispatchEvent(ReadyEvent{
		Presence: session,
		Username: ready.User.Username,
		GuildIDs: utils.MapSlice(ready.Guilds, func(g *discordgo.Guild) string { return g.ID }),
	})
}

func (b *Bot) onMessage(session *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if session.State.User != nil && m.Author.ID == session.State.User.ID {
		return
	}
	_ = b.dispatcher.DispatchEvent(NewMessage(session, m.Message))
}

func (b *Bot) disconnect() {
	if b.Session == nil {
		return
	}
	log.Debug("discord.disconnecting")

	err := b.Session.Close()
	b.Session = nil

	if err != nil {
		log.WithError(err).Info("discord.disconnect")
	}
}

func (e ReadyEvent) Fields() log.Fields {
	return log.Fields{
		"username": e.Username,
		"guilds":   len(e.GuildIDs),
	}
}
