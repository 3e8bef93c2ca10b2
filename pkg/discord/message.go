package discord

import (
	"math/rand"
	"time"

	"github.com/Adirelle/cmdbase/pkg/commands"
	"github.com/Adirelle/cmdbase/pkg/permissions"
	"github.com/Adirelle/cmdbase/pkg/utils"
	"github.com/apex/log"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/exp/slices"
)

// Message adapts a guild message to the command dispatcher.
type Message struct {
	*discordgo.Session
	Raw *discordgo.Message

	flags       int64
	flagsLoaded bool
}

var _ commands.Message = (*Message)(nil)

func NewMessage(session *discordgo.Session, message *discordgo.Message) *Message {
	return &Message{Session: session, Raw: message}
}

func (m *Message) GuildID() string {
	return m.Raw.GuildID
}

func (m *Message) Content() string {
	return m.Raw.Content
}

// HasPermission checks the author's permissions in the channel of the message.
func (m *Message) HasPermission(perm permissions.Permission) bool {
	if !m.flagsLoaded {
		flags, err := m.State.UserChannelPermissions(m.Raw.Author.ID, m.Raw.ChannelID)
		if err != nil {
			flags, err = m.UserChannelPermissions(m.Raw.Author.ID, m.Raw.ChannelID)
		}
		if err != nil {
			log.WithFields(m).WithError(err).Warn("discord.permissions")
			return false
		}
		m.flags, m.flagsLoaded = flags, true
	}
	return perm.GrantedBy(m.flags)
}

func (m *Message) HasRole(roleID string) bool {
	return m.Raw.Member != nil && slices.Contains(m.Raw.Member.Roles, roleID)
}

func (m *Message) GuildRoles() []commands.Role {
	var roles []*discordgo.Role
	if guild, err := m.State.Guild(m.Raw.GuildID); err == nil {
		roles = guild.Roles
	} else if roles, err = m.Session.GuildRoles(m.Raw.GuildID); err != nil {
		log.WithFields(m).WithError(err).Warn("discord.roles")
		return nil
	}
	return utils.MapSlice(roles, func(r *discordgo.Role) commands.Role {
		return commands.Role{ID: r.ID, Name: r.Name}
	})
}

func (m *Message) Reply(text string) error {
	_, err := m.ChannelMessageSendReply(m.Raw.ChannelID, text, m.Raw.Reference())
	return err
}

func (m *Message) SendUsage(usage commands.Usage) error {
	_, err := m.ChannelMessageSendEmbed(m.Raw.ChannelID, UsageEmbed(usage, m.State.User, time.Now()))
	return err
}

func (m *Message) Fields() log.Fields {
	fields := log.Fields{
		"guildID":   m.Raw.GuildID,
		"channelID": m.Raw.ChannelID,
	}
	if m.Raw.Author != nil {
		fields["author"] = m.Raw.Author.Username
	}
	return fields
}

// UsageEmbed renders the reply to a command called with a wrong number of arguments.
func UsageEmbed(usage commands.Usage, bot *discordgo.User, when time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       usage.Title(),
		Description: usage.Description(),
		Color:       rand.Intn(0xFFFFFF + 1),
		Timestamp:   when.Format(time.RFC3339),
	}
	if bot != nil {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    bot.Username,
			IconURL: bot.AvatarURL(""),
		}
	}
	return embed
}
