package permissions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type (
	// Permission is one of the known guild permission names.
	Permission string

	Set []Permission

	info struct {
		bit   int64
		label string
	}
)

const (
	CreateInstantInvite Permission = "CREATE_INSTANT_INVITE"
	KickMembers         Permission = "KICK_MEMBERS"
	BanMembers          Permission = "BAN_MEMBERS"
	Administrator       Permission = "ADMINISTRATOR"
	ManageChannels      Permission = "MANAGE_CHANNELS"
	ManageGuild         Permission = "MANAGE_GUILD"
	AddReactions        Permission = "ADD_REACTIONS"
	ViewAuditLog        Permission = "VIEW_AUDIT_LOG"
	PrioritySpeaker     Permission = "PRIORITY_SPEAKER"
	Stream              Permission = "STREAM"
	ViewChannel         Permission = "VIEW_CHANNEL"
	SendMessages        Permission = "SEND_MESSAGES"
	SendTTSMessages     Permission = "SEND_TTS_MESSAGES"
	ManageMessages      Permission = "MANAGE_MESSAGES"
	EmbedLinks          Permission = "EMBED_LINKS"
	AttachFiles         Permission = "ATTACH_FILES"
	ReadMessageHistory  Permission = "READ_MESSAGE_HISTORY"
	MentionEveryone     Permission = "MENTION_EVERYONE"
	UseExternalEmojis   Permission = "USE_EXTERNAL_EMOJIS"
	ViewGuildInsights   Permission = "VIEW_GUILD_INSIGHTS"
	Connect             Permission = "CONNECT"
	Speak               Permission = "SPEAK"
	MuteMembers         Permission = "MUTE_MEMBERS"
	DeafenMembers       Permission = "DEAFEN_MEMBERS"
	MoveMembers         Permission = "MOVE_MEMBERS"
	UseVAD              Permission = "USE_VAD"
	ChangeNickname      Permission = "CHANGE_NICKNAME"
	ManageNicknames     Permission = "MANAGE_NICKNAMES"
	ManageRoles         Permission = "MANAGE_ROLES"
	ManageWebhooks      Permission = "MANAGE_WEBHOOKS"
	ManageEmojis        Permission = "MANAGE_EMOJIS"
)

var (
	ErrUnknownPermission = errors.New("unknown permission")

	known = map[Permission]info{
		CreateInstantInvite: {discordgo.PermissionCreateInstantInvite, "Create Instant Invite"},
		KickMembers:         {discordgo.PermissionKickMembers, "Kick Members"},
		BanMembers:          {discordgo.PermissionBanMembers, "Ban Members"},
		Administrator:       {discordgo.PermissionAdministrator, "Administrator"},
		ManageChannels:      {discordgo.PermissionManageChannels, "Manage Channels"},
		ManageGuild:         {discordgo.PermissionManageServer, "Manage Server"},
		AddReactions:        {discordgo.PermissionAddReactions, "Add Reactions"},
		ViewAuditLog:        {discordgo.PermissionViewAuditLogs, "View Audit Log"},
		PrioritySpeaker:     {discordgo.PermissionVoicePrioritySpeaker, "Priority Speaker"},
		Stream:              {discordgo.PermissionVoiceStreamVideo, "Stream Video"},
		ViewChannel:         {discordgo.PermissionViewChannel, "View Channel"},
		SendMessages:        {discordgo.PermissionSendMessages, "Send Messages"},
		SendTTSMessages:     {discordgo.PermissionSendTTSMessages, "Send TTS Messages"},
		ManageMessages:      {discordgo.PermissionManageMessages, "Manage Messages"},
		EmbedLinks:          {discordgo.PermissionEmbedLinks, "Embed Links"},
		AttachFiles:         {discordgo.PermissionAttachFiles, "Attach Files"},
		ReadMessageHistory:  {discordgo.PermissionReadMessageHistory, "Read Message History"},
		MentionEveryone:     {discordgo.PermissionMentionEveryone, "Mention Everyone"},
		UseExternalEmojis:   {discordgo.PermissionUseExternalEmojis, "Use External Emojis"},
		ViewGuildInsights:   {discordgo.PermissionViewGuildInsights, "View Guild Insights"},
		Connect:             {discordgo.PermissionVoiceConnect, "Connect"},
		Speak:               {discordgo.PermissionVoiceSpeak, "Speak"},
		MuteMembers:         {discordgo.PermissionVoiceMuteMembers, "Mute Members"},
		DeafenMembers:       {discordgo.PermissionVoiceDeafenMembers, "Deafen Members"},
		MoveMembers:         {discordgo.PermissionVoiceMoveMembers, "Move Members"},
		UseVAD:              {discordgo.PermissionVoiceUseVAD, "Use Voice Activity"},
		ChangeNickname:      {discordgo.PermissionChangeNickname, "Change Nickname"},
		ManageNicknames:     {discordgo.PermissionManageNicknames, "Manage Nicknames"},
		ManageRoles:         {discordgo.PermissionManageRoles, "Manage Roles"},
		ManageWebhooks:      {discordgo.PermissionManageWebhooks, "Manage Webhooks"},
		ManageEmojis:        {discordgo.PermissionManageEmojis, "Manage Emojis"},
	}

	_ fmt.Stringer = (*Permission)(nil)
	_ fmt.Stringer = (*Set)(nil)
)

// Parse checks every name against the known permissions and stops at the first unknown one.
func Parse(names ...string) (Set, error) {
	set := make(Set, 0, len(names))
	for _, name := range names {
		perm := Permission(name)
		if !perm.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPermission, name)
		}
		set = append(set, perm)
	}
	return set, nil
}

func (p Permission) IsValid() bool {
	_, found := known[p]
	return found
}

// Bit returns the permission flag, 0 for unknown permissions.
func (p Permission) Bit() int64 {
	return known[p].bit
}

func (p Permission) String() string {
	if i, found := known[p]; found {
		return i.label
	}
	return string(p)
}

// GrantedBy reports whether the flags grant p. Administrator grants everything.
func (p Permission) GrantedBy(flags int64) bool {
	if flags&discordgo.PermissionAdministrator != 0 {
		return true
	}
	bit := p.Bit()
	return bit != 0 && flags&bit == bit
}

func (s Set) String() string {
	b := strings.Builder{}
	for i, perm := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(perm.String())
	}
	return b.String()
}
