package commands_test

import (
	"context"

	"github.com/Adirelle/cmdbase/pkg/commands"
	"github.com/Adirelle/cmdbase/pkg/permissions"
)

type (
	fakeMessage struct {
		guildID     string
		content     string
		permissions map[permissions.Permission]bool
		roleIDs     map[string]bool
		guildRoles  []commands.Role

		replies []string
		usages  []commands.Usage
	}

	fakePrefixes map[string]string

	handlerCall struct {
		inv    *commands.Invocation
		called int
	}
)

func newMessage(content string) *fakeMessage {
	return &fakeMessage{
		guildID:     "guild",
		content:     content,
		permissions: make(map[permissions.Permission]bool),
		roleIDs:     make(map[string]bool),
	}
}

func (m *fakeMessage) withPermissions(perms ...permissions.Permission) *fakeMessage {
	for _, perm := range perms {
		m.permissions[perm] = true
	}
	return m
}

func (m *fakeMessage) withGuildRole(id, name string, held bool) *fakeMessage {
	m.guildRoles = append(m.guildRoles, commands.Role{ID: id, Name: name})
	if held {
		m.roleIDs[id] = true
	}
	return m
}

func (m *fakeMessage) GuildID() string                                { return m.guildID }
func (m *fakeMessage) Content() string                                { return m.content }
func (m *fakeMessage) HasPermission(perm permissions.Permission) bool { return m.permissions[perm] }
func (m *fakeMessage) HasRole(roleID string) bool                     { return m.roleIDs[roleID] }
func (m *fakeMessage) GuildRoles() []commands.Role                    { return m.guildRoles }

func (m *fakeMessage) Reply(text string) error {
	m.replies = append(m.replies, text)
	return nil
}

func (m *fakeMessage) SendUsage(usage commands.Usage) error {
	m.usages = append(m.usages, usage)
	return nil
}

func (p fakePrefixes) Resolve(guildID string) string {
	if prefix, found := p[guildID]; found {
		return prefix
	}
	return "!"
}

func (h *handlerCall) handler() commands.HandlerFunc {
	return func(_ context.Context, inv *commands.Invocation) error {
		h.called++
		h.inv = inv
		return nil
	}
}
