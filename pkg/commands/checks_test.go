package commands_test

import (
	"testing"

	"github.com/Adirelle/cmdbase/pkg/commands"
	"github.com/Adirelle/cmdbase/pkg/permissions"
	"github.com/stretchr/testify/assert"
)

func invocation(def *commands.Definition, msg *fakeMessage, args ...string) *commands.Invocation {
	return &commands.Invocation{Message: msg, Definition: def, Name: def.Name, Args: args, Prefix: "?"}
}

func TestCheckPermissions(t *testing.T) {
	t.Parallel()
	def := &commands.Definition{Name: "kick", Permissions: permissions.Set{permissions.KickMembers}}

	assert.Nil(t, commands.CheckPermissions(invocation(def, newMessage("").withPermissions(permissions.KickMembers))))

	rejection := commands.CheckPermissions(invocation(def, newMessage("")))
	if assert.NotNil(t, rejection) {
		assert.Equal(t, "permission", rejection.Check)
		assert.Equal(t, "KICK_MEMBERS", rejection.Missing)
		assert.Equal(t, commands.DefaultPermissionError, rejection.Text)
	}
}

func TestCheckRolesSkipsGuildLookupWithoutRequirements(t *testing.T) {
	t.Parallel()
	def := &commands.Definition{Name: "free"}
	assert.Nil(t, commands.CheckRoles(invocation(def, newMessage(""))))
}

func TestCheckArgCount(t *testing.T) {
	t.Parallel()
	def := &commands.Definition{Name: "one", MinArgs: 1, MaxArgs: commands.Limit(1), ExpectedArgs: "<x>"}

	assert.Nil(t, commands.CheckArgCount(invocation(def, newMessage(""), "a")))

	rejection := commands.CheckArgCount(invocation(def, newMessage("")))
	if assert.NotNil(t, rejection) && assert.NotNil(t, rejection.Usage) {
		assert.Equal(t, "Use ?one <x>", rejection.Usage.Description())
		assert.Equal(t, "Invalid command", rejection.Usage.Title())
	}
}

func TestRejectionSend(t *testing.T) {
	t.Parallel()
	msg := newMessage("")

	assert.NoError(t, (&commands.Rejection{Text: "no"}).Send(msg))
	assert.NoError(t, (&commands.Rejection{Usage: &commands.Usage{Command: "x"}}).Send(msg))

	assert.Equal(t, []string{"no"}, msg.replies)
	assert.Len(t, msg.usages, 1)
}

func TestUsageWithoutExpectedArgs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Use !ping", commands.Usage{Prefix: "!", Command: "ping"}.Description())
}
