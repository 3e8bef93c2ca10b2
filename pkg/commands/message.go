package commands

import (
	"fmt"
	"strings"

	"github.com/Adirelle/cmdbase/pkg/permissions"
)

type (
	// Message is an inbound chat message, as seen by the dispatcher.
	Message interface {
		GuildID() string
		Content() string
		HasPermission(permissions.Permission) bool
		HasRole(roleID string) bool
		GuildRoles() []Role
		Reply(text string) error
		SendUsage(Usage) error
	}

	Role struct {
		ID   string
		Name string
	}

	// Usage is sent when a command is called with the wrong number of arguments.
	Usage struct {
		Prefix       string
		Command      string
		ExpectedArgs string
	}
)

func (Usage) Title() string {
	return "Invalid command"
}

func (u Usage) Description() string {
	return strings.TrimSpace(fmt.Sprintf("Use %s%s %s", u.Prefix, u.Command, u.ExpectedArgs))
}

// FindRole returns the first role with exactly the given name.
func FindRole(roles []Role, name string) (Role, bool) {
	for _, role := range roles {
		if role.Name == name {
			return role, true
		}
	}
	return Role{}, false
}
