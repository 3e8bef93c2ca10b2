package commands

import (
	"fmt"

	"github.com/apex/log"
)

type (
	// Check returns nil to let the invocation through, or the reason to stop it.
	Check func(*Invocation) *Rejection

	Rejection struct {
		Check   string
		Missing string
		Text    string
		Usage   *Usage
	}
)

var _ log.Fielder = (*Rejection)(nil)

// DefaultChecks are run in this order: permissions, roles, argument count.
func DefaultChecks() []Check {
	return []Check{CheckPermissions, CheckRoles, CheckArgCount}
}

func CheckPermissions(inv *Invocation) *Rejection {
	for _, perm := range inv.Definition.Permissions {
		if !inv.Message.HasPermission(perm) {
			return &Rejection{Check: "permission", Missing: string(perm), Text: inv.Definition.DeniedMessage()}
		}
	}
	return nil
}

func CheckRoles(inv *Invocation) *Rejection {
	if len(inv.Definition.RequiredRoles) == 0 {
		return nil
	}
	roles := inv.Message.GuildRoles()
	for _, name := range inv.Definition.RequiredRoles {
		role, found := FindRole(roles, name)
		if !found || !inv.Message.HasRole(role.ID) {
			return &Rejection{
				Check:   "role",
				Missing: name,
				Text:    fmt.Sprintf("You need the %q role to use this command.", name),
			}
		}
	}
	return nil
}

func CheckArgCount(inv *Invocation) *Rejection {
	if inv.Definition.AcceptsArgCount(len(inv.Args)) {
		return nil
	}
	return &Rejection{
		Check: "arguments",
		Usage: &Usage{Prefix: inv.Prefix, Command: inv.Name, ExpectedArgs: inv.Definition.ExpectedArgs},
	}
}

// Send delivers the rejection to the user.
func (r *Rejection) Send(msg Message) error {
	if r.Usage != nil {
		return msg.SendUsage(*r.Usage)
	}
	return msg.Reply(r.Text)
}

func (r *Rejection) Fields() log.Fields {
	fields := log.Fields{"check": r.Check}
	if r.Missing != "" {
		fields["missing"] = r.Missing
	}
	return fields
}
