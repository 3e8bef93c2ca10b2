package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Adirelle/cmdbase/pkg/permissions"
	"github.com/apex/log"
)

type (
	// Options describe a command to register.
	Options struct {
		// Commands is the primary name followed by its aliases.
		Commands []string `validate:"required,min=1,dive,required"`
		// Permissions are names accepted by permissions.Parse.
		Permissions     []string `validate:"dive,required"`
		PermissionError string
		RequiredRoles   []string `validate:"dive,required"`
		MinArgs         int      `validate:"gte=0"`
		// MaxArgs is nil when the command accepts any number of arguments.
		MaxArgs      *int
		ExpectedArgs string
		Description  string
		Handler      HandlerFunc `validate:"required"`
	}

	Definition struct {
		Name            string
		Aliases         []string
		Description     string
		Permissions     permissions.Set
		PermissionError string
		RequiredRoles   []string
		MinArgs         int
		MaxArgs         *int
		ExpectedArgs    string
		Handler         HandlerFunc
	}

	HandlerFunc func(ctx context.Context, inv *Invocation) error

	// Invocation is what a handler receives once every check passed.
	Invocation struct {
		Message    Message
		Definition *Definition
		// Name is the alias the user typed, without the prefix.
		Name   string
		Args   []string
		Text   string
		Prefix string
		Client any
	}
)

const DefaultPermissionError = "You do not have permission to run this command."

var (
	ErrInvalidDefinition = errors.New("invalid command definition")

	_ log.Fielder = (*Invocation)(nil)
	_ log.Fielder = (*Definition)(nil)
)

// Names builds the Commands or Permissions field of Options.
func Names(names ...string) []string {
	return names
}

// Limit builds the MaxArgs field of Options.
func Limit(n int) *int {
	return &n
}

func (d *Definition) dropAlias(name string) {
	aliases := make([]string, 0, len(d.Aliases))
	for _, alias := range d.Aliases {
		if alias != name {
			aliases = append(aliases, alias)
		}
	}
	d.Aliases = aliases
}

func (d *Definition) AcceptsArgCount(n int) bool {
	return n >= d.MinArgs && (d.MaxArgs == nil || n <= *d.MaxArgs)
}

func (d *Definition) DeniedMessage() string {
	if d.PermissionError != "" {
		return d.PermissionError
	}
	return DefaultPermissionError
}

func (d *Definition) Fields() log.Fields {
	return log.Fields{
		"command": d.Name,
		"aliases": d.Aliases,
	}
}

func (d *Definition) String() string {
	return d.Name
}

func (i *Invocation) Fields() log.Fields {
	fields := log.Fields{
		"command": i.Definition.Name,
		"alias":   i.Name,
		"args":    i.Args,
		"prefix":  i.Prefix,
	}
	if msg, isFielder := i.Message.(log.Fielder); isFielder {
		for key, value := range msg.Fields() {
			fields[key] = value
		}
	}
	return fields
}

func (i *Invocation) String() string {
	return strings.Join(append([]string{i.Prefix + i.Name}, i.Args...), " ")
}

// Reply is a shortcut for handlers.
func (i *Invocation) Reply(format string, args ...any) error {
	return i.Message.Reply(fmt.Sprintf(format, args...))
}
