package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/apex/log"
)

type (
	// PrefixResolver returns the command prefix of a guild.
	PrefixResolver interface {
		Resolve(guildID string) string
	}

	Dispatcher struct {
		Registry *Registry
		Prefixes PrefixResolver
		Checks   []Check
		// Client is handed to handlers untouched.
		Client any
	}
)

func NewDispatcher(registry *Registry, prefixes PrefixResolver, client any) *Dispatcher {
	return &Dispatcher{
		Registry: registry,
		Prefixes: prefixes,
		Checks:   DefaultChecks(),
		Client:   client,
	}
}

// Parse recognizes a command call. It returns false for anything that is not a known command.
func (d *Dispatcher) Parse(msg Message) (*Invocation, bool) {
	prefix := d.Prefixes.Resolve(msg.GuildID())

	// The prefix must be the very first character of the message.
	content := msg.Content()
	if strings.TrimLeftFunc(content, unicode.IsSpace) != content {
		return nil, false
	}
	args := strings.Fields(content)
	if len(args) == 0 {
		return nil, false
	}

	name := strings.ToLower(args[0])
	matchPrefix := strings.ToLower(prefix)
	if !strings.HasPrefix(name, matchPrefix) {
		return nil, false
	}
	name = strings.TrimPrefix(name, matchPrefix)

	def, found := d.Registry.Lookup(name)
	if !found {
		return nil, false
	}

	args = args[1:]
	return &Invocation{
		Message:    msg,
		Definition: def,
		Name:       name,
		Args:       args,
		Text:       strings.Join(args, " "),
		Prefix:     prefix,
		Client:     d.Client,
	}, true
}

// Dispatch runs the checks and then the handler of the command called by msg.
// Denials are answered in the channel and are not errors. Handler errors are returned as is.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) error {
	inv, isCommand := d.Parse(msg)
	if !isCommand {
		return nil
	}
	logger := log.WithFields(inv)

	for _, check := range d.Checks {
		if rejection := check(inv); rejection != nil {
			logger.WithFields(rejection).Info("command.denied")
			if err := rejection.Send(msg); err != nil {
				return fmt.Errorf("could not send %s rejection: %w", rejection.Check, err)
			}
			return nil
		}
	}

	logger.Debug("command.handle")
	if err := inv.Definition.Handler(ctx, inv); err != nil {
		logger.WithError(err).Warn("command.error")
		return err
	}
	logger.Info("command.success")
	return nil
}
