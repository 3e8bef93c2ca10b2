package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Adirelle/cmdbase/pkg/permissions"
	"github.com/Adirelle/cmdbase/pkg/utils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

// Registry maps lower-cased command names and aliases to their definition.
type Registry struct {
	definitions map[string]*Definition
}

var validate = validator.New()

func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]*Definition, 10)}
}

// Register validates the options and stores the definition under every name.
// Nothing is stored when an error is returned. Existing names are silently overwritten
// and removed from the aliases of the definition they pointed to.
func (r *Registry) Register(opts Options) error {
	def, err := newDefinition(opts)
	if err != nil {
		return err
	}
	for _, name := range def.Aliases {
		if previous, found := r.definitions[name]; found {
			previous.dropAlias(name)
		}
		r.definitions[name] = def
	}
	log.WithFields(def).Debug("command.registered")
	return nil
}

// MustRegister is Register for definitions known at compile time.
func (r *Registry) MustRegister(opts Options) {
	if err := r.Register(opts); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(name string) (*Definition, bool) {
	def, found := r.definitions[strings.ToLower(name)]
	return def, found
}

// Definitions lists each registered definition once, sorted by name.
func (r *Registry) Definitions() []*Definition {
	seen := make(map[*Definition]bool, len(r.definitions))
	defs := make([]*Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		if !seen[def] {
			seen[def] = true
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Len is the number of registered names, aliases included.
func (r *Registry) Len() int {
	return len(r.definitions)
}

func newDefinition(opts Options) (*Definition, error) {
	opts.Commands = utils.Unique(utils.MapSlice(opts.Commands, normalizeName))
	opts.Permissions = utils.MapSlice(opts.Permissions, strings.TrimSpace)
	opts.RequiredRoles = utils.MapSlice(opts.RequiredRoles, strings.TrimSpace)

	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefinition, err)
	}
	if opts.MaxArgs != nil && *opts.MaxArgs < opts.MinArgs {
		return nil, fmt.Errorf("%w: %s: maxArgs (%d) is lower than minArgs (%d)", ErrInvalidDefinition, opts.Commands[0], *opts.MaxArgs, opts.MinArgs)
	}

	perms, err := permissions.Parse(opts.Permissions...)
	if err != nil {
		return nil, fmt.Errorf("command %s: %w", opts.Commands[0], err)
	}

	return &Definition{
		Name:            opts.Commands[0],
		Aliases:         opts.Commands,
		Description:     opts.Description,
		Permissions:     perms,
		PermissionError: opts.PermissionError,
		RequiredRoles:   opts.RequiredRoles,
		MinArgs:         opts.MinArgs,
		MaxArgs:         opts.MaxArgs,
		ExpectedArgs:    opts.ExpectedArgs,
		Handler:         opts.Handler,
	}, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
