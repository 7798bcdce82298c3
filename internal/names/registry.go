package names

import (
	"sort"
	"strings"

	errs "github.com/openshift/lokistack-generator/internal/errors"
)

// Registry maps object roles to the names of the objects that fill them.
// Roles keep their declaration order. A snapshot of the names taken after a builder
// has resolved its defaults is kept so customized names can be told apart.
type Registry struct {
	roles    []string
	names    map[string]string
	defaults map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		names:    map[string]string{},
		defaults: map[string]string{},
	}
}

// Derive returns the default name for an object: basename-suffix, or basename when suffix is empty
func Derive(basename, suffix string) string {
	if suffix == "" {
		return basename
	}
	return basename + "-" + suffix
}

// Set declares role if needed and sets its name
func (r *Registry) Set(role, name string) {
	if _, found := r.names[role]; !found {
		r.roles = append(r.roles, role)
	}
	r.names[role] = name
}

// Has is true when role has been declared
func (r *Registry) Has(role string) bool {
	_, found := r.names[role]
	return found
}

// Name returns the name of the object filling role
func (r *Registry) Name(role string) (string, error) {
	name, found := r.names[role]
	if !found {
		return "", errs.NewUnknownObjectRole(role)
	}
	return name, nil
}

// Update overwrites the names of already declared roles. Nothing changes if any role is unknown.
func (r *Registry) Update(names map[string]string) error {
	roles := make([]string, 0, len(names))
	for role := range names {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		if !r.Has(role) {
			return errs.NewUnknownObjectRole(role)
		}
	}
	for _, role := range roles {
		r.names[role] = names[role]
	}
	return nil
}

// Snapshot records the current names as the defaults ChangedSince compares against
func (r *Registry) Snapshot() {
	r.defaults = r.Names()
}

// ChangedSince returns the roles starting with prefix whose name differs from the snapshot,
// keyed by the role with prefix removed. Roles declared after the snapshot are ignored.
func (r *Registry) ChangedSince(prefix string) map[string]string {
	changed := map[string]string{}
	for _, role := range r.roles {
		if !strings.HasPrefix(role, prefix) {
			continue
		}
		def, found := r.defaults[role]
		if !found || def == r.names[role] {
			continue
		}
		changed[strings.TrimPrefix(role, prefix)] = r.names[role]
	}
	return changed
}

// Names returns a copy of the role to name mapping
func (r *Registry) Names() map[string]string {
	names := make(map[string]string, len(r.names))
	for role, name := range r.names {
		names[role] = name
	}
	return names
}

// Roles returns the declared roles in declaration order
func (r *Registry) Roles() []string {
	return append([]string{}, r.roles...)
}
