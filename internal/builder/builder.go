package builder

import (
	log "github.com/ViaQ/logerr/v2/log/static"
	errs "github.com/openshift/lokistack-generator/internal/errors"
	"github.com/openshift/lokistack-generator/internal/names"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Group names a subset of the objects a builder produces together
type Group string

const (
	// GroupAccessControl holds service accounts, roles and role bindings
	GroupAccessControl Group = "accesscontrol"
	// GroupConfig holds config maps and secrets
	GroupConfig Group = "config"
	// GroupService holds workloads and services
	GroupService Group = "service"
)

// Object is a manifest produced by a builder, tagged with the build item that produced it
type Object struct {
	Resource client.Object
	// Name of the build item, e.g. "promtail-config"
	Name string
	// Source is the component that built the object
	Source string
	// Instance is the basename of the stack the object belongs to
	Instance string
}

// Builder is the contract every component builder implements so it can be composed into a larger stack
type Builder interface {
	ObjectName(role string) (string, error)
	EnsureBuildNames(groups ...Group) error
	Build(groups ...Group) ([]*Object, error)
	UpdateNames(names map[string]string) error
}

// GroupFunc produces the objects of one group
type GroupFunc func() ([]*Object, error)

// Base implements the name and group bookkeeping shared by all builders
type Base struct {
	Names    *names.Registry
	source   string
	instance string
	groups   []Group
	handlers map[Group]GroupFunc
	required []Group
}

func NewBase(source, instance string) *Base {
	return &Base{
		Names:    names.NewRegistry(),
		source:   source,
		instance: instance,
		handlers: map[Group]GroupFunc{},
	}
}

// Source returns the identifier stamped on every object this builder produces
func (b *Base) Source() string {
	return b.source
}

// Instance returns the basename stamped on every object this builder produces
func (b *Base) Instance() string {
	return b.instance
}

// Handle declares group and the function that builds it. Groups keep declaration order.
func (b *Base) Handle(group Group, fn GroupFunc) {
	if _, found := b.handlers[group]; !found {
		b.groups = append(b.groups, group)
	}
	b.handlers[group] = fn
}

// Require marks groups a caller must ask for in EnsureBuildNames
func (b *Base) Require(groups ...Group) {
	b.required = append(b.required, groups...)
}

// BuildNames lists the groups this builder knows how to build
func (b *Base) BuildNames() []Group {
	return append([]Group{}, b.groups...)
}

// BuildNamesRequired lists the groups that must be built for the output to be usable
func (b *Base) BuildNamesRequired() []Group {
	return append([]Group{}, b.required...)
}

func (b *Base) ObjectName(role string) (string, error) {
	return b.Names.Name(role)
}

func (b *Base) UpdateNames(names map[string]string) error {
	return b.Names.Update(names)
}

// EnsureBuildNames fails if any of groups is unknown or a required group is not among them
func (b *Base) EnsureBuildNames(groups ...Group) error {
	requested := map[Group]bool{}
	for _, group := range groups {
		if _, found := b.handlers[group]; !found {
			return errs.NewUnknownBuildGroup(string(group))
		}
		requested[group] = true
	}
	for _, group := range b.required {
		if !requested[group] {
			return errs.NewInvalidConfiguration("build group %q of %s is required", group, b.source)
		}
	}
	return nil
}

// Build produces the objects of each group in the order the groups are given
func (b *Base) Build(groups ...Group) ([]*Object, error) {
	objects := []*Object{}
	for _, group := range groups {
		fn, found := b.handlers[group]
		if !found {
			return nil, errs.NewUnknownBuildGroup(string(group))
		}
		log.V(3).Info("building group", "source", b.source, "instance", b.instance, "group", group)
		built, err := fn()
		if err != nil {
			return nil, err
		}
		for _, o := range built {
			if o.Source == "" {
				o.Source = b.source
			}
			if o.Instance == "" {
				o.Instance = b.instance
			}
		}
		objects = append(objects, built...)
	}
	return objects, nil
}

// NewObject tags a resource with the build item name
func NewObject(name string, resource client.Object) *Object {
	return &Object{Resource: resource, Name: name}
}

// Relabel prefixes the build item names of objects with component and restamps their
// source and instance, so objects of several components can be listed together.
func Relabel(objects []*Object, component, source, instance string) []*Object {
	for _, o := range objects {
		o.Name = component + "-" + o.Name
		o.Source = source
		o.Instance = instance
	}
	return objects
}
