package options

import "sort"

// Format tells the validator whether a leaf may hold a reference instead of a plain value
type Format int

const (
	FormatPlain Format = iota
	// FormatVolumeRef leaves also accept PVCRef, ConfigMapRef, SecretRef and corev1.VolumeSource
	FormatVolumeRef
	// FormatSecretRef leaves also accept SecretRef
	FormatSecretRef
)

// Node is either a *Def leaf or a nested Schema
type Node interface {
	node()
}

// Def declares a single option
type Def struct {
	Required bool
	Default  interface{}
	// Types allowed for the value, any type if empty
	Types  []Type
	Format Format
}

func (*Def) node() {}

// Schema maps option keys to definitions or nested schemas
type Schema map[string]Node

func (Schema) node() {}

func (d *Def) accepts(value interface{}) bool {
	if len(d.Types) == 0 {
		return true
	}
	for _, t := range d.Types {
		if t.Matches(value) {
			return true
		}
	}
	return acceptsReference(d.Format, value)
}

func (d *Def) typeNames() []string {
	names := []string{}
	for _, t := range d.Types {
		names = append(names, t.String())
	}
	return append(names, referenceNames(d.Format)...)
}

func (d *Def) allows(t Type) bool {
	for _, allowed := range d.Types {
		if allowed.name == t.name {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
