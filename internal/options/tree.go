package options

import (
	"strings"

	"github.com/openshift/lokistack-generator/internal/merge"
)

// Tree is a nested options value: maps, sequences, scalars and references
type Tree = map[string]interface{}

// Get returns the value at the dotted path
func Get(tree Tree, path string) (interface{}, bool) {
	value, present := lookup(tree, path)
	return value, present && value != nil
}

// lookup reports whether the dotted path exists, even when it holds nil
func lookup(tree Tree, path string) (interface{}, bool) {
	var current interface{} = tree
	for _, key := range strings.Split(path, ".") {
		m, ok := merge.AsMap(current)
		if !ok {
			return nil, false
		}
		if current, ok = m[key]; !ok {
			return nil, false
		}
	}
	return current, true
}

// Value returns the value at the dotted path as T, or fallback if it is absent or of another type
func Value[T any](tree Tree, path string, fallback T) T {
	value, found := Get(tree, path)
	if !found {
		return fallback
	}
	if typed, ok := value.(T); ok {
		return typed
	}
	return fallback
}

// Set stores value at the dotted path, creating intermediate mappings as needed
func Set(tree Tree, path string, value interface{}) {
	keys := strings.Split(path, ".")
	current := tree
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[key] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}
