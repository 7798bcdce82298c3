package options

import (
	errs "github.com/openshift/lokistack-generator/internal/errors"
	"github.com/openshift/lokistack-generator/internal/merge"
)

type validateConfig struct {
	strict bool
	root   Tree
}

// ValidateOption customizes Validate
type ValidateOption func(*validateConfig)

// Strict rejects keys the schema does not declare instead of passing them through
func Strict() ValidateOption {
	return func(c *validateConfig) {
		c.strict = true
	}
}

// WithRoot sets the tree RootRef values are resolved against
func WithRoot(root Tree) ValidateOption {
	return func(c *validateConfig) {
		c.root = root
	}
}

// Validate checks raw against schema and returns a new tree with defaults filled in.
// Keys unknown to the schema are copied through unless Strict is given. raw is not modified.
func Validate(schema Schema, raw Tree, opts ...ValidateOption) (Tree, error) {
	config := validateConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return validateSchema(schema, raw, "", config)
}

func validateSchema(schema Schema, raw map[string]interface{}, prefix string, config validateConfig) (Tree, error) {
	result := Tree{}
	for _, key := range sortedKeys(raw) {
		if _, known := schema[key]; known {
			continue
		}
		if config.strict {
			return nil, errs.NewUnknownOption(join(prefix, key))
		}
		value, err := resolve(raw[key], config)
		if err != nil {
			return nil, err
		}
		result[key] = merge.DeepCopyValue(value)
	}

	for _, key := range sortedKeys(schema) {
		path := join(prefix, key)
		value, err := resolve(raw[key], config)
		if err != nil {
			return nil, err
		}
		switch node := schema[key].(type) {
		case Schema:
			var sub map[string]interface{}
			if value != nil {
				m, ok := merge.AsMap(value)
				if !ok {
					return nil, errs.NewInvalidOptionType(path, []string{Mapping.String()}, TypeName(value))
				}
				sub = m
			}
			child, err := validateSchema(node, sub, path, config)
			if err != nil {
				return nil, err
			}
			result[key] = child
		case *Def:
			validated, err := validateDef(node, value, path)
			if err != nil {
				return nil, err
			}
			if validated != nil {
				result[key] = validated
			}
		}
	}
	return result, nil
}

func validateDef(def *Def, value interface{}, path string) (interface{}, error) {
	if value == nil {
		if def.Default != nil {
			return normalize(def, merge.DeepCopyValue(def.Default)), nil
		}
		if def.Required {
			return nil, errs.NewMissingRequiredOption(path)
		}
		return nil, nil
	}
	if !def.accepts(value) {
		return nil, errs.NewInvalidOptionType(path, def.typeNames(), TypeName(value))
	}
	return normalize(def, merge.DeepCopyValue(value)), nil
}

// resolve replaces every RootRef in value by what it points at in the root tree.
// A reference to an explicit nil resolves to nil, so the option counts as absent.
func resolve(value interface{}, config validateConfig) (interface{}, error) {
	switch v := value.(type) {
	case RootRef:
		return resolveRef(v, config)
	case *RootRef:
		return resolveRef(*v, config)
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, item := range v {
			resolved, err := resolve(item, config)
			if err != nil {
				return nil, err
			}
			result[key] = resolved
		}
		return result, nil
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			resolved, err := resolve(item, config)
			if err != nil {
				return nil, err
			}
			result[i] = resolved
		}
		return result, nil
	}
	return value, nil
}

func resolveRef(ref RootRef, config validateConfig) (interface{}, error) {
	resolved, present := lookup(config.root, ref.Path)
	if !present {
		return nil, errs.NewMissingRequiredOption(ref.Path)
	}
	return resolved, nil
}

// normalize converts integer values to int so getters can rely on a single integer type
func normalize(def *Def, value interface{}) interface{} {
	if def.allows(Float) || !(def.allows(Int) || def.allows(Port)) {
		return value
	}
	if i, ok := asInt(value); ok {
		return i
	}
	return value
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
