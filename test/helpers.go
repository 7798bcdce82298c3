package test

import (
	"sigs.k8s.io/yaml"
)

// YAMLString renders value as YAML, panicking on failure. Useful to snapshot option trees.
func YAMLString(value interface{}) string {
	out, err := yaml.Marshal(value)
	if err != nil {
		panic(err)
	}
	return string(out)
}

// FromYAML unmarshals a YAML document into a generic tree, panicking on failure.
func FromYAML(in string) map[string]interface{} {
	out := map[string]interface{}{}
	if err := yaml.Unmarshal([]byte(in), &out); err != nil {
		panic(err)
	}
	return out
}
