package configfile

import (
	"fmt"

	"github.com/openshift/lokistack-generator/internal/merge"
	"github.com/openshift/lokistack-generator/internal/options"
	"sigs.k8s.io/yaml"
)

// ConfigFile renders the content of a configuration file from the options of the builder using it
type ConfigFile interface {
	Build(opts options.Tree) (string, error)
}

// Text is a configuration file with fixed content
type Text string

func (t Text) Build(options.Tree) (string, error) {
	return string(t), nil
}

// Extension adds to a configuration document before it is rendered
type Extension interface {
	Process(data map[string]interface{}, opts options.Tree) error
}

// ExtensionFunc adapts a function to an Extension
type ExtensionFunc func(data map[string]interface{}, opts options.Tree) error

func (f ExtensionFunc) Process(data map[string]interface{}, opts options.Tree) error {
	return f(data, opts)
}

// Document is a YAML configuration file assembled in three steps: the initial document,
// the extensions in order, then MergeConfig deep merged over the result.
type Document struct {
	Init        func(opts options.Tree) map[string]interface{}
	Extensions  []Extension
	MergeConfig map[string]interface{}
}

// Value returns the document before rendering
func (d *Document) Value(opts options.Tree) (map[string]interface{}, error) {
	data := map[string]interface{}{}
	if d.Init != nil {
		data = d.Init(opts)
	}
	for _, ext := range d.Extensions {
		if err := ext.Process(data, opts); err != nil {
			return nil, err
		}
	}
	if d.MergeConfig != nil {
		data = merge.Merge(data, d.MergeConfig)
	}
	return data, nil
}

func (d *Document) Build(opts options.Tree) (string, error) {
	data, err := d.Value(opts)
	if err != nil {
		return "", err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to render config file: %w", err)
	}
	return string(out), nil
}

// Render returns the content of an option accepting either a string or a ConfigFile
func Render(value interface{}, opts options.Tree) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case ConfigFile:
		return v.Build(opts)
	}
	return "", fmt.Errorf("cannot render %T as a config file", value)
}

// Type accepts ConfigFile values in option schemas
var Type = options.TypeOf[ConfigFile]()
