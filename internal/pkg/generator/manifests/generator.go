package manifests

import (
	"fmt"

	log "github.com/ViaQ/logerr/v2/log/static"
	"github.com/openshift/lokistack-generator/internal/builder"
	"github.com/openshift/lokistack-generator/internal/lokistack"
	"github.com/openshift/lokistack-generator/internal/merge"
	"github.com/openshift/lokistack-generator/internal/options"
	"github.com/openshift/lokistack-generator/internal/output"
	"github.com/openshift/lokistack-generator/internal/runtime"
	"sigs.k8s.io/yaml"
)

const (
	NamespaceFilename = "namespace.yaml"
	ConfigFilename    = "lokistack-config.yaml"
	ServiceFilename   = "lokistack.yaml"

	markerOptionRoot   = "optionRoot"
	markerSecretKeyRef = "secretKeyRef"
)

// Input is the generator input document. Global holds the values optionRoot markers refer to.
type Input struct {
	Global    options.Tree
	LokiStack options.Tree
}

// UnmarshalInput parses an input document of the form
//
//	global: {...}
//	lokistack: {...}
//
// replacing {optionRoot: path} mappings by options.RootRef and
// {secretKeyRef: {name, key}} mappings by options.SecretRef.
func UnmarshalInput(content string) (*Input, error) {
	doc := map[string]interface{}{}
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("error unmarshalling input: %w", err)
	}
	input := &Input{Global: options.Tree{}, LokiStack: options.Tree{}}
	sections := []struct {
		key    string
		target *options.Tree
	}{
		{"global", &input.Global},
		{"lokistack", &input.LokiStack},
	}
	for _, section := range sections {
		key, target := section.key, section.target
		value, err := decodeMarkers(doc[key], key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		m, ok := merge.AsMap(value)
		if !ok {
			return nil, fmt.Errorf("%s must be a mapping, got %s", key, options.TypeName(value))
		}
		*target = m
	}
	return input, nil
}

func decodeMarkers(value interface{}, path string) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		if len(v) == 1 {
			if root, found := v[markerOptionRoot]; found {
				rootPath, ok := root.(string)
				if !ok {
					return nil, fmt.Errorf("%s: %s must be a string", path, markerOptionRoot)
				}
				return options.RootRef{Path: rootPath}, nil
			}
			if ref, found := v[markerSecretKeyRef]; found {
				m, ok := ref.(map[string]interface{})
				if !ok {
					return nil, fmt.Errorf("%s: %s must be a mapping", path, markerSecretKeyRef)
				}
				name, _ := m["name"].(string)
				key, _ := m["key"].(string)
				if name == "" {
					return nil, fmt.Errorf("%s: %s requires a name", path, markerSecretKeyRef)
				}
				return options.SecretRef{Name: name, Key: key}, nil
			}
		}
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			decoded, err := decodeMarkers(item, path+"."+key)
			if err != nil {
				return nil, err
			}
			out[key] = decoded
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			decoded, err := decodeMarkers(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	}
	return value, nil
}

// Generate builds the stack described by content into a project of two manifest files:
// access control and configuration first, then the services. createNamespace adds a
// manifest for the stack namespace ahead of them.
func Generate(content string, createNamespace bool) (*output.Project, error) {
	input, err := UnmarshalInput(content)
	if err != nil {
		return nil, err
	}
	b, err := lokistack.New(input.LokiStack, options.WithRoot(input.Global))
	if err != nil {
		return nil, err
	}
	log.V(2).Info("generating manifests", "namespace", b.Namespace(), "basename", b.Basename())

	project := output.NewProject()
	if createNamespace {
		ns := builder.NewObject("namespace", runtime.NewNamespace(b.Namespace()))
		if err := project.AddObjects(NamespaceFilename, []*builder.Object{ns}); err != nil {
			return nil, err
		}
	}
	files := []struct {
		filename string
		groups   []builder.Group
	}{
		{ConfigFilename, []builder.Group{builder.GroupAccessControl, builder.GroupConfig}},
		{ServiceFilename, []builder.Group{builder.GroupService}},
	}
	for _, file := range files {
		objects, err := b.Build(file.groups...)
		if err != nil {
			return nil, err
		}
		if err := project.AddObjects(file.filename, objects); err != nil {
			return nil, err
		}
	}
	return project, nil
}
