package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/ViaQ/logerr/v2/log/static"
	"github.com/openshift/lokistack-generator/internal/builder"
	"sigs.k8s.io/yaml"
)

const (
	documentSeparator = "---\n"
	ScriptName        = "create.sh"
)

// WriteYAML writes the resources of objects as YAML documents separated by "---"
func WriteYAML(w io.Writer, objects []*builder.Object) error {
	for i, o := range objects {
		out, err := yaml.Marshal(o.Resource)
		if err != nil {
			return fmt.Errorf("marshalling %s/%s: %w", o.Source, o.Name, err)
		}
		if i > 0 {
			if _, err := io.WriteString(w, documentSeparator); err != nil {
				return err
			}
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// YAML returns the objects rendered by WriteYAML
func YAML(objects []*builder.Object) (string, error) {
	buf := &bytes.Buffer{}
	if err := WriteYAML(buf, objects); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Project is a set of manifest files and a script applying them in the order they were added
type Project struct {
	files map[string]string
	order []string
}

func NewProject() *Project {
	return &Project{files: map[string]string{}}
}

// AddObjects adds a manifest file holding objects
func (p *Project) AddObjects(filename string, objects []*builder.Object) error {
	content, err := YAML(objects)
	if err != nil {
		return err
	}
	p.AddFile(filename, content)
	return nil
}

// AddFile adds or replaces a manifest file
func (p *Project) AddFile(filename, content string) {
	if _, found := p.files[filename]; !found {
		p.order = append(p.order, filename)
	}
	p.files[filename] = content
}

// Files returns the manifest file names in the order they are applied
func (p *Project) Files() []string {
	return append([]string{}, p.order...)
}

func (p *Project) File(filename string) (string, bool) {
	content, found := p.files[filename]
	return content, found
}

// Script returns a shell script applying every manifest file
func (p *Project) Script() string {
	lines := []string{"#!/bin/sh", "set -e", ""}
	for _, filename := range p.order {
		lines = append(lines, "kubectl apply -f "+filename)
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteTo writes the manifest files and the script into dir, creating it if needed
func (p *Project) WriteTo(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, filename := range p.order {
		path := filepath.Join(dir, filename)
		log.V(3).Info("writing manifest file", "path", path)
		if err := os.WriteFile(path, []byte(p.files[filename]), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	script := filepath.Join(dir, ScriptName)
	if err := os.WriteFile(script, []byte(p.Script()), 0755); err != nil {
		return fmt.Errorf("writing %s: %w", script, err)
	}
	return nil
}

// Print writes every file to w, each preceded by a comment naming it
func (p *Project) Print(w io.Writer) error {
	names := append(p.Files(), ScriptName)
	for _, filename := range names {
		content, found := p.files[filename]
		if !found {
			content = p.Script()
		}
		if _, err := fmt.Fprintf(w, "# %s\n%s\n", filename, content); err != nil {
			return err
		}
	}
	return nil
}

