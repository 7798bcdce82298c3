package output

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openshift/lokistack-generator/internal/builder"
	"github.com/openshift/lokistack-generator/internal/runtime"
	"github.com/openshift/lokistack-generator/test"
)

var _ = Describe("Output", func() {
	objects := func() []*builder.Object {
		return []*builder.Object{
			builder.NewObject("service-account", runtime.NewServiceAccount("logging", "loki-stack")),
			builder.NewObject("loki-config", runtime.NewConfigMap("logging", "loki-stack-loki-config", map[string]string{"loki.yaml": "auth_enabled: false\n"})),
		}
	}

	It("should write objects as separate YAML documents", func() {
		out, err := YAML(objects())
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(test.EqualTrimLines(`
apiVersion: v1
kind: ServiceAccount
metadata:
  creationTimestamp: null
  name: loki-stack
  namespace: logging
---
apiVersion: v1
data:
  loki.yaml: |
    auth_enabled: false
kind: ConfigMap
metadata:
  creationTimestamp: null
  name: loki-stack-loki-config
  namespace: logging
`))
	})

	It("should write nothing for no objects", func() {
		out, err := YAML(nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(BeEmpty())
	})

	Describe("Project", func() {
		project := func() *Project {
			p := NewProject()
			Expect(p.AddObjects("lokistack-config.yaml", objects()[:1])).To(Succeed())
			Expect(p.AddObjects("lokistack.yaml", objects()[1:])).To(Succeed())
			return p
		}

		It("should apply files in the order they were added", func() {
			p := project()
			Expect(p.Files()).To(Equal([]string{"lokistack-config.yaml", "lokistack.yaml"}))
			Expect(p.Script()).To(Equal("#!/bin/sh\nset -e\n\nkubectl apply -f lokistack-config.yaml\nkubectl apply -f lokistack.yaml\n"))
		})

		It("should keep the position of replaced files", func() {
			p := project()
			p.AddFile("lokistack-config.yaml", "")
			Expect(p.Files()).To(Equal([]string{"lokistack-config.yaml", "lokistack.yaml"}))
			content, found := p.File("lokistack-config.yaml")
			Expect(found).To(BeTrue())
			Expect(content).To(BeEmpty())
		})

		It("should write files and script to a directory", func() {
			dir := filepath.Join(GinkgoT().TempDir(), "out")
			Expect(project().WriteTo(dir)).To(Succeed())
			for _, name := range []string{"lokistack-config.yaml", "lokistack.yaml", ScriptName} {
				_, err := os.Stat(filepath.Join(dir, name))
				Expect(err).ToNot(HaveOccurred(), name)
			}
			content, err := os.ReadFile(filepath.Join(dir, "lokistack.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(content)).To(ContainSubstring("kind: ConfigMap"))
		})

		It("should print every file", func() {
			buf := &bytes.Buffer{}
			Expect(project().Print(buf)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("# lokistack-config.yaml\n"))
			Expect(buf.String()).To(ContainSubstring("# lokistack.yaml\n"))
			Expect(buf.String()).To(ContainSubstring("# create.sh\n#!/bin/sh"))
		})
	})
})
