package configfile

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openshift/lokistack-generator/internal/options"
	"github.com/openshift/lokistack-generator/test"
)

var _ = Describe("Document", func() {
	opts := options.Tree{"config": options.Tree{"port": 3101}}

	document := func() *Document {
		return &Document{
			Init: func(opts options.Tree) map[string]interface{} {
				return map[string]interface{}{
					"server":         map[string]interface{}{"http_listen_port": options.Value(opts, "config.port", 0)},
					"scrape_configs": []interface{}{},
				}
			},
		}
	}

	It("should render the initial document", func() {
		out, err := document().Build(opts)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(test.EqualTrimLines(`
scrape_configs: []
server:
  http_listen_port: 3101
`))
	})

	It("should apply extensions in order then the merge config", func() {
		d := document()
		d.Extensions = []Extension{
			ExtensionFunc(func(data map[string]interface{}, _ options.Tree) error {
				data["scrape_configs"] = append(data["scrape_configs"].([]interface{}), "first")
				return nil
			}),
			ExtensionFunc(func(data map[string]interface{}, _ options.Tree) error {
				data["scrape_configs"] = append(data["scrape_configs"].([]interface{}), "second")
				return nil
			}),
		}
		d.MergeConfig = map[string]interface{}{"server": map[string]interface{}{"log_level": "debug"}}
		value, err := d.Value(opts)
		Expect(err).ToNot(HaveOccurred())
		Expect(value["scrape_configs"]).To(Equal([]interface{}{"first", "second"}))
		Expect(value["server"]).To(Equal(map[string]interface{}{"http_listen_port": 3101, "log_level": "debug"}))
	})

	It("should stop at a failing extension", func() {
		d := document()
		d.Extensions = []Extension{ExtensionFunc(func(map[string]interface{}, options.Tree) error { return errors.New("boom") })}
		_, err := d.Build(opts)
		Expect(err).To(MatchError("boom"))
	})
})

var _ = Describe("Render", func() {
	It("should render strings and config files", func() {
		Expect(Render("auth_enabled: false", nil)).To(Equal("auth_enabled: false"))
		Expect(Render(Text("x: 1"), nil)).To(Equal("x: 1"))
		Expect(Render(nil, nil)).To(Equal(""))
		_, err := Render(1, nil)
		Expect(err).To(HaveOccurred())
	})

	It("should be accepted by option schemas", func() {
		Expect(Type.Matches(Text(""))).To(BeTrue())
		Expect(Type.Matches(&Document{})).To(BeTrue())
		Expect(Type.Matches("")).To(BeFalse())
	})
})
