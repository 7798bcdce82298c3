package promtail

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openshift/lokistack-generator/internal/options"
	"github.com/openshift/lokistack-generator/test"
)

var _ = Describe("ConfigFile", func() {
	opts := options.Tree{"config": options.Tree{"loki_url": "http://loki:3100/loki/api/v1/push"}}

	It("should render the defaults", func() {
		out, err := NewConfigFile(nil).Build(opts)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(test.EqualTrimLines(`
client:
  backoff_config:
    max_period: 5m
    max_retries: 10
    min_period: 500ms
  batchsize: 1048576
  batchwait: 1s
  external_labels: {}
  timeout: 10s
  url: http://loki:3100/loki/api/v1/push
positions:
  filename: /run/promtail/positions.yaml
scrape_configs: []
server:
  http_listen_port: 3101
target_config:
  sync_period: 10s
`))
	})

	It("should add the kubernetes scrape jobs", func() {
		value, err := NewConfigFile(nil, KubernetesExtension{}).Value(opts)
		Expect(err).ToNot(HaveOccurred())
		jobs := []string{}
		for _, job := range value["scrape_configs"].([]interface{}) {
			jobs = append(jobs, job.(map[string]interface{})["job_name"].(string))
		}
		Expect(jobs).To(Equal([]string{
			"kubernetes-pods-name",
			"kubernetes-pods-app",
			"kubernetes-pods-direct-controllers",
			"kubernetes-pods-indirect-controller",
			"kubernetes-pods-static",
		}))
	})

	It("should read static pod logs from their mirror annotation", func() {
		value, err := NewConfigFile(nil, KubernetesExtension{}).Value(opts)
		Expect(err).ToNot(HaveOccurred())
		static := value["scrape_configs"].([]interface{})[4].(map[string]interface{})
		rules := static["relabel_configs"].([]interface{})
		last := rules[len(rules)-1].(map[string]interface{})
		Expect(last["target_label"]).To(Equal("__path__"))
		Expect(last["source_labels"]).To(Equal([]interface{}{mirrorLabel, "__meta_kubernetes_pod_container_name"}))
	})

	It("should merge the merge config last", func() {
		file := NewConfigFile(map[string]interface{}{
			"client":         map[string]interface{}{"batchwait": "5s"},
			"scrape_configs": []interface{}{},
		}, KubernetesExtension{})
		value, err := file.Value(opts)
		Expect(err).ToNot(HaveOccurred())
		Expect(options.Value(value, "client.batchwait", "")).To(Equal("5s"))
		Expect(options.Value(value, "client.timeout", "")).To(Equal("10s"))
		Expect(value["scrape_configs"]).To(BeEmpty())
	})
})
