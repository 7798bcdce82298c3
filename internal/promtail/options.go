package promtail

import (
	"github.com/openshift/lokistack-generator/internal/builder"
	"github.com/openshift/lokistack-generator/internal/configfile"
	"github.com/openshift/lokistack-generator/internal/constants"
	"github.com/openshift/lokistack-generator/internal/options"
	corev1 "k8s.io/api/core/v1"
)

// Schema declares the promtail options
//
//	basename                              object names prefix, "promtail"
//	namespace                             "default"
//	config.prometheus_annotation          add prometheus scrape annotations to pods
//	config.promtail_config                string or configfile.ConfigFile
//	config.loki_url                       push URL of the loki service, required
//	config.authorization.*                service account and cluster role toggles
//	container.promtail                    image
//	kubernetes.resources.daemonset        container resource requirements
func Schema() options.Schema {
	return options.Schema{
		"basename":  &options.Def{Required: true, Default: constants.PromtailName, Types: []options.Type{options.String}},
		"namespace": &options.Def{Required: true, Default: "default", Types: []options.Type{options.String}},
		"config": options.Schema{
			"prometheus_annotation": &options.Def{Required: true, Default: false, Types: []options.Type{options.Bool}},
			"promtail_config":       &options.Def{Types: []options.Type{options.String, configfile.Type}},
			"loki_url":              &options.Def{Required: true, Types: []options.Type{options.String}},
			"authorization":         builder.AuthorizationSchema(),
		},
		"container": options.Schema{
			"promtail": &options.Def{Required: true, Default: constants.PromtailImage, Types: []options.Type{options.String}},
		},
		"kubernetes": options.Schema{
			"resources": options.Schema{
				"daemonset": &options.Def{Types: []options.Type{options.Mapping}},
			},
		},
	}
}

// Options is the decoded form of a validated promtail options tree
type Options struct {
	Basename  string `option:"basename"`
	Namespace string `option:"namespace"`
	Config    struct {
		PrometheusAnnotation bool                  `option:"prometheus_annotation"`
		PromtailConfig       interface{}           `option:"promtail_config"`
		LokiURL              string                `option:"loki_url"`
		Authorization        builder.Authorization `option:"authorization"`
	} `option:"config"`
	Container struct {
		Promtail string `option:"promtail"`
	} `option:"container"`
	Kubernetes struct {
		Resources struct {
			DaemonSet *corev1.ResourceRequirements `option:"daemonset"`
		} `option:"resources"`
	} `option:"kubernetes"`
}
