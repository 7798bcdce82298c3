package loki

import (
	"github.com/openshift/lokistack-generator/internal/configfile"
	"github.com/openshift/lokistack-generator/internal/constants"
	"github.com/openshift/lokistack-generator/internal/options"
	corev1 "k8s.io/api/core/v1"
)

// Schema declares the loki options
func Schema() options.Schema {
	return options.Schema{
		"basename":  &options.Def{Required: true, Default: constants.LokiName, Types: []options.Type{options.String}},
		"namespace": &options.Def{Required: true, Default: "default", Types: []options.Type{options.String}},
		"config": options.Schema{
			"prometheus_annotation": &options.Def{Required: true, Default: false, Types: []options.Type{options.Bool}},
			"loki_config":           &options.Def{Types: []options.Type{options.String, configfile.Type}},
			"service_port":          &options.Def{Required: true, Default: constants.LokiPort, Types: []options.Type{options.Port}},
			"authorization": options.Schema{
				"serviceaccount_use": &options.Def{Types: []options.Type{options.String}},
			},
		},
		"container": options.Schema{
			"loki": &options.Def{Required: true, Default: constants.LokiImage, Types: []options.Type{options.String}},
		},
		"kubernetes": options.Schema{
			"volumes": options.Schema{
				"data": &options.Def{
					Required: true,
					Default:  options.Tree{"emptyDir": options.Tree{}},
					Types:    []options.Type{options.Mapping},
					Format:   options.FormatVolumeRef,
				},
			},
			"resources": options.Schema{
				"statefulset": &options.Def{Types: []options.Type{options.Mapping}},
			},
		},
	}
}

// Options is the decoded form of a validated loki options tree
type Options struct {
	Basename  string `option:"basename"`
	Namespace string `option:"namespace"`
	Config    struct {
		PrometheusAnnotation bool        `option:"prometheus_annotation"`
		LokiConfig           interface{} `option:"loki_config"`
		ServicePort          int         `option:"service_port"`
		Authorization        struct {
			ServiceAccountUse string `option:"serviceaccount_use"`
		} `option:"authorization"`
	} `option:"config"`
	Container struct {
		Loki string `option:"loki"`
	} `option:"container"`
	Kubernetes struct {
		Volumes struct {
			Data corev1.VolumeSource `option:"data"`
		} `option:"volumes"`
		Resources struct {
			StatefulSet *corev1.ResourceRequirements `option:"statefulset"`
		} `option:"resources"`
	} `option:"kubernetes"`
}
