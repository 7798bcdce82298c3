package grafana

import (
	"github.com/openshift/lokistack-generator/internal/constants"
	"github.com/openshift/lokistack-generator/internal/options"
	corev1 "k8s.io/api/core/v1"
)

// Schema declares the grafana options
func Schema() options.Schema {
	return options.Schema{
		"basename":  &options.Def{Required: true, Default: constants.GrafanaName, Types: []options.Type{options.String}},
		"namespace": &options.Def{Required: true, Default: "default", Types: []options.Type{options.String}},
		"config": options.Schema{
			"install_plugins": &options.Def{Types: []options.Type{options.Sequence}},
			"service_port":    &options.Def{Required: true, Default: constants.GrafanaServicePort, Types: []options.Type{options.Port}},
			"admin": options.Schema{
				"user":     &options.Def{Types: []options.Type{options.String}, Format: options.FormatSecretRef},
				"password": &options.Def{Types: []options.Type{options.String}, Format: options.FormatSecretRef},
			},
			"provisioning": options.Schema{
				"datasources": &options.Def{Types: []options.Type{options.Sequence}},
				"plugins":     &options.Def{Types: []options.Type{options.Sequence}},
				"dashboards":  &options.Def{Types: []options.Type{options.Sequence}},
			},
		},
		"container": options.Schema{
			"grafana": &options.Def{Required: true, Default: constants.GrafanaImage, Types: []options.Type{options.String}},
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
				"deployment": &options.Def{Types: []options.Type{options.Mapping}},
			},
		},
	}
}

// Options is the decoded form of a validated grafana options tree
type Options struct {
	Basename  string `option:"basename"`
	Namespace string `option:"namespace"`
	Config    struct {
		InstallPlugins []string `option:"install_plugins"`
		ServicePort    int      `option:"service_port"`
		Admin          struct {
			User     interface{} `option:"user"`
			Password interface{} `option:"password"`
		} `option:"admin"`
		Provisioning struct {
			Datasources []interface{} `option:"datasources"`
			Plugins     []interface{} `option:"plugins"`
			Dashboards  []interface{} `option:"dashboards"`
		} `option:"provisioning"`
	} `option:"config"`
	Container struct {
		Grafana string `option:"grafana"`
	} `option:"container"`
	Kubernetes struct {
		Volumes struct {
			Data corev1.VolumeSource `option:"data"`
		} `option:"volumes"`
		Resources struct {
			Deployment *corev1.ResourceRequirements `option:"deployment"`
		} `option:"resources"`
	} `option:"kubernetes"`
}
