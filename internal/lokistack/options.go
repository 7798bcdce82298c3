package lokistack

import (
	"github.com/openshift/lokistack-generator/internal/builder"
	"github.com/openshift/lokistack-generator/internal/configfile"
	"github.com/openshift/lokistack-generator/internal/constants"
	"github.com/openshift/lokistack-generator/internal/options"
)

func volumeDef() *options.Def {
	return &options.Def{
		Required: true,
		Default:  options.Tree{"emptyDir": options.Tree{}},
		Types:    []options.Type{options.Mapping},
		Format:   options.FormatVolumeRef,
	}
}

// Schema declares the options of a loki stack
//
//	basename                                   object names prefix, "loki-stack"
//	namespace                                  "loki-stack"
//	enable.grafana                             build the grafana dashboard
//	config.prometheus_annotation               add prometheus scrape annotations to pods
//	config.promtail_config                     string or configfile.ConfigFile, promtail.yaml
//	config.promtail_merge_config               merged over the default promtail.yaml
//	config.loki_config                         string or configfile.ConfigFile, loki.yaml
//	config.loki_merge_config                   merged over the default loki.yaml
//	config.loki_service_port                   port of the loki service
//	config.grafana_install_plugins             plugins grafana installs on start
//	config.grafana_service_port                port of the grafana service
//	config.grafana_admin.{user,password}       string or SecretRef
//	config.grafana_provisioning.*              datasources, plugins, dashboards
//	config.authorization.*                     service account and cluster role toggles
//	container.{promtail,loki,grafana}          images
//	kubernetes.volumes.{loki-data,grafana-data}
//	kubernetes.resources.{promtail-daemonset,loki-statefulset,grafana-deployment}
//	kubernetes.object_names                    object role to name overrides
func Schema() options.Schema {
	sequence := []options.Type{options.Sequence}
	mapping := []options.Type{options.Mapping}
	configFile := []options.Type{options.String, configfile.Type}
	return options.Schema{
		"basename":  &options.Def{Required: true, Default: "loki-stack", Types: []options.Type{options.String}},
		"namespace": &options.Def{Required: true, Default: "loki-stack", Types: []options.Type{options.String}},
		"enable": options.Schema{
			"grafana": &options.Def{Required: true, Default: true, Types: []options.Type{options.Bool}},
		},
		"config": options.Schema{
			"prometheus_annotation":   &options.Def{Required: true, Default: false, Types: []options.Type{options.Bool}},
			"promtail_config":         &options.Def{Types: configFile},
			"promtail_merge_config":   &options.Def{Types: mapping},
			"loki_config":             &options.Def{Types: configFile},
			"loki_merge_config":       &options.Def{Types: mapping},
			"loki_service_port":       &options.Def{Required: true, Default: constants.LokiPort, Types: []options.Type{options.Port}},
			"grafana_install_plugins": &options.Def{Types: sequence},
			"grafana_service_port":    &options.Def{Required: true, Default: constants.GrafanaServicePort, Types: []options.Type{options.Port}},
			"grafana_admin": options.Schema{
				"user":     &options.Def{Types: []options.Type{options.String}, Format: options.FormatSecretRef},
				"password": &options.Def{Types: []options.Type{options.String}, Format: options.FormatSecretRef},
			},
			"grafana_provisioning": options.Schema{
				"datasources": &options.Def{Types: sequence},
				"plugins":     &options.Def{Types: sequence},
				"dashboards":  &options.Def{Types: sequence},
			},
			"authorization": builder.AuthorizationSchema(),
		},
		"container": options.Schema{
			"promtail": &options.Def{Required: true, Default: constants.PromtailImage, Types: []options.Type{options.String}},
			"loki":     &options.Def{Required: true, Default: constants.LokiImage, Types: []options.Type{options.String}},
			"grafana":  &options.Def{Required: true, Default: constants.GrafanaImage, Types: []options.Type{options.String}},
		},
		"kubernetes": options.Schema{
			"volumes": options.Schema{
				"loki-data":    volumeDef(),
				"grafana-data": volumeDef(),
			},
			"resources": options.Schema{
				"promtail-daemonset": &options.Def{Types: mapping},
				"loki-statefulset":   &options.Def{Types: mapping},
				"grafana-deployment": &options.Def{Types: mapping},
			},
			"object_names": &options.Def{Types: mapping},
		},
	}
}

// Options is the decoded form of the options that steer the stack itself. Options handed
// down to the components are read from the validated tree as they are.
type Options struct {
	Basename  string `option:"basename"`
	Namespace string `option:"namespace"`
	Enable    struct {
		Grafana bool `option:"grafana"`
	} `option:"enable"`
	Config struct {
		LokiServicePort int                   `option:"loki_service_port"`
		Authorization   builder.Authorization `option:"authorization"`
	} `option:"config"`
}
