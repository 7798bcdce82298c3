package constants

const (
	// Source identifies the objects built by each component
	SourceLokiStack = "lokistack"
	SourcePromtail  = "promtail"
	SourceLoki      = "loki"
	SourceGrafana   = "grafana"

	// Component prefixes of the roles and build items a stack pulls up from its children
	ComponentPromtail = "promtail"
	ComponentLoki     = "loki"
	ComponentGrafana  = "grafana"

	PromtailImage = "grafana/promtail:2.0.0"
	LokiImage     = "grafana/loki:2.0.0"
	GrafanaImage  = "grafana/grafana:7.2.0"

	PromtailName = "promtail"
	LokiName     = "loki"
	GrafanaName  = "grafana"

	PromtailPort        = 3101
	LokiPort            = 3100
	GrafanaPort         = 3000
	GrafanaServicePort  = 80
	PromtailPortName    = "http-metrics"
	LokiPortName        = "http-metrics"
	GrafanaPortName     = "http"
	LokiPushPath        = "/loki/api/v1/push"
	PromtailConfigFile  = "promtail.yaml"
	LokiConfigFile      = "loki.yaml"
	PromtailConfigDir   = "/etc/promtail"
	LokiConfigDir       = "/etc/loki"
	LokiDataDir         = "/data"
	GrafanaDataDir      = "/var/lib/grafana"
	GrafanaProvisioning = "/etc/grafana/provisioning"
	PromtailRunDir      = "/run/promtail"
	PodLogDir           = "/var/log/pods"
	DockerContainersDir = "/var/lib/docker/containers"

	// Grafana secret keys for the admin credentials
	GrafanaAdminUserKey     = "admin-user"
	GrafanaAdminPasswordKey = "admin-password"

	// LabelApp is the pod label services and workloads select on
	LabelApp       = "app"
	LabelManagedBy = "app.kubernetes.io/managed-by"
	LabelInstance  = "app.kubernetes.io/instance"
	ManagedBy      = "lokistack-generator"
)
