package constants

const (
	// AnnotationConfigHash carries the hash of the configuration a pod was built from, so config changes roll pods
	AnnotationConfigHash = "lokistack.openshift.io/config-hash"

	AnnotationPrometheusScrape = "prometheus.io/scrape"
	AnnotationPrometheusPort   = "prometheus.io/port"
	AnnotationPrometheusPath   = "prometheus.io/path"
)
