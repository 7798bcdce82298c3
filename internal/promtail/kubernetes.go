package promtail

import (
	"fmt"

	"github.com/openshift/lokistack-generator/internal/options"
)

const (
	controllerHash = "[0-9a-z-.]+-[0-9a-f]{8,10}"
	mirrorLabel    = "__meta_kubernetes_pod_annotation_kubernetes_io_config_mirror"
)

// KubernetesExtension adds the scrape jobs reading the logs of every pod on the node.
// Pods are grouped into a job by their name label, their app label, their controller, or
// their component when they are static pods.
type KubernetesExtension struct{}

func (KubernetesExtension) Process(data map[string]interface{}, _ options.Tree) error {
	scrapeConfigs, ok := data["scrape_configs"].([]interface{})
	if !ok && data["scrape_configs"] != nil {
		return fmt.Errorf("scrape_configs is a %T, expected a sequence", data["scrape_configs"])
	}
	data["scrape_configs"] = append(scrapeConfigs,
		podJob("kubernetes-pods-name", "__meta_kubernetes_pod_uid",
			map[string]interface{}{
				"source_labels": labels("__meta_kubernetes_pod_label_name"),
				"target_label":  "__service__",
			},
		),
		podJob("kubernetes-pods-app", "__meta_kubernetes_pod_uid",
			map[string]interface{}{
				"action":        "drop",
				"regex":         ".+",
				"source_labels": labels("__meta_kubernetes_pod_label_name"),
			}, map[string]interface{}{
				"source_labels": labels("__meta_kubernetes_pod_label_app"),
				"target_label":  "__service__",
			},
		),
		podJob("kubernetes-pods-direct-controllers", "__meta_kubernetes_pod_uid",
			unlabeled(), map[string]interface{}{
				"action":        "drop",
				"regex":         controllerHash,
				"source_labels": labels("__meta_kubernetes_pod_controller_name"),
			}, map[string]interface{}{
				"source_labels": labels("__meta_kubernetes_pod_controller_name"),
				"target_label":  "__service__",
			},
		),
		podJob("kubernetes-pods-indirect-controller", "__meta_kubernetes_pod_uid",
			unlabeled(), map[string]interface{}{
				"action":        "keep",
				"regex":         controllerHash,
				"source_labels": labels("__meta_kubernetes_pod_controller_name"),
			}, map[string]interface{}{
				"action":        "replace",
				"regex":         "([0-9a-z-.]+)-[0-9a-f]{8,10}",
				"source_labels": labels("__meta_kubernetes_pod_controller_name"),
				"target_label":  "__service__",
			},
		),
		podJob("kubernetes-pods-static", mirrorLabel,
			map[string]interface{}{
				"action":        "drop",
				"regex":         "",
				"source_labels": labels(mirrorLabel),
			}, map[string]interface{}{
				"action":        "replace",
				"source_labels": labels("__meta_kubernetes_pod_label_component"),
				"target_label":  "__service__",
			},
		),
	)
	return nil
}

// unlabeled keeps pods having neither a name nor an app label
func unlabeled() map[string]interface{} {
	return map[string]interface{}{
		"action":        "drop",
		"regex":         ".+",
		"separator":     "",
		"source_labels": labels("__meta_kubernetes_pod_label_name", "__meta_kubernetes_pod_label_app"),
	}
}

// podJob completes the rules selecting the service of a pod with the rules common to all jobs
func podJob(name, pathLabel string, serviceRules ...map[string]interface{}) map[string]interface{} {
	rules := []interface{}{}
	for _, rule := range serviceRules {
		rules = append(rules, rule)
	}
	rules = append(rules,
		map[string]interface{}{
			"source_labels": labels("__meta_kubernetes_pod_node_name"),
			"target_label":  "__host__",
		},
		map[string]interface{}{
			"action":        "drop",
			"regex":         "",
			"source_labels": labels("__service__"),
		},
		map[string]interface{}{
			"action": "labelmap",
			"regex":  "__meta_kubernetes_pod_label_(.+)",
		},
		map[string]interface{}{
			"action":        "replace",
			"replacement":   "$1",
			"separator":     "/",
			"source_labels": labels("__meta_kubernetes_namespace", "__service__"),
			"target_label":  "job",
		},
		map[string]interface{}{
			"action":        "replace",
			"source_labels": labels("__meta_kubernetes_namespace"),
			"target_label":  "namespace",
		},
		map[string]interface{}{
			"action":        "replace",
			"source_labels": labels("__meta_kubernetes_pod_name"),
			"target_label":  "pod",
		},
		map[string]interface{}{
			"action":        "replace",
			"source_labels": labels("__meta_kubernetes_pod_container_name"),
			"target_label":  "container",
		},
		map[string]interface{}{
			"replacement":   "/var/log/pods/*$1/*.log",
			"separator":     "/",
			"source_labels": labels(pathLabel, "__meta_kubernetes_pod_container_name"),
			"target_label":  "__path__",
		},
	)
	return map[string]interface{}{
		"job_name":              name,
		"pipeline_stages":       []interface{}{map[string]interface{}{"docker": map[string]interface{}{}}},
		"kubernetes_sd_configs": []interface{}{map[string]interface{}{"role": "pod"}},
		"relabel_configs":       rules,
	}
}

func labels(names ...string) []interface{} {
	out := make([]interface{}, 0, len(names))
	for _, name := range names {
		out = append(out, name)
	}
	return out
}
