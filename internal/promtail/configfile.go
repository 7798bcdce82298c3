package promtail

import (
	"github.com/openshift/lokistack-generator/internal/configfile"
	"github.com/openshift/lokistack-generator/internal/constants"
	"github.com/openshift/lokistack-generator/internal/options"
)

// NewConfigFile returns the promtail configuration: client settings pushing to config.loki_url,
// positions kept on the node, the scrape jobs added by extensions, then mergeConfig merged over all of it.
func NewConfigFile(mergeConfig map[string]interface{}, extensions ...configfile.Extension) *configfile.Document {
	return &configfile.Document{
		Init:        initConfig,
		Extensions:  extensions,
		MergeConfig: mergeConfig,
	}
}

func initConfig(opts options.Tree) map[string]interface{} {
	client := map[string]interface{}{
		"backoff_config": map[string]interface{}{
			"max_period":  "5m",
			"max_retries": 10,
			"min_period":  "500ms",
		},
		"batchsize":       1048576,
		"batchwait":       "1s",
		"external_labels": map[string]interface{}{},
		"timeout":         "10s",
	}
	if url := options.Value(opts, "config.loki_url", ""); url != "" {
		client["url"] = url
	}
	return map[string]interface{}{
		"client": client,
		"positions": map[string]interface{}{
			"filename": constants.PromtailRunDir + "/positions.yaml",
		},
		"server": map[string]interface{}{
			"http_listen_port": constants.PromtailPort,
		},
		"target_config": map[string]interface{}{
			"sync_period": "10s",
		},
		"scrape_configs": []interface{}{},
	}
}
