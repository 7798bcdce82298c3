package loki

import (
	"github.com/openshift/lokistack-generator/internal/configfile"
	"github.com/openshift/lokistack-generator/internal/constants"
	"github.com/openshift/lokistack-generator/internal/options"
)

// NewConfigFile returns a single process loki configuration keeping its index and chunks
// on the data volume, with mergeConfig merged over it
func NewConfigFile(mergeConfig map[string]interface{}) *configfile.Document {
	return &configfile.Document{
		Init:        initConfig,
		MergeConfig: mergeConfig,
	}
}

func initConfig(options.Tree) map[string]interface{} {
	dataDir := constants.LokiDataDir + "/loki"
	return map[string]interface{}{
		"auth_enabled": false,
		"ingester": map[string]interface{}{
			"chunk_idle_period":    "3m",
			"chunk_block_size":     262144,
			"chunk_retain_period":  "1m",
			"max_transfer_retries": 0,
			"lifecycler": map[string]interface{}{
				"ring": map[string]interface{}{
					"kvstore": map[string]interface{}{
						"store": "inmemory",
					},
					"replication_factor": 1,
				},
			},
		},
		"limits_config": map[string]interface{}{
			"enforce_metric_name":        false,
			"reject_old_samples":         true,
			"reject_old_samples_max_age": "168h",
		},
		"schema_config": map[string]interface{}{
			"configs": []interface{}{
				map[string]interface{}{
					"from":         "2020-10-24",
					"store":        "boltdb-shipper",
					"object_store": "filesystem",
					"schema":       "v11",
					"index": map[string]interface{}{
						"prefix": "index_",
						"period": "24h",
					},
				},
			},
		},
		"server": map[string]interface{}{
			"http_listen_port": constants.LokiPort,
		},
		"storage_config": map[string]interface{}{
			"boltdb_shipper": map[string]interface{}{
				"active_index_directory": dataDir + "/boltdb-shipper-active",
				"cache_location":         dataDir + "/boltdb-shipper-cache",
				"cache_ttl":              "24h",
				"shared_store":           "filesystem",
			},
			"filesystem": map[string]interface{}{
				"directory": dataDir + "/chunks",
			},
		},
		"chunk_store_config": map[string]interface{}{
			"max_look_back_period": "0s",
		},
		"table_manager": map[string]interface{}{
			"retention_deletes_enabled": false,
			"retention_period":          "0s",
		},
		"compactor": map[string]interface{}{
			"working_directory": dataDir + "/boltdb-shipper-compactor",
			"shared_store":      "filesystem",
		},
	}
}
