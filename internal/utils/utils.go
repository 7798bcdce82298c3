package utils

import (
	"fmt"

	log "github.com/ViaQ/logerr/v2/log/static"
	"github.com/mitchellh/hashstructure"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

const (
	OsNodeLabel = "kubernetes.io/os"
	LinuxValue  = "linux"
)

// AddLabels adds the given labels to the object, keeping existing ones
func AddLabels(object metav1.Object, labels map[string]string) {
	all := object.GetLabels()
	if all == nil {
		all = map[string]string{}
	}
	for k, v := range labels {
		all[k] = v
	}
	object.SetLabels(all)
}

// EnsureLinuxNodeSelector takes given selector map and returns a selector map with linux node selector added into it.
// If there is already a node type selector and is different from "linux" then it is overridden and warning is logged.
func EnsureLinuxNodeSelector(selectors map[string]string) map[string]string {
	if selectors == nil {
		return map[string]string{OsNodeLabel: LinuxValue}
	}
	if osType, ok := selectors[OsNodeLabel]; ok {
		if osType == LinuxValue {
			return selectors
		}
		// Selector is provided but is not "linux"
		log.Info("Overriding node selector value", "OsNodeLabel", OsNodeLabel, "osType", osType, "LinuxValue", LinuxValue)
	}
	selectors[OsNodeLabel] = LinuxValue
	return selectors
}

// Convert copies an untyped tree into a typed struct by way of its JSON representation
func Convert(in, out interface{}) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %T: %w", in, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to convert %T to %T: %w", in, out, err)
	}
	return nil
}

// Hash returns a stable hex hash of value, used to roll pods when their configuration changes
func Hash(value interface{}) (string, error) {
	h, err := hashstructure.Hash(value, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h), nil
}
