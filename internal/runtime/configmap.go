package runtime

import (
	"github.com/openshift/lokistack-generator/internal/utils"
	corev1 "k8s.io/api/core/v1"
)

type ConfigMapBuilder struct {
	ConfigMap *corev1.ConfigMap
}

func NewConfigMapBuilder(cm *corev1.ConfigMap) *ConfigMapBuilder {
	if cm.Data == nil {
		cm.Data = map[string]string{}
	}
	return &ConfigMapBuilder{
		ConfigMap: cm,
	}
}

func (builder *ConfigMapBuilder) Add(key, value string) *ConfigMapBuilder {
	builder.ConfigMap.Data[key] = value
	return builder
}

func (builder *ConfigMapBuilder) WithLabels(labels map[string]string) *ConfigMapBuilder {
	utils.AddLabels(builder.ConfigMap, labels)
	return builder
}
