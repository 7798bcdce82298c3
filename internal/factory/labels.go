package factory

import (
	"github.com/openshift/lokistack-generator/internal/constants"
)

// CommonLabels are put on every workload and pod of a component. app is the selectable pod label.
func CommonLabels(app, instance string) map[string]string {
	return map[string]string{
		constants.LabelApp:       app,
		constants.LabelInstance:  instance,
		constants.LabelManagedBy: constants.ManagedBy,
	}
}

// Selector matches the pods of a component
func Selector(app string) map[string]string {
	return map[string]string{
		constants.LabelApp: app,
	}
}
