package factory

import (
	"github.com/openshift/lokistack-generator/internal/runtime"
	apps "k8s.io/api/apps/v1"
	core "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// NewDaemonSet stubs an instance of a daemonset running podSpec on every node
func NewDaemonSet(namespace, daemonsetName, app, instance string, podSpec core.PodSpec, visitors ...func(o runtime.Object)) *apps.DaemonSet {
	labels := CommonLabels(app, instance)
	ds := runtime.NewDaemonSet(namespace, daemonsetName, visitors...)
	ds.Labels = labels
	ds.Spec = apps.DaemonSetSpec{
		Selector: &metav1.LabelSelector{
			MatchLabels: Selector(app),
		},
		Template: core.PodTemplateSpec{
			ObjectMeta: metav1.ObjectMeta{
				Labels: labels,
			},
			Spec: podSpec,
		},
		UpdateStrategy: apps.DaemonSetUpdateStrategy{
			Type: apps.RollingUpdateDaemonSetStrategyType,
			RollingUpdate: &apps.RollingUpdateDaemonSet{
				MaxUnavailable: &intstr.IntOrString{
					Type:   intstr.String,
					StrVal: "100%",
				},
			},
		},
	}
	return ds
}
