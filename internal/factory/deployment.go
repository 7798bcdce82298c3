package factory

import (
	"github.com/openshift/lokistack-generator/internal/runtime"
	apps "k8s.io/api/apps/v1"
	core "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"
)

// NewDeployment stubs an instance of a single replica deployment
func NewDeployment(namespace, deploymentName, app, instance string, podSpec core.PodSpec, visitors ...func(o runtime.Object)) *apps.Deployment {
	labels := CommonLabels(app, instance)
	dpl := runtime.NewDeployment(namespace, deploymentName, visitors...)
	dpl.Labels = labels
	runtime.NewDeploymentBuilder(dpl).
		WithTemplateLabels(labels).
		WithSelector(Selector(app)).
		WithPodSpec(podSpec).
		WithReplicas(ptr.To[int32](1))
	return dpl
}

// NewStatefulSet stubs an instance of a single replica stateful set governed by serviceName
func NewStatefulSet(namespace, statefulSetName, serviceName, app, instance string, podSpec core.PodSpec, visitors ...func(o runtime.Object)) *apps.StatefulSet {
	labels := CommonLabels(app, instance)
	ss := runtime.NewStatefulSet(namespace, statefulSetName, visitors...)
	ss.Labels = labels
	runtime.NewStatefulSetBuilder(ss).
		WithServiceName(serviceName).
		WithTemplateLabels(labels).
		WithSelector(Selector(app)).
		WithPodSpec(podSpec).
		WithReplicas(ptr.To[int32](1))
	return ss
}
