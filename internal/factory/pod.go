package factory

import (
	"github.com/openshift/lokistack-generator/internal/utils"
	core "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
)

// NewPodSpec stubs a pod spec scheduled on linux nodes
func NewPodSpec(serviceAccountName string, containers []core.Container, volumes []core.Volume) core.PodSpec {
	return core.PodSpec{
		Containers:         containers,
		ServiceAccountName: serviceAccountName,
		Volumes:            volumes,
		NodeSelector:       utils.EnsureLinuxNodeSelector(nil),
	}
}

// NewContainer stubs an instance of a Container
func NewContainer(containerName, imageName string, pullPolicy core.PullPolicy, resources core.ResourceRequirements) core.Container {
	return core.Container{
		Name:            containerName,
		Image:           imageName,
		ImagePullPolicy: pullPolicy,
		Resources:       resources,
	}
}

// NewContainerPort names a TCP port of a container
func NewContainerPort(name string, port int32) core.ContainerPort {
	return core.ContainerPort{
		Name:          name,
		ContainerPort: port,
		Protocol:      core.ProtocolTCP,
	}
}

// NewVolume mounts source as the pod volume name
func NewVolume(name string, source core.VolumeSource) core.Volume {
	return core.Volume{Name: name, VolumeSource: source}
}

// NewHostPathVolume exposes path of the node to the pod
func NewHostPathVolume(name, path string) core.Volume {
	return NewVolume(name, core.VolumeSource{HostPath: &core.HostPathVolumeSource{Path: path}})
}

// NewConfigMapVolume exposes the config map configMapName to the pod
func NewConfigMapVolume(name, configMapName string) core.Volume {
	return NewVolume(name, core.VolumeSource{
		ConfigMap: &core.ConfigMapVolumeSource{
			LocalObjectReference: core.LocalObjectReference{Name: configMapName},
		},
	})
}

// NewPolicyRule stubs a policy rule
func NewPolicyRule(apiGroups, resources, resourceNames, verbs []string) rbacv1.PolicyRule {
	return rbacv1.PolicyRule{
		APIGroups:     apiGroups,
		Resources:     resources,
		ResourceNames: resourceNames,
		Verbs:         verbs,
	}
}

// Resources dereferences optional resource requirements
func Resources(resources *core.ResourceRequirements) core.ResourceRequirements {
	if resources == nil {
		return core.ResourceRequirements{}
	}
	return *resources.DeepCopy()
}
