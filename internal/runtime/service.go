package runtime

import (
	corev1 "k8s.io/api/core/v1"
)

type ServiceBuilder struct {
	Service *corev1.Service
}

func NewServiceBuilder(svc *corev1.Service) *ServiceBuilder {
	return &ServiceBuilder{
		Service: svc,
	}
}

func (builder *ServiceBuilder) WithSelector(selector map[string]string) *ServiceBuilder {
	builder.Service.Spec.Selector = selector
	return builder
}

func (builder *ServiceBuilder) WithServicePort(ports []corev1.ServicePort) *ServiceBuilder {
	builder.Service.Spec.Ports = ports
	return builder
}

// Headless removes the cluster IP so the service resolves to its pods
func (builder *ServiceBuilder) Headless() *ServiceBuilder {
	builder.Service.Spec.ClusterIP = corev1.ClusterIPNone
	return builder
}
