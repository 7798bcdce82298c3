package factory

import (
	"github.com/openshift/lokistack-generator/internal/runtime"
	core "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// NewService stubs an instance of a Service selecting the pods labeled app
func NewService(serviceName, namespace, app, instance string, servicePorts []core.ServicePort, visitors ...func(o runtime.Object)) *core.Service {
	service := runtime.NewService(namespace, serviceName, visitors...)
	service.Labels = CommonLabels(app, instance)
	runtime.NewServiceBuilder(service).WithSelector(Selector(app)).WithServicePort(servicePorts)
	return service
}

// NewServicePort exposes targetPort, addressed by name, on port
func NewServicePort(name string, port int32, targetPort string) core.ServicePort {
	return core.ServicePort{
		Name:       name,
		Port:       port,
		Protocol:   core.ProtocolTCP,
		TargetPort: intstr.FromString(targetPort),
	}
}
