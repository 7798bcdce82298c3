package factory

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	core "k8s.io/api/core/v1"
)

var _ = Describe("Workloads", func() {
	podSpec := NewPodSpec("mystack", []core.Container{NewContainer("loki", "grafana/loki:2.0.0", core.PullIfNotPresent, core.ResourceRequirements{})}, nil)

	It("should schedule pods on linux nodes", func() {
		Expect(podSpec.NodeSelector).To(HaveKeyWithValue("kubernetes.io/os", "linux"))
		Expect(podSpec.ServiceAccountName).To(Equal("mystack"))
	})

	It("should stub a single replica stateful set governed by its headless service", func() {
		ss := NewStatefulSet("logging", "mystack-loki", "mystack-loki-headless", "mystack-loki", "mystack", podSpec)
		Expect(ss.Spec.ServiceName).To(Equal("mystack-loki-headless"))
		Expect(*ss.Spec.Replicas).To(BeEquivalentTo(1))
		Expect(ss.Spec.Selector.MatchLabels).To(Equal(map[string]string{"app": "mystack-loki"}))
		Expect(ss.Spec.Template.Labels).To(HaveKeyWithValue("app.kubernetes.io/instance", "mystack"))
		Expect(ss.Kind).To(Equal("StatefulSet"))
	})

	It("should stub a deployment", func() {
		dpl := NewDeployment("logging", "mystack-grafana", "mystack-grafana", "mystack", podSpec)
		Expect(dpl.Spec.Selector.MatchLabels).To(Equal(map[string]string{"app": "mystack-grafana"}))
		Expect(dpl.Spec.Template.Spec.Containers).To(HaveLen(1))
	})

	It("should put the common labels on workloads and select on the app label only", func() {
		labels := CommonLabels("mystack-promtail", "mystack")
		Expect(labels).To(Equal(map[string]string{
			"app":                          "mystack-promtail",
			"app.kubernetes.io/instance":   "mystack",
			"app.kubernetes.io/managed-by": "lokistack-generator",
		}))
		ds := NewDaemonSet("logging", "mystack-promtail", "mystack-promtail", "mystack", podSpec)
		Expect(ds.Labels).To(Equal(labels))
		Expect(ds.Spec.Template.Labels).To(Equal(labels))
		Expect(ds.Spec.Selector.MatchLabels).To(Equal(Selector("mystack-promtail")))
	})

	It("should stub a service selecting the app", func() {
		svc := NewService("mystack-loki", "logging", "mystack-loki", "mystack", []core.ServicePort{NewServicePort("http-metrics", 3100, "http-metrics")})
		Expect(svc.Namespace).To(Equal("logging"))
		Expect(svc.Spec.Selector).To(Equal(map[string]string{"app": "mystack-loki"}))
		Expect(svc.Spec.Ports[0].TargetPort.StrVal).To(Equal("http-metrics"))
	})
})
