package runtime

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

var _ = Describe("ConfigMapBuilder", func() {

	var (
		configmap *corev1.ConfigMap
		builder   *ConfigMapBuilder
		expLabels = map[string]string{"foo": "bar"}
	)

	BeforeEach(func() {
		configmap = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{},
		}
		builder = NewConfigMapBuilder(configmap)
	})

	It("should add data when data is not initialized", func() {
		builder.Add("promtail.yaml", "server: {}")
		Expect(configmap.Data).To(Equal(map[string]string{"promtail.yaml": "server: {}"}))
	})

	Context("#WithLabels", func() {
		It("should add the labels when labels is not initialized", func() {
			builder.WithLabels(expLabels)
			Expect(configmap.Labels).To(Equal(expLabels))
		})

		It("should keep existing labels", func() {
			configmap.Labels = map[string]string{"app": "loki"}
			builder.WithLabels(expLabels)
			Expect(configmap.Labels).To(Equal(map[string]string{"app": "loki", "foo": "bar"}))
		})
	})
})

var _ = Describe("ServiceBuilder", func() {
	It("should make headless services", func() {
		svc := NewService("ns", "loki-headless")
		NewServiceBuilder(svc).Headless().WithSelector(map[string]string{"app": "loki"})
		Expect(svc.Spec.ClusterIP).To(Equal(corev1.ClusterIPNone))
		Expect(svc.Spec.Selector).To(Equal(map[string]string{"app": "loki"}))
	})
})
