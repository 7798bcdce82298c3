package runtime

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openshift/lokistack-generator/test"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

var _ = Describe("Object", func() {

	It("generates ID", func() {
		Expect(ID(NewNamespace("foo"))).To(Equal("/v1/namespaces/foo"))
		Expect(ID(NewDaemonSet("foo", "name"))).To(Equal("apps/v1/namespaces/foo/daemonsets/name"))
		Expect(ID(NewClusterRole("reader"))).To(Equal("rbac.authorization.k8s.io/v1/clusterroles/reader"))
	})

	It("decodes YAML manifests", func() {
		cm := NewConfigMap("ns", "foo", map[string]string{"a": "b"})
		got, err := Decode(test.YAMLString(cm))
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(test.EqualDiff(cm))

		_, err = Decode("bad manifest")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("Namespaced",
		func(o Object, namespaced bool) { Expect(Namespaced(o)).To(Equal(namespaced)) },
		Entry("config map", NewConfigMap("ns", "foo", nil), true),
		Entry("stateful set", NewStatefulSet("ns", "foo"), true),
		Entry("cluster role", NewClusterRole("foo"), false),
		Entry("cluster role binding", NewClusterRoleBinding("foo", "bar"), false),
	)

	It("drops the namespace of cluster scoped kinds", func() {
		cr := &rbacv1.ClusterRole{}
		Initialize(cr, "ns", "reader")
		Expect(cr.Namespace).To(BeEmpty())
		sa := &corev1.ServiceAccount{}
		Initialize(sa, "ns", "promtail")
		Expect(sa.Namespace).To(Equal("ns"))
	})

	It("applies visitors after initializing", func() {
		svc := NewService("ns", "loki", func(o Object) {
			o.SetLabels(map[string]string{"app": o.GetName()})
		})
		Expect(svc.Labels).To(Equal(map[string]string{"app": "loki"}))
	})

	DescribeTable("New",
		func(got, want Object) { Expect(got).To(test.EqualDiff(want)) },
		Entry("NewNamespace", NewNamespace("foo"), &corev1.Namespace{
			ObjectMeta: metav1.ObjectMeta{Name: "foo"},
			TypeMeta:   metav1.TypeMeta{Kind: "Namespace", APIVersion: "v1"},
		}),
		Entry("NewConfigMap", NewConfigMap("ns", "foo", nil), &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "foo", Namespace: "ns"},
			TypeMeta:   metav1.TypeMeta{Kind: "ConfigMap", APIVersion: "v1"},
			Data:       map[string]string{},
		}),
		Entry("NewServiceAccount", NewServiceAccount("ns", "foo"), &corev1.ServiceAccount{
			ObjectMeta: metav1.ObjectMeta{Name: "foo", Namespace: "ns"},
			TypeMeta:   metav1.TypeMeta{Kind: "ServiceAccount", APIVersion: "v1"},
		}),
		Entry("NewClusterRoleBinding", NewClusterRoleBinding("foo", "reader", NewServiceAccountSubject("ns", "sa")), &rbacv1.ClusterRoleBinding{
			ObjectMeta: metav1.ObjectMeta{Name: "foo"},
			TypeMeta:   metav1.TypeMeta{Kind: "ClusterRoleBinding", APIVersion: "rbac.authorization.k8s.io/v1"},
			RoleRef:    rbacv1.RoleRef{APIGroup: "rbac.authorization.k8s.io", Kind: "ClusterRole", Name: "reader"},
			Subjects:   []rbacv1.Subject{{Kind: "ServiceAccount", Name: "sa", Namespace: "ns"}},
		}),
	)
})
