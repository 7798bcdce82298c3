package promtail

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openshift/lokistack-generator/internal/builder"
	errs "github.com/openshift/lokistack-generator/internal/errors"
	"github.com/openshift/lokistack-generator/internal/options"
	"github.com/openshift/lokistack-generator/test"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
)

var _ = Describe("Builder", func() {
	raw := func() options.Tree {
		return options.Tree{
			"basename":  "mystack-promtail",
			"namespace": "logging",
			"config": options.Tree{
				"loki_url": "http://mystack-loki:3100/loki/api/v1/push",
			},
		}
	}

	itemNames := func(objects []*builder.Object) []string {
		out := []string{}
		for _, o := range objects {
			out = append(out, o.Name)
		}
		return out
	}

	It("should require the loki url", func() {
		_, err := New(options.Tree{})
		Expect(errs.IsMissingRequiredOption(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("config.loki_url"))
	})

	It("should derive default names from the basename", func() {
		b, err := New(raw())
		Expect(err).ToNot(HaveOccurred())
		Expect(b.Names.Names()).To(Equal(map[string]string{
			RoleServiceAccount:     "mystack-promtail",
			RoleClusterRole:        "mystack-promtail",
			RoleClusterRoleBinding: "mystack-promtail",
			RoleConfig:             "mystack-promtail-config",
			RoleDaemonSet:          "mystack-promtail",
			RolePodLabelApp:        "mystack-promtail",
		}))
	})

	It("should build access control bound to the service account", func() {
		b, err := New(raw())
		Expect(err).ToNot(HaveOccurred())
		Expect(b.UpdateNames(map[string]string{RoleServiceAccount: "shipper"})).To(Succeed())
		objects, err := b.Build(builder.GroupAccessControl)
		Expect(err).ToNot(HaveOccurred())
		Expect(itemNames(objects)).To(Equal([]string{RoleServiceAccount, RoleClusterRole, RoleClusterRoleBinding}))
		Expect(objects[0].Resource.GetNamespace()).To(Equal("logging"))

		role := objects[1].Resource.(*rbacv1.ClusterRole)
		Expect(role.Rules).To(HaveLen(1))
		Expect(role.Rules[0].Resources).To(ConsistOf("nodes", "nodes/proxy", "services", "endpoints", "pods"))
		Expect(role.Rules[0].Verbs).To(ConsistOf("get", "watch", "list"))

		binding := objects[2].Resource.(*rbacv1.ClusterRoleBinding)
		Expect(binding.RoleRef.Name).To(Equal("mystack-promtail"))
		Expect(binding.Subjects).To(Equal([]rbacv1.Subject{{Kind: "ServiceAccount", Name: "shipper", Namespace: "logging"}}))
	})

	It("should only bind roles to an external service account", func() {
		tree := raw()
		options.Set(tree, "config.authorization.serviceaccount_create", false)
		options.Set(tree, "config.authorization.serviceaccount_use", "mystack")
		options.Set(tree, "config.authorization.roles_create", false)
		b, err := New(tree)
		Expect(err).ToNot(HaveOccurred())
		Expect(b.BuildNamesRequired()).ToNot(ContainElement(builder.GroupAccessControl))
		objects, err := b.Build(builder.GroupAccessControl)
		Expect(err).ToNot(HaveOccurred())
		Expect(itemNames(objects)).To(Equal([]string{RoleClusterRoleBinding}))
	})

	It("should fail to bind roles without a service account", func() {
		tree := raw()
		options.Set(tree, "config.authorization.serviceaccount_create", false)
		_, err := New(tree)
		Expect(errs.IsInvalidConfiguration(err)).To(BeTrue())
	})

	It("should build the config map pushing to loki", func() {
		b, err := New(raw())
		Expect(err).ToNot(HaveOccurred())
		objects, err := b.Build(builder.GroupConfig)
		Expect(err).ToNot(HaveOccurred())
		cm := objects[0].Resource.(*corev1.ConfigMap)
		Expect(cm.Name).To(Equal("mystack-promtail-config"))
		config := test.FromYAML(cm.Data["promtail.yaml"])
		Expect(options.Value(config, "client.url", "")).To(Equal("http://mystack-loki:3100/loki/api/v1/push"))
		Expect(options.Value(config, "positions.filename", "")).To(Equal("/run/promtail/positions.yaml"))
	})

	It("should use a string config as is", func() {
		tree := raw()
		options.Set(tree, "config.promtail_config", "server: {}\n")
		b, err := New(tree)
		Expect(err).ToNot(HaveOccurred())
		Expect(b.ConfigContent()).To(Equal("server: {}\n"))
	})

	It("should build the daemonset", func() {
		tree := raw()
		options.Set(tree, "config.prometheus_annotation", true)
		options.Set(tree, "kubernetes.resources.daemonset", options.Tree{"limits": options.Tree{"memory": "128Mi"}})
		b, err := New(tree)
		Expect(err).ToNot(HaveOccurred())
		Expect(b.UpdateNames(map[string]string{RolePodLabelApp: "shipper"})).To(Succeed())
		objects, err := b.Build(builder.GroupService)
		Expect(err).ToNot(HaveOccurred())
		Expect(objects).To(HaveLen(1))
		Expect(objects[0].Source).To(Equal("promtail"))
		Expect(objects[0].Instance).To(Equal("mystack-promtail"))

		ds := objects[0].Resource.(*appsv1.DaemonSet)
		Expect(ds.Namespace).To(Equal("logging"))
		Expect(ds.Spec.Selector.MatchLabels).To(Equal(map[string]string{"app": "shipper"}))
		Expect(ds.Spec.Template.Annotations).To(HaveKey("lokistack.openshift.io/config-hash"))
		Expect(ds.Spec.Template.Annotations).To(HaveKeyWithValue("prometheus.io/scrape", "true"))
		Expect(ds.Spec.Template.Spec.ServiceAccountName).To(Equal("mystack-promtail"))
		Expect(ds.Spec.Template.Spec.Volumes[0].ConfigMap.Name).To(Equal("mystack-promtail-config"))

		container := ds.Spec.Template.Spec.Containers[0]
		Expect(container.Image).To(Equal("grafana/promtail:2.0.0"))
		Expect(container.Resources.Limits.Memory().String()).To(Equal("128Mi"))
		Expect(container.Args).To(Equal([]string{"-config.file=/etc/promtail/promtail.yaml"}))
	})

	It("should roll the daemonset when the configuration changes", func() {
		hashOf := func(url string) string {
			tree := raw()
			options.Set(tree, "config.loki_url", url)
			b, err := New(tree)
			Expect(err).ToNot(HaveOccurred())
			objects, err := b.Build(builder.GroupService)
			Expect(err).ToNot(HaveOccurred())
			return objects[0].Resource.(*appsv1.DaemonSet).Spec.Template.Annotations["lokistack.openshift.io/config-hash"]
		}
		Expect(hashOf("http://a:3100")).To(Equal(hashOf("http://a:3100")))
		Expect(hashOf("http://a:3100")).ToNot(Equal(hashOf("http://b:3100")))
	})

	It("should insist on the groups it creates objects for", func() {
		b, err := New(raw())
		Expect(err).ToNot(HaveOccurred())
		Expect(errs.IsInvalidConfiguration(b.EnsureBuildNames(builder.GroupConfig, builder.GroupService))).To(BeTrue())
		Expect(b.EnsureBuildNames(builder.GroupAccessControl, builder.GroupConfig, builder.GroupService)).To(Succeed())
	})
})
