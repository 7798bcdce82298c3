package options

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

type decodeTarget struct {
	Basename string `option:"basename"`
	Config   struct {
		Port    int         `option:"service_port"`
		Plugins []string    `option:"install_plugins"`
		File    interface{} `option:"config_file"`
	} `option:"config"`
	Kubernetes struct {
		Volumes struct {
			Data corev1.VolumeSource `option:"data"`
		} `option:"volumes"`
		Resources struct {
			StatefulSet *corev1.ResourceRequirements `option:"statefulset"`
		} `option:"resources"`
	} `option:"kubernetes"`
}

var _ = Describe("Decode", func() {
	It("should decode a validated tree into a typed struct", func() {
		tree := Tree{
			"basename": "loki",
			"config": Tree{
				"service_port":    3100,
				"install_plugins": []string{"grafana-piechart-panel"},
				"config_file":     &fakeConfigFile{name: "loki"},
			},
			"kubernetes": Tree{
				"volumes": Tree{"data": PVCRef{ClaimName: "loki-storage"}},
				"resources": Tree{"statefulset": Tree{
					"requests": Tree{"cpu": "150m", "memory": "300Mi"},
				}},
			},
		}
		target := decodeTarget{}
		Expect(Decode(tree, &target)).To(Succeed())
		Expect(target.Basename).To(Equal("loki"))
		Expect(target.Config.Port).To(Equal(3100))
		Expect(target.Config.Plugins).To(Equal([]string{"grafana-piechart-panel"}))
		Expect(target.Config.File).To(Equal(&fakeConfigFile{name: "loki"}))
		Expect(target.Kubernetes.Volumes.Data.PersistentVolumeClaim.ClaimName).To(Equal("loki-storage"))
		Expect(target.Kubernetes.Resources.StatefulSet).ToNot(BeNil())
		Expect(target.Kubernetes.Resources.StatefulSet.Requests.Memory().Equal(resource.MustParse("300Mi"))).To(BeTrue())
	})

	It("should leave absent resources unset", func() {
		target := decodeTarget{}
		Expect(Decode(Tree{"kubernetes": Tree{"volumes": Tree{"data": Tree{"emptyDir": Tree{}}}}}, &target)).To(Succeed())
		Expect(target.Kubernetes.Resources.StatefulSet).To(BeNil())
		Expect(target.Kubernetes.Volumes.Data.EmptyDir).ToNot(BeNil())
	})
})

var _ = Describe("VolumeSource", func() {
	DescribeTable("converts references",
		func(value interface{}, check func(corev1.VolumeSource)) {
			source, err := VolumeSource(value)
			Expect(err).ToNot(HaveOccurred())
			check(source)
		},
		Entry("claim", PVCRef{ClaimName: "c", ReadOnly: true}, func(s corev1.VolumeSource) {
			Expect(s.PersistentVolumeClaim).To(Equal(&corev1.PersistentVolumeClaimVolumeSource{ClaimName: "c", ReadOnly: true}))
		}),
		Entry("config map key", ConfigMapRef{Name: "cm", Key: "k"}, func(s corev1.VolumeSource) {
			Expect(s.ConfigMap.Name).To(Equal("cm"))
			Expect(s.ConfigMap.Items).To(Equal([]corev1.KeyToPath{{Key: "k", Path: "k"}}))
		}),
		Entry("secret", &SecretRef{Name: "s"}, func(s corev1.VolumeSource) {
			Expect(s.Secret.SecretName).To(Equal("s"))
		}),
		Entry("mapping", Tree{"persistentVolumeClaim": Tree{"claimName": "lokistack-storage-claim"}}, func(s corev1.VolumeSource) {
			Expect(s.PersistentVolumeClaim.ClaimName).To(Equal("lokistack-storage-claim"))
		}),
		Entry("nothing", nil, func(s corev1.VolumeSource) {
			Expect(s.EmptyDir).ToNot(BeNil())
		}),
	)

	It("should reject scalars", func() {
		_, err := VolumeSource("claim")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("EnvVar", func() {
	It("should use plain strings as values", func() {
		env, err := EnvVar("GF_SECURITY_ADMIN_USER", "admin")
		Expect(err).ToNot(HaveOccurred())
		Expect(env).To(Equal(corev1.EnvVar{Name: "GF_SECURITY_ADMIN_USER", Value: "admin"}))
	})
	It("should take secret references from the secret", func() {
		env, err := EnvVar("GF_SECURITY_ADMIN_PASSWORD", SecretRef{Name: "grafana", Key: "password"})
		Expect(err).ToNot(HaveOccurred())
		Expect(env.ValueFrom.SecretKeyRef.Name).To(Equal("grafana"))
		Expect(env.ValueFrom.SecretKeyRef.Key).To(Equal("password"))
	})
	It("should reject other values", func() {
		_, err := EnvVar("X", 1)
		Expect(err).To(HaveOccurred())
	})
})
