package promtail

import (
	"fmt"
	"strconv"

	log "github.com/ViaQ/logerr/v2/log/static"
	"github.com/openshift/lokistack-generator/internal/builder"
	"github.com/openshift/lokistack-generator/internal/configfile"
	"github.com/openshift/lokistack-generator/internal/constants"
	"github.com/openshift/lokistack-generator/internal/factory"
	"github.com/openshift/lokistack-generator/internal/names"
	"github.com/openshift/lokistack-generator/internal/options"
	"github.com/openshift/lokistack-generator/internal/runtime"
	"github.com/openshift/lokistack-generator/internal/utils"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// Object roles of a promtail builder
const (
	RoleServiceAccount     = "service-account"
	RoleClusterRole        = "cluster-role"
	RoleClusterRoleBinding = "cluster-role-binding"
	RoleConfig             = "config"
	RoleDaemonSet          = "daemonset"
	RolePodLabelApp        = "pod-label-app"
)

const (
	configVolume     = "config"
	runVolume        = "run"
	podsVolume       = "pods"
	containersVolume = "docker"
)

// Builder builds the promtail log shipper: a daemonset reading the pod logs of every node
// and pushing them to loki.
//
//	accesscontrol  service account, cluster role, cluster role binding
//	config         config map holding promtail.yaml
//	service        daemonset
type Builder struct {
	*builder.Base
	tree options.Tree
	opts Options
}

// New validates raw against Schema and declares the default object names
func New(raw options.Tree, vopts ...options.ValidateOption) (*Builder, error) {
	tree, err := options.Validate(Schema(), raw, vopts...)
	if err != nil {
		return nil, err
	}
	opts := Options{}
	if err := options.Decode(tree, &opts); err != nil {
		return nil, err
	}
	serviceAccount, err := opts.Config.Authorization.ServiceAccount(opts.Basename)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		Base: builder.NewBase(constants.SourcePromtail, opts.Basename),
		tree: tree,
		opts: opts,
	}
	b.Names.Set(RoleServiceAccount, serviceAccount)
	b.Names.Set(RoleClusterRole, names.Derive(opts.Basename, ""))
	b.Names.Set(RoleClusterRoleBinding, names.Derive(opts.Basename, ""))
	b.Names.Set(RoleConfig, names.Derive(opts.Basename, "config"))
	b.Names.Set(RoleDaemonSet, names.Derive(opts.Basename, ""))
	b.Names.Set(RolePodLabelApp, names.Derive(opts.Basename, ""))
	b.Names.Snapshot()

	b.Handle(builder.GroupAccessControl, b.buildAccessControl)
	b.Handle(builder.GroupConfig, b.buildConfig)
	b.Handle(builder.GroupService, b.buildService)
	b.Require(builder.GroupConfig, builder.GroupService)
	if opts.Config.Authorization.AccessControlRequired() {
		b.Require(builder.GroupAccessControl)
	}
	return b, nil
}

func (b *Builder) Namespace() string {
	return b.opts.Namespace
}

func (b *Builder) Basename() string {
	return b.opts.Basename
}

// Options returns the validated options tree
func (b *Builder) Options() options.Tree {
	return b.tree
}

func (b *Builder) name(role string) string {
	// roles are all declared in New
	name, _ := b.ObjectName(role)
	return name
}

func (b *Builder) buildAccessControl() ([]*builder.Object, error) {
	auth := b.opts.Config.Authorization
	objects := []*builder.Object{}
	if auth.ServiceAccountCreate {
		objects = append(objects, builder.NewObject(RoleServiceAccount,
			runtime.NewServiceAccount(b.Namespace(), b.name(RoleServiceAccount))))
	}
	if auth.RolesCreate {
		objects = append(objects, builder.NewObject(RoleClusterRole,
			runtime.NewClusterRole(b.name(RoleClusterRole),
				factory.NewPolicyRule(
					[]string{""},
					[]string{"nodes", "nodes/proxy", "services", "endpoints", "pods"},
					nil,
					[]string{"get", "watch", "list"},
				),
			)))
	}
	if auth.RolesBind {
		objects = append(objects, builder.NewObject(RoleClusterRoleBinding,
			runtime.NewClusterRoleBinding(b.name(RoleClusterRoleBinding), b.name(RoleClusterRole),
				runtime.NewServiceAccountSubject(b.Namespace(), b.name(RoleServiceAccount)))))
	}
	return objects, nil
}

// ConfigContent renders promtail.yaml
func (b *Builder) ConfigContent() (string, error) {
	file := b.opts.Config.PromtailConfig
	if file == nil {
		file = NewConfigFile(nil)
	}
	content, err := configfile.Render(file, b.tree)
	if err != nil {
		return "", fmt.Errorf("promtail config: %w", err)
	}
	return content, nil
}

func (b *Builder) buildConfig() ([]*builder.Object, error) {
	content, err := b.ConfigContent()
	if err != nil {
		return nil, err
	}
	cm := runtime.NewConfigMap(b.Namespace(), b.name(RoleConfig), nil)
	runtime.NewConfigMapBuilder(cm).
		Add(constants.PromtailConfigFile, content).
		WithLabels(factory.CommonLabels(b.name(RolePodLabelApp), b.Instance()))
	return []*builder.Object{builder.NewObject(RoleConfig, cm)}, nil
}

func (b *Builder) buildService() ([]*builder.Object, error) {
	content, err := b.ConfigContent()
	if err != nil {
		return nil, err
	}
	hash, err := utils.Hash(content)
	if err != nil {
		return nil, err
	}

	container := factory.NewContainer(constants.PromtailName, b.opts.Container.Promtail, corev1.PullIfNotPresent, factory.Resources(b.opts.Kubernetes.Resources.DaemonSet))
	container.Args = []string{"-config.file=" + constants.PromtailConfigDir + "/" + constants.PromtailConfigFile}
	container.Env = []corev1.EnvVar{
		{
			Name: "HOSTNAME",
			ValueFrom: &corev1.EnvVarSource{
				FieldRef: &corev1.ObjectFieldSelector{FieldPath: "spec.nodeName"},
			},
		},
	}
	container.Ports = []corev1.ContainerPort{factory.NewContainerPort(constants.PromtailPortName, constants.PromtailPort)}
	container.VolumeMounts = []corev1.VolumeMount{
		{Name: configVolume, MountPath: constants.PromtailConfigDir},
		{Name: runVolume, MountPath: constants.PromtailRunDir},
		{Name: podsVolume, MountPath: constants.PodLogDir, ReadOnly: true},
		{Name: containersVolume, MountPath: constants.DockerContainersDir, ReadOnly: true},
	}
	container.ReadinessProbe = &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{Path: "/ready", Port: intstr.FromString(constants.PromtailPortName)},
		},
		InitialDelaySeconds: 10,
	}

	podSpec := factory.NewPodSpec(b.name(RoleServiceAccount), []corev1.Container{container}, []corev1.Volume{
		factory.NewConfigMapVolume(configVolume, b.name(RoleConfig)),
		factory.NewHostPathVolume(runVolume, constants.PromtailRunDir),
		factory.NewHostPathVolume(podsVolume, constants.PodLogDir),
		factory.NewHostPathVolume(containersVolume, constants.DockerContainersDir),
	})
	podSpec.Tolerations = []corev1.Toleration{
		{Key: "node-role.kubernetes.io/master", Operator: corev1.TolerationOpExists, Effect: corev1.TaintEffectNoSchedule},
	}

	ds := factory.NewDaemonSet(b.Namespace(), b.name(RoleDaemonSet), b.name(RolePodLabelApp), b.Instance(), podSpec)
	annotations := map[string]string{constants.AnnotationConfigHash: hash}
	if b.opts.Config.PrometheusAnnotation {
		annotations[constants.AnnotationPrometheusScrape] = "true"
		annotations[constants.AnnotationPrometheusPort] = strconv.Itoa(constants.PromtailPort)
	}
	ds.Spec.Template.Annotations = annotations

	log.V(3).Info("built promtail daemonset", "daemonset", runtime.ID(ds), "config-hash", hash)
	return []*builder.Object{builder.NewObject(RoleDaemonSet, ds)}, nil
}
