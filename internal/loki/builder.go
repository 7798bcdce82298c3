package loki

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
	"k8s.io/utils/ptr"
)

// Object roles of a loki builder
const (
	RoleConfig          = "config"
	RoleServiceHeadless = "service-headless"
	RoleService         = "service"
	RoleStatefulSet     = "statefulset"
	RolePodLabelApp     = "pod-label-app"
)

const (
	configVolume  = "config"
	storageVolume = "storage"
	lokiUser      = int64(10001)
)

// Builder builds the loki log store as a single replica stateful set.
//
//	config   config map holding loki.yaml
//	service  headless service, service, stateful set
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

	b := &Builder{
		Base: builder.NewBase(constants.SourceLoki, opts.Basename),
		tree: tree,
		opts: opts,
	}
	b.Names.Set(RoleConfig, names.Derive(opts.Basename, "config"))
	b.Names.Set(RoleServiceHeadless, names.Derive(opts.Basename, "headless"))
	b.Names.Set(RoleService, names.Derive(opts.Basename, ""))
	b.Names.Set(RoleStatefulSet, names.Derive(opts.Basename, ""))
	b.Names.Set(RolePodLabelApp, names.Derive(opts.Basename, ""))
	b.Names.Snapshot()

	b.Handle(builder.GroupConfig, b.buildConfig)
	b.Handle(builder.GroupService, b.buildService)
	b.Require(builder.GroupConfig, builder.GroupService)
	return b, nil
}

func (b *Builder) Namespace() string {
	return b.opts.Namespace
}

func (b *Builder) Basename() string {
	return b.opts.Basename
}

// ServicePort is the port the loki service listens on
func (b *Builder) ServicePort() int {
	return b.opts.Config.ServicePort
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

// ConfigContent renders loki.yaml
func (b *Builder) ConfigContent() (string, error) {
	file := b.opts.Config.LokiConfig
	if file == nil {
		file = NewConfigFile(nil)
	}
	content, err := configfile.Render(file, b.tree)
	if err != nil {
		return "", fmt.Errorf("loki config: %w", err)
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
		Add(constants.LokiConfigFile, content).
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
	app := b.name(RolePodLabelApp)

	headless := factory.NewService(b.name(RoleServiceHeadless), b.Namespace(), app, b.Instance(), []corev1.ServicePort{
		factory.NewServicePort(constants.LokiPortName, constants.LokiPort, constants.LokiPortName),
	})
	runtime.NewServiceBuilder(headless).Headless()

	service := factory.NewService(b.name(RoleService), b.Namespace(), app, b.Instance(), []corev1.ServicePort{
		factory.NewServicePort(constants.LokiPortName, int32(b.ServicePort()), constants.LokiPortName),
	})

	probe := &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{Path: "/ready", Port: intstr.FromString(constants.LokiPortName)},
		},
		InitialDelaySeconds: 45,
	}
	container := factory.NewContainer(constants.LokiName, b.opts.Container.Loki, corev1.PullIfNotPresent, factory.Resources(b.opts.Kubernetes.Resources.StatefulSet))
	container.Args = []string{"-config.file=" + constants.LokiConfigDir + "/" + constants.LokiConfigFile}
	container.Ports = []corev1.ContainerPort{factory.NewContainerPort(constants.LokiPortName, constants.LokiPort)}
	container.VolumeMounts = []corev1.VolumeMount{
		{Name: configVolume, MountPath: constants.LokiConfigDir},
		{Name: storageVolume, MountPath: constants.LokiDataDir},
	}
	container.ReadinessProbe = probe
	container.LivenessProbe = probe.DeepCopy()
	container.SecurityContext = &corev1.SecurityContext{ReadOnlyRootFilesystem: ptr.To(true)}

	podSpec := factory.NewPodSpec(b.opts.Config.Authorization.ServiceAccountUse, []corev1.Container{container}, []corev1.Volume{
		factory.NewConfigMapVolume(configVolume, b.name(RoleConfig)),
		factory.NewVolume(storageVolume, b.opts.Kubernetes.Volumes.Data),
	})
	podSpec.SecurityContext = &corev1.PodSecurityContext{
		FSGroup:      ptr.To(lokiUser),
		RunAsGroup:   ptr.To(lokiUser),
		RunAsUser:    ptr.To(lokiUser),
		RunAsNonRoot: ptr.To(true),
	}
	podSpec.TerminationGracePeriodSeconds = ptr.To[int64](4800)

	ss := factory.NewStatefulSet(b.Namespace(), b.name(RoleStatefulSet), b.name(RoleServiceHeadless), app, b.Instance(), podSpec)
	annotations := map[string]string{constants.AnnotationConfigHash: hash}
	if b.opts.Config.PrometheusAnnotation {
		annotations[constants.AnnotationPrometheusScrape] = "true"
		annotations[constants.AnnotationPrometheusPort] = strconv.Itoa(constants.LokiPort)
	}
	runtime.NewStatefulSetBuilder(ss).WithTemplateAnnotations(annotations)

	log.V(3).Info("built loki statefulset", "statefulset", runtime.ID(ss), "service", runtime.ID(service), "config-hash", hash)
	return []*builder.Object{
		builder.NewObject(RoleServiceHeadless, headless),
		builder.NewObject(RoleService, service),
		builder.NewObject(RoleStatefulSet, ss),
	}, nil
}
