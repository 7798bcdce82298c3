package grafana

import (
	"fmt"
	"strings"

	log "github.com/ViaQ/logerr/v2/log/static"
	"github.com/openshift/lokistack-generator/internal/builder"
	"github.com/openshift/lokistack-generator/internal/constants"
	"github.com/openshift/lokistack-generator/internal/factory"
	"github.com/openshift/lokistack-generator/internal/names"
	"github.com/openshift/lokistack-generator/internal/options"
	"github.com/openshift/lokistack-generator/internal/runtime"
	"github.com/openshift/lokistack-generator/internal/utils"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/yaml"
)

// Object roles of a grafana builder
const (
	RoleConfig       = "config"
	RoleConfigSecret = "config-secret"
	RoleDeployment   = "deployment"
	RoleService      = "service"
	RolePodLabelApp  = "pod-label-app"
)

const (
	storageVolume      = "storage"
	provisioningVolume = "provisioning"
)

// provisioning sections: config map key, directory under the provisioning root, list key in the file
var provisioning = []struct {
	key, dir, list string
}{
	{key: "datasources.yaml", dir: "datasources", list: "datasources"},
	{key: "plugins.yaml", dir: "plugins", list: "apps"},
	{key: "dashboards.yaml", dir: "dashboards", list: "providers"},
}

// Builder builds the grafana dashboard as a single replica deployment.
//
//	config   config map with provisioning files, secret with admin credentials
//	service  deployment, service
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
		Base: builder.NewBase(constants.SourceGrafana, opts.Basename),
		tree: tree,
		opts: opts,
	}
	b.Names.Set(RoleConfig, names.Derive(opts.Basename, "config"))
	b.Names.Set(RoleConfigSecret, names.Derive(opts.Basename, "config-secret"))
	b.Names.Set(RoleDeployment, names.Derive(opts.Basename, ""))
	b.Names.Set(RoleService, names.Derive(opts.Basename, ""))
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

func (b *Builder) name(role string) string {
	// roles are all declared in New
	name, _ := b.ObjectName(role)
	return name
}

// provisioningFiles renders the provisioning sections that are set, keyed by file name
func (b *Builder) provisioningFiles() (map[string]string, error) {
	sections := map[string][]interface{}{
		"datasources": b.opts.Config.Provisioning.Datasources,
		"plugins":     b.opts.Config.Provisioning.Plugins,
		"dashboards":  b.opts.Config.Provisioning.Dashboards,
	}
	files := map[string]string{}
	for _, p := range provisioning {
		entries := sections[p.dir]
		if entries == nil {
			continue
		}
		out, err := yaml.Marshal(map[string]interface{}{
			"apiVersion": 1,
			p.list:       entries,
		})
		if err != nil {
			return nil, fmt.Errorf("grafana %s provisioning: %w", p.dir, err)
		}
		files[p.key] = string(out)
	}
	return files, nil
}

// adminSecretData holds the admin credentials given as plain strings
func (b *Builder) adminSecretData() map[string][]byte {
	data := map[string][]byte{}
	if user, ok := b.opts.Config.Admin.User.(string); ok {
		data[constants.GrafanaAdminUserKey] = []byte(user)
	}
	if password, ok := b.opts.Config.Admin.Password.(string); ok {
		data[constants.GrafanaAdminPasswordKey] = []byte(password)
	}
	return data
}

func (b *Builder) buildConfig() ([]*builder.Object, error) {
	objects := []*builder.Object{}
	files, err := b.provisioningFiles()
	if err != nil {
		return nil, err
	}
	if len(files) > 0 {
		cm := runtime.NewConfigMap(b.Namespace(), b.name(RoleConfig), files)
		runtime.NewConfigMapBuilder(cm).WithLabels(factory.CommonLabels(b.name(RolePodLabelApp), b.Instance()))
		objects = append(objects, builder.NewObject(RoleConfig, cm))
	}
	if data := b.adminSecretData(); len(data) > 0 {
		objects = append(objects, builder.NewObject(RoleConfigSecret, runtime.NewSecret(b.Namespace(), b.name(RoleConfigSecret), data)))
	}
	return objects, nil
}

// adminEnv reads a credential from the config secret when given as a string, or from the referenced secret
func (b *Builder) adminEnv(name string, value interface{}, key string) ([]corev1.EnvVar, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		value = options.SecretRef{Name: b.name(RoleConfigSecret), Key: key}
	case options.SecretRef, *options.SecretRef:
	default:
		return nil, fmt.Errorf("grafana admin credential %s: unexpected %T", name, v)
	}
	env, err := options.EnvVar(name, value)
	if err != nil {
		return nil, err
	}
	return []corev1.EnvVar{env}, nil
}

func (b *Builder) buildService() ([]*builder.Object, error) {
	files, err := b.provisioningFiles()
	if err != nil {
		return nil, err
	}
	hash, err := utils.Hash(map[string]interface{}{"files": files, "admin": b.adminSecretData()})
	if err != nil {
		return nil, err
	}
	app := b.name(RolePodLabelApp)

	container := factory.NewContainer(constants.GrafanaName, b.opts.Container.Grafana, corev1.PullIfNotPresent, factory.Resources(b.opts.Kubernetes.Resources.Deployment))
	container.Ports = []corev1.ContainerPort{factory.NewContainerPort(constants.GrafanaPortName, constants.GrafanaPort)}
	if len(b.opts.Config.InstallPlugins) > 0 {
		container.Env = append(container.Env, corev1.EnvVar{Name: "GF_INSTALL_PLUGINS", Value: strings.Join(b.opts.Config.InstallPlugins, ",")})
	}
	for _, admin := range []struct {
		env, key string
		value    interface{}
	}{
		{env: "GF_SECURITY_ADMIN_USER", key: constants.GrafanaAdminUserKey, value: b.opts.Config.Admin.User},
		{env: "GF_SECURITY_ADMIN_PASSWORD", key: constants.GrafanaAdminPasswordKey, value: b.opts.Config.Admin.Password},
	} {
		env, err := b.adminEnv(admin.env, admin.value, admin.key)
		if err != nil {
			return nil, err
		}
		container.Env = append(container.Env, env...)
	}
	container.VolumeMounts = []corev1.VolumeMount{{Name: storageVolume, MountPath: constants.GrafanaDataDir}}
	volumes := []corev1.Volume{factory.NewVolume(storageVolume, b.opts.Kubernetes.Volumes.Data)}
	if len(files) > 0 {
		volumes = append(volumes, factory.NewConfigMapVolume(provisioningVolume, b.name(RoleConfig)))
		for _, p := range provisioning {
			if _, found := files[p.key]; !found {
				continue
			}
			container.VolumeMounts = append(container.VolumeMounts, corev1.VolumeMount{
				Name:      provisioningVolume,
				MountPath: constants.GrafanaProvisioning + "/" + p.dir + "/" + p.key,
				SubPath:   p.key,
			})
		}
	}
	container.ReadinessProbe = &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{Path: "/api/health", Port: intstr.FromString(constants.GrafanaPortName)},
		},
	}

	dpl := factory.NewDeployment(b.Namespace(), b.name(RoleDeployment), app, b.Instance(), factory.NewPodSpec("", []corev1.Container{container}, volumes))
	// the data volume may be a single-writer claim
	runtime.NewDeploymentBuilder(dpl).
		WithTemplateAnnotations(map[string]string{constants.AnnotationConfigHash: hash}).
		WithUpdateStrategy(appsv1.DeploymentStrategy{Type: appsv1.RecreateDeploymentStrategyType})

	service := factory.NewService(b.name(RoleService), b.Namespace(), app, b.Instance(), []corev1.ServicePort{
		factory.NewServicePort(constants.GrafanaPortName, int32(b.opts.Config.ServicePort), constants.GrafanaPortName),
	})

	log.V(3).Info("built grafana deployment", "deployment", runtime.ID(dpl), "service", runtime.ID(service))
	return []*builder.Object{
		builder.NewObject(RoleDeployment, dpl),
		builder.NewObject(RoleService, service),
	}, nil
}
