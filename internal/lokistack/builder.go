package lokistack

import (
	"fmt"
	"sort"

	"github.com/ViaQ/logerr/v2/kverrors"
	log "github.com/ViaQ/logerr/v2/log/static"
	"github.com/openshift/lokistack-generator/internal/builder"
	"github.com/openshift/lokistack-generator/internal/constants"
	errs "github.com/openshift/lokistack-generator/internal/errors"
	"github.com/openshift/lokistack-generator/internal/grafana"
	"github.com/openshift/lokistack-generator/internal/loki"
	"github.com/openshift/lokistack-generator/internal/merge"
	"github.com/openshift/lokistack-generator/internal/names"
	"github.com/openshift/lokistack-generator/internal/options"
	"github.com/openshift/lokistack-generator/internal/promtail"
	"github.com/openshift/lokistack-generator/internal/runtime"
)

// Object roles owned by the stack itself
const (
	RoleConfig         = "config"
	RoleConfigSecret   = "config-secret"
	RoleServiceAccount = "service-account"
)

// Roles pulled up from each component, registered in the stack as "<component>-<role>"
var (
	lokiRoles = []string{
		loki.RoleConfig,
		loki.RoleServiceHeadless,
		loki.RoleService,
		loki.RoleStatefulSet,
		loki.RolePodLabelApp,
	}
	promtailRoles = []string{
		promtail.RoleClusterRole,
		promtail.RoleClusterRoleBinding,
		promtail.RoleConfig,
		promtail.RoleDaemonSet,
		promtail.RolePodLabelApp,
	}
	grafanaRoles = []string{
		grafana.RoleConfig,
		grafana.RoleConfigSecret,
		grafana.RoleDeployment,
		grafana.RoleService,
	}
)

// Builder builds a logging stack of promtail shipping the logs of every node to loki,
// with grafana to query them. Component objects are built by component builders created
// from the stack options; the stack registers the names the components chose and hands
// names customized at the stack level back down to them.
//
//	accesscontrol  service account, promtail cluster role and binding
//	config         promtail and loki configuration
//	service        loki, promtail and, when enabled, grafana
type Builder struct {
	*builder.Base
	tree options.Tree
	opts Options
}

var _ builder.Builder = &Builder{}

// New validates raw against Schema, resolves the names of every object of the stack and
// applies the kubernetes.object_names overrides.
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
		Base: builder.NewBase(constants.SourceLokiStack, opts.Basename),
		tree: tree,
		opts: opts,
	}
	b.Names.Set(RoleConfig, names.Derive(opts.Basename, "config"))
	b.Names.Set(RoleConfigSecret, names.Derive(opts.Basename, "config-secret"))
	b.Names.Set(RoleServiceAccount, serviceAccount)

	lokiBuilder, err := b.newLoki()
	if err != nil {
		return nil, err
	}
	if err := lokiBuilder.EnsureBuildNames(builder.GroupConfig, builder.GroupService); err != nil {
		return nil, wrap(constants.ComponentLoki, err)
	}
	b.pullUp(constants.ComponentLoki, lokiBuilder, lokiRoles)

	promtailBuilder, err := b.newPromtail()
	if err != nil {
		return nil, err
	}
	if err := promtailBuilder.EnsureBuildNames(builder.GroupAccessControl, builder.GroupConfig, builder.GroupService); err != nil {
		return nil, wrap(constants.ComponentPromtail, err)
	}
	b.pullUp(constants.ComponentPromtail, promtailBuilder, promtailRoles)

	if opts.Enable.Grafana {
		grafanaBuilder, err := b.newGrafana()
		if err != nil {
			return nil, err
		}
		if err := grafanaBuilder.EnsureBuildNames(builder.GroupConfig, builder.GroupService); err != nil {
			return nil, wrap(constants.ComponentGrafana, err)
		}
		b.pullUp(constants.ComponentGrafana, grafanaBuilder, grafanaRoles)
	}
	b.Names.Snapshot()

	overrides, err := objectNames(tree)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		log.V(3).Info("overriding object names", "basename", opts.Basename, "names", overrides)
		if err := b.UpdateNames(overrides); err != nil {
			return nil, err
		}
	}

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

func (b *Builder) option(path string) interface{} {
	value, _ := options.Get(b.tree, path)
	return value
}

// pullUp registers the names chosen by a component under the component prefix
func (b *Builder) pullUp(component string, child builder.Builder, roles []string) {
	for _, role := range roles {
		// roles come from the component's own declarations
		name, _ := child.ObjectName(role)
		b.Names.Set(component+"-"+role, name)
	}
}

// pushDown hands the names customized for a component down to it
func (b *Builder) pushDown(component string, child builder.Builder) error {
	changed := b.Names.ChangedSince(component + "-")
	if len(changed) == 0 {
		return nil
	}
	log.V(3).Info("pushing down object names", "component", component, "names", changed)
	if err := child.UpdateNames(changed); err != nil {
		return wrap(component, err)
	}
	return nil
}

func wrap(component string, err error) error {
	return kverrors.Wrap(err, component+" option error", "component", component)
}

func (b *Builder) lokiServiceURL() string {
	return fmt.Sprintf("http://%s:%d", b.name(constants.ComponentLoki+"-"+loki.RoleService), b.opts.Config.LokiServicePort)
}

func (b *Builder) newLoki() (*loki.Builder, error) {
	config := b.option("config.loki_config")
	if config == nil {
		if mergeConfig, ok := merge.AsMap(b.option("config.loki_merge_config")); ok {
			config = loki.NewConfigFile(mergeConfig)
		}
	}
	child, err := loki.New(options.Tree{
		"basename":  names.Derive(b.Basename(), constants.ComponentLoki),
		"namespace": b.Namespace(),
		"config": options.Tree{
			"prometheus_annotation": b.option("config.prometheus_annotation"),
			"loki_config":           config,
			"service_port":          b.opts.Config.LokiServicePort,
			"authorization": options.Tree{
				"serviceaccount_use": b.name(RoleServiceAccount),
			},
		},
		"container": options.Tree{
			"loki": b.option("container.loki"),
		},
		"kubernetes": options.Tree{
			"volumes": options.Tree{
				"data": b.option("kubernetes.volumes.loki-data"),
			},
			"resources": options.Tree{
				"statefulset": b.option("kubernetes.resources.loki-statefulset"),
			},
		},
	})
	if err != nil {
		return nil, wrap(constants.ComponentLoki, err)
	}
	if err := b.pushDown(constants.ComponentLoki, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (b *Builder) newPromtail() (*promtail.Builder, error) {
	config := b.option("config.promtail_config")
	if config == nil {
		mergeConfig, _ := merge.AsMap(b.option("config.promtail_merge_config"))
		config = promtail.NewConfigFile(mergeConfig, promtail.KubernetesExtension{})
	}
	auth := b.opts.Config.Authorization
	child, err := promtail.New(options.Tree{
		"basename":  names.Derive(b.Basename(), constants.ComponentPromtail),
		"namespace": b.Namespace(),
		"config": options.Tree{
			"prometheus_annotation": b.option("config.prometheus_annotation"),
			"promtail_config":       config,
			"loki_url":              b.lokiServiceURL() + constants.LokiPushPath,
			"authorization": options.Tree{
				"serviceaccount_create": false,
				"serviceaccount_use":    b.name(RoleServiceAccount),
				"roles_create":          auth.RolesCreate,
				"roles_bind":            auth.RolesBind,
			},
		},
		"container": options.Tree{
			"promtail": b.option("container.promtail"),
		},
		"kubernetes": options.Tree{
			"resources": options.Tree{
				"daemonset": b.option("kubernetes.resources.promtail-daemonset"),
			},
		},
	})
	if err != nil {
		return nil, wrap(constants.ComponentPromtail, err)
	}
	if err := b.pushDown(constants.ComponentPromtail, child); err != nil {
		return nil, err
	}
	return child, nil
}

// newGrafana provisions loki as the default datasource unless datasources are given
func (b *Builder) newGrafana() (*grafana.Builder, error) {
	datasources := b.option("config.grafana_provisioning.datasources")
	if datasources == nil {
		datasources = []interface{}{
			map[string]interface{}{
				"name":      "Loki",
				"type":      "loki",
				"access":    "proxy",
				"url":       b.lokiServiceURL(),
				"isDefault": true,
			},
		}
	}
	child, err := grafana.New(options.Tree{
		"basename":  names.Derive(b.Basename(), constants.ComponentGrafana),
		"namespace": b.Namespace(),
		"config": options.Tree{
			"install_plugins": b.option("config.grafana_install_plugins"),
			"service_port":    b.option("config.grafana_service_port"),
			"admin": options.Tree{
				"user":     b.option("config.grafana_admin.user"),
				"password": b.option("config.grafana_admin.password"),
			},
			"provisioning": options.Tree{
				"datasources": datasources,
				"plugins":     b.option("config.grafana_provisioning.plugins"),
				"dashboards":  b.option("config.grafana_provisioning.dashboards"),
			},
		},
		"container": options.Tree{
			"grafana": b.option("container.grafana"),
		},
		"kubernetes": options.Tree{
			"volumes": options.Tree{
				"data": b.option("kubernetes.volumes.grafana-data"),
			},
			"resources": options.Tree{
				"deployment": b.option("kubernetes.resources.grafana-deployment"),
			},
		},
	})
	if err != nil {
		return nil, wrap(constants.ComponentGrafana, err)
	}
	if err := b.pushDown(constants.ComponentGrafana, child); err != nil {
		return nil, err
	}
	return child, nil
}

// objectNames reads the kubernetes.object_names overrides
func objectNames(tree options.Tree) (map[string]string, error) {
	raw, _ := options.Get(tree, "kubernetes.object_names")
	m, ok := merge.AsMap(raw)
	if !ok {
		return nil, nil
	}
	roles := make([]string, 0, len(m))
	for role := range m {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	overrides := map[string]string{}
	for _, role := range roles {
		name, ok := m[role].(string)
		if !ok {
			return nil, errs.NewInvalidOptionType("kubernetes.object_names."+role, []string{options.String.String()}, options.TypeName(m[role]))
		}
		overrides[role] = name
	}
	return overrides, nil
}

// buildComponent builds groups of a component and relabels its objects as objects of the stack
func (b *Builder) buildComponent(component string, child builder.Builder, groups ...builder.Group) ([]*builder.Object, error) {
	objects, err := child.Build(groups...)
	if err != nil {
		return nil, kverrors.Wrap(err, component+" build error", "component", component)
	}
	return builder.Relabel(objects, component, b.Source(), b.Instance()), nil
}

func (b *Builder) buildAccessControl() ([]*builder.Object, error) {
	objects := []*builder.Object{}
	if b.opts.Config.Authorization.ServiceAccountCreate {
		objects = append(objects, builder.NewObject(RoleServiceAccount,
			runtime.NewServiceAccount(b.Namespace(), b.name(RoleServiceAccount))))
	}
	promtailBuilder, err := b.newPromtail()
	if err != nil {
		return nil, err
	}
	built, err := b.buildComponent(constants.ComponentPromtail, promtailBuilder, builder.GroupAccessControl)
	if err != nil {
		return nil, err
	}
	return append(objects, built...), nil
}

func (b *Builder) buildConfig() ([]*builder.Object, error) {
	promtailBuilder, err := b.newPromtail()
	if err != nil {
		return nil, err
	}
	objects, err := b.buildComponent(constants.ComponentPromtail, promtailBuilder, builder.GroupConfig)
	if err != nil {
		return nil, err
	}
	lokiBuilder, err := b.newLoki()
	if err != nil {
		return nil, err
	}
	built, err := b.buildComponent(constants.ComponentLoki, lokiBuilder, builder.GroupConfig)
	if err != nil {
		return nil, err
	}
	return append(objects, built...), nil
}

func (b *Builder) buildService() ([]*builder.Object, error) {
	lokiBuilder, err := b.newLoki()
	if err != nil {
		return nil, err
	}
	objects, err := b.buildComponent(constants.ComponentLoki, lokiBuilder, builder.GroupService)
	if err != nil {
		return nil, err
	}
	promtailBuilder, err := b.newPromtail()
	if err != nil {
		return nil, err
	}
	built, err := b.buildComponent(constants.ComponentPromtail, promtailBuilder, builder.GroupService)
	if err != nil {
		return nil, err
	}
	objects = append(objects, built...)
	if !b.opts.Enable.Grafana {
		return objects, nil
	}
	grafanaBuilder, err := b.newGrafana()
	if err != nil {
		return nil, err
	}
	built, err = b.buildComponent(constants.ComponentGrafana, grafanaBuilder, builder.GroupConfig, builder.GroupService)
	if err != nil {
		return nil, err
	}
	return append(objects, built...), nil
}
