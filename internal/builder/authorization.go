package builder

import (
	errs "github.com/openshift/lokistack-generator/internal/errors"
	"github.com/openshift/lokistack-generator/internal/options"
)

// Authorization are the options deciding which access control objects a builder creates
type Authorization struct {
	ServiceAccountCreate bool   `option:"serviceaccount_create"`
	ServiceAccountUse    string `option:"serviceaccount_use"`
	RolesCreate          bool   `option:"roles_create"`
	RolesBind            bool   `option:"roles_bind"`
}

// AuthorizationSchema declares the config.authorization options
func AuthorizationSchema() options.Schema {
	return options.Schema{
		"serviceaccount_create": &options.Def{Required: true, Default: true, Types: []options.Type{options.Bool}},
		"serviceaccount_use":    &options.Def{Types: []options.Type{options.String}},
		"roles_create":          &options.Def{Required: true, Default: true, Types: []options.Type{options.Bool}},
		"roles_bind":            &options.Def{Required: true, Default: true, Types: []options.Type{options.Bool}},
	}
}

// ServiceAccount resolves the name of the service account pods run as: basename when the
// account is created, otherwise the external account, "" for none. Binding roles requires an account.
func (a Authorization) ServiceAccount(basename string) (string, error) {
	name := a.ServiceAccountUse
	if a.ServiceAccountCreate {
		name = basename
	}
	if a.RolesBind && name == "" {
		return "", errs.NewInvalidConfiguration("to bind roles a service account is required")
	}
	return name, nil
}

// AccessControlRequired is true when access control objects are created and must be built
func (a Authorization) AccessControlRequired() bool {
	return a.ServiceAccountCreate || a.RolesCreate
}
