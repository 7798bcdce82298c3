package runtime

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
)

// NewNamespace returns a corev1.Namespace with name.
func NewNamespace(name string, visitors ...func(o Object)) *corev1.Namespace {
	ns := &corev1.Namespace{}
	Initialize(ns, "", name, visitors...)
	return ns
}

// NewConfigMap returns a corev1.ConfigMap with namespace, name and data.
func NewConfigMap(namespace, name string, data map[string]string, visitors ...func(o Object)) *corev1.ConfigMap {
	if data == nil {
		data = map[string]string{}
	}
	cm := &corev1.ConfigMap{Data: data}
	Initialize(cm, namespace, name, visitors...)
	return cm
}

// NewService returns a corev1.Service with namespace and name.
func NewService(namespace, name string, visitors ...func(o Object)) *corev1.Service {
	svc := &corev1.Service{}
	Initialize(svc, namespace, name, visitors...)
	return svc
}

// NewServiceAccount returns a corev1.ServiceAccount with namespace and name.
func NewServiceAccount(namespace, name string, visitors ...func(o Object)) *corev1.ServiceAccount {
	obj := &corev1.ServiceAccount{}
	Initialize(obj, namespace, name, visitors...)
	return obj
}

// NewSecret returns a corev1.Secret with namespace and name.
func NewSecret(namespace, name string, data map[string][]byte, visitors ...func(o Object)) *corev1.Secret {
	if data == nil {
		data = map[string][]byte{}
	}
	s := &corev1.Secret{Data: data, Type: corev1.SecretTypeOpaque}
	Initialize(s, namespace, name, visitors...)
	return s
}

// NewDaemonSet returns a daemon set.
func NewDaemonSet(namespace, name string, visitors ...func(o Object)) *appsv1.DaemonSet {
	ds := &appsv1.DaemonSet{}
	Initialize(ds, namespace, name, visitors...)
	return ds
}

// NewStatefulSet returns a stateful set.
func NewStatefulSet(namespace, name string, visitors ...func(o Object)) *appsv1.StatefulSet {
	ss := &appsv1.StatefulSet{}
	Initialize(ss, namespace, name, visitors...)
	return ss
}

// NewDeployment returns a deployment.
func NewDeployment(namespace, name string, visitors ...func(o Object)) *appsv1.Deployment {
	dpl := &appsv1.Deployment{}
	Initialize(dpl, namespace, name, visitors...)
	return dpl
}

// NewClusterRole returns a cluster role granting rules.
func NewClusterRole(name string, rules ...rbacv1.PolicyRule) *rbacv1.ClusterRole {
	cr := &rbacv1.ClusterRole{Rules: rules}
	Initialize(cr, "", name)
	return cr
}

// NewClusterRoleBinding returns a binding of the cluster role roleName to subjects.
func NewClusterRoleBinding(name, roleName string, subjects ...rbacv1.Subject) *rbacv1.ClusterRoleBinding {
	crb := &rbacv1.ClusterRoleBinding{
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "ClusterRole",
			Name:     roleName,
		},
		Subjects: subjects,
	}
	Initialize(crb, "", name)
	return crb
}

// NewServiceAccountSubject returns a binding subject for the service account namespace/name.
func NewServiceAccountSubject(namespace, name string) rbacv1.Subject {
	return rbacv1.Subject{
		Kind:      rbacv1.ServiceAccountKind,
		Name:      name,
		Namespace: namespace,
	}
}
