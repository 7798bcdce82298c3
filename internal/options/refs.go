package options

import (
	"fmt"

	"github.com/openshift/lokistack-generator/internal/utils"
	corev1 "k8s.io/api/core/v1"
)

// SecretRef takes a value, or a volume, from a secret
type SecretRef struct {
	Name string
	Key  string
}

// ConfigMapRef takes a value, or a volume, from a config map
type ConfigMapRef struct {
	Name string
	Key  string
}

// PVCRef mounts a persistent volume claim
type PVCRef struct {
	ClaimName string
	ReadOnly  bool
}

// RootRef is replaced during validation by the value at Path in the root options
type RootRef struct {
	Path string
}

// acceptsReference reports whether format allows value in place of a plain value
func acceptsReference(format Format, value interface{}) bool {
	switch format {
	case FormatVolumeRef:
		switch value.(type) {
		case PVCRef, *PVCRef, ConfigMapRef, *ConfigMapRef, SecretRef, *SecretRef, corev1.VolumeSource, *corev1.VolumeSource:
			return true
		}
	case FormatSecretRef:
		switch value.(type) {
		case SecretRef, *SecretRef:
			return true
		}
	}
	return false
}

func referenceNames(format Format) []string {
	switch format {
	case FormatVolumeRef:
		return []string{"options.PVCRef", "options.ConfigMapRef", "options.SecretRef", "v1.VolumeSource"}
	case FormatSecretRef:
		return []string{"options.SecretRef"}
	}
	return nil
}

// VolumeSource converts a volume option value into a corev1.VolumeSource
func VolumeSource(value interface{}) (corev1.VolumeSource, error) {
	switch v := value.(type) {
	case corev1.VolumeSource:
		return v, nil
	case *corev1.VolumeSource:
		return *v, nil
	case PVCRef:
		return corev1.VolumeSource{
			PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: v.ClaimName, ReadOnly: v.ReadOnly},
		}, nil
	case *PVCRef:
		return VolumeSource(*v)
	case ConfigMapRef:
		source := &corev1.ConfigMapVolumeSource{LocalObjectReference: corev1.LocalObjectReference{Name: v.Name}}
		if v.Key != "" {
			source.Items = []corev1.KeyToPath{{Key: v.Key, Path: v.Key}}
		}
		return corev1.VolumeSource{ConfigMap: source}, nil
	case *ConfigMapRef:
		return VolumeSource(*v)
	case SecretRef:
		source := &corev1.SecretVolumeSource{SecretName: v.Name}
		if v.Key != "" {
			source.Items = []corev1.KeyToPath{{Key: v.Key, Path: v.Key}}
		}
		return corev1.VolumeSource{Secret: source}, nil
	case *SecretRef:
		return VolumeSource(*v)
	case nil:
		return corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}}, nil
	}
	if !Mapping.Matches(value) {
		return corev1.VolumeSource{}, fmt.Errorf("cannot use %s as a volume source", TypeName(value))
	}
	source := corev1.VolumeSource{}
	if err := utils.Convert(value, &source); err != nil {
		return corev1.VolumeSource{}, err
	}
	return source, nil
}

// EnvVar returns an environment variable whose value is either a plain string or taken from a reference
func EnvVar(name string, value interface{}) (corev1.EnvVar, error) {
	switch v := value.(type) {
	case string:
		return corev1.EnvVar{Name: name, Value: v}, nil
	case SecretRef:
		return corev1.EnvVar{Name: name, ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{LocalObjectReference: corev1.LocalObjectReference{Name: v.Name}, Key: v.Key},
		}}, nil
	case *SecretRef:
		return EnvVar(name, *v)
	case ConfigMapRef:
		return corev1.EnvVar{Name: name, ValueFrom: &corev1.EnvVarSource{
			ConfigMapKeyRef: &corev1.ConfigMapKeySelector{LocalObjectReference: corev1.LocalObjectReference{Name: v.Name}, Key: v.Key},
		}}, nil
	case *ConfigMapRef:
		return EnvVar(name, *v)
	}
	return corev1.EnvVar{}, fmt.Errorf("cannot use %s as the value of environment variable %s", TypeName(value), name)
}
