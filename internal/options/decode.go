package options

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/openshift/lokistack-generator/internal/utils"
	corev1 "k8s.io/api/core/v1"
)

// Decode copies a validated tree into out, a pointer to a struct whose fields carry `option` tags.
// Mappings decoded into corev1.VolumeSource or corev1.ResourceRequirements fields are converted
// the same way the Kubernetes API would read them.
func Decode(tree Tree, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "option",
		DecodeHook: KubeDecodeHookFunc(),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(tree)
}

func KubeDecodeHookFunc() mapstructure.DecodeHookFunc {
	return mapstructure.DecodeHookFuncType(kubeDecodeHook)
}

var (
	volumeSourceType = reflect.TypeOf(corev1.VolumeSource{})
	resourcesType    = reflect.TypeOf(corev1.ResourceRequirements{})
)

func kubeDecodeHook(_ reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	switch t {
	case volumeSourceType:
		return VolumeSource(data)
	case resourcesType:
		if r, ok := data.(corev1.ResourceRequirements); ok {
			return r, nil
		}
		resources := corev1.ResourceRequirements{}
		if err := utils.Convert(data, &resources); err != nil {
			return nil, err
		}
		return resources, nil
	}
	return data, nil
}
