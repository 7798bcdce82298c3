// package runtime provides conveniences based on "k8s.io/apimachinery/pkg/runtime"
package runtime

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/runtime/serializer"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/apiutil"
)

// Object is a manifest object with metadata
type Object = client.Object

// Codecs is a codec factory for the default scheme.
var Codecs = serializer.NewCodecFactory(scheme.Scheme)

// Decode JSON or YAML resource manifest to a new typed struct.
func Decode(manifest string) (runtime.Object, error) {
	o, _, err := Codecs.UniversalDeserializer().Decode([]byte(manifest), nil, nil)
	return o, err
}

// GroupVersionKind deduces the Kind from the Go type.
func GroupVersionKind(o runtime.Object) schema.GroupVersionKind {
	gvk, err := apiutil.GVKForObject(o, scheme.Scheme)
	must(err)
	return gvk
}

// ID returns a human-readable identifier for the object, for logging and tests.
func ID(o Object) string {
	gvk, err := apiutil.GVKForObject(o, scheme.Scheme)
	if err != nil {
		return fmt.Sprintf("%v", o)
	}
	gvr, _ := meta.UnsafeGuessKindToResource(gvk)
	if o.GetNamespace() != "" {
		return fmt.Sprintf("%v/%v/namespaces/%v/%v/%v", gvr.Group, gvr.Version, o.GetNamespace(), gvr.Resource, o.GetName())
	}
	return fmt.Sprintf("%v/%v/%v/%v", gvr.Group, gvr.Version, gvr.Resource, o.GetName())
}

// Namespaced is false for the cluster scoped kinds this module builds
func Namespaced(o runtime.Object) bool {
	switch GroupVersionKind(o).Kind {
	case "Namespace", "ClusterRole", "ClusterRoleBinding":
		return false
	}
	return true
}

// Initialize sets name, namespace and type metadata deduced from Go type, then applies visitors.
// The namespace is dropped for cluster scoped kinds.
func Initialize(o Object, namespace, name string, visitors ...func(o Object)) {
	if Namespaced(o) {
		o.SetNamespace(namespace)
	}
	o.SetName(name)
	o.GetObjectKind().SetGroupVersionKind(GroupVersionKind(o))
	for _, visit := range visitors {
		visit(o)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
