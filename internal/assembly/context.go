package assembly

import (
	"fmt"
	"reflect"
)

// Reserved context keys filled from the assembly stores.
const (
	KeyMaterials = "materials"
	KeyDocs      = "docs"
	KeyLayout    = "layout"
)

// BuildContext returns a new context: global data, then materials, then
// docs (unless skipped), then page. Page keys win over data keys. The
// materials and docs keys always hold the stores; a page can only set docs
// when docs are skipped. Inputs are never modified.
func (a *Assembly) BuildContext(page map[string]any) map[string]any {
	ctx := make(map[string]any, len(a.data)+len(page)+2)
	for k, v := range a.data {
		ctx[k] = v
	}
	ctx[KeyMaterials] = a.materials
	if !a.opts.SkipDocs {
		ctx[KeyDocs] = a.docs
	}
	for k, v := range page {
		if a.reserved(k) {
			continue
		}
		ctx[k] = v
	}
	return ctx
}

func (a *Assembly) reserved(key string) bool {
	switch key {
	case KeyMaterials:
		return true
	case KeyDocs:
		return !a.opts.SkipDocs
	default:
		return false
	}
}

// contextArg converts the optional context argument of a helper call into a
// page-style map. nil and no argument give an empty override. Maps of any
// key type are accepted, with keys formatted by fmt.Sprint. Structs, also
// behind pointers, contribute their exported fields by name.
func contextArg(args []any) (map[string]any, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("expected at most one context argument, got %d", len(args))
	}

	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	}

	rv := reflect.ValueOf(args[0])
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return out, nil
	case reflect.Struct:
		return structFields(rv), nil
	default:
		return nil, fmt.Errorf("context must be a map or struct, got %T", args[0])
	}
}

// structFields returns the exported fields of rv, promoting the fields of
// embedded structs the way template field lookup does.
func structFields(rv reflect.Value) map[string]any {
	out := map[string]any{}
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil || !fv.CanInterface() {
			// Behind a nil embedded pointer or an unexported embedded type.
			continue
		}
		out[f.Name] = fv.Interface()
	}
	return out
}

// dict builds a map from alternating keys and values, for passing a context
// to partial: {{partial "card" (dict "title" "Hello")}}.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict expects key/value pairs, got %d arguments", len(pairs))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %d is %T, not string", i/2, pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
