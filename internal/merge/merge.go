package merge

// Merge returns a new tree with override merged into base.
// Mappings are merged key by key, anything else in override replaces the value in base,
// including a mapping in base replaced by a scalar or sequence. Neither input is modified.
func Merge(base, override map[string]interface{}) map[string]interface{} {
	result := DeepCopy(base)
	if result == nil {
		result = map[string]interface{}{}
	}
	for key, value := range override {
		baseMap, baseIsMap := AsMap(result[key])
		overrideMap, overrideIsMap := AsMap(value)
		if baseIsMap && overrideIsMap {
			result[key] = Merge(baseMap, overrideMap)
			continue
		}
		result[key] = DeepCopyValue(value)
	}
	return result
}

// AsMap reports whether value is a mapping and returns it as map[string]interface{}
func AsMap(value interface{}) (map[string]interface{}, bool) {
	switch m := value.(type) {
	case map[string]interface{}:
		return m, true
	case map[string]string:
		result := make(map[string]interface{}, len(m))
		for k, v := range m {
			result[k] = v
		}
		return result, true
	}
	return nil, false
}

// DeepCopy copies the nested maps and slices of a tree. Other values are shared.
func DeepCopy(tree map[string]interface{}) map[string]interface{} {
	if tree == nil {
		return nil
	}
	result := make(map[string]interface{}, len(tree))
	for key, value := range tree {
		result[key] = DeepCopyValue(value)
	}
	return result
}

// DeepCopyValue copies value if it is a mapping or a sequence
func DeepCopyValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return DeepCopy(v)
	case map[string]string:
		result := make(map[string]string, len(v))
		for k, s := range v {
			result[k] = s
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = DeepCopyValue(item)
		}
		return result
	case []map[string]interface{}:
		result := make([]map[string]interface{}, len(v))
		for i, item := range v {
			result[i] = DeepCopy(item)
		}
		return result
	case []string:
		result := make([]string, len(v))
		copy(result, v)
		return result
	}
	return value
}
