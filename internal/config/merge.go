package config

// MergeLayers composes sparse config maps ordered from strongest to weakest.
// Nested maps are merged key-wise; every other value (arrays included) from a
// stronger layer replaces the weaker one wholesale. Inputs are not modified.
func MergeLayers(layers ...map[string]any) map[string]any {
	merged := map[string]any{}
	for i := len(layers) - 1; i >= 0; i-- {
		merged = mergeMaps(layers[i], merged)
	}
	return merged
}

func mergeMaps(strong, weak map[string]any) map[string]any {
	result := make(map[string]any, len(strong)+len(weak))
	for k, v := range weak {
		result[k] = cloneValue(v)
	}
	for k, v := range strong {
		strongMap, strongIsMap := asMap(v)
		weakMap, weakIsMap := asMap(result[k])
		if strongIsMap && weakIsMap {
			result[k] = mergeMaps(strongMap, weakMap)
			continue
		}
		result[k] = cloneValue(v)
	}
	return result
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		// YAML sometimes produces map[any]any instead of map[string]any
		converted := make(map[string]any, len(m))
		for mk, mv := range m {
			if key, ok := mk.(string); ok {
				converted[key] = mv
			}
		}
		return converted, true
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any, map[any]any:
		m, _ := asMap(val)
		clone := make(map[string]any, len(m))
		for k, item := range m {
			clone[k] = cloneValue(item)
		}
		return clone
	case []any:
		clone := make([]any, len(val))
		for i, item := range val {
			clone[i] = cloneValue(item)
		}
		return clone
	case []string:
		clone := make([]string, len(val))
		copy(clone, val)
		return clone
	default:
		return val
	}
}
