package settings

// Merge overlays user onto defaults. Object-valued defaults are merged recursively; a
// leaf takes the user value whenever the key is present, even when it is null. A
// non-object user value where the default is an object is ignored. Keys unknown to
// defaults are kept. Neither argument is modified.
func Merge(defaults, user map[string]any) map[string]any {
	result := make(map[string]any, len(defaults)+len(user))
	for key, def := range defaults {
		if defObj, ok := def.(map[string]any); ok {
			userObj, _ := user[key].(map[string]any)
			result[key] = Merge(defObj, userObj)
			continue
		}
		if val, ok := user[key]; ok {
			result[key] = cloneValue(val)
		} else {
			result[key] = cloneValue(def)
		}
	}
	for key, val := range user {
		if _, known := defaults[key]; !known {
			result[key] = cloneValue(val)
		}
	}
	return result
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
