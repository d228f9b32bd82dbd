package docstore

import "reflect"

// Doc is a single document: a server-assigned id plus decoded JSON fields.
type Doc struct {
	ID   string
	Data map[string]any
}

// normalize rewrites a value so that documents decoded from JSON and values
// supplied by callers compare equal: all numbers become float64, typed slices
// become []any.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	default:
		return v
	}
}

func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(normalize(a), normalize(b))
}

func arrayContains(arr, want any) bool {
	elems, ok := normalize(arr).([]any)
	if !ok {
		return false
	}
	for _, e := range elems {
		if valuesEqual(e, want) {
			return true
		}
	}
	return false
}

// compareValues orders two field values: numbers numerically, strings
// lexicographically, bools false before true. Mixed or missing values
// compare as equal.
func compareValues(a, b any) int {
	switch x := normalize(a).(type) {
	case float64:
		y, ok := normalize(b).(float64)
		if !ok {
			return 0
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case string:
		y, ok := b.(string)
		if !ok {
			return 0
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0
		}
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	default:
		return 0
	}
}
