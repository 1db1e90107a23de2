package rules

import (
	"fmt"
	"math"
)

// Output field extraction is strict: a rule that omits a required field or
// produces the wrong type authored a defective contract, and the engine must
// halt rather than default.

func RequireBool(out map[string]interface{}, key string) (bool, error) {
	v, ok := out[key]
	if !ok {
		return false, fmt.Errorf("rule output missing required field %q", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("rule output field %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

func RequireInt(out map[string]interface{}, key string) (int, error) {
	v, ok := out[key]
	if !ok {
		return 0, fmt.Errorf("rule output missing required field %q", key)
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("rule output field %q must be an integer, got %T", key, v)
	}
	return n, nil
}

// RequireNullableID insists the key is present; its value may be null or a
// positive integer identifier.
func RequireNullableID(out map[string]interface{}, key string) (*uint, error) {
	v, ok := out[key]
	if !ok {
		return nil, fmt.Errorf("rule output missing required field %q", key)
	}
	if v == nil {
		return nil, nil
	}
	n, ok := asInt(v)
	if !ok || n <= 0 {
		return nil, fmt.Errorf("rule output field %q must be null or a positive id, got %v", key, v)
	}
	id := uint(n)
	return &id, nil
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		// Rules evaluate arithmetic in float64; Inf and NaN mean the rule
		// divided by zero or similar, never a usable score.
		if math.IsNaN(n) || math.IsInf(n, 0) || n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
