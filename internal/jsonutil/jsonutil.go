// Package jsonutil holds small helpers for working with decoded JSON values.
package jsonutil

// Merge combines two JSON objects. Keys from overlay win on conflict; when
// both sides hold an object under the same key, the objects are merged
// recursively so an overlay can override a single nested field without
// clobbering its siblings. Neither input is mutated.
func Merge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}

	for k, v := range overlay {
		if ov, ok := v.(map[string]any); ok {
			if bv, ok := out[k].(map[string]any); ok {
				out[k] = Merge(bv, ov)
				continue
			}
		}
		out[k] = v
	}

	return out
}
