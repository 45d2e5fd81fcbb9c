package scroller

const selectType = "select"

// SelectMessage is the payload announcing that index is now shown.
func SelectMessage(index int) map[string]any {
	return map[string]any{"type": selectType, "index": index}
}

// ParseSelect extracts the index of a select payload. Numbers decoded from
// the wire arrive as float64.
func ParseSelect(data any) (int, bool) {
	m, ok := data.(map[string]any)
	if !ok || m["type"] != selectType {
		return 0, false
	}
	switch v := m["index"].(type) {
	case float64:
		if v != float64(int(v)) || v < 1 {
			return 0, false
		}
		return int(v), true
	case int:
		return v, v >= 1
	default:
		return 0, false
	}
}
