package frontmatter

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

// flattenValue stores val under key, expanding nested maps to dotted keys in
// lexical order.
func flattenValue(meta *metadata.Metadata, key string, val any) {
	if m, ok := val.(map[string]any); ok {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			flattenValue(meta, key+"."+k, m[k])
		}
		return
	}
	_ = meta.Set(key, stringify(val))
}

// stringify renders a decoded TOML or JSON value as metadata text.
func stringify(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case bool:
		return strconv.FormatBool(vv)
	case int:
		return strconv.Itoa(vv)
	case int64:
		return strconv.FormatInt(vv, 10)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case json.Number:
		return vv.String()
	case time.Time:
		h, m, s := vv.Clock()
		if h == 0 && m == 0 && s == 0 && vv.Nanosecond() == 0 {
			return vv.Format(time.DateOnly)
		}
		return vv.Format(time.RFC3339)
	case []any:
		items := make([]string, 0, len(vv))
		for _, item := range vv {
			items = append(items, stringify(item))
		}
		return strings.Join(items, ", ")
	case map[string]any:
		keys := slices.Sorted(maps.Keys(vv))
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+stringify(vv[k]))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(vv)
	}
}
