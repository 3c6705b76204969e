package vnode

import (
	"fmt"
	"strconv"
)

// Normalize converts arbitrary nested, heterogeneous children input into a
// flat ordered list of nodes:
//
//   - existing *VNode values pass through unchanged
//   - strings and numbers become text nodes
//   - Components become component nodes
//   - nil, untyped nils and booleans are dropped
//   - nested []any, []*VNode and []string flatten depth-first
//
// Anything unrecognized contributes nothing. Normalize never panics;
// malformed input degrades to an empty contribution rather than failing the
// whole render.
func Normalize(children ...any) []*VNode {
	out := make([]*VNode, 0, len(children))
	return appendNormalized(out, children)
}

func appendNormalized(out []*VNode, children []any) []*VNode {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case bool:
			continue
		case *VNode:
			if v != nil {
				out = append(out, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					out = append(out, c)
				}
			}
		case []any:
			out = appendNormalized(out, v)
		case []string:
			for _, s := range v {
				out = append(out, NewText(s))
			}
		case string:
			out = append(out, NewText(v))
		case int:
			out = append(out, NewText(strconv.Itoa(v)))
		case int8:
			out = append(out, NewText(strconv.FormatInt(int64(v), 10)))
		case int16:
			out = append(out, NewText(strconv.FormatInt(int64(v), 10)))
		case int32:
			out = append(out, NewText(strconv.FormatInt(int64(v), 10)))
		case int64:
			out = append(out, NewText(strconv.FormatInt(v, 10)))
		case uint:
			out = append(out, NewText(strconv.FormatUint(uint64(v), 10)))
		case uint8:
			out = append(out, NewText(strconv.FormatUint(uint64(v), 10)))
		case uint16:
			out = append(out, NewText(strconv.FormatUint(uint64(v), 10)))
		case uint32:
			out = append(out, NewText(strconv.FormatUint(uint64(v), 10)))
		case uint64:
			out = append(out, NewText(strconv.FormatUint(v, 10)))
		case float64:
			out = append(out, NewText(strconv.FormatFloat(v, 'g', -1, 64)))
		case float32:
			out = append(out, NewText(strconv.FormatFloat(float64(v), 'g', -1, 32)))
		case Component:
			out = append(out, NewComponent(v, nil))
		}
	}
	return out
}

// keyFallbackPrefix namespaces positional fallback keys so structural
// matching can never confuse an explicit key with an index.
const keyFallbackPrefix = "idx:"

// KeyOf returns the node's explicit key as a display string — the literal
// key 0 yields "0", the empty string yields "" — or, when no key is set,
// a positional fallback distinguishable from any explicit key.
func KeyOf(v *VNode, fallbackIndex int) string {
	if v == nil || v.Key == nil {
		return keyFallbackPrefix + strconv.Itoa(fallbackIndex)
	}

	switch k := v.Key.(type) {
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64)
	default:
		return fmt.Sprint(k)
	}
}
