package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Op is a single RFC 6902 patch operation.
type Op struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// DiffValues computes the RFC 6902 patch that transforms a into b, where a
// and b are arbitrary JSON-marshalable values. Both are round-tripped
// through JSON so the patch reflects their wire representation.
func DiffValues(a, b any) ([]Op, error) {
	ga, err := toGeneric(a)
	if err != nil {
		return nil, err
	}
	gb, err := toGeneric(b)
	if err != nil {
		return nil, err
	}
	return Diff(ga, gb, ""), nil
}

// Diff computes an RFC 6902 JSON Patch that transforms a into b.
// Both a and b must be the result of json.Unmarshal into any.
// Path is "" for the root document. Operations are emitted in a fully
// deterministic order: object keys sorted lexicographically, array removals
// in descending index order, additions ascending.
func Diff(a, b any, path string) []Op {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Op{{Op: "replace", Path: path, Value: b}}
	}

	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	// Different types or different primitive values.
	if a != b {
		return []Op{{Op: "replace", Path: path, Value: b}}
	}

	return nil
}

func diffObjects(a, b map[string]any, path string) []Op {
	var ops []Op

	// Removed keys (in a but not in b), sorted for stable output.
	removed := make([]string, 0)
	for k := range a {
		if _, ok := b[k]; !ok {
			removed = append(removed, k)
		}
	}
	sort.Strings(removed)
	for _, k := range removed {
		ops = append(ops, Op{Op: "remove", Path: path + "/" + escapeKey(k)})
	}

	// Added and changed keys, sorted.
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, Op{Op: "add", Path: childPath, Value: b[k]})
			continue
		}
		ops = append(ops, Diff(av, b[k], childPath)...)
	}

	return ops
}

func diffArrays(a, b []any, path string) []Op {
	var ops []Op

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Removals run in reverse so earlier indices stay valid.
	for i := len(a) - 1; i >= minLen; i-- {
		ops = append(ops, Op{Op: "remove", Path: path + "/" + strconv.Itoa(i)})
	}

	for i := minLen; i < len(b); i++ {
		ops = append(ops, Op{Op: "add", Path: path + "/" + strconv.Itoa(i), Value: b[i]})
	}

	return ops
}

func toGeneric(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return generic, nil
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
