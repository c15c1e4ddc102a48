package cache

import (
	"sort"
	"strings"
)

// BuildKey derives a deterministic cache key from a namespace tag and a
// parameter set. Parameters are sorted by name, so two logically identical
// queries collide to the same key no matter how call sites order them.
//
// Shape: "ns:k1=v1,k2=v2". With no parameters the tag alone is the key.
func BuildKey(namespace string, params map[string]string) string {
	if len(params) == 0 {
		return namespace
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(namespace)
	b.WriteByte(':')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}
