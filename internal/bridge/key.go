package bridge

import (
	"sort"
	"strings"
)

// Key identifies a logical request for caching and coalescing purposes.
// Two calls with the same operation and the same parameter set produce the
// same key regardless of the order the parameters were supplied in.
type Key struct {
	operation string
	params    []kv
}

type kv struct {
	name  string
	value string
}

// NewKey builds a key for the given operation. Params are supplied as
// alternating name/value pairs; a trailing unpaired name is ignored.
func NewKey(operation string, params ...string) Key {
	k := Key{operation: operation}
	for i := 0; i+1 < len(params); i += 2 {
		k.params = append(k.params, kv{name: params[i], value: params[i+1]})
	}
	sort.Slice(k.params, func(i, j int) bool {
		if k.params[i].name != k.params[j].name {
			return k.params[i].name < k.params[j].name
		}
		return k.params[i].value < k.params[j].value
	})
	return k
}

// Operation returns the operation name portion of the key
func (k Key) Operation() string {
	return k.operation
}

// String renders the key deterministically: operation:name=value:name=value...
func (k Key) String() string {
	if len(k.params) == 0 {
		return k.operation
	}
	var sb strings.Builder
	sb.WriteString(k.operation)
	for _, p := range k.params {
		sb.WriteByte(':')
		sb.WriteString(p.name)
		sb.WriteByte('=')
		sb.WriteString(p.value)
	}
	return sb.String()
}
