package shape

import "strings"

// Names accepted for the built-in output strategies.
const (
	OutputHash       = "hash"
	OutputMap        = "map"
	OutputOpenStruct = "open_struct"
	OutputAttrs      = "attrs"
)

// Registry resolves named constructors referenced from declarative configuration.
type Registry map[string]Constructor

// Resolve maps an object class name to an Output. Empty names and the
// built-in names never consult the registry.
func (r Registry) Resolve(name string) (Output, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", OutputHash, OutputMap:
		return MapOutput(), true
	case OutputOpenStruct, OutputAttrs:
		return AttrsOutput(), true
	}
	fn, ok := r[name]
	if !ok || fn == nil {
		return Output{}, false
	}
	return FuncOutput(fn), true
}
