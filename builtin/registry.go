package builtin

import "github.com/dshills/modal/interp"

// Registry is a map-backed implementation of the interpreter's lookup
// contract. Populate it before handing it to the interpreter; it is not
// synchronized.
type Registry struct {
	motions     map[string]interp.Motion
	operators   map[string]interp.Operator
	textObjects map[string]interp.TextObject
	actions     map[string]interp.Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		motions:     make(map[string]interp.Motion),
		operators:   make(map[string]interp.Operator),
		textObjects: make(map[string]interp.TextObject),
		actions:     make(map[string]interp.Action),
	}
}

// Default returns a registry populated with the standard implementations.
func Default() *Registry {
	r := NewRegistry()
	registerMotions(r)
	registerOperators(r)
	registerTextObjects(r)
	registerActions(r)
	return r
}

// RegisterMotion binds a motion implementation to a token key.
func (r *Registry) RegisterMotion(key string, m interp.Motion) {
	r.motions[key] = m
}

// RegisterOperator binds an operator implementation to a token key.
func (r *Registry) RegisterOperator(key string, op interp.Operator) {
	r.operators[key] = op
}

// RegisterTextObject binds a text-object implementation to a token key.
func (r *Registry) RegisterTextObject(key string, t interp.TextObject) {
	r.textObjects[key] = t
}

// RegisterAction binds an action implementation to a token key.
func (r *Registry) RegisterAction(key string, a interp.Action) {
	r.actions[key] = a
}

// Motion implements interp.Registries.
func (r *Registry) Motion(key string) interp.Motion { return r.motions[key] }

// Operator implements interp.Registries.
func (r *Registry) Operator(key string) interp.Operator { return r.operators[key] }

// TextObject implements interp.Registries.
func (r *Registry) TextObject(key string) interp.TextObject { return r.textObjects[key] }

// Action implements interp.Registries.
func (r *Registry) Action(key string) interp.Action { return r.actions[key] }
