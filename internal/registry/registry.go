// Package registry holds the typed tool specifications and routes dispatch
// calls through argument validation into their handlers.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// ErrUnknownTool is returned by Dispatch for a name that was never
// registered. It is the one failure that propagates to the caller instead of
// being wrapped in an envelope, since it indicates a protocol bug.
var ErrUnknownTool = errors.New("unknown tool")

// ErrDuplicateTool is returned by Register when a name is already taken.
var ErrDuplicateTool = errors.New("duplicate tool")

// ValidationError reports arguments that do not satisfy a tool's schema.
type ValidationError struct {
	Tool   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: field %q %s", e.Tool, e.Field, e.Reason)
}

// FieldType enumerates the primitive types a schema field may declare.
type FieldType int

const (
	String FieldType = iota
	Int
	Bool
)

// Field declares one named schema field.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
	// Default is applied when an optional field is absent.
	Default any
	// Cap clamps integer values from above; 0 means uncapped.
	Cap int
}

// Args holds validated, defaulted arguments keyed by field name.
type Args map[string]any

// String returns the named string argument, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns the named integer argument, or 0 when absent.
func (a Args) Int(name string) int {
	n, _ := a[name].(int)
	return n
}

// Bool returns the named boolean argument, or false when absent.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Handler executes one tool call and renders its result as text.
type Handler func(ctx context.Context, args Args) (string, error)

// Spec ties a tool name to its schema and handler. Created at startup,
// immutable afterward.
type Spec struct {
	Name        string
	Description string
	Fields      []Field
	Handler     Handler
}

// Envelope is the uniform outcome of a dispatch: exactly one per call,
// success or error, always representable as text.
type Envelope struct {
	IsError bool
	Text    string
}

const errorMarker = "[ERROR] "

func errorEnvelope(err error) Envelope {
	return Envelope{IsError: true, Text: errorMarker + err.Error()}
}

// Registry maps tool names to their specs, preserving registration order.
type Registry struct {
	specs map[string]*Spec
	order []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{specs: make(map[string]*Spec)}
}

// Register adds a tool spec. Names must be unique.
func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" {
		return errors.New("tool name must not be empty")
	}
	if spec.Handler == nil {
		return fmt.Errorf("tool %s has no handler", spec.Name)
	}
	if _, exists := r.specs[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, spec.Name)
	}

	s := spec
	r.specs[spec.Name] = &s
	r.order = append(r.order, spec.Name)

	return nil
}

// List returns all specs in registration order.
func (r *Registry) List() []Spec {
	specs := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, *r.specs[name])
	}
	return specs
}

// Dispatch validates raw arguments against the named tool's schema and
// invokes its handler. The returned error is non-nil only for an unknown
// name; every operational failure becomes an error envelope instead.
func (r *Registry) Dispatch(ctx context.Context, name string, raw map[string]any) (Envelope, error) {
	spec, ok := r.specs[name]
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	args, err := coerceArgs(spec, raw)
	if err != nil {
		return errorEnvelope(err), nil
	}

	text, err := spec.Handler(ctx, args)
	if err != nil {
		log.Printf("Tool %s failed: %v", name, err)
		return errorEnvelope(err), nil
	}

	return Envelope{Text: text}, nil
}

func coerceArgs(spec *Spec, raw map[string]any) (Args, error) {
	args := make(Args, len(spec.Fields))

	for _, f := range spec.Fields {
		v, present := raw[f.Name]
		if !present || v == nil {
			if f.Required {
				return nil, &ValidationError{Tool: spec.Name, Field: f.Name, Reason: "is required"}
			}
			if f.Default != nil {
				args[f.Name] = f.Default
			}
			continue
		}

		switch f.Type {
		case String:
			s, ok := v.(string)
			if !ok {
				return nil, &ValidationError{Tool: spec.Name, Field: f.Name, Reason: "must be a string"}
			}
			args[f.Name] = s
		case Int:
			n, ok := toInt(v)
			if !ok {
				return nil, &ValidationError{Tool: spec.Name, Field: f.Name, Reason: "must be an integer"}
			}
			// Overlarge limits are capped, never rejected.
			if f.Cap > 0 && n > f.Cap {
				n = f.Cap
			}
			args[f.Name] = n
		case Bool:
			b, ok := v.(bool)
			if !ok {
				return nil, &ValidationError{Tool: spec.Name, Field: f.Name, Reason: "must be a boolean"}
			}
			args[f.Name] = b
		}
	}

	return args, nil
}

// toInt accepts the numeric shapes JSON decoding produces.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
