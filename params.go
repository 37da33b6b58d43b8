package pluton

import (
	"reflect"
	"sort"
)

// Params is the flat reactive parameter bag owned by an Engine. Values are
// limited to primitives (nil, bool, string, integers, floats); every write is
// validated before it takes effect and then notifies the engine.
type Params struct {
	values   map[string]any
	keys     []string
	onChange func()
}

func newParams(initial map[string]any) (*Params, error) {
	p := &Params{values: make(map[string]any, len(initial))}
	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := validateParam(k, initial[k]); err != nil {
			return nil, err
		}
		p.values[k] = initial[k]
	}
	p.keys = keys
	return p, nil
}

// validateParam rejects anything that is not a primitive value.
func validateParam(key string, v any) error {
	if v == nil {
		return nil
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return nil
	}
	return &ValidationError{Key: key, Value: v}
}

// Set writes a single value. A non-primitive value is rejected with a
// *ValidationError and the bag is left unchanged.
func (p *Params) Set(key string, value any) error {
	if err := validateParam(key, value); err != nil {
		return err
	}
	p.store(key, value)
	p.changed()
	return nil
}

// Update writes several values at once. Every value is validated before any
// is applied, and the engine is notified once.
func (p *Params) Update(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := validateParam(k, values[k]); err != nil {
			return err
		}
	}
	for _, k := range keys {
		p.store(k, values[k])
	}
	if len(keys) > 0 {
		p.changed()
	}
	return nil
}

func (p *Params) store(key string, value any) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Params) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}

// Get returns the raw value stored under key.
func (p *Params) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Float returns key as a float64. Integer values are converted; anything
// else yields 0.
func (p *Params) Float(key string) float64 {
	v, ok := p.values[key]
	if !ok || v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	}
	return 0
}

// Int returns key as an int, truncating floats.
func (p *Params) Int(key string) int {
	return int(p.Float(key))
}

// String returns key as a string, or "" when it is not one.
func (p *Params) String(key string) string {
	v, ok := p.values[key]
	if !ok || v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return ""
}

// Bool returns key as a bool, or false when it is not one.
func (p *Params) Bool(key string) bool {
	v, ok := p.values[key]
	if !ok || v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Bool {
		return rv.Bool()
	}
	return false
}

// Keys returns the keys in insertion order (initial keys sorted first).
// The returned slice MUST NOT be mutated.
func (p *Params) Keys() []string {
	return p.keys
}

// Len returns the number of keys.
func (p *Params) Len() int {
	return len(p.keys)
}
