package http

const defaultHeadersCap = 16

type Field struct{ Name, Value string }

func (f Field) Text() string { return f.Name + ": " + f.Value }

// Headers keeps fields in insertion order.
// Names are matched exactly; no case folding is done.
// Duplicated names are kept, and lookup returns the first one.
type Headers struct{ fields []Field }

func NewHeaders(cap uint) Headers {
	if cap == 0 {
		cap = defaultHeadersCap
	}
	return Headers{fields: make([]Field, 0, cap)}
}

func (h *Headers) Len() uint { return uint(len(h.fields)) }
func (h *Headers) Cap() uint { return uint(cap(h.fields)) }

// Add appends a field. Capacity is doubled when it's full.
func (h *Headers) Add(name, value string) {
	if h.fields == nil {
		*h = NewHeaders(0)
	}

	if len(h.fields) == cap(h.fields) {
		grown := make([]Field, len(h.fields), 2*cap(h.fields))
		copy(grown, h.fields)
		h.fields = grown
	}

	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Get returns value of the first field named key.
func (h *Headers) Get(key string) (value string, ok bool) {
	for _, f := range h.fields {
		if f.Name == key {
			return f.Value, true
		}
	}
	return "", false
}

// Fields returns a copy of all the fields in insertion order.
func (h *Headers) Fields() []Field {
	clone := make([]Field, len(h.fields))
	copy(clone, h.fields)
	return clone
}
