package sketch

import "iter"

// Sketch is one primary source unit plus the auxiliary sources and asset
// references resolved from a single input. A Sketch is owned by the resolver
// that builds it and is treated as read-only once assembly begins.
type Sketch struct {
	// Primary holds the main source text. It may be empty, but HasPrimary
	// must be true before the sketch can be assembled.
	Primary    string
	HasPrimary bool

	// Sources holds auxiliary source fragments keyed by file name. Insertion
	// order drives merge order.
	Sources Entries

	// Assets maps asset names to opaque references (paths or URLs).
	Assets Entries
}

// New returns an empty sketch with no primary source set.
func New() *Sketch {
	return &Sketch{}
}

// FromLiteral returns a sketch whose primary source is text and which carries
// no auxiliary sources or assets.
func FromLiteral(text string) *Sketch {
	s := New()
	s.SetPrimary(text)
	return s
}

// SetPrimary assigns the primary source.
func (s *Sketch) SetPrimary(text string) {
	s.Primary = text
	s.HasPrimary = true
}

// Clone returns a deep copy of s.
func (s *Sketch) Clone() *Sketch {
	if s == nil {
		return nil
	}
	return &Sketch{
		Primary:    s.Primary,
		HasPrimary: s.HasPrimary,
		Sources:    s.Sources.Clone(),
		Assets:     s.Assets.Clone(),
	}
}

// Entries is a string map that remembers insertion order. Setting an existing
// name replaces its value in place.
type Entries struct {
	keys   []string
	values map[string]string
}

// Set stores value under name.
func (e *Entries) Set(name, value string) {
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, exists := e.values[name]; !exists {
		e.keys = append(e.keys, name)
	}
	e.values[name] = value
}

// Get returns the value stored under name.
func (e *Entries) Get(name string) (string, bool) {
	value, ok := e.values[name]
	return value, ok
}

// Delete removes name, preserving the order of the remaining entries.
func (e *Entries) Delete(name string) {
	if _, exists := e.values[name]; !exists {
		return
	}
	delete(e.values, name)
	for i, key := range e.keys {
		if key == name {
			e.keys = append(e.keys[:i:i], e.keys[i+1:]...)
			break
		}
	}
}

// Len reports the number of entries.
func (e *Entries) Len() int {
	return len(e.keys)
}

// Keys returns a copy of the names in insertion order.
func (e *Entries) Keys() []string {
	if len(e.keys) == 0 {
		return nil
	}
	return append([]string(nil), e.keys...)
}

// All iterates name/value pairs in insertion order.
func (e *Entries) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, key := range e.keys {
			if !yield(key, e.values[key]) {
				return
			}
		}
	}
}

// Merge copies every entry of other into e, in other's order.
func (e *Entries) Merge(other Entries) {
	for name, value := range other.All() {
		e.Set(name, value)
	}
}

// Clone returns an independent copy.
func (e *Entries) Clone() Entries {
	var out Entries
	out.Merge(*e)
	return out
}
