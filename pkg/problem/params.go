package problem

// ParamEntry is a single extension parameter.
type ParamEntry struct {
	Key   string
	Value any
}

// Params is an ordered collection of extension parameters. Unlike a map it
// preserves insertion order and allows repeated keys, which field-validation
// handlers rely on to report one propertyPath entry per violation.
type Params struct {
	entries []ParamEntry
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{}
}

// Add appends an entry, keeping any existing entries with the same key.
func (p *Params) Add(key string, value any) *Params {
	p.entries = append(p.entries, ParamEntry{Key: key, Value: value})
	return p
}

// Set replaces the first entry with the given key in place, or appends when
// the key is not present yet.
func (p *Params) Set(key string, value any) *Params {
	for i := range p.entries {
		if p.entries[i].Key == key {
			p.entries[i].Value = value
			return p
		}
	}
	return p.Add(key, value)
}

// Get returns the value of the first entry with the given key.
func (p *Params) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	for _, e := range p.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// GetAll returns the values of every entry with the given key, in order.
func (p *Params) GetAll(key string) []any {
	if p == nil {
		return nil
	}
	var values []any
	for _, e := range p.entries {
		if e.Key == key {
			values = append(values, e.Value)
		}
	}
	return values
}

// Len returns the number of entries.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entries returns a copy of all entries in insertion order.
func (p *Params) Entries() []ParamEntry {
	if p == nil {
		return nil
	}
	out := make([]ParamEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p *Params) clone() *Params {
	if p == nil {
		return NewParams()
	}
	return &Params{entries: p.Entries()}
}
