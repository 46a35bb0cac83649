package dictionary

// Entry is one variable definition with its description.
type Entry struct {
	Name        string
	DataType    string
	Length      int
	Description string
	// Line is the 1-based line number of the definition.
	Line int
}

// Dictionary maps variable names to entries, remembering first-seen order.
type Dictionary struct {
	entries map[string]Entry
	order   []string
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{entries: make(map[string]Entry)}
}

// Add records e under e.Name. A later entry for the same name replaces the
// earlier one but keeps its original position. It reports whether the name
// was already present.
func (d *Dictionary) Add(e Entry) bool {
	_, dup := d.entries[e.Name]
	if !dup {
		d.order = append(d.order, e.Name)
	}
	d.entries[e.Name] = e
	return dup
}

// Lookup returns the entry for name.
func (d *Dictionary) Lookup(name string) (Entry, bool) {
	e, ok := d.entries[name]
	return e, ok
}

// Description returns the description recorded for name.
func (d *Dictionary) Description(name string) (string, bool) {
	e, ok := d.entries[name]
	return e.Description, ok
}

// Len returns the number of distinct variable names.
func (d *Dictionary) Len() int {
	return len(d.order)
}

// Entries returns all entries in first-seen order.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.entries[name])
	}
	return out
}

// Head returns at most n entries in first-seen order.
func (d *Dictionary) Head(n int) []Entry {
	entries := d.Entries()
	if n < len(entries) {
		return entries[:n]
	}
	return entries
}

// Descriptions returns a plain name -> description map.
func (d *Dictionary) Descriptions() map[string]string {
	out := make(map[string]string, len(d.entries))
	for name, e := range d.entries {
		out[name] = e.Description
	}
	return out
}
