package contact

// Directory is the address book: records keyed by their name.
// Keys keep the order in which they were first inserted.
// A Directory is not safe for concurrent use.
type Directory struct {
	records map[string]*Record
	order   []string
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{records: make(map[string]*Record)}
}

// AddRecord inserts r, replacing any record with the same name.
// A replaced key keeps its position.
func (d *Directory) AddRecord(r *Record) {
	key := r.name.value
	if _, exists := d.records[key]; !exists {
		d.order = append(d.order, key)
	}
	d.records[key] = r
}

// Find returns the record stored under name.
func (d *Directory) Find(name string) (*Record, bool) {
	r, ok := d.records[name]
	return r, ok
}

// Delete removes the record stored under name and reports whether it existed.
func (d *Directory) Delete(name string) bool {
	if _, ok := d.records[name]; !ok {
		return false
	}
	delete(d.records, name)
	for i, key := range d.order {
		if key == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of records.
func (d *Directory) Len() int { return len(d.order) }

// Names returns the keys in iteration order.
func (d *Directory) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Records returns the records in iteration order.
func (d *Directory) Records() []*Record {
	out := make([]*Record, 0, len(d.order))
	for _, key := range d.order {
		out = append(out, d.records[key])
	}
	return out
}

// FindByPhone returns the records holding phone, in iteration order.
func (d *Directory) FindByPhone(phone string) []*Record {
	var out []*Record
	for _, r := range d.Records() {
		if _, ok := r.FindPhone(phone); ok {
			out = append(out, r)
		}
	}
	return out
}
