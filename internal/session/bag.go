package session

// Bag is the insertion-ordered field/value mapping a workflow accumulates,
// one field per completed step. Field order therefore matches step order.
type Bag struct {
	keys []string
	vals map[string]any
}

// NewBag returns an empty bag.
func NewBag() *Bag {
	return &Bag{vals: make(map[string]any)}
}

// Set stores a value under a field name. Re-setting an existing field (a user
// retrying the same step) overwrites in place and keeps the original order.
func (b *Bag) Set(field string, value any) {
	if _, ok := b.vals[field]; !ok {
		b.keys = append(b.keys, field)
	}
	b.vals[field] = value
}

// Get returns the raw value for a field.
func (b *Bag) Get(field string) (any, bool) {
	v, ok := b.vals[field]
	return v, ok
}

// String returns the field as a string, or "" if unset or of another type.
func (b *Bag) String(field string) string {
	s, _ := b.vals[field].(string)
	return s
}

// Int returns the field as an int, or 0 if unset or of another type.
func (b *Bag) Int(field string) int {
	n, _ := b.vals[field].(int)
	return n
}

// Int64 returns the field as an int64, or 0 if unset or of another type.
func (b *Bag) Int64(field string) int64 {
	n, _ := b.vals[field].(int64)
	return n
}

// Float returns the field as a float64, or 0 if unset or of another type.
func (b *Bag) Float(field string) float64 {
	f, _ := b.vals[field].(float64)
	return f
}

// Fields returns the field names in insertion order.
func (b *Bag) Fields() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len reports the number of stored fields.
func (b *Bag) Len() int {
	return len(b.keys)
}
