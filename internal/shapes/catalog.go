package shapes

import "encoding/json"

// Kind is the coarse tag assigned by vertex count.
type Kind int

const (
	// KindQuadrilateral marks a four-vertex polygon awaiting sub-classification.
	KindQuadrilateral Kind = iota + 1

	// KindEllipsoidCandidate marks a polygon with more than ten vertices,
	// the start/stop terminator candidate.
	KindEllipsoidCandidate
)

func (k Kind) String() string {
	switch k {
	case KindQuadrilateral:
		return "Quadrilateral"
	case KindEllipsoidCandidate:
		return "Start/Stop"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ShapeRecord is one catalog entry. Records are not mutated after creation;
// sub-classification is tracked in Buckets.
type ShapeRecord struct {
	Key      ShapeKey `json:"key"`
	Vertices Polygon  `json:"vertices"`
	Kind     Kind     `json:"kind"`
}

// Collision reports a Catalog insert that replaced an existing entry with
// different vertex data. The later record wins; the collision is only flagged.
type Collision struct {
	Key      ShapeKey `json:"key"`
	Previous Polygon  `json:"previous"`
	Current  Polygon  `json:"current"`
}

// Catalog maps shape keys to records, preserving first-insertion order.
// Overwriting an existing key keeps the key's original position.
//
// A Catalog is owned by a single classification run and is not safe for
// concurrent mutation.
type Catalog struct {
	order   []ShapeKey
	records map[ShapeKey]ShapeRecord
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[ShapeKey]ShapeRecord)}
}

// Put stores rec under rec.Key. When the key already held a record with
// different vertices or kind, the replaced record is returned with replaced
// set to true.
func (c *Catalog) Put(rec ShapeRecord) (prev ShapeRecord, replaced bool) {
	old, exists := c.records[rec.Key]
	if !exists {
		c.order = append(c.order, rec.Key)
	}
	c.records[rec.Key] = rec
	if exists && (old.Kind != rec.Kind || !old.Vertices.Equal(rec.Vertices)) {
		return old, true
	}
	return ShapeRecord{}, false
}

// Get returns the record stored under key.
func (c *Catalog) Get(key ShapeKey) (ShapeRecord, bool) {
	rec, ok := c.records[key]
	return rec, ok
}

// Len returns the number of distinct keys.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Records returns all records in insertion order.
func (c *Catalog) Records() []ShapeRecord {
	out := make([]ShapeRecord, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.records[k])
	}
	return out
}

// OfKind returns the records tagged kind, in insertion order.
func (c *Catalog) OfKind(kind Kind) []ShapeRecord {
	var out []ShapeRecord
	for _, k := range c.order {
		if rec := c.records[k]; rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}

// KeySet is an insertion-ordered set of shape keys. The zero value is an
// empty set ready for use.
type KeySet struct {
	keys  []ShapeKey
	index map[ShapeKey]struct{}
}

// NewKeySet returns a set holding keys in the given order, duplicates dropped.
func NewKeySet(keys ...ShapeKey) *KeySet {
	s := &KeySet{}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add appends k unless it is already present. It reports whether k was added.
func (s *KeySet) Add(k ShapeKey) bool {
	if s.index == nil {
		s.index = make(map[ShapeKey]struct{})
	}
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.keys = append(s.keys, k)
	return true
}

// Contains reports whether k is in the set. A nil set contains nothing.
func (s *KeySet) Contains(k ShapeKey) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[k]
	return ok
}

// Remove deletes k, keeping the relative order of the remaining keys.
func (s *KeySet) Remove(k ShapeKey) bool {
	if !s.Contains(k) {
		return false
	}
	delete(s.index, k)
	for i, key := range s.keys {
		if key == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of keys.
func (s *KeySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the keys in insertion order.
func (s *KeySet) Keys() []ShapeKey {
	if s == nil {
		return []ShapeKey{}
	}
	out := make([]ShapeKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Clone returns an independent copy.
func (s *KeySet) Clone() *KeySet {
	if s == nil {
		return &KeySet{}
	}
	return NewKeySet(s.keys...)
}

// Equal reports whether both sets hold the same keys in the same order.
func (s *KeySet) Equal(o *KeySet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i, k := range s.Keys() {
		if o.keys[i] != k {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an ordered JSON array of key strings.
func (s *KeySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}
