package shapes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(x0, y0, x1, y1, x2, y2, x3, y3 int) Polygon {
	return Polygon{Pt(x0, y0), Pt(x1, y1), Pt(x2, y2), Pt(x3, y3)}
}

func catalogKeys(c *Catalog) []ShapeKey {
	var out []ShapeKey
	for _, rec := range c.Records() {
		out = append(out, rec.Key)
	}
	return out
}

func TestCatalogPreservesInsertionOrder(t *testing.T) {
	c := NewCatalog()
	keys := []ShapeKey{{X: 30, Y: 1}, {X: 10, Y: 2}, {X: 20, Y: 3}}
	for _, k := range keys {
		c.Put(ShapeRecord{Key: k, Vertices: quad(0, 0, 0, 1, 1, 1, 1, 0), Kind: KindQuadrilateral})
	}

	assert.Equal(t, keys, catalogKeys(c))
	assert.Equal(t, 3, c.Len())
}

func TestCatalogOverwriteReportsCollision(t *testing.T) {
	c := NewCatalog()
	key := ShapeKey{X: 5, Y: 5}
	first := ShapeRecord{Key: key, Vertices: quad(0, 0, 0, 10, 10, 10, 10, 0), Kind: KindQuadrilateral}
	second := ShapeRecord{Key: key, Vertices: quad(5, 0, 0, 5, 5, 10, 10, 5), Kind: KindQuadrilateral}

	_, replaced := c.Put(first)
	assert.False(t, replaced)

	c.Put(ShapeRecord{Key: ShapeKey{X: 1, Y: 1}, Vertices: first.Vertices, Kind: KindQuadrilateral})

	prev, replaced := c.Put(second)
	require.True(t, replaced)
	assert.Equal(t, first, prev)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, second, got, "later record wins")
	assert.Equal(t, key, catalogKeys(c)[0], "overwrite keeps the original position")
	assert.Equal(t, 2, c.Len())
}

func TestCatalogIdenticalOverwriteIsNotACollision(t *testing.T) {
	c := NewCatalog()
	rec := ShapeRecord{Key: ShapeKey{X: 5, Y: 5}, Vertices: quad(0, 0, 0, 10, 10, 10, 10, 0), Kind: KindQuadrilateral}
	c.Put(rec)
	_, replaced := c.Put(rec)
	assert.False(t, replaced)
}

func TestCatalogOfKind(t *testing.T) {
	c := NewCatalog()
	c.Put(ShapeRecord{Key: ShapeKey{X: 1}, Kind: KindEllipsoidCandidate})
	c.Put(ShapeRecord{Key: ShapeKey{X: 2}, Kind: KindQuadrilateral})
	c.Put(ShapeRecord{Key: ShapeKey{X: 3}, Kind: KindEllipsoidCandidate})

	got := c.OfKind(KindEllipsoidCandidate)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Key.X)
	assert.Equal(t, 3, got[1].Key.X)
}

func TestKeySet(t *testing.T) {
	a, b, c := ShapeKey{X: 1}, ShapeKey{X: 2}, ShapeKey{X: 3}

	var s KeySet
	assert.True(t, s.Add(a))
	assert.True(t, s.Add(b))
	assert.False(t, s.Add(a), "duplicates are ignored")
	assert.True(t, s.Add(c))
	assert.Equal(t, []ShapeKey{a, b, c}, s.Keys())

	assert.True(t, s.Remove(b))
	assert.False(t, s.Remove(b))
	assert.Equal(t, []ShapeKey{a, c}, s.Keys())
	assert.False(t, s.Contains(b))

	clone := s.Clone()
	clone.Add(b)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Equal(clone))
	assert.True(t, NewKeySet(c, a).Equal(NewKeySet(c, a)))
	assert.False(t, NewKeySet(a, c).Equal(NewKeySet(c, a)), "order matters")
}

func TestNilKeySet(t *testing.T) {
	var s *KeySet
	assert.False(t, s.Contains(ShapeKey{}))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
	assert.Equal(t, 0, s.Clone().Len())
}

func TestKeySetMarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewKeySet(ShapeKey{X: 200, Y: 200}, ShapeKey{X: 1, Y: 2}))
	require.NoError(t, err)
	assert.JSONEq(t, `["c.x:200, c.y:200", "c.x:1, c.y:2"]`, string(b))

	b, err = json.Marshal(&KeySet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
