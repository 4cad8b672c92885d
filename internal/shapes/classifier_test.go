package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func polygonOf(n int) Polygon {
	p := make(Polygon, n)
	for i := range p {
		p[i] = Pt(i*10, i*3)
	}
	return p
}

func TestClassifyByVertexCount(t *testing.T) {
	c := Pt(50, 60)

	tests := []struct {
		name     string
		vertices int
		wantOK   bool
		wantKind Kind
	}{
		{"single vertex dropped", 1, false, 0},
		{"triangle dropped", 3, false, 0},
		{"quadrilateral", 4, true, KindQuadrilateral},
		{"pentagon dropped", 5, false, 0},
		{"ten vertices dropped", 10, false, 0},
		{"eleven vertices is ellipsoid", 11, true, KindEllipsoidCandidate},
		{"many vertices is ellipsoid", 40, true, KindEllipsoidCandidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok, err := Classify(&c, polygonOf(tt.vertices))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, rec.Kind)
				assert.Equal(t, "c.x:50, c.y:60", rec.Key.String())
				assert.Len(t, rec.Vertices, tt.vertices)
			}
		})
	}
}

func TestClassifyKindNames(t *testing.T) {
	assert.Equal(t, "Quadrilateral", KindQuadrilateral.String())
	assert.Equal(t, "Start/Stop", KindEllipsoidCandidate.String())
}

func TestClassifyRejectsMalformedInput(t *testing.T) {
	c := Pt(1, 1)

	_, ok, err := Classify(nil, polygonOf(4))
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidPolygon)

	_, ok, err = Classify(&c, nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidPolygon)

	var ipe *InvalidPolygonError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, -1, ipe.Index)
	assert.Equal(t, "no vertices", ipe.Reason)
}

func TestClassifyCopiesVertices(t *testing.T) {
	c := Pt(1, 1)
	v := polygonOf(4)
	rec, _, err := Classify(&c, v)
	require.NoError(t, err)

	v[0] = Pt(999, 999)
	assert.Equal(t, Pt(0, 0), rec.Vertices[0])
}

func TestInvalidPolygonErrorMessage(t *testing.T) {
	err := &InvalidPolygonError{Index: 3, Reason: "centroid undefined"}
	assert.Equal(t, "shapes: invalid polygon: region 3: centroid undefined", err.Error())
}
