package detection

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bitmapFrom builds a bitmap from rows of '#' (white) and '.' (black)
func bitmapFrom(rows ...string) bitmap {
	m := bitmap{width: len(rows[0]), height: len(rows)}
	m.white = make([]bool, m.width*m.height)
	for y, row := range rows {
		for x, c := range row {
			m.white[y*m.width+x] = c == '#'
		}
	}
	return m
}

func TestLabelComponents(t *testing.T) {
	m := bitmapFrom(
		"#.....",
		"..##..",
		"..##..",
		"....#.",
		"......",
	)

	labels, comps := labelComponents(m)
	require.Len(t, comps, 3)

	assert.True(t, comps[0].touchesBorder)
	assert.Equal(t, 1, comps[0].area)

	assert.False(t, comps[1].touchesBorder)
	assert.Equal(t, 4, comps[1].area)
	assert.Equal(t, 2, comps[1].startX)
	assert.Equal(t, 1, comps[1].startY)
	assert.Equal(t, 3, comps[1].maxX)
	assert.Equal(t, 2, comps[1].maxY)

	// diagonal contact does not join components
	assert.Equal(t, 1, comps[2].area)
	assert.NotEqual(t, labels[2*6+3], labels[3*6+4])
}

func TestTraceBoundary(t *testing.T) {
	m := bitmapFrom(
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	)
	labels, comps := labelComponents(m)
	require.Len(t, comps, 1)

	got := traceBoundary(labels, m.width, m.height, comps[0].label, comps[0].startX, comps[0].startY)
	want := []image.Point{
		{1, 1}, {2, 1}, {3, 1},
		{3, 2}, {3, 3},
		{2, 3}, {1, 3},
		{1, 2},
	}
	assert.Equal(t, want, got)
}

func TestTraceBoundary_SinglePixel(t *testing.T) {
	m := bitmapFrom(
		"...",
		".#.",
		"...",
	)
	labels, comps := labelComponents(m)
	require.Len(t, comps, 1)

	got := traceBoundary(labels, m.width, m.height, comps[0].label, 1, 1)
	assert.Equal(t, []image.Point{{1, 1}}, got)
}

func TestTraceBoundary_ThinShape(t *testing.T) {
	m := bitmapFrom(
		".......",
		".#####.",
		"...#...",
		"...#...",
		".......",
	)
	labels, comps := labelComponents(m)
	require.Len(t, comps, 1)

	got := traceBoundary(labels, m.width, m.height, comps[0].label, comps[0].startX, comps[0].startY)
	assert.Equal(t, image.Pt(1, 1), got[0])
	assert.Contains(t, got, image.Pt(3, 3))
	assert.Contains(t, got, image.Pt(5, 1))
	assert.NotEqual(t, got[0], got[len(got)-1])
}
