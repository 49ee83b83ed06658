package background

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGrass(t *testing.T) {
	g := NewGenerator(160, 90)

	a := g.GenerateGrass(7)
	b := g.GenerateGrass(7)
	c := g.GenerateGrass(8)

	require.Equal(t, 160, a.Bounds().Dx())
	require.Equal(t, 90, a.Bounds().Dy())
	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, a.Pix, c.Pix)

	for i := 3; i < len(a.Pix); i += 4 {
		if a.Pix[i] != 255 {
			t.Fatalf("pixel %d is not opaque", i/4)
		}
	}
}
