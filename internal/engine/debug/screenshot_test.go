package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipRGBA(t *testing.T) {
	// Two rows, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img := FlipRGBA(pixels, 2, 2)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(1, 1))
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "hexgrid")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	pixels := make([]byte, 3*2*4)
	first, err := s.SavePixels(pixels, 3, 2)
	require.NoError(t, err)
	second, err := s.SavePixels(pixels, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "hexgrid_2026-01-02_03-04-05_000.png"), first)
	assert.NotEqual(t, first, second)

	f, err := os.Open(first)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestSavePixelsRejectsShortBuffer(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	_, err := s.SavePixels(make([]byte, 10), 3, 2)
	assert.Error(t, err)
}
