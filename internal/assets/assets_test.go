package assets

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / max(w-1, 1))})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestIsRemote(t *testing.T) {
	assert.False(t, IsRemote("maps/alps.png"))
	assert.False(t, IsRemote("/abs/alps.png"))
	assert.True(t, IsRemote("https://example.com/alps.png"))
	assert.True(t, IsRemote("s3::https://s3.amazonaws.com/bucket/alps.png"))
	assert.True(t, IsRemote("file::/tmp/alps.png"))
}

func TestCachePathIsStable(t *testing.T) {
	m := NewManager("/cache", nil)
	a := m.CachePath("https://example.com/maps/alps.png?version=2")
	b := m.CachePath("https://example.com/maps/alps.png?version=2")
	c := m.CachePath("https://example.com/maps/alps.png?version=3")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "/cache", filepath.Dir(a))
	assert.Equal(t, ".png", filepath.Ext(a))
}

func TestResolveLocal(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "height.png")
	writePNG(t, src, 4, 4)

	m := NewManager(filepath.Join(dir, "cache"), nil)
	got, err := m.Resolve(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, src, got)

	_, err = m.Resolve(context.Background(), filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	_, err = m.Resolve(context.Background(), "")
	assert.Error(t, err)
}

func TestResolveRemoteFetchesOnce(t *testing.T) {
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin.png")
	writePNG(t, origin, 8, 8)

	m := NewManager(filepath.Join(dir, "cache"), nil)
	var calls int
	m.fetch = func(_ context.Context, dst, src string) error {
		calls++
		data, err := os.ReadFile(origin)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0644)
	}

	src := "https://example.com/origin.png"
	p1, err := m.Resolve(context.Background(), src)
	require.NoError(t, err)
	p2, err := m.Resolve(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, m.CachePath(src), p1)
	assert.Equal(t, 1, calls)
}

func TestResolveRemoteThroughGoGetter(t *testing.T) {
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin.png")
	writePNG(t, origin, 8, 8)

	m := NewManager(filepath.Join(dir, "cache"), nil)
	hm, err := m.Heightmap(context.Background(), "file::"+origin)
	require.NoError(t, err)
	assert.Equal(t, 8, hm.Width)
	assert.Equal(t, 8, hm.Height)
}

func TestLoadUsesMemoryCache(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "height.png")
	writePNG(t, src, 4, 4)

	m := NewManager(filepath.Join(dir, "cache"), nil)
	first, err := m.Load(context.Background(), src)
	require.NoError(t, err)

	// Served from memory even after the file is gone.
	require.NoError(t, os.Remove(src))
	second, err := m.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	hits, misses := m.Cache().Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	m.Close()
	assert.Equal(t, 0, m.Cache().Len())
}

func TestHeightmapDecodes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ramp.png")
	writePNG(t, src, 16, 2)

	m := NewManager(dir, nil)
	hm, err := m.Heightmap(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 16, hm.Width)
	assert.InDelta(t, 0, hm.HeightAt(0, 0), 1e-3)
	assert.InDelta(t, 1, hm.HeightAt(15, 0), 1e-3)
}

func TestHeightmapRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0644))

	m := NewManager(dir, nil)
	_, err := m.Heightmap(context.Background(), src)
	assert.Error(t, err)
}

func TestHeightmapOrNoise(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	hm, err := m.HeightmapOrNoise(context.Background(), "", NoiseParams{Size: 32, Seed: 7, Octaves: 3})
	require.NoError(t, err)
	assert.Equal(t, 32, hm.Width)
	assert.Equal(t, 32, hm.Height)
	assert.Len(t, hm.Data, 32*32)
}
