package terrain

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders
	_ "image/png"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/ojrac/opensimplex-go"
	_ "golang.org/x/image/bmp"
)

// Heightmap holds normalized terrain heights in [0, 1], row-major by z.
type Heightmap struct {
	Width  int
	Height int
	Data   []float32
}

// NewHeightmap returns a flat heightmap of the given size.
func NewHeightmap(width, height int) *Heightmap {
	return &Heightmap{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height),
	}
}

// HeightAt returns the texel height at (x, z), clamped to the map edges.
func (h *Heightmap) HeightAt(x, z int) float32 {
	if h == nil || len(h.Data) == 0 {
		return 0
	}
	x = min(max(x, 0), h.Width-1)
	z = min(max(z, 0), h.Height-1)
	return h.Data[z*h.Width+x]
}

// Set stores the texel height at (x, z). Out of range writes are ignored.
func (h *Heightmap) Set(x, z int, v float32) {
	if x < 0 || z < 0 || x >= h.Width || z >= h.Height {
		return
	}
	h.Data[z*h.Width+x] = v
}

// InterpolatedHeight returns the bilinearly filtered height at a texel-space
// position.
func (h *Heightmap) InterpolatedHeight(x, z float32) float32 {
	if h == nil || len(h.Data) == 0 {
		return 0
	}
	x0 := int(math32.Floor(x))
	z0 := int(math32.Floor(z))
	fx := clampf(x-float32(x0), 0, 1)
	fz := clampf(z-float32(z0), 0, 1)

	south := h.HeightAt(x0, z0)*(1-fx) + h.HeightAt(x0+1, z0)*fx
	north := h.HeightAt(x0, z0+1)*(1-fx) + h.HeightAt(x0+1, z0+1)*fx
	return south*(1-fz) + north*fz
}

// MinMax returns the height range over the texel rectangle [x0, x1] x [z0, z1],
// clamped to the map.
func (h *Heightmap) MinMax(x0, z0, x1, z1 int) (lo, hi float32) {
	if h == nil || len(h.Data) == 0 {
		return 0, 0
	}
	x0, x1 = max(min(x0, x1), 0), min(max(x0, x1), h.Width-1)
	z0, z1 = max(min(z0, z1), 0), min(max(z0, z1), h.Height-1)
	if x0 > x1 || z0 > z1 {
		return 0, 0
	}

	lo = h.Data[z0*h.Width+x0]
	hi = lo
	for z := z0; z <= z1; z++ {
		row := h.Data[z*h.Width : (z+1)*h.Width]
		for _, v := range row[x0 : x1+1] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}

// HeightmapFromImage converts an image to luminance heights.
func HeightmapFromImage(img image.Image) *Heightmap {
	b := img.Bounds()
	hm := NewHeightmap(b.Dx(), b.Dy())
	for z := range hm.Height {
		for x := range hm.Width {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+z).RGBA()
			lum := 0.299*float32(r) + 0.587*float32(g) + 0.114*float32(bl)
			hm.Data[z*hm.Width+x] = lum / 0xffff
		}
	}
	return hm
}

// DecodeHeightmap decodes a png, jpeg or bmp image into a heightmap.
func DecodeHeightmap(r io.Reader) (*Heightmap, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode heightmap: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode heightmap: empty %s image", format)
	}
	return HeightmapFromImage(img), nil
}

// LoadHeightmap reads a heightmap image from disk.
func LoadHeightmap(path string) (*Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open heightmap: %w", err)
	}
	defer f.Close()

	hm, err := DecodeHeightmap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hm, nil
}

// GenerateHeightmap builds fractal noise terrain from summed octaves of
// OpenSimplex noise, normalized to [0, 1].
func GenerateHeightmap(width, height int, seed int64, octaves int) *Heightmap {
	hm := NewHeightmap(width, height)
	if width == 0 || height == 0 {
		return hm
	}
	octaves = max(octaves, 1)
	noise := opensimplex.NewNormalized(seed)

	base := 4.0 / float64(max(width, height))
	var norm float64
	for o := range octaves {
		norm += 1 / float64(int(1)<<o)
	}

	for z := range height {
		for x := range width {
			var sum float64
			freq, amp := base, 1.0
			for range octaves {
				sum += amp * noise.Eval2(float64(x)*freq, float64(z)*freq)
				freq *= 2
				amp /= 2
			}
			hm.Data[z*width+x] = float32(sum / norm)
		}
	}
	return hm
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WorldHeight returns the world-space height under a world XZ position for
// a heightmap centred on the origin and stretched by s.
func (h *Heightmap) WorldHeight(x, z float32, s Scales) float32 {
	if h == nil || len(h.Data) == 0 || s.XZ == 0 {
		return 0
	}
	tx := x/s.XZ + float32(h.Width)/2 - 0.5
	tz := z/s.XZ + float32(h.Height)/2 - 0.5
	return h.InterpolatedHeight(tx, tz) * s.Y
}
