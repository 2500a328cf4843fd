// Package texture uploads CPU-side images to OpenGL textures.
package texture

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hexterrain/internal/engine/terrain"
)

// UploadHeightmap uploads heights as a single-channel float texture with
// linear filtering and clamped edges. A nil or empty heightmap uploads one
// zero texel so shaders always have something to sample.
func UploadHeightmap(hm *terrain.Heightmap) uint32 {
	if hm == nil || len(hm.Data) == 0 {
		hm = terrain.NewHeightmap(1, 1)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F,
		int32(hm.Width), int32(hm.Height),
		0, gl.RED, gl.FLOAT, unsafe.Pointer(&hm.Data[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return id
}

// Bind binds a texture to a texture unit.
func Bind(id uint32, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// Delete releases a texture and zeroes the handle.
func Delete(id *uint32) {
	if *id != 0 {
		gl.DeleteTextures(1, id)
		*id = 0
	}
}
