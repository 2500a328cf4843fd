// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// HexTerrainVertexShader places hex block and connector vertices.
//
//go:embed hexterrain.vert
var HexTerrainVertexShader string

// CDLODVertexShader places quadtree grid patch vertices.
//
//go:embed cdlod.vert
var CDLODVertexShader string

// TerrainFragmentShader shades both terrain variants.
//
//go:embed terrain.frag
var TerrainFragmentShader string
