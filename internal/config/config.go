// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Terrain rendering modes.
const (
	ModeHexGrid = "hexgrid"
	ModeCDLOD   = "cdlod"
)

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	CDLOD    CDLODConfig    `yaml:"cdlod"`
	Camera   CameraConfig   `yaml:"camera"`
	Sky      SkyConfig      `yaml:"sky"`
	Logging  LoggingConfig  `yaml:"logging"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// TerrainConfig holds the hex grid and heightmap settings.
type TerrainConfig struct {
	Mode         string  `yaml:"mode"` // hexgrid or cdlod
	BlockSize    int     `yaml:"block_size"`
	MipmapLevels int     `yaml:"mipmap_levels"`
	GridRings    int     `yaml:"grid_rings"` // 0 derives the count from the heightmap size
	FollowCamera bool    `yaml:"follow_camera"`
	Heightmap    string  `yaml:"heightmap"` // local path or go-getter URL, empty generates one
	HeightScale  float32 `yaml:"height_scale"`
	XZScale      float32 `yaml:"xz_scale"`
	Seed         int64   `yaml:"seed"`
	NoiseSize    int     `yaml:"noise_size"` // generated heightmap side in texels
	NoiseOctaves int     `yaml:"noise_octaves"`
}

// CDLODConfig holds the quadtree settings.
type CDLODConfig struct {
	PatchSize    int  `yaml:"patch_size"`
	Depth        int  `yaml:"depth"`
	RefineBounds bool `yaml:"refine_bounds"`
}

// CameraConfig holds the viewer settings.
type CameraConfig struct {
	Start            [3]float32 `yaml:"start"`
	Speed            float32    `yaml:"speed"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
}

// SkyConfig holds the day/night cycle settings.
type SkyConfig struct {
	DayDuration float32 `yaml:"day_duration"` // seconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// AssetsConfig holds asset resolution settings.
type AssetsConfig struct {
	CacheDir string `yaml:"cache_dir"` // empty means <config dir>/cache
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        60,
			Near:       0.5,
			Far:        20000,

			ScreenshotDir: "screenshots",
		},
		Terrain: TerrainConfig{
			Mode:         ModeHexGrid,
			BlockSize:    32,
			MipmapLevels: 4,
			GridRings:    0,
			FollowCamera: true,
			HeightScale:  300,
			XZScale:      4,
			Seed:         1,
			NoiseSize:    1024,
			NoiseOctaves: 6,
		},
		CDLOD: CDLODConfig{
			PatchSize:    32,
			Depth:        5,
			RefineBounds: true,
		},
		Camera: CameraConfig{
			Start:            [3]float32{0, 400, 0},
			Speed:            60,
			MouseSensitivity: 0.0025,
		},
		Sky: SkyConfig{
			DayDuration: 256,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every setting the terrain code cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		errs = append(errs, fmt.Errorf("graphics: clip range [%g, %g] is invalid", c.Graphics.Near, c.Graphics.Far))
	}

	t := c.Terrain
	switch t.Mode {
	case ModeHexGrid, ModeCDLOD:
	default:
		errs = append(errs, fmt.Errorf("terrain: unknown mode %q", t.Mode))
	}
	if t.BlockSize < 2 || t.BlockSize&(t.BlockSize-1) != 0 {
		errs = append(errs, fmt.Errorf("terrain: block_size %d is not a power of two >= 2", t.BlockSize))
	} else if t.MipmapLevels < 1 || t.BlockSize>>(t.MipmapLevels-1) < 2 {
		errs = append(errs, fmt.Errorf("terrain: mipmap_levels %d leaves fewer than 2 rings at block_size %d", t.MipmapLevels, t.BlockSize))
	}
	if t.GridRings < 0 {
		errs = append(errs, fmt.Errorf("terrain: grid_rings %d is negative", t.GridRings))
	}
	if t.XZScale <= 0 {
		errs = append(errs, fmt.Errorf("terrain: xz_scale %g must be positive", t.XZScale))
	}
	if t.Heightmap == "" && (t.NoiseSize < 2 || t.NoiseOctaves < 1) {
		errs = append(errs, fmt.Errorf("terrain: noise_size %d / noise_octaves %d cannot generate a heightmap", t.NoiseSize, t.NoiseOctaves))
	}

	if c.CDLOD.PatchSize < 2 || c.CDLOD.PatchSize%2 != 0 {
		errs = append(errs, fmt.Errorf("cdlod: patch_size %d must be an even number >= 2", c.CDLOD.PatchSize))
	}
	if c.CDLOD.Depth <= 0 || c.CDLOD.Depth > 10 {
		errs = append(errs, fmt.Errorf("cdlod: depth %d out of range [1, 10]", c.CDLOD.Depth))
	}

	if c.Sky.DayDuration <= 0 {
		errs = append(errs, fmt.Errorf("sky: day_duration %g must be positive", c.Sky.DayDuration))
	}

	return errors.Join(errs...)
}
