// Package assets resolves heightmap sources to local files and caches their
// contents. Sources are local paths or anything go-getter understands
// (http(s) URLs, s3::, git::, forced getters).
package assets

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/engine/terrain"
)

// fetchFunc downloads a single file from src to dst.
type fetchFunc func(ctx context.Context, dst, src string) error

// Manager resolves and loads asset sources.
type Manager struct {
	cacheDir string
	cache    *Cache
	fetch    fetchFunc
	log      *zap.Logger
	mu       sync.Mutex // serializes downloads into cacheDir
}

// NewManager creates a manager storing downloads in cacheDir.
func NewManager(cacheDir string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cacheDir: cacheDir,
		cache:    NewCache(),
		fetch:    fetchFile,
		log:      log,
	}
}

func fetchFile(ctx context.Context, dst, src string) error {
	pwd, err := os.Getwd()
	if err != nil {
		return err
	}
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	return client.Get()
}

// IsRemote reports whether src needs go-getter rather than a plain open.
func IsRemote(src string) bool {
	return strings.Contains(src, "::") || strings.Contains(src, "://")
}

// CachePath returns where a remote source is stored locally. The name is
// stable for a source so later runs reuse the download.
func (m *Manager) CachePath(src string) string {
	sum := sha256.Sum256([]byte(src))
	name := hex.EncodeToString(sum[:8])

	u := src
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return filepath.Join(m.cacheDir, name+path.Ext(u))
}

// Resolve returns a local path for src, downloading remote sources into the
// cache directory on first use.
func (m *Manager) Resolve(ctx context.Context, src string) (string, error) {
	if src == "" {
		return "", fmt.Errorf("empty asset source")
	}
	if !IsRemote(src) {
		if _, err := os.Stat(src); err != nil {
			return "", fmt.Errorf("asset %s: %w", src, err)
		}
		return src, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dst := m.CachePath(src)
	if _, err := os.Stat(dst); err == nil {
		m.log.Debug("asset cached on disk", zap.String("src", src), zap.String("path", dst))
		return dst, nil
	}

	if err := os.MkdirAll(m.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	m.log.Info("fetching asset", zap.String("src", src), zap.String("dst", dst))
	if err := m.fetch(ctx, dst, src); err != nil {
		return "", fmt.Errorf("fetching %s: %w", src, err)
	}
	return dst, nil
}

// Load returns the contents of src, served from memory after the first read.
func (m *Manager) Load(ctx context.Context, src string) ([]byte, error) {
	if data, ok := m.cache.Get(src); ok {
		return data, nil
	}

	p, err := m.Resolve(ctx, src)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}

	m.cache.Set(src, data)
	return data, nil
}

// Heightmap loads and decodes an image heightmap.
func (m *Manager) Heightmap(ctx context.Context, src string) (*terrain.Heightmap, error) {
	data, err := m.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	hm, err := terrain.DecodeHeightmap(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("heightmap %s: %w", src, err)
	}
	m.log.Info("heightmap loaded",
		zap.String("src", src),
		zap.Int("width", hm.Width),
		zap.Int("height", hm.Height))
	return hm, nil
}

// NoiseParams describes a generated heightmap.
type NoiseParams struct {
	Size    int
	Seed    int64
	Octaves int
}

// HeightmapOrNoise loads src, or generates a noise heightmap when src is
// empty.
func (m *Manager) HeightmapOrNoise(ctx context.Context, src string, noise NoiseParams) (*terrain.Heightmap, error) {
	if src != "" {
		return m.Heightmap(ctx, src)
	}
	hm := terrain.GenerateHeightmap(noise.Size, noise.Size, noise.Seed, noise.Octaves)
	m.log.Info("heightmap generated",
		zap.Int("size", noise.Size),
		zap.Int64("seed", noise.Seed),
		zap.Int("octaves", noise.Octaves))
	return hm, nil
}

// Cache returns the in-memory cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops every cached asset.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
