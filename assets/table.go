// Package assets resolves asset ids to decoded images and raw sound data.
// Lookups never fail hard: a missing or undecodable file is reported once
// and the caller draws or plays nothing.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var embedded embed.FS

// Manifest maps ids to asset-root relative paths.
type Manifest struct {
	Images map[string]string `yaml:"images"`
	Sounds map[string]string `yaml:"sounds"`
}

func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("assets: unmarshal manifest: %w", err)
	}
	return m, nil
}

// Sound is undecoded audio data with its container format.
type Sound struct {
	Data   []byte
	Format string
}

type Table struct {
	manifest Manifest
	sources  []fs.FS
	logger   *log.Logger

	mu     sync.Mutex
	images map[string]image.Image
	missed map[string]bool
}

func NewTable(m Manifest, logger *log.Logger, sources ...fs.FS) *Table {
	if logger == nil {
		logger = log.Default()
	}
	return &Table{
		manifest: m,
		sources:  sources,
		logger:   logger,
		images:   map[string]image.Image{},
		missed:   map[string]bool{},
	}
}

// Load reads the embedded manifest and serves files from dir on disk (when
// it exists) and then from the embedded FS.
func Load(dir string, logger *log.Logger) (*Table, error) {
	data, err := embedded.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	var sources []fs.FS
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			sources = append(sources, os.DirFS(dir))
			if disk, err := os.ReadFile(filepath.Join(dir, "manifest.yaml")); err == nil {
				if dm, err := ParseManifest(disk); err == nil {
					m = merge(m, dm)
				} else {
					logger.Warn("ignoring disk manifest", "err", err)
				}
			}
		}
	}
	sources = append(sources, embedded)
	return NewTable(m, logger, sources...), nil
}

func merge(base, over Manifest) Manifest {
	out := Manifest{Images: map[string]string{}, Sounds: map[string]string{}}
	for k, v := range base.Images {
		out.Images[k] = v
	}
	for k, v := range base.Sounds {
		out.Sounds[k] = v
	}
	for k, v := range over.Images {
		out.Images[k] = v
	}
	for k, v := range over.Sounds {
		out.Sounds[k] = v
	}
	return out
}

func (t *Table) read(p string) ([]byte, error) {
	clean := cleanAssetPath(p)
	var lastErr error = fs.ErrNotExist
	for _, src := range t.sources {
		data, err := fs.ReadFile(src, clean)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// miss logs a warning the first time id fails.
func (t *Table) miss(kind, id string, err error) {
	key := kind + ":" + id
	if t.missed[key] {
		return
	}
	t.missed[key] = true
	t.logger.Warn("asset unavailable", "kind", kind, "id", id, "err", err)
}

// Image returns the decoded image for id.
func (t *Table) Image(id string) (image.Image, bool) {
	if t == nil || id == "" {
		return nil, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if img, ok := t.images[id]; ok {
		return img, img != nil
	}
	p, ok := t.manifest.Images[id]
	if !ok {
		t.images[id] = nil
		t.miss("image", id, fmt.Errorf("not in manifest"))
		return nil, false
	}
	data, err := t.read(p)
	if err != nil {
		t.images[id] = nil
		t.miss("image", id, err)
		return nil, false
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.images[id] = nil
		t.miss("image", id, fmt.Errorf("decode %s: %w", p, err))
		return nil, false
	}
	t.images[id] = img
	return img, true
}

// Sound returns raw audio for id.
func (t *Table) Sound(id string) (Sound, bool) {
	if t == nil || id == "" {
		return Sound{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.manifest.Sounds[id]
	if !ok {
		t.miss("sound", id, fmt.Errorf("not in manifest"))
		return Sound{}, false
	}
	data, err := t.read(p)
	if err != nil {
		t.miss("sound", id, err)
		return Sound{}, false
	}
	return Sound{Data: data, Format: strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")}, true
}

// Has reports whether id is listed in the manifest.
func (t *Table) Has(id string) bool {
	if t == nil {
		return false
	}
	_, img := t.manifest.Images[id]
	_, snd := t.manifest.Sounds[id]
	return img || snd
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if filepath.IsAbs(p) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return path.Base(s)
	}
	return strings.TrimPrefix(s, "assets/")
}
