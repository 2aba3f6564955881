package levels

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/milk9111/houyi/entity"
	"gopkg.in/yaml.v3"
)

//go:embed layouts.yaml
var layoutsYAML []byte

// PlatformDef is one authored platform. Moving platforms set Speed. Arrow
// marks the platform the collectible sits above; without one it goes above
// the last platform.
type PlatformDef struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	StartX float64 `yaml:"start_x,omitempty"`
	EndX   float64 `yaml:"end_x,omitempty"`
	Speed  float64 `yaml:"speed,omitempty"`
	Decoy  bool    `yaml:"decoy,omitempty"`
	Arrow  bool    `yaml:"arrow,omitempty"`
}

func (d PlatformDef) Platform() entity.Platform {
	var p entity.Platform
	if d.Speed != 0 {
		p = entity.NewMovingPlatform(d.X, d.Y, d.W, d.H, d.StartX, d.EndX, d.Speed)
	} else {
		p = entity.NewStaticPlatform(d.X, d.Y, d.W, d.H)
	}
	p.Decoy = d.Decoy
	return p
}

// Catalog maps style tags to authored layouts.
type Catalog struct {
	Default []PlatformDef            `yaml:"default"`
	Styles  map[string][]PlatformDef `yaml:"styles"`
}

// LoadCatalog parses the embedded layouts.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(layoutsYAML)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("levels: unmarshal layouts: %w", err)
	}
	if len(c.Default) == 0 {
		return nil, fmt.Errorf("levels: layouts missing default")
	}
	return &c, nil
}

// Layout returns the authored definitions for style and whether the style
// was known.
func (c *Catalog) Layout(style string) ([]PlatformDef, bool) {
	if c == nil {
		return nil, false
	}
	if defs, ok := c.Styles[style]; ok {
		return defs, true
	}
	return c.Default, false
}

// StyleNames returns the known style tags sorted.
func (c *Catalog) StyleNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
