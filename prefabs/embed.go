package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// DiskRoot is searched before the embedded copies so edited prefabs win.
const DiskRoot = "prefabs"

// Load returns a spec file such as "stages.yaml".
func Load(name string) ([]byte, error) {
	data, _, err := read(specPath(name))
	return data, err
}

// LoadScript returns a tengo script such as "patterns.tengo".
func LoadScript(name string) ([]byte, error) {
	data, _, err := read(scriptPath(name))
	return data, err
}

// OnDisk reports whether name currently resolves to an edited copy.
func OnDisk(name string) bool {
	_, disk, err := read(specPath(name))
	return err == nil && disk
}

func read(rel string) ([]byte, bool, error) {
	if data, err := os.ReadFile(filepath.Join(DiskRoot, filepath.FromSlash(rel))); err == nil {
		return data, true, nil
	}
	data, err := embedded.ReadFile(rel)
	return data, false, err
}

func specPath(name string) string {
	s := path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(s, DiskRoot+"/")
}

// scriptPath maps "x.tengo", "scripts/x.tengo" and "prefabs/scripts/x.tengo"
// to the same embedded path.
func scriptPath(name string) string {
	s := specPath(name)
	return "scripts/" + strings.TrimPrefix(s, "scripts/")
}
