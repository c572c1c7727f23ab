package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// OverrideDir is checked before the embedded tables, so tuning can be edited
// on disk without rebuilding.
var OverrideDir = "prefabs"

// Load returns the named table, preferring the copy under OverrideDir.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if i := strings.LastIndex(s, "prefabs/"); i >= 0 {
		return s[i+len("prefabs/"):]
	}
	return s
}

func diskPrefabPath(clean string) string {
	if OverrideDir == "" {
		return ""
	}
	return filepath.Join(OverrideDir, filepath.FromSlash(clean))
}
