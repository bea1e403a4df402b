package registry

import (
	"fmt"
	"strings"
)

// ManifestFile is the name of the manifest blob on the registry branch.
const ManifestFile = "manifest"

// ParseManifest parses manifest content: one "name url" line per
// dependency, insertion order preserved.
func ParseManifest(data string) ([]Dependency, error) {
	var deps []Dependency
	seen := make(map[string]bool)
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, url, ok := strings.Cut(line, " ")
		if !ok || name == "" || url == "" {
			return nil, fmt.Errorf("manifest line %d: expected \"name url\", got %q", i+1, line)
		}
		if seen[name] {
			return nil, fmt.Errorf("manifest line %d: duplicate dependency %q", i+1, name)
		}
		seen[name] = true
		deps = append(deps, Dependency{Name: name, URL: url})
	}
	return deps, nil
}

// FormatManifest serializes dependencies in manifest order.
func FormatManifest(deps []Dependency) []byte {
	var b strings.Builder
	for _, d := range deps {
		b.WriteString(d.Name)
		b.WriteByte(' ')
		b.WriteString(d.URL)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
