// Package levels embeds the shipped level manifests.
package levels

import (
	"embed"
	"sort"
	"strings"
)

//go:embed *.yaml
var FS embed.FS

// Read returns an embedded level manifest by name; ".yaml" is optional.
func Read(name string) ([]byte, error) {
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	return FS.ReadFile(name)
}

// Names lists the embedded levels without extensions, sorted.
func Names() []string {
	entries, err := FS.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
