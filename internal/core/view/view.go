// Package view formats reconciled crates for printing.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nightconcept/getver-format/internal/core/crate"
)

// MissingHeader introduces the list of crates getver could not find.
const MissingHeader = "These were not found on crates.io:"

// Options controls how found crates are displayed. The two fields are independent.
type Options struct {
	ShowPatch          bool
	SortAlphabetically bool
}

// Render applies opts to found and returns the crates to display.
// The second return value is false when there is nothing to display.
// found is not modified.
func Render(found []crate.Crate, opts Options) ([]crate.Crate, bool) {
	if len(found) == 0 {
		return nil, false
	}

	out := make([]crate.Crate, len(found))
	for i, c := range found {
		if !opts.ShowPatch {
			c.Version = TruncatePatch(c.Version)
		}
		out[i] = c
	}
	if opts.SortAlphabetically {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out, true
}

// TruncatePatch keeps the first two dot-separated components of version,
// so "1.2.3" becomes "1.2". Shorter versions are returned unchanged.
func TruncatePatch(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 3 {
		return version
	}
	return parts[0] + "." + parts[1]
}

// ManifestLine formats c as a Cargo.toml dependency line: name = "version".
func ManifestLine(c crate.Crate) string {
	return fmt.Sprintf("%s = %q", c.Name, c.Version)
}

// ManifestLines joins the manifest line of every crate with newlines.
func ManifestLines(crates []crate.Crate) string {
	lines := make([]string, len(crates))
	for i, c := range crates {
		lines[i] = ManifestLine(c)
	}
	return strings.Join(lines, "\n")
}

// MissingReport lists names under header, one per line. header is normally
// MissingHeader, possibly styled for a terminal.
// It returns "" when names is empty.
func MissingReport(header string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	return header + "\n" + strings.Join(names, "\n")
}
