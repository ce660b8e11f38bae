// Package reconcile turns getver's text output into found and missing crates.
package reconcile

import (
	"sort"
	"strings"

	"github.com/nightconcept/getver-format/internal/core/crate"
)

// missingMarker identifies getver's "the crate 'name' doesn't exist" lines.
const missingMarker = "doesn't exist"

// Result is the outcome of matching getver's output against the requested crates.
type Result struct {
	// Found holds crates with a version, in the order they were requested.
	// Names are spelled the way getver reported them. Crates getver reported
	// without being asked follow, in the order they appeared.
	Found []crate.Crate
	// NotFound is sorted and free of duplicates. It is nil when nothing was missing.
	NotFound []string
	// Unresolved lists requested names getver said nothing about, in request order.
	Unresolved []string
	// Skipped holds output lines that matched neither known shape.
	Skipped []string
}

// entry tracks what is known about one requested crate while lines are read.
type entry struct {
	name    string
	version string
	found   bool
	missing bool
}

// Reconcile matches getver's output, already free of escape sequences, against set.
// The set is only read; all results are built fresh.
func Reconcile(set *crate.InputSet, output string) Result {
	requested := make([]entry, set.Len())
	for i, name := range set.Names() {
		requested[i] = entry{name: name}
	}

	var extras []crate.Crate
	extraIndex := make(map[string]int)
	missing := make(map[string]string) // canonical name -> first spelling reported
	var res Result

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Contains(line, missingMarker) {
			name, ok := quotedName(line)
			if !ok {
				res.Skipped = append(res.Skipped, line)
				continue
			}
			key := crate.CanonicalName(name)
			if _, seen := missing[key]; !seen {
				missing[key] = name
			}
			if i, ok := set.Index(name); ok {
				requested[i].found = false
				requested[i].version = ""
				requested[i].missing = true
			}
			if j, ok := extraIndex[key]; ok {
				extras[j].Version = ""
			}
			continue
		}

		parts := strings.SplitN(line, ": ", 2)
		if len(parts) != 2 {
			res.Skipped = append(res.Skipped, line)
			continue
		}
		name := strings.TrimSpace(parts[0])
		version := strings.TrimSpace(parts[1])
		if name == "" || version == "" {
			res.Skipped = append(res.Skipped, line)
			continue
		}

		key := crate.CanonicalName(name)
		if i, ok := set.Index(name); ok {
			requested[i] = entry{name: name, version: version, found: true}
		} else if j, ok := extraIndex[key]; ok {
			extras[j] = crate.Crate{Name: name, Version: version}
		} else {
			extraIndex[key] = len(extras)
			extras = append(extras, crate.Crate{Name: name, Version: version})
		}
		// A later found line overrides an earlier missing one, whatever the spelling.
		delete(missing, key)
	}

	for _, e := range requested {
		switch {
		case e.found:
			res.Found = append(res.Found, crate.Crate{Name: e.name, Version: e.version})
		case !e.missing:
			res.Unresolved = append(res.Unresolved, e.name)
		}
	}
	for _, c := range extras {
		if c.Version != "" {
			res.Found = append(res.Found, c)
		}
	}

	for _, name := range missing {
		res.NotFound = append(res.NotFound, name)
	}
	sort.Strings(res.NotFound)
	return res
}

// quotedName returns the text between the first pair of single quotes in line.
func quotedName(line string) (string, bool) {
	start := strings.IndexByte(line, '\'')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '\'')
	if end < 0 {
		return "", false
	}
	name := line[start+1 : start+1+end]
	return name, name != ""
}
