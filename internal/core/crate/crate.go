package crate

import "strings"

// Crate is a single package name paired with the version the lookup tool reported.
type Crate struct {
	Name    string
	Version string
}

// InputSet is the ordered, de-duplicated list of crate names requested by the user.
// Names are stored in their normalized (hyphenated) form, which is what gets sent
// to the lookup tool.
type InputSet struct {
	names     []string
	index     map[string]int    // canonical name -> position in names
	requested map[string]string // normalized name -> spelling the user typed first
}

// CanonicalName returns the form used to compare crate names.
// crates.io treats '-' and '_' as equivalent, so underscores become hyphens.
func CanonicalName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// NewInputSet builds an InputSet from raw command-line arguments.
// Empty arguments are dropped; the first occurrence of a name wins.
func NewInputSet(args []string) *InputSet {
	s := &InputSet{
		index:     make(map[string]int),
		requested: make(map[string]string),
	}
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		normalized := CanonicalName(arg)
		if _, seen := s.index[normalized]; seen {
			continue
		}
		s.index[normalized] = len(s.names)
		s.names = append(s.names, normalized)
		s.requested[normalized] = arg
	}
	return s
}

// Names returns the normalized names in insertion order.
// The returned slice is a copy and may be modified by the caller.
func (s *InputSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len reports the number of unique names in the set.
func (s *InputSet) Len() int {
	return len(s.names)
}

// Index returns the position of name in the set, matching on the canonical form
// so that "foo_bar" and "foo-bar" resolve to the same entry.
func (s *InputSet) Index(name string) (int, bool) {
	i, ok := s.index[CanonicalName(name)]
	return i, ok
}

// Requested returns the spelling the user originally typed for name,
// or name itself when it is not part of the set.
func (s *InputSet) Requested(name string) string {
	if original, ok := s.requested[CanonicalName(name)]; ok {
		return original
	}
	return name
}
