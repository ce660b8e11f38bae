package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const DirName = "getver-format"
const FileName = "config.toml"

// Settings holds defaults read from the settings file. Every field mirrors a CLI flag.
type Settings struct {
	GetverPath      string `toml:"getver_path"`
	ShowPatch       bool   `toml:"show_patch"`
	SortAlphabet    bool   `toml:"sort_alphabet"`
	NoMissingCrates bool   `toml:"no_missing_crates"`
}

// DefaultPath returns <user config dir>/getver-format/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DirName, FileName), nil
}

// Load reads and decodes the settings file at path.
// A missing file is returned as an error satisfying os.IsNotExist; callers
// decide whether that matters. Keys that do not map onto Settings are rejected.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Settings
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return &s, nil
}
