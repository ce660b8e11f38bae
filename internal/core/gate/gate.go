// Package gate verifies that the getver executable is present and recent enough.
package gate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/nightconcept/getver-format/internal/core/ansi"
	"github.com/nightconcept/getver-format/internal/core/runner"
	"github.com/nightconcept/getver-format/internal/core/toolpath"
)

// ToolName is the name getver prints in front of its own version in --help output.
const ToolName = "getver"

// HelpFlag is appended to the invocation to make getver report its version.
const HelpFlag = "--help"

var (
	// ErrToolNotFound means getver could not be run or did not identify itself.
	ErrToolNotFound = errors.New("getver not found")
	// ErrVersionTooOld means getver reported a version below MinimumVersion.
	ErrVersionTooOld = errors.New("getver version too old")
)

// MinimumVersion is the oldest getver release whose output format is understood.
// Reported versions are compared with semver precedence rather than field by
// field, so 1.0.0 passes and pre-releases of 0.1.0 (such as 0.1.0-alpha) do not.
var MinimumVersion = semver.MustParse("0.1.0")

// semverRegex is the pattern published on semver.org.
// Groups: 1 core+prerelease, 2 major, 3 minor, 4 patch, 5 prerelease, 6 build metadata.
var semverRegex = regexp.MustCompile(`^((0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?)` +
	`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// Check runs cmd with HelpFlag, strips escape sequences from what it prints and
// validates the reported version. It returns the version (core and pre-release,
// without build metadata) on success.
func Check(ctx context.Context, r runner.Runner, stripper *ansi.Stripper, cmd toolpath.Command) (string, error) {
	res, err := r.Run(ctx, cmd.Name, cmd.With(HelpFlag)...)
	if err != nil {
		return "", fmt.Errorf("%w: could not run '%s': %v", ErrToolNotFound, cmd, err)
	}

	version, err := ParseHelp(stripper.Strip(res.Stdout))
	if err != nil {
		return "", fmt.Errorf("%w (ran '%s')", err, cmd)
	}
	return version, nil
}

// ParseHelp extracts and validates the version from getver's --help output,
// which must already be free of escape sequences.
func ParseHelp(help string) (string, error) {
	line, ok := versionLine(help)
	if !ok {
		return "", fmt.Errorf("%w: no line mentioning %s in its help output", ErrToolNotFound, ToolName)
	}

	fields := strings.Split(line, " ")
	if len(fields) < 2 {
		return "", fmt.Errorf("%w: no version after %q", ErrToolNotFound, line)
	}
	candidate := fields[1]

	m := semverRegex.FindStringSubmatch(candidate)
	if m == nil {
		return "", fmt.Errorf("%w: %q is not a semantic version", ErrToolNotFound, candidate)
	}

	major, errMajor := strconv.ParseUint(m[2], 10, 64)
	minor, errMinor := strconv.ParseUint(m[3], 10, 64)
	patch, errPatch := strconv.ParseUint(m[4], 10, 64)
	if err := errors.Join(errMajor, errMinor, errPatch); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrToolNotFound, candidate, err)
	}

	v := semver.New(major, minor, patch, m[5], m[6])
	if v.LessThan(MinimumVersion) {
		return "", fmt.Errorf("%w: found %s, need %s or newer", ErrVersionTooOld, m[1], MinimumVersion)
	}
	return m[1], nil
}

// versionLine returns the first trimmed line that mentions ToolName.
func versionLine(help string) (string, bool) {
	for _, line := range strings.Split(help, "\n") {
		if strings.Contains(line, ToolName) {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}
