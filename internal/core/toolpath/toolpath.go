// Package toolpath decides which getver executable to run.
package toolpath

import (
	"errors"
	"strings"
)

// EnvVar names the environment variable consulted when no explicit path is given.
const EnvVar = "GETVER_PATH"

// DefaultName is the executable looked up on PATH when nothing else is configured.
const DefaultName = "getver"

// ErrEmptyInvocation is returned by Split when there is nothing to run.
var ErrEmptyInvocation = errors.New("empty getver invocation")

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Command is an executable together with the fixed arguments that precede
// the crate names on every call.
type Command struct {
	Name string
	Args []string
}

// Resolve picks the getver invocation string by priority: the explicit flag value,
// then GETVER_PATH, then the value from the settings file, then DefaultName.
// Empty values at any tier are treated as unset.
func Resolve(flagValue string, lookupEnv LookupFunc, configured string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if lookupEnv != nil {
		if v, ok := lookupEnv(EnvVar); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return DefaultName
}

// Split breaks an invocation string on whitespace into a Command.
// "getver --no-color" becomes Name "getver" with Args ["--no-color"].
func Split(invocation string) (Command, error) {
	fields := strings.Fields(invocation)
	if len(fields) == 0 {
		return Command{}, ErrEmptyInvocation
	}
	return Command{Name: fields[0], Args: fields[1:]}, nil
}

// With returns the full argument list for a call: the fixed arguments followed by extra.
// The receiver's Args are never modified.
func (c Command) With(extra ...string) []string {
	args := make([]string, 0, len(c.Args)+len(extra))
	args = append(args, c.Args...)
	return append(args, extra...)
}

// String renders the command as it would be typed in a shell, without quoting.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
