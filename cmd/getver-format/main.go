// Command getver-format prints the latest versions of Rust crates as Cargo
// manifest lines, using the getver crate version fetcher.
package main

import (
	"fmt"
	"os"

	"github.com/nightconcept/getver-format/internal/cli/format"
	"github.com/nightconcept/getver-format/internal/core/runner"
)

// version is the application version, set at build time.
var version = "dev" // Default to "dev" if not set by ldflags

func main() {
	app := format.NewApp(version, format.Deps{
		Runner:    runner.Exec{},
		LookupEnv: os.LookupEnv,
	})

	// Exit codes from cli.Exit are handled inside Run; anything left is a usage error.
	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: error: %v\n", format.AppName, err)
		os.Exit(2)
	}
}
