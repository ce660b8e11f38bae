package format

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// boolOptions maps every spelling of a switch to its flag name.
var boolOptions = map[string]string{
	"p": "show-patch", "show-patch": "show-patch",
	"n": "no-missing-crates", "no-missing-crates": "no-missing-crates",
	"a": "sort-alphabet", "sort-alphabet": "sort-alphabet",
	"verbose": "verbose",
}

// valueOptions maps every spelling of an option taking an argument to its flag name.
var valueOptions = map[string]string{
	"g": "getver-path", "getver-path": "getver-path",
	"c": "config", "config": "config",
}

// crateArgs returns the crate names from the positional arguments.
// The flag parser stops at the first crate name, so options written after it
// ("getver-format serde tokio -p") arrive here and are applied to c.
// done is true when a trailing -V or -h already produced the output.
func crateArgs(c *cli.Context) (crates []string, done bool, err error) {
	args := c.Args().Slice()
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(crates, args[i+1:]...), false, nil
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			crates = append(crates, arg)
			continue
		}

		// next consumes the argument following an option that needs a value.
		next := func(option string) (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("argument %s: expected one argument", option)
			}
			i++
			return args[i], nil
		}

		if strings.HasPrefix(arg, "--") {
			name, value, hasValue := strings.Cut(arg[2:], "=")
			switch {
			case name == "version":
				cli.ShowVersion(c)
				return nil, true, nil
			case name == "help":
				_ = cli.ShowAppHelp(c)
				return nil, true, nil
			case boolOptions[name] != "":
				if hasValue {
					return nil, false, fmt.Errorf("argument --%s: ignored explicit argument '%s'", name, value)
				}
				if err := c.Set(boolOptions[name], "true"); err != nil {
					return nil, false, err
				}
			case valueOptions[name] != "":
				if !hasValue {
					if value, err = next("--" + name); err != nil {
						return nil, false, err
					}
				}
				if err := c.Set(valueOptions[name], value); err != nil {
					return nil, false, err
				}
			default:
				return nil, false, fmt.Errorf("unrecognized arguments: %s", arg)
			}
			continue
		}

		letters := arg[1:]
		for j := 0; j < len(letters); j++ {
			letter := letters[j : j+1]
			switch {
			case letter == "V":
				cli.ShowVersion(c)
				return nil, true, nil
			case letter == "h":
				_ = cli.ShowAppHelp(c)
				return nil, true, nil
			case boolOptions[letter] != "":
				if err := c.Set(boolOptions[letter], "true"); err != nil {
					return nil, false, err
				}
			case valueOptions[letter] != "":
				// "-gPATH" carries the value inline; "-g PATH" takes the next argument.
				value := letters[j+1:]
				if value == "" {
					if value, err = next("-" + letter); err != nil {
						return nil, false, err
					}
				}
				if err := c.Set(valueOptions[letter], value); err != nil {
					return nil, false, err
				}
				j = len(letters)
			default:
				return nil, false, fmt.Errorf("unrecognized arguments: %s", arg)
			}
		}
	}
	return crates, false, nil
}
