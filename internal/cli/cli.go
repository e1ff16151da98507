// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/litexrenode/internal/config"
	"github.com/retroenv/litexrenode/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
// Flag defaults are taken from the environment.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := config.Defaults()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	if err := validateOptions(flags, opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: litexrenode [options] <csr.csv>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	if len(args) > 1 {
		arg := args[1]
		if arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after address map file, please pass the address map file as last argument", arg),
			}
		}
		return &UsageError{flags: flags, msg: "only one address map file can be processed"}
	}
	return nil
}

// validateOptions checks the combination of output options.
func validateOptions(flags *flag.FlagSet, opts options.Program) error {
	if opts.Platform == "" && opts.Script == "" {
		return &UsageError{flags: flags, msg: "no output requested, pass -repl and/or -resc"}
	}
	if opts.Script != "" && opts.Platform == "" {
		return &UsageError{flags: flags, msg: "the run script references the platform description, -resc requires -repl"}
	}
	if opts.GdbPort < 0 || opts.GdbPort > 65535 {
		return fmt.Errorf("invalid gdb port %d", opts.GdbPort)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Platform, "repl", opts.Platform, "name of the output platform description file, - for console")
	flags.StringVar(&opts.Script, "resc", opts.Script, "name of the output run script file, - for console")
	flags.StringVar(&opts.TapInterface, "configure-network", opts.TapInterface, "generate a virtual network and connect it to the given host tap interface")
	flags.StringVar(&opts.BiosBinary, "bios-binary", opts.BiosBinary, "path to the BIOS binary, required if the SoC has a cpu peripheral")
	flags.StringVar(&opts.FirmwareBinary, "firmware-binary", opts.FirmwareBinary, "path to the firmware binary to load into flash or main RAM")
	flags.IntVar(&opts.GdbPort, "gdb-port", opts.GdbPort, "port of the GDB server started by the run script, 0 to disable")
	flags.BoolVar(&opts.Verify, "verify", false, "verify that the generated documents cover the whole platform model")
	flags.BoolVar(&opts.Debug, "debug", opts.Debug, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
