// Package options contains the program options.
package options

// DefaultGdbPort is the port of the GDB server started by the run script.
const DefaultGdbPort = 10001

// DefaultPlatformFile is referenced by the run script if no platform
// description path is set.
const DefaultPlatformFile = "litex.repl"

// Parameters contains file path options.
type Parameters struct {
	Input          string // csr.csv file exported by LiteX
	Platform       string // output platform description, - for stdout
	Script         string // output run script, - for stdout
	BiosBinary     string
	FirmwareBinary string
	TapInterface   string // host tap interface to bridge the network to
}

// Flags contains behavior options.
type Flags struct {
	GdbPort int
	Verify  bool
	Debug   bool
	Quiet   bool
}

// Program options of the generator.
type Program struct {
	Parameters
	Flags
}

// Generation defines options that control the generated documents and that
// are not derived from the address map.
type Generation struct {
	PlatformFile string // path of the platform description loaded by the script

	BiosBinary string // required if the platform has a cpu peripheral

	FirmwareBinary string
	FirmwareSize   uint64
	FirmwareCRC32  uint32

	NetworkBridge bool
	TapInterface  string

	GdbPort int // 0 disables the GDB server
}

// NewGeneration returns the generation options for the given program options.
// Firmware size and checksum are set by the loader.
func NewGeneration(opts Program) Generation {
	platformFile := opts.Platform
	if platformFile == "" || platformFile == "-" {
		platformFile = DefaultPlatformFile
	}

	return Generation{
		PlatformFile:   platformFile,
		BiosBinary:     opts.BiosBinary,
		FirmwareBinary: opts.FirmwareBinary,
		NetworkBridge:  opts.TapInterface != "",
		TapInterface:   opts.TapInterface,
		GdbPort:        opts.GdbPort,
	}
}
