package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewGeneration(t *testing.T) {
	opts := Program{
		Parameters: Parameters{
			Platform:       "soc.repl",
			BiosBinary:     "bios.bin",
			FirmwareBinary: "firmware.bin",
			TapInterface:   "tap0",
		},
		Flags: Flags{GdbPort: DefaultGdbPort},
	}

	gen := NewGeneration(opts)
	assert.Equal(t, "soc.repl", gen.PlatformFile)
	assert.Equal(t, "bios.bin", gen.BiosBinary)
	assert.Equal(t, "firmware.bin", gen.FirmwareBinary)
	assert.True(t, gen.NetworkBridge)
	assert.Equal(t, "tap0", gen.TapInterface)
	assert.Equal(t, DefaultGdbPort, gen.GdbPort)
}

func TestNewGenerationDefaults(t *testing.T) {
	gen := NewGeneration(Program{Parameters: Parameters{Platform: "-"}})
	assert.Equal(t, DefaultPlatformFile, gen.PlatformFile)
	assert.False(t, gen.NetworkBridge)
	assert.Equal(t, 0, gen.GdbPort)
}
