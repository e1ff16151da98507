package verification

import (
	"strings"
	"testing"

	"github.com/retroenv/litexrenode/internal/addrmap"
	"github.com/retroenv/litexrenode/internal/emitter"
	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/litexrenode/internal/options"
	"github.com/retroenv/litexrenode/internal/platform"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const socMap = `csr_base,cpu,0xe0000000,,
csr_base,ethphy,0xe0001000,,
csr_base,ethmac,0xe0001800,,
csr_base,uart,0xe0002800,,
csr_base,sdram,0xe0003000,,
constant,uart_interrupt,0,,
memory_region,rom,0x00000000,65536,cached
memory_region,main_ram,0x40000000,268435456,cached
memory_region,ethmac,0x80000000,8192,io
`

func generate(t *testing.T, opts options.Generation) (*model.Model, emitter.Documents) {
	t.Helper()
	logger := log.NewTestLogger(t)

	rows, err := addrmap.Parse(logger, strings.NewReader(socMap))
	assert.NoError(t, err)
	m, err := platform.New(logger).Build(rows)
	assert.NoError(t, err)
	docs, err := emitter.Generate(m, opts)
	assert.NoError(t, err)
	return m, docs
}

func TestVerifyOutput(t *testing.T) {
	opts := options.Generation{
		BiosBinary:     "bios.bin",
		FirmwareBinary: "firmware.bin",
		NetworkBridge:  true,
		TapInterface:   "tap0",
	}
	m, docs := generate(t, opts)
	logger := log.NewTestLogger(t)

	assert.NoError(t, VerifyOutput(logger, m, opts, docs))
}

func TestVerifyOutputMismatches(t *testing.T) {
	opts := options.Generation{BiosBinary: "bios.bin"}
	m, docs := generate(t, opts)
	logger := log.NewTestLogger(t)

	tests := []struct {
		name   string
		modify func(docs emitter.Documents) emitter.Documents
		opts   options.Generation
	}{
		{
			name: "missing region",
			modify: func(docs emitter.Documents) emitter.Documents {
				docs.Platform = strings.Replace(docs.Platform, "main_ram:", "ram:", 1)
				return docs
			},
			opts: opts,
		},
		{
			name: "wrong region size",
			modify: func(docs emitter.Documents) emitter.Documents {
				docs.Platform = strings.Replace(docs.Platform, "size: 0x10000\n", "size: 0x8000\n", 1)
				return docs
			},
			opts: opts,
		},
		{
			name: "duplicate peripheral",
			modify: func(docs emitter.Documents) emitter.Documents {
				docs.Platform += "\nuart: UART.LiteX_UART @ { sysbus 0xe0002800 }\n"
				return docs
			},
			opts: opts,
		},
		{
			name: "peripheral at the address of another entry",
			modify: func(docs emitter.Documents) emitter.Documents {
				docs.Platform = strings.Replace(docs.Platform,
					"uart: UART.LiteX_UART @ { sysbus 0xe0002800 }", "uart: UART.LiteX_UART @ { sysbus 0xe0001800 }", 1)
				return docs
			},
			opts: opts,
		},
		{
			name: "region address prefix",
			modify: func(docs emitter.Documents) emitter.Documents {
				docs.Platform = strings.Replace(docs.Platform, "{ sysbus 0x40000000 }", "{ sysbus 0x400000000 }", 1)
				return docs
			},
			opts: opts,
		},
		{
			name: "unsupported peripheral",
			modify: func(docs emitter.Documents) emitter.Documents {
				docs.Platform += "\nsdram: Memory.MappedMemory @ { sysbus 0xe0003000 }\n"
				return docs
			},
			opts: opts,
		},
		{
			name:   "firmware option without fragment",
			modify: func(docs emitter.Documents) emitter.Documents { return docs },
			opts:   options.Generation{BiosBinary: "bios.bin", FirmwareBinary: "firmware.bin"},
		},
		{
			name:   "bridge option without fragment",
			modify: func(docs emitter.Documents) emitter.Documents { return docs },
			opts:   options.Generation{BiosBinary: "bios.bin", NetworkBridge: true},
		},
		{
			name: "missing start",
			modify: func(docs emitter.Documents) emitter.Documents {
				docs.Script = strings.TrimSuffix(docs.Script, "start\n")
				return docs
			},
			opts: opts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyOutput(logger, m, tt.opts, tt.modify(docs))
			assert.ErrorContains(t, err, "mismatches between platform model and generated documents")
		})
	}
}

func TestVerifyOutputPlatformOnly(t *testing.T) {
	opts := options.Generation{BiosBinary: "bios.bin", NetworkBridge: true, TapInterface: "tap0"}
	m, docs := generate(t, opts)
	logger := log.NewTestLogger(t)

	docs.Script = ""
	assert.NoError(t, VerifyOutput(logger, m, opts, docs))
}
