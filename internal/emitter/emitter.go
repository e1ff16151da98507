// Package emitter renders the platform model into a Renode platform
// description and run script.
package emitter

import (
	"fmt"
	"strings"

	"github.com/retroenv/litexrenode/internal/addrmap"
	"github.com/retroenv/litexrenode/internal/catalog"
	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/litexrenode/internal/options"
)

// MissingOptionError is returned when a peripheral needs a generation option
// that was not supplied.
type MissingOptionError = catalog.MissingOptionError

const (
	flashBootConstant = "flash_boot_address"
	ramRegion         = "main_ram"
)

// Documents contains the generated output documents.
type Documents struct {
	Platform string // Renode platform description (.repl)
	Script   string // Renode run script (.resc)
}

// Generate renders both documents. Nothing is returned if any fragment fails.
func Generate(m *model.Model, opts options.Generation) (Documents, error) {
	platform, err := GeneratePlatform(m, opts)
	if err != nil {
		return Documents{}, err
	}

	script, err := GenerateScript(m, opts)
	if err != nil {
		return Documents{}, err
	}

	return Documents{
		Platform: platform,
		Script:   script,
	}, nil
}

// GeneratePlatform renders the platform description: memory regions, the CPU
// core and the peripherals in model order.
func GeneratePlatform(m *model.Model, opts options.Generation) (string, error) {
	var fragments []string

	for _, region := range m.Regions {
		fragments = append(fragments, catalog.RenderMemoryRegion(region))
	}

	_, hasTimer := m.Peripheral(catalog.CPU)
	cpu, err := catalog.RenderCPU(m.CPU, hasTimer)
	if err != nil {
		return "", fmt.Errorf("generating platform description: %w", err)
	}
	fragments = append(fragments, cpu)

	for _, p := range m.Peripherals {
		entry, _ := catalog.Lookup(p.Kind)
		fragment, err := entry.Platform(p, opts)
		if err != nil {
			return "", fmt.Errorf("generating platform description: rendering peripheral '%s': %w", p.Name, err)
		}
		fragments = append(fragments, fragment)
	}

	return strings.Join(fragments, "\n"), nil
}

// GenerateScript renders the run script: the preamble, the peripheral setup
// in model order, the network bridge and firmware options and the start
// command.
func GenerateScript(m *model.Model, opts options.Generation) (string, error) {
	script, err := generateScript(m, opts)
	if err != nil {
		return "", fmt.Errorf("generating run script: %w", err)
	}
	return script, nil
}

func generateScript(m *model.Model, opts options.Generation) (string, error) {
	fragments := []string{preamble(m, opts)}

	ethmac, hasEthmac := m.Peripheral(catalog.Ethmac)
	if opts.NetworkBridge && !hasEthmac {
		return "", &model.UnresolvedAddressError{
			Peripheral: catalog.Ethmac,
			Parameter:  "address",
			Msg:        "network bridging requires an ethmac peripheral",
		}
	}

	for _, p := range m.Peripherals {
		entry, _ := catalog.Lookup(p.Kind)
		if entry.Script == nil {
			continue
		}
		fragment, err := entry.Script(p, opts)
		if err != nil {
			return "", fmt.Errorf("rendering peripheral '%s': %w", p.Name, err)
		}
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
	}

	if opts.NetworkBridge {
		fragment, err := catalog.RenderNetworkBridge(ethmac.Name, opts)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, fragment)
	}

	if opts.FirmwareBinary != "" {
		fragment, err := firmware(m, opts)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, fragment)
	}

	fragments = append(fragments, "start\n")
	return strings.Join(fragments, "\n"), nil
}

func preamble(m *model.Model, opts options.Generation) string {
	platformFile := opts.PlatformFile
	if platformFile == "" {
		platformFile = options.DefaultPlatformFile
	}

	var sb strings.Builder
	sb.WriteString("using sysbus\n")
	fmt.Fprintf(&sb, "mach create \"litex-%s\"\n", m.CPU.Type)
	fmt.Fprintf(&sb, "machine LoadPlatformDescription @%s\n", platformFile)
	if opts.GdbPort > 0 {
		fmt.Fprintf(&sb, "machine StartGdbServer %d\n", opts.GdbPort)
	}
	return sb.String()
}

// firmware loads the firmware binary. If the SoC boots from flash, the image
// is prefixed by its length and CRC32 as the LiteX BIOS expects them.
func firmware(m *model.Model, opts options.Generation) (string, error) {
	var sb strings.Builder

	if value, ok := m.Constant(flashBootConstant); ok {
		address, err := addrmap.ParseNumber(value)
		if err != nil {
			return "", &model.UnresolvedAddressError{
				Peripheral: "firmware",
				Parameter:  flashBootConstant,
				Msg:        fmt.Sprintf("invalid value '%s'", value),
			}
		}
		fmt.Fprintf(&sb, "sysbus WriteDoubleWord %s %s\n", catalog.Hex(address), catalog.Hex(opts.FirmwareSize))
		fmt.Fprintf(&sb, "sysbus WriteDoubleWord %s %s\n", catalog.Hex(address+4), catalog.Hex(uint64(opts.FirmwareCRC32)))
		fmt.Fprintf(&sb, "sysbus LoadBinary @%s %s\n", opts.FirmwareBinary, catalog.Hex(address+8))
		return sb.String(), nil
	}

	ram, ok := m.Region(ramRegion)
	if !ok {
		return "", &model.UnresolvedAddressError{
			Peripheral: "firmware",
			Parameter:  "load address",
			Msg:        fmt.Sprintf("no %s constant or %s region", flashBootConstant, ramRegion),
		}
	}
	fmt.Fprintf(&sb, "sysbus LoadBinary @%s %s\n", opts.FirmwareBinary, catalog.Hex(ram.Address))
	return sb.String(), nil
}
