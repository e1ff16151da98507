// Package catalog contains the fixed set of LiteX peripherals that can be
// rendered into a Renode platform description and run script.
package catalog

import (
	"fmt"

	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/litexrenode/internal/options"
)

// Supported peripheral kinds, named like the LiteX CSR base.
const (
	UART     = "uart"
	Timer0   = "timer0"
	Ethmac   = "ethmac"
	CAS      = "cas"
	CPU      = "cpu"
	SPIFlash = "spiflash"
)

// Template parameters resolved by the platform model builder.
const (
	ParamFrequency     = "frequency"
	ParamResetAddress  = "reset_address"
	ParamBufferAddress = "buffer_address"
	ParamBufferSize    = "buffer_size"
	ParamPhyAddress    = "phy_address"
	ParamLedsCount     = "leds_count"
	ParamSwitchesCount = "switches_count"
	ParamButtonsCount  = "buttons_count"
	ParamFlashAddress  = "flash_address"
)

// Renderer renders a fragment of an output document for a peripheral.
type Renderer func(p *model.Peripheral, opts options.Generation) (string, error)

// Entry describes how a peripheral kind is rendered.
type Entry struct {
	Kind     string
	Instance string // name of the main entry in the platform description

	// Companions are additional platform description entries that the
	// fragment defines, they can share the name of an unsupported CSR base.
	Companions []string

	Required []string // parameters that have to be resolved
	Optional []string // parameters that are rendered if resolved
	Consumed []string // constants that are not rendered as properties

	Platform Renderer
	Script   Renderer // nil if the kind has no run script fragment
}

var casCounts = []string{ParamLedsCount, ParamSwitchesCount, ParamButtonsCount}

var entries = map[string]Entry{
	UART: {
		Kind:     UART,
		Instance: UART,
		Platform: renderUART,
		Script:   scriptUART,
	},
	Timer0: {
		Kind:     Timer0,
		Instance: Timer0,
		Optional: []string{ParamFrequency},
		Platform: renderTimer,
	},
	Ethmac: {
		Kind:       Ethmac,
		Instance:   Ethmac,
		Companions: []string{ethphyName},
		Required:   []string{ParamBufferAddress, ParamBufferSize, ParamPhyAddress},
		Platform:   renderEthmac,
	},
	CAS: {
		Kind:     CAS,
		Instance: CAS,
		Required: casCounts,
		Consumed: casCounts,
		Platform: renderCAS,
	},
	CPU: {
		Kind:     CPU,
		Instance: cpuTimerName,
		Required: []string{ParamResetAddress},
		Optional: []string{ParamFrequency},
		Platform: renderCPUTimer,
		Script:   scriptCPU,
	},
	SPIFlash: {
		Kind:       SPIFlash,
		Instance:   spiName,
		Companions: []string{flashChipName},
		Required:   []string{ParamFlashAddress},
		Platform:   renderSPIFlash,
	},
}

// kinds lists the supported kinds in a fixed order.
var kinds = []string{UART, Timer0, Ethmac, CAS, CPU, SPIFlash}

// Lookup returns the catalog entry for a peripheral name. Peripherals that
// are not supported return false.
func Lookup(name string) (Entry, bool) {
	e, ok := entries[name]
	return e, ok
}

// Kinds returns all supported peripheral kinds.
func Kinds() []string {
	return append([]string(nil), kinds...)
}

// MissingOptionError is returned when a template needs a generation option
// that was not supplied.
type MissingOptionError struct {
	Peripheral string
	Option     string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("peripheral '%s' requires option '%s'", e.Peripheral, e.Option)
}

// UnsupportedCPUError is returned for a CPU type that has no Renode model.
type UnsupportedCPUError struct {
	Type string
}

func (e *UnsupportedCPUError) Error() string {
	return fmt.Sprintf("unsupported cpu type '%s'", e.Type)
}
