// Package detector handles detection of the SoC configuration from the global
// constants of the address map.
package detector

import (
	"strings"

	"github.com/retroenv/litexrenode/internal/addrmap"
	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/retrogolib/log"
)

// DefaultCPU is assumed if the address map does not export a CPU type.
const DefaultCPU = "vexriscv"

const defaultCSRDataWidth = 8

// clock frequency constant names used by different LiteX versions
var clockFrequencyNames = []string{"config_clock_frequency", "system_clock_frequency"}

// Detector handles SoC configuration detection from global constants.
type Detector struct {
	logger *log.Logger
}

// New creates a new configuration detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// DetectCPU determines the CPU type and variant. The values are normalized to
// lower case as LiteX versions differ in the case they export.
func (d *Detector) DetectCPU(constants []model.Constant) model.CPU {
	var cpu model.CPU
	typ, ok := lookup(constants, "config_cpu_type")
	if ok && typ != "" && !strings.EqualFold(typ, "none") {
		cpu.Type = strings.ToLower(typ)
	} else {
		cpu.Type = DefaultCPU
		d.logger.Debug("No CPU type exported, using default", log.String("cpu", DefaultCPU))
	}

	if variant, ok := lookup(constants, "config_cpu_variant"); ok {
		cpu.Variant = strings.ToLower(variant)
	}

	d.logger.Debug("Detected CPU",
		log.String("type", cpu.Type),
		log.String("variant", cpu.Variant))
	return cpu
}

// ClockFrequency returns the system clock frequency, 0 if it is not exported
// or not a number.
func (d *Detector) ClockFrequency(constants []model.Constant) uint64 {
	for _, name := range clockFrequencyNames {
		value, ok := lookup(constants, name)
		if !ok {
			continue
		}
		frequency, err := addrmap.ParseNumber(value)
		if err != nil {
			d.logger.Warn("Ignoring invalid clock frequency", log.String("value", value))
			return 0
		}
		return frequency
	}
	return 0
}

// CSRDataWidth returns the CSR data width in bits.
func (d *Detector) CSRDataWidth(constants []model.Constant) uint64 {
	value, ok := lookup(constants, "config_csr_data_width")
	if !ok {
		return defaultCSRDataWidth
	}
	width, err := addrmap.ParseNumber(value)
	if err != nil || width == 0 {
		d.logger.Warn("Ignoring invalid CSR data width", log.String("value", value))
		return defaultCSRDataWidth
	}
	return width
}

func lookup(constants []model.Constant, name string) (string, bool) {
	for _, c := range constants {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
