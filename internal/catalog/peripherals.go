package catalog

import (
	"fmt"
	"strings"

	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/litexrenode/internal/options"
)

const (
	cpuTimerName  = "cpu_timer"
	spiName       = "spi"
	ethphyName    = "ethphy"
	flashChipName = "mt25q"

	// machine timer interrupt of the Renode VexRiscv model
	cpuTimerIRQ = 100

	// the exporter does not write the CSR size of the Ethernet PHY
	ethphySize = 0x800

	switchIRQOffset = 32
	buttonIRQOffset = 64
)

func renderUART(p *model.Peripheral, _ options.Generation) (string, error) {
	var sb strings.Builder
	writeHeader(&sb, p.Name, "UART.LiteX_UART", p.Address)
	writeConstants(&sb, p, nil)
	return sb.String(), nil
}

func scriptUART(p *model.Peripheral, _ options.Generation) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "showAnalyzer sysbus.%s\n", p.Name)
	fmt.Fprintf(&sb, "showAnalyzer sysbus.%s Antmicro.Renode.Analyzers.LoggingUartAnalyzer\n", p.Name)
	return sb.String(), nil
}

func renderTimer(p *model.Peripheral, _ options.Generation) (string, error) {
	var sb strings.Builder
	writeHeader(&sb, p.Name, "Timers.LiteX_Timer", p.Address)
	writeConstants(&sb, p, nil)
	if frequency, ok := p.Param(ParamFrequency); ok {
		fmt.Fprintf(&sb, "%sfrequency: %d\n", indent, frequency)
	}
	return sb.String(), nil
}

func renderCPUTimer(p *model.Peripheral, _ options.Generation) (string, error) {
	var sb strings.Builder
	writeHeader(&sb, cpuTimerName, "Timers.LiteX_CPUTimer", p.Address)
	writeConstants(&sb, p, nil)
	if frequency, ok := p.Param(ParamFrequency); ok {
		fmt.Fprintf(&sb, "%sfrequency: %d\n", indent, frequency)
	}
	fmt.Fprintf(&sb, "%sIRQ -> cpu@%d\n", indent, cpuTimerIRQ)
	return sb.String(), nil
}

// scriptCPU loads the BIOS and points the CPU to its reset address.
func scriptCPU(p *model.Peripheral, opts options.Generation) (string, error) {
	if opts.BiosBinary == "" {
		return "", &MissingOptionError{Peripheral: p.Name, Option: "bios binary"}
	}
	resetAddress, ok := p.Param(ParamResetAddress)
	if !ok {
		return "", &model.UnresolvedAddressError{Peripheral: p.Name, Parameter: ParamResetAddress}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "sysbus LoadBinary @%s %s\n", opts.BiosBinary, Hex(resetAddress))
	fmt.Fprintf(&sb, "cpu PC %s\n", Hex(resetAddress))
	return sb.String(), nil
}

func renderEthmac(p *model.Peripheral, _ options.Generation) (string, error) {
	bufferAddress, ok1 := p.Param(ParamBufferAddress)
	bufferSize, ok2 := p.Param(ParamBufferSize)
	phyAddress, ok3 := p.Param(ParamPhyAddress)
	if !ok1 || !ok2 || !ok3 {
		return "", &model.UnresolvedAddressError{Peripheral: p.Name, Parameter: "buffer or phy address"}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: Network.LiteX_Ethernet @ {\n", p.Name)
	fmt.Fprintf(&sb, "%s%s;\n", indent, sysbusAddress(p.Address))
	fmt.Fprintf(&sb, "%s%s;\n", indent, sysbusRegion(bufferAddress, bufferSize, "buffer"))
	fmt.Fprintf(&sb, "%s%s\n", indent, sysbusRegion(phyAddress, ethphySize, "phy"))
	sb.WriteString("}\n")
	writeInterrupt(&sb, p)

	fmt.Fprintf(&sb, "\n%s: Network.EthernetPhysicalLayer @ %s 0\n", ethphyName, p.Name)
	fmt.Fprintf(&sb, "%sVendorSpecific1: 0x4400 // MDIO status: 100Mbps + link up\n", indent)
	return sb.String(), nil
}

// RenderNetworkBridge connects the ethmac peripheral of the given name to a
// switch that is bridged to a host tap interface.
func RenderNetworkBridge(ethmac string, opts options.Generation) (string, error) {
	if opts.TapInterface == "" {
		return "", &MissingOptionError{Peripheral: ethmac, Option: "tap interface"}
	}

	var sb strings.Builder
	sb.WriteString("emulation CreateSwitch \"switch\"\n")
	fmt.Fprintf(&sb, "emulation CreateTap \"%s\" \"tap\"\n", opts.TapInterface)
	fmt.Fprintf(&sb, "connector Connect sysbus.%s switch\n", ethmac)
	sb.WriteString("connector Connect host.tap switch\n")
	return sb.String(), nil
}

func renderCAS(p *model.Peripheral, _ options.Generation) (string, error) {
	leds, _ := p.Param(ParamLedsCount)
	switches, _ := p.Param(ParamSwitchesCount)
	buttons, _ := p.Param(ParamButtonsCount)

	var sb strings.Builder
	writeHeader(&sb, p.Name, "GPIOPort.LiteX_ControlAndStatus", p.Address)
	writeConstants(&sb, p, casCounts)
	for i := range leds {
		fmt.Fprintf(&sb, "%s%d -> led%d@0\n", indent, i, i)
	}

	for i := range leds {
		fmt.Fprintf(&sb, "\nled%d: Miscellaneous.LED @ %s %d\n", i, p.Name, i)
	}
	for i := range switches {
		irq := i + switchIRQOffset
		fmt.Fprintf(&sb, "\nswitch%d: Miscellaneous.Button @ %s %d\n", i, p.Name, irq)
		fmt.Fprintf(&sb, "%s-> %s@%d\n", indent, p.Name, irq)
	}
	for i := range buttons {
		irq := i + buttonIRQOffset
		fmt.Fprintf(&sb, "\nbutton%d: Miscellaneous.Button @ %s %d\n", i, p.Name, irq)
		fmt.Fprintf(&sb, "%s-> %s@%d\n", indent, p.Name, irq)
	}
	return sb.String(), nil
}

func renderSPIFlash(p *model.Peripheral, _ options.Generation) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: SPI.LiteX_SPI_Flash @ {\n", spiName)
	fmt.Fprintf(&sb, "%s%s\n", indent, sysbusAddress(p.Address))
	sb.WriteString("}\n")
	writeInterrupt(&sb, p)

	fmt.Fprintf(&sb, "\n%s: SPI.Micron_MT25Q @ %s\n", flashChipName, spiName)
	fmt.Fprintf(&sb, "%sunderlyingMemory: %s\n", indent, p.Name)
	return sb.String(), nil
}
