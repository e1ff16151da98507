package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/litexrenode/internal/model"
)

const indent = "    "

// Hex formats a value the way Renode expects addresses and sizes.
func Hex(value uint64) string {
	return fmt.Sprintf("0x%x", value)
}

func sysbusAddress(address uint64) string {
	return "sysbus " + Hex(address)
}

func sysbusRegion(address, size uint64, region string) string {
	return fmt.Sprintf("sysbus new Bus.BusMultiRegistration { address: %s; size: %s; region: \"%s\" }",
		Hex(address), Hex(size), region)
}

// RenderMemoryRegion renders the platform description entry of a memory region.
func RenderMemoryRegion(r model.MemoryRegion) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: Memory.MappedMemory @ { %s }\n", r.Name, sysbusAddress(r.Address))
	fmt.Fprintf(&sb, "%ssize: %s\n", indent, Hex(r.Size))
	return sb.String()
}

// writeHeader writes the first line of a peripheral entry registered at its CSR base.
func writeHeader(sb *strings.Builder, name, renodeType string, address uint64) {
	fmt.Fprintf(sb, "%s: %s @ { %s }\n", name, renodeType, sysbusAddress(address))
}

// writeConstants writes the peripheral constants as properties, the interrupt
// constant is rendered as connection to the CPU.
func writeConstants(sb *strings.Builder, p *model.Peripheral, consumed []string) {
	for _, c := range p.Constants {
		if c.Name == "interrupt" {
			fmt.Fprintf(sb, "%s-> cpu@%s\n", indent, c.Value)
			continue
		}
		if slices.Contains(consumed, c.Name) {
			continue
		}
		fmt.Fprintf(sb, "%s%s: %s\n", indent, c.Name, c.Value)
	}
}

func writeInterrupt(sb *strings.Builder, p *model.Peripheral) {
	if irq, ok := p.Constant("interrupt"); ok {
		fmt.Fprintf(sb, "%s-> cpu@%s\n", indent, irq)
	}
}
