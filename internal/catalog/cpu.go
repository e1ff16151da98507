package catalog

import (
	"fmt"
	"strings"

	"github.com/retroenv/litexrenode/internal/model"
)

// RenderCPU renders the CPU core entry of the platform description.
// The time provider is set if the platform has a CPU timer peripheral.
func RenderCPU(cpu model.CPU, hasTimer bool) (string, error) {
	var sb strings.Builder

	switch cpu.Type {
	case "vexriscv":
		sb.WriteString("cpu: CPU.VexRiscv @ sysbus\n")
		if cpu.Variant == "linux" {
			fmt.Fprintf(&sb, "%scpuType: \"rv32ima\"\n", indent)
			fmt.Fprintf(&sb, "%sprivilegeArchitecture: PrivilegeArchitecture.Priv1_10\n", indent)
		} else {
			fmt.Fprintf(&sb, "%scpuType: \"rv32im\"\n", indent)
		}
		if hasTimer {
			fmt.Fprintf(&sb, "%stimeProvider: %s\n", indent, cpuTimerName)
		}

	case "picorv32":
		sb.WriteString("cpu: CPU.PicoRV32 @ sysbus\n")
		fmt.Fprintf(&sb, "%scpuType: \"rv32imc\"\n", indent)

	default:
		return "", &UnsupportedCPUError{Type: cpu.Type}
	}

	return sb.String(), nil
}
