package app

import (
	"testing"

	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/litexrenode/internal/options"
	"github.com/retroenv/retrogolib/log"
)

func TestPrintInfo(t *testing.T) {
	logger := log.NewTestLogger(t)
	m := &model.Model{
		Regions:     []model.MemoryRegion{{Name: "rom", Size: 0x8000}},
		Peripherals: []*model.Peripheral{{Name: "uart"}, {Name: "cpu"}},
		Unsupported: []string{"ddrphy"},
		CPU:         model.CPU{Type: "vexriscv"},
	}

	PrintInfo(logger, options.Program{Parameters: options.Parameters{Input: "csr.csv"}}, m)
	PrintInfo(logger, options.Program{Flags: options.Flags{Quiet: true}}, m)
}
