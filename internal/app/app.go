// Package app provides the main application helper for the generator.
package app

import (
	"strings"

	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/litexrenode/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the platform model.
func PrintInfo(logger *log.Logger, opts options.Program, m *model.Model) {
	if opts.Quiet {
		return
	}

	names := make([]string, 0, len(m.Peripherals))
	for _, p := range m.Peripherals {
		names = append(names, p.Name)
	}

	logger.Info("Processing LiteX address map",
		log.String("file", opts.Input),
		log.String("cpu", m.CPU.Type),
		log.Int("regions", len(m.Regions)),
		log.String("peripherals", strings.Join(names, ",")),
	)

	if len(m.Unsupported) > 0 {
		logger.Warn("Some peripherals have no Renode model and are not generated",
			log.String("peripherals", strings.Join(m.Unsupported, ",")))
	}
}
