// Package verification verifies that the generated documents match the platform model.
package verification

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/retroenv/litexrenode/internal/catalog"
	"github.com/retroenv/litexrenode/internal/emitter"
	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/litexrenode/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// VerifyOutput checks that every region and peripheral of the model is defined
// exactly once in the platform description at the model address, that no
// unsupported peripheral is defined and that the optional run script
// fragments match the generation options.
func VerifyOutput(logger *log.Logger, m *model.Model, opts options.Generation, docs emitter.Documents) error {
	entries := definitions(docs.Platform)
	companions := map[string]struct{}{}
	var mismatches int

	for _, r := range m.Regions {
		blocks := entries[r.Name]
		if len(blocks) != 1 {
			mismatches++
			logger.Error("Memory region not defined exactly once",
				log.String("region", r.Name), log.Int("count", len(blocks)))
			continue
		}
		if !registeredAt(blocks[0], r.Address) ||
			!strings.Contains(blocks[0], "\n    size: "+catalog.Hex(r.Size)+"\n") {
			mismatches++
			logger.Error("Memory region address or size mismatch",
				log.String("region", r.Name),
				log.Hex("address", r.Address),
				log.Hex("size", r.Size))
		}
	}

	for _, p := range m.Peripherals {
		entry, _ := catalog.Lookup(p.Kind)
		for _, name := range entry.Companions {
			companions[name] = struct{}{}
		}

		blocks := entries[entry.Instance]
		if len(blocks) != 1 {
			mismatches++
			logger.Error("Peripheral not defined exactly once",
				log.String("peripheral", p.Name), log.Int("count", len(blocks)))
			continue
		}
		if !registeredAt(blocks[0], p.Address) {
			mismatches++
			logger.Error("Peripheral address mismatch",
				log.String("peripheral", p.Name), log.Hex("address", p.Address))
		}
	}

	for _, name := range m.Unsupported {
		if _, ok := companions[name]; ok {
			continue
		}
		if _, ok := entries[name]; ok {
			mismatches++
			logger.Error("Unsupported peripheral defined", log.String("peripheral", name))
		}
	}

	if docs.Script != "" {
		mismatches += verifyScript(logger, opts, docs.Script)
	}

	if mismatches == 0 {
		return nil
	}
	return fmt.Errorf("%d mismatches between platform model and generated documents", mismatches)
}

func verifyScript(logger *log.Logger, opts options.Generation, script string) int {
	var mismatches int
	check := func(expected, found bool, fragment string) {
		if expected == found {
			return
		}
		mismatches++
		logger.Error("Run script fragment mismatch",
			log.String("fragment", fragment),
			log.String("expected", strconv.FormatBool(expected)))
	}

	check(true, strings.HasPrefix(script, "using sysbus\n"), "preamble")
	check(true, strings.HasSuffix(script, "start\n"), "start")
	check(opts.NetworkBridge, strings.Contains(script, "connector Connect host.tap switch"), "network bridge")
	check(opts.FirmwareBinary != "", opts.FirmwareBinary != "" &&
		strings.Contains(script, "LoadBinary @"+opts.FirmwareBinary+" "), "firmware")
	return mismatches
}

// definitions maps the names of all top level platform description entries
// to their definition blocks. A block ends at an empty line or at the next
// top level entry.
func definitions(platform string) map[string][]string {
	entries := map[string][]string{}
	var name string
	var block strings.Builder

	flush := func() {
		if name != "" {
			entries[name] = append(entries[name], block.String())
		}
		name = ""
		block.Reset()
	}

	for _, line := range strings.Split(platform, "\n") {
		if line == "" {
			flush()
			continue
		}
		if line[0] != ' ' && line[0] != '}' {
			if entry, _, ok := strings.Cut(line, ":"); ok {
				flush()
				name = entry
			}
		}
		if name != "" {
			block.WriteString(line)
			block.WriteByte('\n')
		}
	}
	flush()
	return entries
}

// registeredAt reports whether the definition block registers its entry on the
// system bus at the given address.
func registeredAt(block string, address uint64) bool {
	fields := strings.FieldsFunc(block, func(r rune) bool {
		return unicode.IsSpace(r) || r == ';' || r == '{' || r == '}'
	})
	want := catalog.Hex(address)
	for i := 1; i < len(fields); i++ {
		if fields[i-1] == "sysbus" && fields[i] == want {
			return true
		}
	}
	return false
}
