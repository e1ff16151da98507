// Package platform builds the platform model from parsed address map rows.
package platform

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/retroenv/litexrenode/internal/addrmap"
	"github.com/retroenv/litexrenode/internal/catalog"
	"github.com/retroenv/litexrenode/internal/detector"
	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// RegionAlignment is the size granularity of generated memory regions, the
// Renode RISC-V CPUs can not map smaller regions.
const RegionAlignment = 0x1000

// csrWordBytes is the address space that every CSR word occupies.
const csrWordBytes = 4

const (
	csrRegion  = "csr"
	romRegion  = "rom"
	ethphyBase = "ethphy"
)

// regions that are only used for parameter lookup and never mapped as memory
var reservedRegions = []string{catalog.Ethmac, csrRegion}

// Builder builds platform models.
type Builder struct {
	logger   *log.Logger
	detector *detector.Detector
}

// New creates a new platform model builder.
func New(logger *log.Logger) *Builder {
	return &Builder{
		logger:   logger,
		detector: detector.New(logger),
	}
}

// csrBase is a CSR base address row with everything attached to it.
type csrBase struct {
	name       string
	address    uint64
	peripheral *model.Peripheral // nil for peripherals without catalog entry
}

// Build creates the platform model for the rows. Regions and peripherals keep
// the order of their first appearance in the rows.
func (b *Builder) Build(rows []addrmap.Row) (*model.Model, error) {
	m := &model.Model{}

	if err := b.buildRegions(m, rows); err != nil {
		return nil, err
	}

	bases, err := b.buildPeripherals(m, rows)
	if err != nil {
		return nil, err
	}

	m.CPU = b.detector.DetectCPU(m.Constants)
	m.ClockFrequency = b.detector.ClockFrequency(m.Constants)
	m.CSRDataWidth = b.detector.CSRDataWidth(m.Constants)

	r := resolver{model: m, bases: bases}
	for _, p := range m.Peripherals {
		if err := r.resolveParams(p); err != nil {
			return nil, err
		}
		if err := checkPlacement(m, p); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (b *Builder) buildRegions(m *model.Model, rows []addrmap.Row) error {
	names := set.New[string]()

	for _, row := range rows {
		if row.Kind != addrmap.MemoryRegion {
			continue
		}
		if names.Contains(row.Name) {
			return &model.RegionError{Region: row.Name, Msg: fmt.Sprintf("defined again at line %d", row.Line)}
		}
		names.Add(row.Name)

		region := model.MemoryRegion{
			Name:    row.Name,
			Address: row.Address,
			Size:    row.Size,
			Type:    row.Type,
		}

		if region.Size > math.MaxUint64-region.Address {
			return &model.RegionError{
				Region: region.Name,
				Msg:    fmt.Sprintf("size %#x exceeds the address space at %#x", region.Size, region.Address),
			}
		}

		switch {
		case strings.Contains(row.Type, "linker"):
			b.logger.Debug("Skipping linker region", log.String("region", row.Name))
			m.Reserved = append(m.Reserved, region)

		case slices.Contains(reservedRegions, row.Name):
			b.logger.Debug("Skipping pre-defined memory region", log.String("region", row.Name))
			m.Reserved = append(m.Reserved, region)

		default:
			if region.Size%RegionAlignment != 0 {
				return &model.RegionError{
					Region: region.Name,
					Msg:    fmt.Sprintf("size %#x is not aligned to %#x", region.Size, RegionAlignment),
				}
			}
			m.Regions = append(m.Regions, region)
		}
	}

	return checkOverlaps(m.Regions)
}

func checkOverlaps(regions []model.MemoryRegion) error {
	sorted := slices.Clone(regions)
	slices.SortStableFunc(sorted, func(a, b model.MemoryRegion) int {
		switch {
		case a.Address < b.Address:
			return -1
		case a.Address > b.Address:
			return 1
		default:
			return 0
		}
	})

	for i := 1; i < len(sorted); i++ {
		previous, current := sorted[i-1], sorted[i]
		if previous.End() > current.Address {
			return &model.RegionError{
				Region: current.Name,
				Msg:    fmt.Sprintf("overlaps with region '%s'", previous.Name),
			}
		}
	}
	return nil
}

// buildPeripherals creates the peripherals for all CSR bases with a catalog
// entry and attaches the prefixed constants and registers to them.
func (b *Builder) buildPeripherals(m *model.Model, rows []addrmap.Row) (map[string]*csrBase, error) {
	bases := map[string]*csrBase{}
	var order []*csrBase

	for _, row := range rows {
		if row.Kind != addrmap.CSRBase {
			continue
		}
		if _, ok := bases[row.Name]; ok {
			return nil, &model.UnresolvedAddressError{
				Peripheral: row.Name,
				Parameter:  "address",
				Msg:        fmt.Sprintf("CSR base defined again at line %d", row.Line),
			}
		}

		base := &csrBase{name: row.Name, address: row.Address}
		bases[row.Name] = base
		order = append(order, base)

		entry, ok := catalog.Lookup(row.Name)
		if !ok {
			b.logger.Info("Skipping unsupported peripheral",
				log.String("name", row.Name),
				log.Hex("address", row.Address))
			m.Unsupported = append(m.Unsupported, row.Name)
			continue
		}

		base.peripheral = &model.Peripheral{
			Kind:    entry.Kind,
			Name:    row.Name,
			Address: row.Address,
			Params:  map[string]uint64{},
		}
		m.Peripherals = append(m.Peripherals, base.peripheral)
	}

	for _, row := range rows {
		switch row.Kind {
		case addrmap.Constant:
			base, local := owner(order, row.Name)
			switch {
			case base == nil:
				m.Constants = append(m.Constants, model.Constant{Name: row.Name, Value: row.Value})
			case base.peripheral != nil:
				base.peripheral.Constants = append(base.peripheral.Constants, model.Constant{Name: local, Value: row.Value})
			}

		case addrmap.CSRRegister:
			base, _ := owner(order, row.Name)
			if base == nil || base.peripheral == nil {
				continue
			}
			p := base.peripheral
			p.Registers = append(p.Registers, model.Register{
				Name:    row.Name,
				Address: row.Address,
				Size:    row.Size,
				Access:  row.Access,
			})
			if end := row.Address + row.Size*csrWordBytes; end > p.Address && end-p.Address > p.Size {
				p.Size = end - p.Address
			}
		}
	}

	return bases, nil
}

// owner returns the CSR base with the longest name that prefixes the given
// name followed by an underscore, and the name without that prefix.
func owner(bases []*csrBase, name string) (*csrBase, string) {
	var found *csrBase
	for _, base := range bases {
		prefix := base.name + "_"
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if found == nil || len(base.name) > len(found.name) {
			found = base
		}
	}
	if found == nil {
		return nil, name
	}
	return found, name[len(found.name)+1:]
}

// checkPlacement verifies that a peripheral is located in the CSR address
// space and not inside mapped memory.
func checkPlacement(m *model.Model, p *model.Peripheral) error {
	for _, r := range m.Regions {
		if r.Contains(p.Address) {
			return &model.UnresolvedAddressError{
				Peripheral: p.Name,
				Parameter:  "address",
				Msg:        fmt.Sprintf("%#x is inside memory region '%s'", p.Address, r.Name),
			}
		}
	}

	csr, ok := m.Region(csrRegion)
	if ok && !csr.Contains(p.Address) {
		return &model.UnresolvedAddressError{
			Peripheral: p.Name,
			Parameter:  "address",
			Msg:        fmt.Sprintf("%#x is outside of the CSR region", p.Address),
		}
	}
	return nil
}
