package platform

import (
	"fmt"

	"github.com/retroenv/litexrenode/internal/addrmap"
	"github.com/retroenv/litexrenode/internal/catalog"
	"github.com/retroenv/litexrenode/internal/model"
)

// resolver resolves the template parameters that a catalog entry requires.
type resolver struct {
	model *model.Model
	bases map[string]*csrBase
}

func (r resolver) resolveParams(p *model.Peripheral) error {
	entry, _ := catalog.Lookup(p.Kind)

	for _, name := range entry.Required {
		value, err := r.resolve(p, name)
		if err != nil {
			return err
		}
		p.Params[name] = value
	}

	for _, name := range entry.Optional {
		if value, err := r.resolve(p, name); err == nil {
			p.Params[name] = value
		}
	}
	return nil
}

func (r resolver) resolve(p *model.Peripheral, name string) (uint64, error) {
	switch name {
	case catalog.ParamFrequency:
		if r.model.ClockFrequency == 0 {
			return 0, unresolved(p, name, "no clock frequency exported")
		}
		return r.model.ClockFrequency, nil

	case catalog.ParamResetAddress:
		return r.resetAddress(p)

	case catalog.ParamBufferAddress, catalog.ParamBufferSize:
		region, ok := r.model.Region(p.Name)
		if !ok {
			return 0, unresolved(p, name, fmt.Sprintf("no '%s' memory region", p.Name))
		}
		if name == catalog.ParamBufferSize {
			return region.Size, nil
		}
		return region.Address, nil

	case catalog.ParamPhyAddress:
		base, ok := r.bases[ethphyBase]
		if !ok {
			return 0, unresolved(p, name, fmt.Sprintf("no '%s' CSR base", ethphyBase))
		}
		return base.address, nil

	case catalog.ParamFlashAddress:
		region, ok := r.model.Region(p.Name)
		if !ok {
			return 0, unresolved(p, name, fmt.Sprintf("no '%s' memory region", p.Name))
		}
		return region.Address, nil

	case catalog.ParamLedsCount, catalog.ParamSwitchesCount, catalog.ParamButtonsCount:
		value, ok := p.Constant(name)
		if !ok {
			return 0, unresolved(p, name, "constant not exported")
		}
		count, err := addrmap.ParseNumber(value)
		if err != nil {
			return 0, unresolved(p, name, fmt.Sprintf("invalid value '%s'", value))
		}
		return count, nil

	default:
		return 0, unresolved(p, name, "unknown parameter")
	}
}

// resetAddress returns the exported CPU reset address, falling back to the
// ROM base and then to the first mapped memory region.
func (r resolver) resetAddress(p *model.Peripheral) (uint64, error) {
	if value, ok := r.model.Constant("config_cpu_reset_address"); ok {
		address, err := addrmap.ParseNumber(value)
		if err != nil {
			return 0, unresolved(p, catalog.ParamResetAddress, fmt.Sprintf("invalid value '%s'", value))
		}
		return address, nil
	}

	if rom, ok := r.model.Region(romRegion); ok {
		return rom.Address, nil
	}
	if len(r.model.Regions) > 0 {
		return r.model.Regions[0].Address, nil
	}
	return 0, unresolved(p, catalog.ParamResetAddress, "no ROM or memory region to boot from")
}

func unresolved(p *model.Peripheral, param, msg string) error {
	return &model.UnresolvedAddressError{Peripheral: p.Name, Parameter: param, Msg: msg}
}
