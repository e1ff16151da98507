// Package model contains the platform model built from a LiteX address map.
package model

// MemoryRegion is a named region of memory mapped on the system bus.
type MemoryRegion struct {
	Name    string
	Address uint64
	Size    uint64 // in bytes
	Type    string
}

// End returns the first address after the region.
func (r MemoryRegion) End() uint64 {
	return r.Address + r.Size
}

// Contains returns whether the address is located inside the region.
func (r MemoryRegion) Contains(address uint64) bool {
	return address >= r.Address && address < r.End()
}

// Constant is a named value from the address map. The name of a peripheral
// constant has the peripheral prefix removed.
type Constant struct {
	Name  string
	Value string
}

// Register is a CSR register of a peripheral.
type Register struct {
	Name    string
	Address uint64
	Size    uint64 // in CSR words
	Access  string
}

// Peripheral is a CSR mapped peripheral that has a catalog entry.
type Peripheral struct {
	Kind    string
	Name    string
	Address uint64
	Size    uint64 // span of the attached registers in bytes

	Constants []Constant
	Registers []Register
	Params    map[string]uint64 // template parameters resolved by the builder
}

// Constant returns the value of the peripheral constant with the given local name.
func (p *Peripheral) Constant(name string) (string, bool) {
	for _, c := range p.Constants {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Param returns a resolved template parameter.
func (p *Peripheral) Param(name string) (uint64, bool) {
	value, ok := p.Params[name]
	return value, ok
}

// CPU describes the detected CPU of the SoC.
type CPU struct {
	Type    string // lower case, e.g. vexriscv or picorv32
	Variant string // lower case, empty if not set
}

// Model is the platform model built from a parsed address map. It is not
// modified after the builder returns it.
type Model struct {
	Regions     []MemoryRegion // generated memory regions in input order
	Reserved    []MemoryRegion // regions used for parameter lookup only
	Peripherals []*Peripheral  // supported peripherals in input order
	Unsupported []string       // CSR bases without catalog entry
	Constants   []Constant     // global constants

	CPU            CPU
	CSRDataWidth   uint64
	ClockFrequency uint64 // 0 if not exported
}

// Region returns the generated or reserved region with the given name.
func (m *Model) Region(name string) (MemoryRegion, bool) {
	for _, r := range m.Regions {
		if r.Name == name {
			return r, true
		}
	}
	for _, r := range m.Reserved {
		if r.Name == name {
			return r, true
		}
	}
	return MemoryRegion{}, false
}

// Peripheral returns the peripheral with the given name.
func (m *Model) Peripheral(name string) (*Peripheral, bool) {
	for _, p := range m.Peripherals {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Constant returns the value of a global constant.
func (m *Model) Constant(name string) (string, bool) {
	for _, c := range m.Constants {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
