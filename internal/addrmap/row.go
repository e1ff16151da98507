// Package addrmap parses the csr.csv address map exported by LiteX.
package addrmap

// Kind is the leading token of an address map row.
type Kind string

const (
	CSRBase      Kind = "csr_base"
	CSRRegister  Kind = "csr_register"
	Constant     Kind = "constant"
	MemoryRegion Kind = "memory_region"
)

// Row is a single parsed line of the address map.
type Row struct {
	Kind    Kind
	Name    string
	Address uint64 // absolute byte address, unset for constants
	Size    uint64 // CSR words for registers, bytes for memory regions

	Access string // register access mode, e.g. rw or ro
	Type   string // memory region type, e.g. cached, io or linker
	Value  string // raw constant value

	Line int // 1-based line in the source text
}

// layout describes the accepted field count of a row kind, including the kind token.
type layout struct {
	minFields int
	maxFields int
}

const maxFields = 5

var layouts = map[Kind]layout{
	CSRBase:      {minFields: 3, maxFields: maxFields},
	CSRRegister:  {minFields: 4, maxFields: maxFields},
	Constant:     {minFields: 3, maxFields: maxFields},
	MemoryRegion: {minFields: 4, maxFields: maxFields},
}
