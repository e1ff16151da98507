package model

import "fmt"

// UnresolvedAddressError is returned when an address or parameter that a
// peripheral requires can not be determined from the address map.
type UnresolvedAddressError struct {
	Peripheral string
	Parameter  string
	Msg        string
}

func (e *UnresolvedAddressError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("unresolved %s of '%s': %s", e.Parameter, e.Peripheral, e.Msg)
	}
	return fmt.Sprintf("unresolved %s of '%s'", e.Parameter, e.Peripheral)
}

// RegionError is returned for memory regions that can not be mapped.
type RegionError struct {
	Region string
	Msg    string
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("memory region '%s': %s", e.Region, e.Msg)
}
