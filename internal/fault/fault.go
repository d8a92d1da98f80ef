// Package fault defines the fatal error raised when emulated hardware is
// driven outside its contract.
//
// Components on the hot path raise faults with Raise, which panics. The
// console entry points convert the panic back into an error with Recover so
// a host can report it and stop.
package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a fault.
type Kind int

const (
	// BusRange is an address outside a bus's decoded range.
	BusRange Kind = iota
	// IllegalOpcode is an opcode with no defined action.
	IllegalOpcode
	// ReadOnlyWrite is a write to cartridge ROM storage.
	ReadOnlyWrite
	// IllegalAccess is any other access a component refuses.
	IllegalAccess
)

func (k Kind) String() string {
	switch k {
	case BusRange:
		return "bus range"
	case IllegalOpcode:
		return "illegal opcode"
	case ReadOnlyWrite:
		return "read-only write"
	case IllegalAccess:
		return "illegal access"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}

// Error describes a fatal emulation fault.
type Error struct {
	Kind      Kind
	Component string
	Address   uint16
	Value     uint8
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at $%04X (value $%02X)", e.Component, e.Kind, e.Address, e.Value)
}

// Raise panics with a *Error.
func Raise(kind Kind, component string, address uint16, value uint8) {
	panic(&Error{Kind: kind, Component: component, Address: address, Value: value})
}

// Recover stores a recovered *Error into errp. It must be called directly by
// a deferred function. Panics that are not faults are re-raised.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if fe, ok := r.(*Error); ok {
		*errp = errors.WithStack(fe)
		return
	}
	panic(r)
}

// As reports whether err carries a fault and returns it.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
