package transport

import (
	"fmt"
	"net"
)

// Interface is the validated NIC the Sender transmits on.
type Interface struct {
	Index  int
	Name   string
	HWAddr [6]byte
}

// ResolveInterface looks up name, confirms it is up and not loopback, and
// returns its index and hardware address — the information needed to
// build the raw socket's link-layer address and Ethernet source field.
// Adapted from the discovery scanner's interface enumeration, narrowed
// from "scan the whole subnet" to "validate the one configured NIC."
func ResolveInterface(name string) (*Interface, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("resolve interface %q: %w", name, err)
	}
	if iface.Flags&net.FlagUp == 0 {
		return nil, fmt.Errorf("interface %q is not up", name)
	}
	if iface.Flags&net.FlagLoopback != 0 {
		return nil, fmt.Errorf("interface %q is a loopback device", name)
	}
	if len(iface.HardwareAddr) != 6 {
		return nil, fmt.Errorf("interface %q has no 6-byte hardware address", name)
	}

	var hw [6]byte
	copy(hw[:], iface.HardwareAddr)

	return &Interface{Index: iface.Index, Name: iface.Name, HWAddr: hw}, nil
}
