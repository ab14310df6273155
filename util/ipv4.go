package scoputil

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// An IPv4 address held as four octets in network byte order. The zero
// value is 0.0.0.0.
type IPv4 [4]byte

// Parses a dotted-quad IPv4 address. The string must comprise exactly
// four dot-separated decimal octets in the 0-255 range.
func ParseIPv4(s string) (IPv4, error) {
	var addr IPv4
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return addr, errors.Errorf("provided string %s is not a valid IPv4 address", s)
	}
	for i, part := range parts {
		octet, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return addr, errors.Errorf("provided string %s is not a valid IPv4 address", s)
		}
		addr[i] = byte(octet)
	}
	return addr, nil
}

// Converts a net.IP to the IPv4 type. The second value is false when
// the argument does not represent an IPv4 address.
func FromNetIP(ip net.IP) (IPv4, bool) {
	var addr IPv4
	ip4 := ip.To4()
	if ip4 == nil {
		return addr, false
	}
	copy(addr[:], ip4)
	return addr, true
}

// Returns the address in the dotted-quad form.
func (addr IPv4) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", addr[0], addr[1], addr[2], addr[3])
}

// Packs the address into a big-endian 32-bit integer. It imposes the
// natural ordering of IPv4 addresses.
func (addr IPv4) ToUint32() uint32 {
	return uint32(addr[0])<<24 | uint32(addr[1])<<16 | uint32(addr[2])<<8 | uint32(addr[3])
}

// Returns the network address obtained by an octet-wise bitwise AND of
// the address and the mask.
func (addr IPv4) NetworkAddress(mask IPv4) IPv4 {
	var network IPv4
	for i := range addr {
		network[i] = addr[i] & mask[i]
	}
	return network
}

// Converts the address to the net.IP form for interoperability with
// the standard library.
func (addr IPv4) ToNetIP() net.IP {
	return net.IPv4(addr[0], addr[1], addr[2], addr[3])
}

// Interpreting the address as a subnet mask, returns its prefix length.
// The second value is false when the mask is not contiguous and thus
// has no prefix form.
func (addr IPv4) PrefixLength() (int, bool) {
	ones, bits := net.IPMask(addr[:]).Size()
	if ones == 0 && bits == 0 {
		return 0, false
	}
	return ones, true
}

// Compares two addresses by their 32-bit values. Returns a negative
// number when a orders before b, zero when they are equal and a
// positive number otherwise.
func CompareIPv4(a, b IPv4) int {
	switch {
	case a.ToUint32() < b.ToUint32():
		return -1
	case a.ToUint32() > b.ToUint32():
		return 1
	default:
		return 0
	}
}
