package scoputil

import (
	"net"
	"strings"

	cidr "github.com/apparentlymart/go-cidr/cidr"
	"github.com/pkg/errors"
)

// Returns lower and upper bound addresses of an IPv4 address range.
// The range may follow two conventions, e.g., 192.0.2.1 - 192.0.2.10
// or 192.0.2.0/24.
func ParseIPRange(ipRange string) (IPv4, IPv4, error) {
	s := strings.Split(ipRange, "-")
	for i := 0; i < len(s); i++ {
		s[i] = strings.TrimSpace(s[i])
	}
	switch len(s) {
	// The two addresses with a hyphen were specified.
	case 2:
		lb, err := ParseIPv4(s[0])
		if err != nil {
			return IPv4{}, IPv4{}, errors.Errorf("unable to parse the IP address %s", s[0])
		}
		ub, err := ParseIPv4(s[1])
		if err != nil {
			return IPv4{}, IPv4{}, errors.Errorf("unable to parse the IP address %s", s[1])
		}
		return lb, ub, nil

	// There is one token only, so apparently this is a range provided
	// as a prefix.
	case 1:
		_, network, err := net.ParseCIDR(s[0])
		if err != nil {
			return IPv4{}, IPv4{}, errors.Errorf("unable to parse the pool prefix %s", s[0])
		}
		first, last := cidr.AddressRange(network)
		lb, lbOK := FromNetIP(first)
		ub, ubOK := FromNetIP(last)
		if !lbOK || !ubOK {
			return IPv4{}, IPv4{}, errors.Errorf("pool prefix %s is not an IPv4 prefix", s[0])
		}
		return lb, ub, nil

	default:
		return IPv4{}, IPv4{}, errors.Errorf("unable to parse the IP range %s", ipRange)
	}
}

// Calculates the number of addresses in the address range. Returns
// zero when the upper bound orders before the lower bound.
func RangeSize(lb, ub IPv4) uint64 {
	if CompareIPv4(lb, ub) > 0 {
		return 0
	}
	return uint64(ub.ToUint32()) - uint64(lb.ToUint32()) + 1
}
