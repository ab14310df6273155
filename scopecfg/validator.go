package scopecfg

import (
	"fmt"
	"strings"
	"time"

	scoputil "github.com/dhcpops/scoperec/util"
)

// A scope declaration that passed all validation checks, normalized
// into typed values. It is the only form the reconciler accepts, which
// enforces validation before any mutation. Instances are created by
// Validate only.
type ValidatedScope struct {
	name          string
	startRange    scoputil.IPv4
	endRange      scoputil.IPv4
	subnetMask    scoputil.IPv4
	router        scoputil.IPv4
	dnsServers    []scoputil.IPv4
	leaseDuration time.Duration
	scopeID       scoputil.IPv4
}

// Returns the scope name.
func (s *ValidatedScope) Name() string {
	return s.name
}

// Returns the first address of the scope's pool.
func (s *ValidatedScope) StartRange() scoputil.IPv4 {
	return s.startRange
}

// Returns the last address of the scope's pool.
func (s *ValidatedScope) EndRange() scoputil.IPv4 {
	return s.endRange
}

// Returns the scope's subnet mask.
func (s *ValidatedScope) SubnetMask() scoputil.IPv4 {
	return s.subnetMask
}

// Returns the router advertised to the scope's clients.
func (s *ValidatedScope) Router() scoputil.IPv4 {
	return s.router
}

// Returns a copy of the DNS servers advertised to the scope's clients.
func (s *ValidatedScope) DNSServers() []scoputil.IPv4 {
	servers := make([]scoputil.IPv4, len(s.dnsServers))
	copy(servers, s.dnsServers)
	return servers
}

// Returns the lease duration.
func (s *ValidatedScope) LeaseDuration() time.Duration {
	return s.leaseDuration
}

// Returns the scope identifier, i.e., the network address derived from
// the pool's start address and the subnet mask.
func (s *ValidatedScope) ScopeID() scoputil.IPv4 {
	return s.scopeID
}

// Checks a scope declaration for internal consistency and normalizes
// it. Either a fully normalized scope or the complete list of
// violations is returned; the checks never short-circuit on the first
// failure, so a caller can report all problems in one pass. The lease
// duration field may be omitted, in which case the policy default of
// eight days applies; a malformed value is rejected, never silently
// substituted.
func Validate(decl ScopeDeclaration) (*ValidatedScope, []ValidationError) {
	var violations []ValidationError
	fail := func(field, format string, args ...interface{}) {
		violations = append(violations, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	parseAddress := func(field, value string) (scoputil.IPv4, bool) {
		value = strings.TrimSpace(value)
		if value == "" {
			fail(field, "%s is required", field)
			return scoputil.IPv4{}, false
		}
		addr, err := scoputil.ParseIPv4(value)
		if err != nil {
			fail(field, "%s is not a valid IPv4 address", value)
			return scoputil.IPv4{}, false
		}
		return addr, true
	}

	if strings.TrimSpace(decl.Name) == "" {
		fail("Name", "scope name must not be empty")
	}

	start, startOK := parseAddress("StartRange", decl.StartRange)
	end, endOK := parseAddress("EndRange", decl.EndRange)
	mask, maskOK := parseAddress("SubnetMask", decl.SubnetMask)
	router, routerOK := parseAddress("Router", decl.Router)

	normalizedDNS := NormalizeDNSServers(decl.DNSServers)
	if len(normalizedDNS) == 0 {
		fail("DnsServer", "at least one DNS server is required")
	}
	dnsServers := make([]scoputil.IPv4, 0, len(normalizedDNS))
	for _, value := range normalizedDNS {
		addr, err := scoputil.ParseIPv4(value)
		if err != nil {
			fail("DnsServer", "%s is not a valid IPv4 address", value)
			continue
		}
		dnsServers = append(dnsServers, addr)
	}

	leaseDuration := scoputil.DefaultLeaseDuration
	if strings.TrimSpace(decl.LeaseDuration) != "" {
		duration, err := scoputil.ParseLeaseDuration(decl.LeaseDuration)
		if err != nil {
			fail("LeaseDuration", "%s is not a valid lease duration", strings.TrimSpace(decl.LeaseDuration))
		} else {
			leaseDuration = duration
		}
	}

	if startOK && endOK && scoputil.CompareIPv4(start, end) > 0 {
		fail("StartRange", "StartRange is greater than EndRange")
	}

	// Subnet membership: the pool bounds and the router must share the
	// network under the mask. DNS servers are deliberately exempt so
	// that external DNS providers can be declared.
	if maskOK {
		if startOK && endOK && start.NetworkAddress(mask) != end.NetworkAddress(mask) {
			fail("EndRange", "EndRange %s is not in the scope subnet", end)
		}
		if startOK && routerOK && start.NetworkAddress(mask) != router.NetworkAddress(mask) {
			fail("Router", "Router %s is not in the scope subnet", router)
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &ValidatedScope{
		name:          strings.TrimSpace(decl.Name),
		startRange:    start,
		endRange:      end,
		subnetMask:    mask,
		router:        router,
		dnsServers:    dnsServers,
		leaseDuration: leaseDuration,
		scopeID:       start.NetworkAddress(mask),
	}, nil
}
