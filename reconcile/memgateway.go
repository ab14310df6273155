package reconcile

import (
	"sort"
	"time"

	"github.com/dhcpops/scoperec/scopecfg"
	scoputil "github.com/dhcpops/scoperec/util"
)

var _ ScopeGateway = (*MemoryGateway)(nil)

// An in-memory gateway implementation. It backs the unit tests and the
// CLI's offline what-if mode, where a run can be exercised end to end
// without a reachable DHCP server. It is meant for a single sequential
// reconciliation run and performs no locking.
type MemoryGateway struct {
	scopes map[scoputil.IPv4]*ScopeInfo
}

// Creates a new gateway holding no scopes.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		scopes: make(map[scoputil.IPv4]*ScopeInfo),
	}
}

// Looks a scope up by its identifier. Returns nil without an error
// when the scope does not exist.
func (g *MemoryGateway) GetScope(scopeID scoputil.IPv4) (*ScopeInfo, error) {
	info, ok := g.scopes[scopeID]
	if !ok {
		return nil, nil
	}
	return copyScopeInfo(info), nil
}

// Creates a scope with the validated pool, mask and lease duration.
// A duplicate create is treated as an update of the pool and lease,
// mirroring how a racing create should be tolerated.
func (g *MemoryGateway) CreateScope(scope *scopecfg.ValidatedScope) error {
	info, ok := g.scopes[scope.ScopeID()]
	if !ok {
		info = &ScopeInfo{ScopeID: scope.ScopeID()}
		g.scopes[scope.ScopeID()] = info
	}
	info.StartRange = scope.StartRange()
	info.EndRange = scope.EndRange()
	info.SubnetMask = scope.SubnetMask()
	info.LeaseDuration = scope.LeaseDuration()
	return nil
}

// Updates the lease duration of an existing scope.
func (g *MemoryGateway) UpdateLease(scopeID scoputil.IPv4, leaseDuration time.Duration) error {
	info, ok := g.scopes[scopeID]
	if !ok {
		return ServerError{Operation: "update-lease", Message: "scope " + scopeID.String() + " does not exist"}
	}
	info.LeaseDuration = leaseDuration
	return nil
}

// Overwrites the router and DNS server options of an existing scope.
func (g *MemoryGateway) SetOptions(scopeID scoputil.IPv4, router scoputil.IPv4, dnsServers []scoputil.IPv4) error {
	info, ok := g.scopes[scopeID]
	if !ok {
		return ServerError{Operation: "set-options", Message: "scope " + scopeID.String() + " does not exist"}
	}
	info.Router = router
	info.DNSServers = make([]scoputil.IPv4, len(dnsServers))
	copy(info.DNSServers, dnsServers)
	return nil
}

// Returns copies of all held scopes ordered by their identifiers.
func (g *MemoryGateway) Scopes() []ScopeInfo {
	scopes := make([]ScopeInfo, 0, len(g.scopes))
	for _, info := range g.scopes {
		scopes = append(scopes, *copyScopeInfo(info))
	}
	sort.Slice(scopes, func(i, j int) bool {
		return scoputil.CompareIPv4(scopes[i].ScopeID, scopes[j].ScopeID) < 0
	})
	return scopes
}

// Returns a deep copy so that callers cannot mutate the held state.
func copyScopeInfo(info *ScopeInfo) *ScopeInfo {
	copied := *info
	copied.DNSServers = make([]scoputil.IPv4, len(info.DNSServers))
	copy(copied.DNSServers, info.DNSServers)
	return &copied
}
