// Package reconcile diffs validated scope declarations against the
// live state of a DHCP server and applies the changes needed to make
// the server match, honoring a dry-run mode. The server itself is
// reached through the ScopeGateway interface, keeping this package
// agnostic to the server's management protocol.
package reconcile

import (
	"fmt"
	"time"

	"github.com/dhcpops/scoperec/scopecfg"
	scoputil "github.com/dhcpops/scoperec/util"
)

// Current state of a scope on the DHCP server, as reported by a
// gateway.
type ScopeInfo struct {
	ScopeID       scoputil.IPv4
	StartRange    scoputil.IPv4
	EndRange      scoputil.IPv4
	SubnetMask    scoputil.IPv4
	Router        scoputil.IPv4
	DNSServers    []scoputil.IPv4
	LeaseDuration time.Duration
}

// Describes a failed gateway call. Operation names the gateway
// operation that failed.
type ServerError struct {
	Operation string
	Message   string
}

// Returns the error string.
func (e ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Abstract read and write access to the scopes held by a live DHCP
// server. Implementations adapt the server's native management
// protocol and are responsible for enforcing their own network
// timeouts; the reconciler treats any overrun as a regular failure.
type ScopeGateway interface {
	// Looks a scope up by its identifier. Absence of the scope is not
	// an error: a nil info with a nil error is returned.
	GetScope(scopeID scoputil.IPv4) (*ScopeInfo, error)

	// Creates a scope with the validated pool, mask and lease
	// duration. The reconciler checks existence first, but an adapter
	// should still treat a racing duplicate create as non-fatal if the
	// protocol allows it.
	CreateScope(scope *scopecfg.ValidatedScope) error

	// Updates the lease duration of an existing scope.
	UpdateLease(scopeID scoputil.IPv4, leaseDuration time.Duration) error

	// Overwrites exactly the router and DNS server options of a scope.
	// Other, unrelated option values must not be disturbed.
	SetOptions(scopeID scoputil.IPv4, router scoputil.IPv4, dnsServers []scoputil.IPv4) error
}
