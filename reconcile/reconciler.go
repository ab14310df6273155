package reconcile

import (
	"fmt"
	"strings"

	"github.com/dhcpops/scoperec/scopecfg"
	scoputil "github.com/dhcpops/scoperec/util"
)

// Reconciles a single validated scope against the server state behind
// the gateway. When the scope is absent it is created with the
// validated pool, mask and lease; when present, the lease duration is
// refreshed and the router and DNS options are overwritten. With
// dryRun set, no mutating gateway call is issued and the outcome
// records the actions that would occur. A scope that already matches
// the declaration exactly yields StatusNoOpExists without any
// mutation.
func Apply(gateway ScopeGateway, scope *scopecfg.ValidatedScope, dryRun bool) ScopeOutcome {
	outcome := ScopeOutcome{
		Name:    scope.Name(),
		ScopeID: scope.ScopeID().String(),
	}

	existing, err := gateway.GetScope(scope.ScopeID())
	if err != nil {
		outcome.Status = StatusError
		outcome.Details = err.Error()
		return outcome
	}

	optionSummary := fmt.Sprintf("router %s, DNS servers %s", scope.Router(), joinAddresses(scope.DNSServers()))
	poolSummary := fmt.Sprintf("pool %s-%s (%d addresses)",
		scope.StartRange(), scope.EndRange(), scoputil.RangeSize(scope.StartRange(), scope.EndRange()))

	if existing == nil {
		if dryRun {
			outcome.Status = StatusDryRun
			outcome.Details = fmt.Sprintf("would create scope with %s, lease %s and set %s",
				poolSummary, scope.LeaseDuration(), optionSummary)
			return outcome
		}
		if err := gateway.CreateScope(scope); err != nil {
			outcome.Status = StatusError
			outcome.Details = err.Error()
			return outcome
		}
		if err := gateway.SetOptions(scope.ScopeID(), scope.Router(), scope.DNSServers()); err != nil {
			outcome.Status = StatusError
			outcome.Details = err.Error()
			return outcome
		}
		outcome.Status = StatusApplied
		outcome.Details = fmt.Sprintf("created scope with %s, lease %s, %s",
			poolSummary, scope.LeaseDuration(), optionSummary)
		return outcome
	}

	if matchesDeclaration(existing, scope) {
		if dryRun {
			outcome.Status = StatusDryRun
			outcome.Details = "no changes needed"
			return outcome
		}
		outcome.Status = StatusNoOpExists
		outcome.Details = "scope already matches the declaration"
		return outcome
	}

	if dryRun {
		outcome.Status = StatusDryRun
		outcome.Details = fmt.Sprintf("would update lease to %s and set %s", scope.LeaseDuration(), optionSummary)
		return outcome
	}

	// The scope already functionally exists, so a failed lease update
	// is a warning on the outcome, never an error.
	var warning string
	if err := gateway.UpdateLease(scope.ScopeID(), scope.LeaseDuration()); err != nil {
		warning = fmt.Sprintf("; warning: lease update failed: %s", err)
	}
	if err := gateway.SetOptions(scope.ScopeID(), scope.Router(), scope.DNSServers()); err != nil {
		outcome.Status = StatusError
		outcome.Details = err.Error()
		return outcome
	}
	outcome.Status = StatusApplied
	outcome.Details = fmt.Sprintf("updated existing scope: set %s%s", optionSummary, warning)
	return outcome
}

// Checks whether the scope reported by the server matches the
// normalized declaration exactly: same pool bounds, subnet mask,
// router and DNS server list. The lease duration does not take part in
// the comparison; the no-op decision is about the scope's pool and
// advertised options.
func matchesDeclaration(existing *ScopeInfo, scope *scopecfg.ValidatedScope) bool {
	if existing.StartRange != scope.StartRange() ||
		existing.EndRange != scope.EndRange() ||
		existing.SubnetMask != scope.SubnetMask() ||
		existing.Router != scope.Router() {
		return false
	}
	declared := scope.DNSServers()
	if len(existing.DNSServers) != len(declared) {
		return false
	}
	for i := range declared {
		if existing.DNSServers[i] != declared[i] {
			return false
		}
	}
	return true
}

// Renders a list of addresses as a comma separated string.
func joinAddresses(addresses []scoputil.IPv4) string {
	rendered := make([]string, len(addresses))
	for i, address := range addresses {
		rendered[i] = address.String()
	}
	return strings.Join(rendered, ", ")
}
