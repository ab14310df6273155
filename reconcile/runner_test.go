package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhcpops/scoperec/scopecfg"
)

// Tests a mixed batch: the report carries one outcome per declaration
// in input order and a failure in one scope does not prevent the
// processing of subsequent scopes.
func TestRunMixedBatch(t *testing.T) {
	invalid := devDeclaration()
	invalid.Name = "Broken"
	invalid.Router = "10.0.0.1"

	second := devDeclaration()
	second.Name = "Office"
	second.StartRange = "10.0.150.100"
	second.EndRange = "10.0.150.200"
	second.Router = "10.0.150.1"
	second.DNSServers = []string{"10.0.150.11;10.0.150.12"}

	gateway := NewMemoryGateway()
	report := Run(gateway, []scopecfg.ScopeDeclaration{devDeclaration(), invalid, second}, false)

	outcomes := report.Outcomes()
	require.Len(t, outcomes, 3)
	require.Equal(t, "Dev", outcomes[0].Name)
	require.Equal(t, StatusApplied, outcomes[0].Status)
	require.Equal(t, "Broken", outcomes[1].Name)
	require.Equal(t, StatusInvalid, outcomes[1].Status)
	require.Contains(t, outcomes[1].Details, "not in the scope subnet")
	require.Equal(t, "Office", outcomes[2].Name)
	require.Equal(t, StatusApplied, outcomes[2].Status)

	// The invalid scope was never applied.
	require.Len(t, gateway.Scopes(), 2)

	tally := report.Tally()
	require.Equal(t, 2, tally[StatusApplied])
	require.Equal(t, 1, tally[StatusInvalid])
}

// Tests that an invalid declaration bypasses the gateway entirely.
func TestRunInvalidBypassesGateway(t *testing.T) {
	counting := &countingGateway{inner: NewMemoryGateway()}
	invalid := devDeclaration()
	invalid.StartRange = "not-an-address"

	report := Run(counting, []scopecfg.ScopeDeclaration{invalid}, false)
	require.Len(t, report.Outcomes(), 1)
	require.Equal(t, StatusInvalid, report.Outcomes()[0].Status)
	require.Zero(t, counting.gets)
	require.Zero(t, counting.creates)
	require.Zero(t, counting.leases)
	require.Zero(t, counting.options)
}

// Tests the global dry-run switch: no mutating call is issued for the
// entire run and every structurally valid scope reports a non-error
// status.
func TestRunDryRun(t *testing.T) {
	counting := &countingGateway{inner: NewMemoryGateway()}
	second := devDeclaration()
	second.Name = "Office"
	second.StartRange = "10.0.150.100"
	second.EndRange = "10.0.150.200"
	second.Router = "10.0.150.1"
	second.DNSServers = []string{"10.0.150.11"}

	report := Run(counting, []scopecfg.ScopeDeclaration{devDeclaration(), second}, true)

	outcomes := report.Outcomes()
	require.Len(t, outcomes, 2)
	for _, outcome := range outcomes {
		require.Equal(t, StatusDryRun, outcome.Status)
	}
	require.Zero(t, counting.creates)
	require.Zero(t, counting.leases)
	require.Zero(t, counting.options)
}

// Tests that a gateway failure for one scope is isolated into that
// scope's outcome.
func TestRunIsolatesFailures(t *testing.T) {
	failing := &failingGateway{inner: NewMemoryGateway(), failCreate: true}

	second := devDeclaration()
	second.Name = "Office"

	report := Run(failing, []scopecfg.ScopeDeclaration{devDeclaration(), second}, false)
	outcomes := report.Outcomes()
	require.Len(t, outcomes, 2)
	require.Equal(t, StatusError, outcomes[0].Status)
	require.Equal(t, StatusError, outcomes[1].Status)
	require.Contains(t, outcomes[0].Details, "connection refused")
}

// Tests that an empty batch produces an empty report.
func TestRunEmptyBatch(t *testing.T) {
	report := Run(NewMemoryGateway(), nil, false)
	require.Empty(t, report.Outcomes())
	require.Empty(t, report.Tally())
}
