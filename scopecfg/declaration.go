// Package scopecfg holds the declarative model of DHCPv4 scopes and
// its validation. A declaration arrives as a set of raw strings from
// an external source (CSV, YAML, inline) and is turned into a
// normalized, typed scope by the validator before any server state is
// touched.
package scopecfg

import (
	"strings"
)

// A single DHCPv4 scope declaration as supplied by a declaration
// source. The fields mirror the source record layout and are held in
// their raw string form until validated. Each DNSServers entry may
// itself hold several addresses separated by semicolons, e.g.,
// "10.0.150.11;10.0.150.12".
type ScopeDeclaration struct {
	Name          string
	StartRange    string
	EndRange      string
	SubnetMask    string
	Router        string
	DNSServers    []string
	LeaseDuration string
}

// Normalizes a DNS server list: each entry is split on semicolons,
// the resulting values are trimmed and empty ones dropped.
func NormalizeDNSServers(entries []string) []string {
	var normalized []string
	for _, entry := range entries {
		for _, value := range strings.Split(entry, ";") {
			value = strings.TrimSpace(value)
			if value != "" {
				normalized = append(normalized, value)
			}
		}
	}
	return normalized
}
