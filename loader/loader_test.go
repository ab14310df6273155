package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Writes a declarations file into a test-scoped directory.
func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// Tests loading declarations from a CSV file.
func TestLoadCSV(t *testing.T) {
	path := writeTestFile(t, "scopes.csv", `Name,StartRange,EndRange,SubnetMask,Router,DnsServer,LeaseDuration
Dev,192.168.1.100,192.168.1.200,255.255.255.0,192.168.1.1,192.168.1.10,8.00:00:00
Office,10.0.150.100,10.0.150.200,255.255.255.0,10.0.150.1,10.0.150.11;10.0.150.12,
`)
	declarations, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, declarations, 2)

	require.Equal(t, "Dev", declarations[0].Name)
	require.Equal(t, "192.168.1.100", declarations[0].StartRange)
	require.Equal(t, "192.168.1.200", declarations[0].EndRange)
	require.Equal(t, "255.255.255.0", declarations[0].SubnetMask)
	require.Equal(t, "192.168.1.1", declarations[0].Router)
	require.Equal(t, []string{"192.168.1.10"}, declarations[0].DNSServers)
	require.Equal(t, "8.00:00:00", declarations[0].LeaseDuration)

	require.Equal(t, "Office", declarations[1].Name)
	require.Equal(t, []string{"10.0.150.11;10.0.150.12"}, declarations[1].DNSServers)
	require.Empty(t, declarations[1].LeaseDuration)
}

// Tests that the Pool shorthand column fills the range bounds.
func TestLoadCSVPoolShorthand(t *testing.T) {
	path := writeTestFile(t, "scopes.csv", `Name,Pool,SubnetMask,Router,DnsServer
Lab,192.0.2.0/24,255.255.255.0,192.0.2.1,192.0.2.10
`)
	declarations, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, declarations, 1)
	require.Equal(t, "192.0.2.0", declarations[0].StartRange)
	require.Equal(t, "192.0.2.255", declarations[0].EndRange)
}

// Tests that a malformed pool shorthand fails the load.
func TestLoadCSVInvalidPool(t *testing.T) {
	path := writeTestFile(t, "scopes.csv", `Name,Pool,SubnetMask,Router,DnsServer
Lab,notapool,255.255.255.0,192.0.2.1,192.0.2.10
`)
	_, err := LoadCSV(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 2")
}

// Tests loading declarations from a YAML file, with the DNS servers
// given both as a list and as a semicolon-delimited string.
func TestLoadYAML(t *testing.T) {
	path := writeTestFile(t, "scopes.yaml", `
- name: Dev
  startRange: 192.168.1.100
  endRange: 192.168.1.200
  subnetMask: 255.255.255.0
  router: 192.168.1.1
  dnsServers:
    - 192.168.1.10
    - 192.168.1.11
  leaseDuration: 192h
- name: Office
  pool: 10.0.150.100-10.0.150.200
  subnetMask: 255.255.255.0
  router: 10.0.150.1
  dnsServers: 10.0.150.11;10.0.150.12
`)
	declarations, err := LoadYAML(path)
	require.NoError(t, err)
	require.Len(t, declarations, 2)

	require.Equal(t, "Dev", declarations[0].Name)
	require.Equal(t, []string{"192.168.1.10", "192.168.1.11"}, declarations[0].DNSServers)
	require.Equal(t, "192h", declarations[0].LeaseDuration)

	require.Equal(t, "Office", declarations[1].Name)
	require.Equal(t, "10.0.150.100", declarations[1].StartRange)
	require.Equal(t, "10.0.150.200", declarations[1].EndRange)
	require.Equal(t, []string{"10.0.150.11;10.0.150.12"}, declarations[1].DNSServers)
}

// Tests that a missing declarations file is reported as an error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.csv"), "")
	require.Error(t, err)
}

// Tests that an unparsable YAML file is reported as an error.
func TestLoadYAMLMalformed(t *testing.T) {
	path := writeTestFile(t, "scopes.yaml", "{not yaml")
	_, err := LoadYAML(path)
	require.Error(t, err)
}

// Tests format selection by file extension and by explicit format.
func TestFormatByExtension(t *testing.T) {
	require.Equal(t, FormatYAML, FormatByExtension("scopes.yaml"))
	require.Equal(t, FormatYAML, FormatByExtension("scopes.YML"))
	require.Equal(t, FormatCSV, FormatByExtension("scopes.csv"))
	require.Equal(t, FormatCSV, FormatByExtension("scopes.txt"))
}

// Tests that an unsupported explicit format is rejected.
func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeTestFile(t, "scopes.csv", "Name\n")
	_, err := Load(path, "json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported declarations format")
}
