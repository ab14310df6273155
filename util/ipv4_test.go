package scoputil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Tests that valid dotted-quad strings are parsed and re-rendered to
// the same four octets.
func TestParseIPv4(t *testing.T) {
	for _, s := range []string{"0.0.0.0", "192.0.2.1", "255.255.255.255", "10.0.150.11"} {
		addr, err := ParseIPv4(s)
		require.NoError(t, err)
		require.Equal(t, s, addr.String())
	}
}

// Tests that malformed addresses are rejected.
func TestParseIPv4Invalid(t *testing.T) {
	for _, s := range []string{"", "192.0.2", "192.0.2.1.5", "192.0.2.256", "192.0.2.-1", "a.b.c.d", "2001:db8::1", "192.0.2."} {
		_, err := ParseIPv4(s)
		require.Error(t, err, "address %s should not parse", s)
	}
}

// Tests big-endian packing of an address into a 32-bit integer.
func TestToUint32(t *testing.T) {
	addr, err := ParseIPv4("192.168.1.100")
	require.NoError(t, err)
	require.EqualValues(t, 0xc0a80164, addr.ToUint32())

	zero, err := ParseIPv4("0.0.0.0")
	require.NoError(t, err)
	require.Zero(t, zero.ToUint32())
}

// Tests deriving the network address by masking and that the operation
// is idempotent.
func TestNetworkAddress(t *testing.T) {
	addr, _ := ParseIPv4("192.168.1.100")
	mask, _ := ParseIPv4("255.255.255.0")

	network := addr.NetworkAddress(mask)
	require.Equal(t, "192.168.1.0", network.String())
	require.Equal(t, network, network.NetworkAddress(mask))

	// A mask that does not fall on an octet boundary.
	mask, _ = ParseIPv4("255.255.255.192")
	addr, _ = ParseIPv4("10.0.0.77")
	require.Equal(t, "10.0.0.64", addr.NetworkAddress(mask).String())
}

// Tests the three-way comparison of addresses.
func TestCompareIPv4(t *testing.T) {
	a, _ := ParseIPv4("192.168.1.100")
	b, _ := ParseIPv4("192.168.1.200")
	require.Negative(t, CompareIPv4(a, b))
	require.Positive(t, CompareIPv4(b, a))
	require.Zero(t, CompareIPv4(a, a))

	// The comparison must be numeric, not lexicographic.
	c, _ := ParseIPv4("192.168.1.9")
	d, _ := ParseIPv4("192.168.1.10")
	require.Negative(t, CompareIPv4(c, d))
}

// Tests deriving a prefix length from a subnet mask.
func TestPrefixLength(t *testing.T) {
	mask, _ := ParseIPv4("255.255.255.0")
	length, ok := mask.PrefixLength()
	require.True(t, ok)
	require.Equal(t, 24, length)

	mask, _ = ParseIPv4("255.255.255.255")
	length, ok = mask.PrefixLength()
	require.True(t, ok)
	require.Equal(t, 32, length)

	// A non-contiguous mask has no prefix form.
	mask, _ = ParseIPv4("255.0.255.0")
	_, ok = mask.PrefixLength()
	require.False(t, ok)
}

// Tests converting from the standard library address form.
func TestFromNetIP(t *testing.T) {
	addr, _ := ParseIPv4("192.0.2.1")
	roundTripped, ok := FromNetIP(addr.ToNetIP())
	require.True(t, ok)
	require.Equal(t, addr, roundTripped)
}
