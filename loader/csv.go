package loader

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/dhcpops/scoperec/scopecfg"
	scoputil "github.com/dhcpops/scoperec/util"
)

// Reads scope declarations from a CSV file with a header row. The
// recognized columns are Name, StartRange, EndRange, SubnetMask,
// Router, DnsServer, LeaseDuration and the optional Pool shorthand.
// Column names are matched case-insensitively and unknown columns are
// ignored. A Pool value, either a prefix (192.0.2.0/24) or an explicit
// range (192.0.2.1-192.0.2.10), replaces an empty StartRange/EndRange
// pair.
func LoadCSV(path string) ([]scopecfg.ScopeDeclaration, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open the declarations file '%s'", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse the declarations file '%s'", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("declarations file '%s' is missing the header row", path)
	}

	columns := make(map[string]int)
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cell := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var declarations []scopecfg.ScopeDeclaration
	for row, record := range records[1:] {
		decl := scopecfg.ScopeDeclaration{
			Name:          cell(record, "name"),
			StartRange:    cell(record, "startrange"),
			EndRange:      cell(record, "endrange"),
			SubnetMask:    cell(record, "subnetmask"),
			Router:        cell(record, "router"),
			LeaseDuration: cell(record, "leaseduration"),
		}
		if dns := cell(record, "dnsserver"); dns != "" {
			decl.DNSServers = []string{dns}
		}
		if pool := cell(record, "pool"); pool != "" && decl.StartRange == "" && decl.EndRange == "" {
			lb, ub, err := scoputil.ParseIPRange(pool)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid pool in row %d of '%s'", row+2, path)
			}
			decl.StartRange = lb.String()
			decl.EndRange = ub.String()
		}
		declarations = append(declarations, decl)
	}
	return declarations, nil
}
