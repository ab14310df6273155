package loader

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/dhcpops/scoperec/scopecfg"
	scoputil "github.com/dhcpops/scoperec/util"
)

// A DNS server list that accepts both a single semicolon-delimited
// string and a native YAML sequence.
type dnsServerList []string

// Implements the yaml.v2 custom unmarshalling contract.
func (l *dnsServerList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	*l = []string{single}
	return nil
}

// A scope declaration in its YAML file form.
type yamlDeclaration struct {
	Name          string        `yaml:"name"`
	StartRange    string        `yaml:"startRange"`
	EndRange      string        `yaml:"endRange"`
	Pool          string        `yaml:"pool"`
	SubnetMask    string        `yaml:"subnetMask"`
	Router        string        `yaml:"router"`
	DNSServers    dnsServerList `yaml:"dnsServers"`
	LeaseDuration string        `yaml:"leaseDuration"`
}

// Reads scope declarations from a YAML file holding a list of
// declaration records. The pool shorthand follows the same convention
// as in the CSV loader.
func LoadYAML(path string) ([]scopecfg.ScopeDeclaration, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the declarations file '%s'", path)
	}

	var parsed []yamlDeclaration
	if err := yaml.Unmarshal(contents, &parsed); err != nil {
		return nil, errors.Wrapf(err, "failed to parse the declarations file '%s'", path)
	}

	var declarations []scopecfg.ScopeDeclaration
	for i, record := range parsed {
		decl := scopecfg.ScopeDeclaration{
			Name:          record.Name,
			StartRange:    record.StartRange,
			EndRange:      record.EndRange,
			SubnetMask:    record.SubnetMask,
			Router:        record.Router,
			DNSServers:    record.DNSServers,
			LeaseDuration: record.LeaseDuration,
		}
		if record.Pool != "" && decl.StartRange == "" && decl.EndRange == "" {
			lb, ub, err := scoputil.ParseIPRange(record.Pool)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid pool in declaration %d of '%s'", i+1, path)
			}
			decl.StartRange = lb.String()
			decl.EndRange = ub.String()
		}
		declarations = append(declarations, decl)
	}
	return declarations, nil
}
