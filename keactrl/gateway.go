package keactrl

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/dhcpops/scoperec/reconcile"
	"github.com/dhcpops/scoperec/scopecfg"
	scoputil "github.com/dhcpops/scoperec/util"
)

// Standard DHCPv4 option codes written by the gateway. All other
// option values on a subnet are left untouched.
const (
	optionCodeRouters           uint16 = 3
	optionCodeDomainNameServers uint16 = 6
)

// DHCPv4 option space of the managed options.
const optionSpaceDHCP4 = "dhcp4"

var _ reconcile.ScopeGateway = (*Gateway)(nil)

// Implements the reconciler's scope gateway on top of the Kea Control
// Agent. The local subnet id is derived deterministically from the
// scope identifier, so repeated runs address the same subnet.
type Gateway struct {
	client *Client
}

// Creates a gateway talking to the control agent at the specified URL.
func NewGateway(url string, timeout time.Duration) *Gateway {
	return &Gateway{
		client: NewClient(url, timeout),
	}
}

// Looks a scope up by its identifier. Returns nil without an error
// when the corresponding subnet is not configured.
func (g *Gateway) GetScope(scopeID scoputil.IPv4) (*reconcile.ScopeInfo, error) {
	subnet, err := g.getSubnet(scopeID)
	if err != nil {
		return nil, serverError("get-scope", err)
	}
	if subnet == nil {
		return nil, nil
	}
	info, err := subnetToScopeInfo(subnet, scopeID)
	if err != nil {
		return nil, serverError("get-scope", err)
	}
	return info, nil
}

// Creates the subnet corresponding to the validated scope, with its
// pool, mask and lease duration. A conflicting concurrent create is
// tolerated: the subsequent option write reconciles the rest.
func (g *Gateway) CreateScope(scope *scopecfg.ValidatedScope) error {
	subnet, err := declaredSubnet(scope)
	if err != nil {
		return serverError("create-scope", err)
	}
	response, err := g.client.Send(NewCommand(Subnet4Add, DHCPv4).WithArrayArgument("subnet4", subnet))
	if err != nil {
		return serverError("create-scope", err)
	}
	if response.Result == ResponseConflict {
		log.WithField("subnet", subnet.Subnet).Warn("Subnet already exists; treating the duplicate create as an update")
		return nil
	}
	if err := response.GetError(); err != nil {
		return serverError("create-scope", err)
	}
	return nil
}

// Updates the lease duration (valid-lifetime) of an existing subnet.
// Kea replaces the whole subnet on update, so the current subnet is
// read first and rewritten with the new lifetime only.
func (g *Gateway) UpdateLease(scopeID scoputil.IPv4, leaseDuration time.Duration) error {
	subnet, err := g.getSubnet(scopeID)
	if err != nil {
		return serverError("update-lease", err)
	}
	if subnet == nil {
		return serverError("update-lease", pkgerrors.Errorf("subnet for scope %s does not exist", scopeID))
	}
	lifetime := int64(leaseDuration / time.Second)
	subnet.ValidLifetime = &lifetime
	return g.updateSubnet("update-lease", subnet)
}

// Overwrites the router and DNS server options of an existing subnet,
// preserving all unrelated option values.
func (g *Gateway) SetOptions(scopeID scoputil.IPv4, router scoputil.IPv4, dnsServers []scoputil.IPv4) error {
	subnet, err := g.getSubnet(scopeID)
	if err != nil {
		return serverError("set-options", err)
	}
	if subnet == nil {
		return serverError("set-options", pkgerrors.Errorf("subnet for scope %s does not exist", scopeID))
	}

	var options []SingleOptionData
	for _, option := range subnet.OptionData {
		if option.Code == optionCodeRouters || option.Code == optionCodeDomainNameServers {
			continue
		}
		options = append(options, option)
	}
	options = append(options,
		SingleOptionData{
			Code:      optionCodeRouters,
			Name:      "routers",
			CSVFormat: true,
			Data:      router.String(),
			Space:     optionSpaceDHCP4,
		},
		SingleOptionData{
			Code:      optionCodeDomainNameServers,
			Name:      "domain-name-servers",
			CSVFormat: true,
			Data:      joinOptionAddresses(dnsServers),
			Space:     optionSpaceDHCP4,
		})
	subnet.OptionData = options
	return g.updateSubnet("set-options", subnet)
}

// Fetches the subnet addressed by the scope identifier. Returns nil
// without an error when the subnet is not configured.
func (g *Gateway) getSubnet(scopeID scoputil.IPv4) (*Subnet4, error) {
	command := NewCommand(Subnet4Get, DHCPv4).WithArgument("id", subnetID(scopeID))
	response, err := g.client.Send(command)
	if err != nil {
		return nil, err
	}
	if response.Result == ResponseEmpty {
		return nil, nil
	}
	if err := response.GetError(); err != nil {
		return nil, err
	}
	var list subnet4List
	if len(response.Arguments) > 0 {
		if err := json.Unmarshal(response.Arguments, &list); err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to parse the %s response arguments", Subnet4Get)
		}
	}
	if len(list.Subnet4) == 0 {
		return nil, nil
	}
	return &list.Subnet4[0], nil
}

// Sends a subnet4-update command rewriting the subnet.
func (g *Gateway) updateSubnet(operation string, subnet *Subnet4) error {
	response, err := g.client.Send(NewCommand(Subnet4Update, DHCPv4).WithArrayArgument("subnet4", subnet))
	if err != nil {
		return serverError(operation, err)
	}
	if err := response.GetError(); err != nil {
		return serverError(operation, err)
	}
	return nil
}

// Derives the deterministic local subnet id from a scope identifier.
func subnetID(scopeID scoputil.IPv4) int64 {
	return int64(scopeID.ToUint32())
}

// Builds the subnet structure declared by a validated scope. The
// option data is intentionally left out; options are written by
// SetOptions.
func declaredSubnet(scope *scopecfg.ValidatedScope) (*Subnet4, error) {
	length, ok := scope.SubnetMask().PrefixLength()
	if !ok {
		return nil, pkgerrors.Errorf("subnet mask %s is not contiguous and has no prefix form", scope.SubnetMask())
	}
	lifetime := int64(scope.LeaseDuration() / time.Second)
	return &Subnet4{
		ID:            subnetID(scope.ScopeID()),
		Subnet:        fmt.Sprintf("%s/%d", scope.ScopeID(), length),
		Pools:         []Pool{{Pool: fmt.Sprintf("%s-%s", scope.StartRange(), scope.EndRange())}},
		ValidLifetime: &lifetime,
	}, nil
}

// Converts a Kea subnet to the gateway-neutral scope state.
func subnetToScopeInfo(subnet *Subnet4, scopeID scoputil.IPv4) (*reconcile.ScopeInfo, error) {
	info := &reconcile.ScopeInfo{ScopeID: scopeID}

	_, network, err := net.ParseCIDR(subnet.Subnet)
	if err != nil {
		return nil, pkgerrors.Errorf("unable to parse the subnet prefix %s", subnet.Subnet)
	}
	if len(network.Mask) != net.IPv4len {
		return nil, pkgerrors.Errorf("subnet prefix %s is not an IPv4 prefix", subnet.Subnet)
	}
	copy(info.SubnetMask[:], network.Mask)

	if len(subnet.Pools) > 0 {
		lb, ub, err := scoputil.ParseIPRange(subnet.Pools[0].Pool)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "unable to parse the pool of subnet %s", subnet.Subnet)
		}
		info.StartRange = lb
		info.EndRange = ub
	}

	if subnet.ValidLifetime != nil {
		info.LeaseDuration = time.Duration(*subnet.ValidLifetime) * time.Second
	}

	for _, option := range subnet.OptionData {
		switch option.Code {
		case optionCodeRouters:
			router, err := scoputil.ParseIPv4(strings.TrimSpace(option.Data))
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "unable to parse the routers option of subnet %s", subnet.Subnet)
			}
			info.Router = router
		case optionCodeDomainNameServers:
			for _, value := range strings.Split(option.Data, ",") {
				server, err := scoputil.ParseIPv4(strings.TrimSpace(value))
				if err != nil {
					return nil, pkgerrors.Wrapf(err, "unable to parse the domain-name-servers option of subnet %s", subnet.Subnet)
				}
				info.DNSServers = append(info.DNSServers, server)
			}
		}
	}
	return info, nil
}

// Renders addresses in the comma separated form used by csv-format
// option data.
func joinOptionAddresses(addresses []scoputil.IPv4) string {
	rendered := make([]string, len(addresses))
	for i, address := range addresses {
		rendered[i] = address.String()
	}
	return strings.Join(rendered, ", ")
}

// Wraps a gateway failure into the reconciler's server error kind.
func serverError(operation string, err error) reconcile.ServerError {
	return reconcile.ServerError{
		Operation: operation,
		Message:   err.Error(),
	}
}
