// Package keactrl adapts the reconciler's scope gateway contract to a
// Kea DHCPv4 server managed through its Control Agent. Scopes map to
// DHCPv4 subnets: the scope identifier and subnet mask form the subnet
// prefix, and the router and DNS server options live in the subnet's
// option-data list.
package keactrl

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Kea command name type.
type CommandName string

// Kea daemon name.
type DaemonName = string

// The DHCPv4 daemon is the only one this tool addresses.
const DHCPv4 DaemonName = "dhcp4"

// Commands issued by the gateway.
const (
	Subnet4Get    CommandName = "subnet4-get"
	Subnet4Add    CommandName = "subnet4-add"
	Subnet4Update CommandName = "subnet4-update"
)

// See "src/lib/cc/command_interpreter.h" in the Kea repository for details.
const (
	// Status code indicating a successful operation.
	ResponseSuccess = 0
	// Status code indicating a general failure.
	ResponseError = 1
	// Status code indicating that the specified command is not supported.
	ResponseCommandUnsupported = 2
	// Status code indicating that the specified command was completed
	// correctly, but failed to produce any results. For example, get
	// completed the search, but couldn't find the object it was looking for.
	ResponseEmpty = 3
	// Status code indicating that the command was unsuccessful due to a
	// conflict between the command arguments and the server state.
	ResponseConflict = 4
)

// Represents a command sent to Kea including command name, daemons
// list (service list in Kea terms) and arguments.
type Command struct {
	Command   CommandName  `json:"command"`
	Daemons   []DaemonName `json:"service,omitempty"`
	Arguments interface{}  `json:"arguments,omitempty"`
}

// Creates a new command addressed to the specified daemons, with no
// arguments.
func NewCommand(command CommandName, daemons ...DaemonName) *Command {
	return &Command{
		Command: command,
		Daemons: daemons,
	}
}

// Sets a single argument on a command copy.
func (c Command) WithArgument(name string, value interface{}) *Command {
	arguments, ok := c.Arguments.(map[string]interface{})
	if !ok {
		arguments = make(map[string]interface{})
	}
	arguments[name] = value
	c.Arguments = arguments
	return &c
}

// Sets an array of values under the specified argument name on a
// command copy.
func (c Command) WithArrayArgument(name string, values ...interface{}) *Command {
	return c.WithArgument(name, values)
}

// Returns the JSON representation of the command, as accepted by the
// Kea Control Agent.
func (c Command) Marshal() string {
	marshalled, _ := json.Marshal(c)
	return string(marshalled)
}

// Represents an unmarshalled response from a Kea daemon.
type Response struct {
	Result    int             `json:"result"`
	Text      string          `json:"text"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Represents an error returned by Kea.
type KeaError struct {
	result int
	text   string
}

// Returns the error message.
func (e KeaError) Error() string {
	if e.text != "" {
		return fmt.Sprintf("non-success response result from Kea: %d, text: %s", e.result, e.text)
	}
	return fmt.Sprintf("non-success response result from Kea: %d", e.result)
}

// Returns the error carried by the response, or nil. An empty result
// is a proper response for lookups, so it is not treated as an error.
func (r Response) GetError() error {
	if r.Result == ResponseSuccess || r.Result == ResponseEmpty {
		return nil
	}
	return errors.WithStack(KeaError{r.Result, r.Text})
}
