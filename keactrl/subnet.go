package keactrl

// Represents an address pool within a Kea DHCPv4 subnet. The pool
// range uses the 192.0.2.1-192.0.2.10 form.
type Pool struct {
	Pool string `json:"pool"`
}

// Represents a single DHCP option value within a subnet.
type SingleOptionData struct {
	AlwaysSend bool   `json:"always-send,omitempty"`
	Code       uint16 `json:"code,omitempty"`
	CSVFormat  bool   `json:"csv-format,omitempty"`
	Data       string `json:"data,omitempty"`
	Name       string `json:"name,omitempty"`
	Space      string `json:"space,omitempty"`
}

// Minimal representation of a Kea DHCPv4 subnet covering the fields
// the gateway reads and writes. Unknown fields returned by the server
// are not preserved across an update; the gateway only ever rewrites
// subnets it fully owns.
type Subnet4 struct {
	ID            int64              `json:"id,omitempty"`
	Subnet        string             `json:"subnet"`
	Pools         []Pool             `json:"pools,omitempty"`
	ValidLifetime *int64             `json:"valid-lifetime,omitempty"`
	OptionData    []SingleOptionData `json:"option-data,omitempty"`
}

// Arguments of a subnet4-get response.
type subnet4List struct {
	Subnet4 []Subnet4 `json:"subnet4"`
}
