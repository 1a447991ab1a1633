package codec

// ConfigState is the completeness of a document set, inferred from which of
// its interfaces are placeholders.
type ConfigState int

const (
	// StateUninitialized: no documents, or the first one has no header.
	StateUninitialized ConfigState = iota
	// StateNetworkWideOnly: header present, only placeholder interfaces.
	StateNetworkWideOnly
	// StateConfigured: every host has an address for every shown protocol.
	StateConfigured
	// StatePartiallyUpgraded: a host has a real address for one shown
	// protocol and a placeholder for the other, typically after switching
	// from single to dual stack.
	StatePartiallyUpgraded
)

var stateNames = map[ConfigState]string{
	StateUninitialized:     "uninitialized",
	StateNetworkWideOnly:   "networkWideOnly",
	StateConfigured:        "configured",
	StatePartiallyUpgraded: "partiallyUpgraded",
}

func (s ConfigState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ConfigState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
