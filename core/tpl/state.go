package tpl

// state is the URL region the parser is currently reading.
// Regions are only ever entered left to right:
//
//	protocol → hostname → port → path → query → fragment → end
//
// and any region may be skipped.
type state int

const (
	stateProtocol state = iota
	stateHostname
	statePort
	statePath
	stateQueryKey
	stateQueryValue
	stateFragment

	// stateEnd is terminal: the token stream has been fully consumed.
	stateEnd
)

// Region names a syntactic zone of a URL in parse errors.
type Region string

const (
	RegionTemplate Region = "template"
	RegionProtocol Region = "protocol"

	// RegionCredentials is never parsed; credentials only come from Overwrite.
	RegionCredentials Region = "credentials"

	RegionHostname Region = "hostname"
	RegionPort     Region = "port"
	RegionPath     Region = "path"
	RegionQuery    Region = "query"
	RegionFragment Region = "fragment"
)
