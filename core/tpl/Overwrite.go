package tpl

import (
	"strconv"
	"strings"

	"github.com/rohanthewiz/rurl/consts"
)

// Options overrides parts of a parsed template.
// Zero values mean "not supplied", except for the credentials,
// which always replace the ones on the template.
type Options struct {
	// Hostname may also carry a scheme and a port,
	// as in "https://api.example.com:8080".
	Hostname string
	Port     int
	Protocol string
	Username string
	Password string
}

// Overwrite returns a copy of r with the given options applied.
// r itself is left untouched, so cached results can be overwritten safely.
//
// Protocol and Port options win over a scheme or port found in Hostname.
// A Hostname that does not look like [scheme://]host[:port] is ignored,
// as is a port outside 1..65535.
func Overwrite(r *Result, opts Options) *Result {
	result := r.Clone()

	if opts.Hostname != "" {
		if protocol, host, port, ok := splitHost(opts.Hostname); ok {
			if protocol != "" {
				result.Protocol = Static[string]{Value: protocol}
			}
			result.Hostname = Static[string]{Value: host}
			if validPort(port) {
				result.Port = Static[int]{Value: port}
			}
		}
	}

	if opts.Protocol != "" {
		result.Protocol = Static[string]{Value: opts.Protocol}
	}
	if validPort(opts.Port) {
		result.Port = Static[int]{Value: opts.Port}
	}

	result.Username = opts.Username
	result.Password = opts.Password
	return result
}

// splitHost splits "scheme://host:port" into its parts.
// The scheme and the port are optional; the host must not be empty.
// A port that is not a number is left out, as is anything after it.
func splitHost(s string) (protocol string, host string, port int, ok bool) {
	if pos := strings.Index(s, consts.SchemeDelimiter); pos > 0 && isWord(s[:pos]) {
		protocol = s[:pos]
		s = s[pos+len(consts.SchemeDelimiter):]
	}

	host = s
	if pos := strings.IndexByte(s, consts.RuneColon); pos != -1 {
		host = s[:pos]

		digits := s[pos+1:]
		end := 0
		for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
			end++
		}
		if n, err := strconv.Atoi(digits[:end]); err == nil {
			port = n
		}
	}

	if host == "" {
		return "", "", 0, false
	}
	return protocol, host, port, true
}

func validPort(n int) bool {
	return n >= consts.MinPort && n <= consts.MaxPort
}

// isWord reports whether s only holds letters, digits and underscores.
func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}
