package consts

import "strings"

const (
	HTTP  = "http"
	HTTPS = "https"
	WS    = "ws"
	WSS   = "wss"
	FTP   = "ftp"
	File  = "file"
)

// SpecialSchemes are the schemes whose URLs always carry a path,
// so an empty path after an authority is rendered as "/".
var SpecialSchemes = []string{HTTP, HTTPS, WS, WSS, FTP, File}

// IsSpecialScheme reports whether scheme is one of SpecialSchemes, ignoring case.
func IsSpecialScheme(scheme string) bool {
	for _, s := range SpecialSchemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}
	return false
}
