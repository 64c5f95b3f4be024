package tpl

import "net/url"

// EscapePath percent-encodes a path value supplied at render time.
// Slashes are kept, so "a/b c" becomes "a/b%20c".
func EscapePath(s string) string {
	u := url.URL{Path: s}
	return u.EscapedPath()
}

// EscapeFragment percent-encodes a fragment value supplied at render time.
func EscapeFragment(s string) string {
	u := url.URL{Fragment: s}
	return u.EscapedFragment()
}

// escapeStaticPath encodes path text written in a template.
// Escapes that are already valid, like "%20", are kept as written.
func escapeStaticPath(s string) string {
	u := url.URL{Path: s}
	if p, err := url.PathUnescape(s); err == nil {
		u.Path, u.RawPath = p, s
	}
	return u.EscapedPath()
}

func escapeStaticFragment(s string) string {
	u := url.URL{Fragment: s}
	if f, err := url.PathUnescape(s); err == nil {
		u.Fragment, u.RawFragment = f, s
	}
	return u.EscapedFragment()
}

// decodeQuery decodes a query key or value written in a template.
// The renderer encodes it again, so "a%20b" is not encoded twice.
func decodeQuery(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	return s
}
