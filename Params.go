package rurl

import (
	"net/url"
	"strings"

	"github.com/rohanthewiz/rurl/consts"
)

// Param is one key/value pair of a query string.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered multi-map of query parameters.
// Unlike url.Values it keeps the order pairs were added in,
// so a rendered query reads the way the template was written.
//
// Example:
//
//	var q Params
//	q.Add("tag", "a")
//	q.Add("page", "2")
//	q.Add("tag", "b")
//	q.Encode() // "tag=a&page=2&tag=b"
type Params []Param

// Add appends a pair.
func (p *Params) Add(key, value string) {
	*p = append(*p, Param{Key: key, Value: value})
}

// Set replaces all values of key with value.
// The new pair takes the place of the first existing one;
// if key is not present the pair is appended.
func (p *Params) Set(key, value string) {
	out := (*p)[:0]
	found := false

	for _, param := range *p {
		if param.Key != key {
			out = append(out, param)
			continue
		}
		if !found {
			out = append(out, Param{Key: key, Value: value})
			found = true
		}
	}

	if !found {
		out = append(out, Param{Key: key, Value: value})
	}
	*p = out
}

// Get returns the first value of key, or "".
func (p Params) Get(key string) string {
	for _, param := range p {
		if param.Key == key {
			return param.Value
		}
	}
	return ""
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	for _, param := range p {
		if param.Key == key {
			return true
		}
	}
	return false
}

// Values returns all values of key in order.
func (p Params) Values(key string) (values []string) {
	for _, param := range p {
		if param.Key == key {
			values = append(values, param.Value)
		}
	}
	return values
}

// Keys returns the distinct keys in order of first appearance.
func (p Params) Keys() (keys []string) {
	seen := make(map[string]struct{}, len(p))
	for _, param := range p {
		if _, ok := seen[param.Key]; ok {
			continue
		}
		seen[param.Key] = struct{}{}
		keys = append(keys, param.Key)
	}
	return keys
}

// Del removes all values of key.
func (p *Params) Del(key string) {
	out := (*p)[:0]
	for _, param := range *p {
		if param.Key != key {
			out = append(out, param)
		}
	}
	*p = out
}

// Encode returns the pairs in "application/x-www-form-urlencoded" form,
// in insertion order.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteString(consts.Ampersand)
		}
		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteString(consts.Equals)
		sb.WriteString(url.QueryEscape(param.Value))
	}
	return sb.String()
}
