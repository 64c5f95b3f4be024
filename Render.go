package rurl

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/rohanthewiz/rurl/consts"
	"github.com/rohanthewiz/rurl/core/tpl"
)

// RenderError reports a placeholder value that does not fit its URL region.
type RenderError struct {
	Field string // URL region, e.g. "port"
	Index int    // placeholder position
	Value any
	Msg   string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render url: %s placeholder #%d: %s (got %#v of type %T)",
		e.Field, e.Index, e.Msg, e.Value, e.Value)
}

// Render builds the URL described by r, taking placeholder values from values.
//
// Example:
//
//	Template: "https://", "/users/", "?tab=", ""
//	Values:   "api.example.com", 42, "posts"
//	URL:      https://api.example.com/users/42?tab=posts
//
// A nil hostname value drops the whole authority, scheme included.
// A nil protocol value gives a scheme relative URL. A nil port, query value
// or fragment value is left out.
func Render(r *tpl.Result, values []any) (string, error) {
	rd := renderer{values: values}
	return rd.render(r)
}

// MustRender is like Render but panics if a value does not fit its region.
func MustRender(r *tpl.Result, values ...any) string {
	s, err := Render(r, values)
	if err != nil {
		panic(err)
	}
	return s
}

type renderer struct {
	values []any
}

func (rd *renderer) render(r *tpl.Result) (string, error) {
	protocol, hasProtocol, err := rd.text("protocol", r.Protocol)
	if err != nil {
		return "", err
	}
	hostname, hasHost, err := rd.text("hostname", r.Hostname)
	if err != nil {
		return "", err
	}
	port, hasPort, err := rd.port(r.Port)
	if err != nil {
		return "", err
	}
	path, err := rd.path(r.Paths)
	if err != nil {
		return "", err
	}
	query, err := rd.query(r.Queries)
	if err != nil {
		return "", err
	}
	fragment, hasFragment, err := rd.fragment(r.Fragment)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	if hasHost {
		if hasProtocol {
			sb.WriteString(protocol)
			sb.WriteString(consts.Colon)
		}
		sb.WriteString(consts.SchemeRelative)

		if r.Username != "" || r.Password != "" {
			sb.WriteString(userinfo(r.Username, r.Password))
			sb.WriteString(consts.At)
		}

		sb.WriteString(hostname)
		if hasPort {
			sb.WriteString(consts.Colon)
			sb.WriteString(strconv.Itoa(port))
		}

		switch {
		case path == "" && hasProtocol && consts.IsSpecialScheme(protocol):
			path = consts.FwdSlash
		case path != "" && !strings.HasPrefix(path, consts.FwdSlash):
			sb.WriteString(consts.FwdSlash)
		}
	}

	sb.WriteString(path)

	if len(query) > 0 {
		sb.WriteString(consts.Question)
		sb.WriteString(query.Encode())
	}

	if hasFragment {
		sb.WriteString(consts.Hash)
		sb.WriteString(fragment)
	}

	return sb.String(), nil
}

// value returns the placeholder value at index.
func (rd *renderer) value(field string, index int) (any, error) {
	if index < 0 || index >= len(rd.values) {
		return nil, &RenderError{Field: field, Index: index,
			Msg: "no value supplied, got " + strconv.Itoa(len(rd.values)) + " values"}
	}
	return rd.values[index], nil
}

// text resolves the protocol or the hostname.
// An empty string counts as omitted. Both are written into the URL as is,
// so a value that would spill into another region is rejected.
func (rd *renderer) text(field string, part tpl.Part[string]) (string, bool, error) {
	var s string
	index := -1

	switch p := part.(type) {
	case tpl.Static[string]:
		s = p.Value

	case tpl.Param[string]:
		v, err := rd.value(field, p.Index)
		if err != nil || isNil(v) {
			return "", false, err
		}
		var ok bool
		if s, ok = stringValue(v); !ok {
			return "", false, &RenderError{Field: field, Index: p.Index, Value: v, Msg: field + " must be a string"}
		}
		index = p.Index

	default:
		return "", false, nil
	}

	if s == "" {
		return "", false, nil
	}

	switch {
	case field == "protocol" && !validScheme(s):
		return "", false, &RenderError{Field: field, Index: index, Value: s,
			Msg: "protocol must start with a letter followed by letters, digits, '+', '-' or '.'"}
	case field == "hostname" && !validHost(s):
		return "", false, &RenderError{Field: field, Index: index, Value: s,
			Msg: `hostname must not contain '/', '?', '#', '@', '\' or spaces`}
	}
	return s, true, nil
}

// validScheme reports whether s matches [A-Za-z][A-Za-z0-9+.-]*.
func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}

// validHost reports whether s stays inside the authority once written out.
func validHost(s string) bool {
	return !strings.ContainsFunc(s, func(r rune) bool {
		return strings.ContainsRune(`/?#@\`, r) || unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

func (rd *renderer) port(part tpl.Part[int]) (int, bool, error) {
	switch p := part.(type) {
	case tpl.Static[int]:
		if p.Value < consts.MinPort || p.Value > consts.MaxPort {
			return 0, false, &RenderError{Field: "port", Index: -1, Value: p.Value, Msg: "port must be between 1 and 65535"}
		}
		return p.Value, true, nil

	case tpl.Param[int]:
		v, err := rd.value("port", p.Index)
		if err != nil || isNil(v) {
			return 0, false, err
		}
		n, ok := portValue(v)
		if !ok {
			return 0, false, &RenderError{Field: "port", Index: p.Index, Value: v, Msg: "port must be an integer"}
		}
		if n < consts.MinPort || n > consts.MaxPort {
			return 0, false, &RenderError{Field: "port", Index: p.Index, Value: v, Msg: "port must be between 1 and 65535"}
		}
		return n, true, nil
	}
	return 0, false, nil
}

// path joins the path chunks, dropping one slash where a chunk ending
// with "/" meets a chunk starting with "/".
//
// Example:
//
//	Template: "/users/", "/"
//	Value:    []string{"a", "b"}
//	Chunks:   "/users/" "/a/b/" "/"
//	Path:     /users/a/b/
func (rd *renderer) path(parts []tpl.Part[string]) (string, error) {
	var sb strings.Builder

	for _, part := range parts {
		var chunk string

		switch p := part.(type) {
		case tpl.Static[string]:
			chunk = p.Value

		case tpl.Param[string]:
			v, err := rd.value("path", p.Index)
			if err != nil {
				return "", err
			}
			chunk, err = pathChunk(p.Index, v)
			if err != nil {
				return "", err
			}
		}

		if strings.HasSuffix(sb.String(), consts.FwdSlash) && strings.HasPrefix(chunk, consts.FwdSlash) {
			chunk = chunk[1:]
		}
		sb.WriteString(chunk)
	}

	return sb.String(), nil
}

// pathChunk encodes one path value. A sequence becomes one segment per
// element, each preceded by "/", followed by a closing "/".
func pathChunk(index int, v any) (string, error) {
	if s, ok := scalarValue(v, false); ok {
		return tpl.EscapePath(s), nil
	}

	items, ok := sequenceValue(v)
	if !ok {
		return "", &RenderError{Field: "path", Index: index, Value: v, Msg: "path must be a string, a number or a slice"}
	}

	var sb strings.Builder
	for _, item := range items {
		s, ok := scalarValue(item, false)
		if !ok {
			return "", &RenderError{Field: "path", Index: index, Value: v, Msg: "path elements must be strings or numbers"}
		}
		sb.WriteString(consts.FwdSlash)
		sb.WriteString(tpl.EscapePath(s))
	}
	sb.WriteString(consts.FwdSlash)
	return sb.String(), nil
}

func (rd *renderer) query(queries []tpl.Query) (Params, error) {
	var params Params

	for _, q := range queries {
		switch p := q.Value.(type) {
		case tpl.Static[string]:
			params.Add(q.Key, p.Value)

		case tpl.Param[string]:
			v, err := rd.value("query", p.Index)
			if err != nil {
				return nil, err
			}

			if q.Key != "" {
				err = addQueryItem(&params, p.Index, q.Key, v)
			} else {
				err = addQuerySet(&params, p.Index, v)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	return params, nil
}

// addQueryItem adds the value of one query key.
// A sequence replaces any earlier values of the key.
//
// Example:
//
//	Template: "/users/?key=old&key=", ""
//	Value:    []string{"a", "b", "c"}
//	Query:    key=a&key=b&key=c
func addQueryItem(params *Params, index int, key string, v any) error {
	if isNil(v) {
		return nil
	}

	if s, ok := scalarValue(v, true); ok {
		params.Add(key, s)
		return nil
	}

	items, ok := sequenceValue(v)
	if !ok {
		return &RenderError{Field: "query", Index: index, Value: v,
			Msg: "query value for " + strconv.Quote(key) + " must be a string, a number, a bool or a slice"}
	}

	for i, item := range items {
		s, ok := scalarValue(item, true)
		if !ok {
			return &RenderError{Field: "query", Index: index, Value: v,
				Msg: "query values for " + strconv.Quote(key) + " must be strings, numbers or bools"}
		}
		if i == 0 {
			params.Set(key, s)
		} else {
			params.Add(key, s)
		}
	}
	return nil
}

// addQuerySet expands a whole set of query values.
// Params keep their order; maps are expanded in sorted key order.
func addQuerySet(params *Params, index int, v any) error {
	if isNil(v) {
		return nil
	}

	switch set := v.(type) {
	case Params:
		for _, key := range set.Keys() {
			if err := addQueryItem(params, index, key, set.Values(key)); err != nil {
				return err
			}
		}
		return nil

	case url.Values:
		keys := make([]string, 0, len(set))
		for key := range set {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if err := addQueryItem(params, index, key, set[key]); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return &RenderError{Field: "query", Index: index, Value: v, Msg: "query set must be a map with string keys, url.Values or rurl.Params"}
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	for _, key := range keys {
		if err := addQueryItem(params, index, key.String(), rv.MapIndex(key).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (rd *renderer) fragment(part tpl.Part[string]) (string, bool, error) {
	switch p := part.(type) {
	case tpl.Static[string]:
		return p.Value, true, nil

	case tpl.Param[string]:
		v, err := rd.value("fragment", p.Index)
		if err != nil || isNil(v) {
			return "", false, err
		}
		s, ok := stringValue(v)
		if !ok {
			return "", false, &RenderError{Field: "fragment", Index: p.Index, Value: v, Msg: "fragment must be a string"}
		}
		return tpl.EscapeFragment(s), s != "", nil
	}
	return "", false, nil
}

func userinfo(username, password string) string {
	if password == "" {
		return url.User(username).String()
	}
	return url.UserPassword(username, password).String()
}
