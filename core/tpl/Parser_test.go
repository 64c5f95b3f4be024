package tpl_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/rurl/core/tpl"
)

type s = tpl.Static[string]
type p = tpl.Param[string]

func paths(parts ...tpl.Part[string]) []tpl.Part[string] {
	if parts == nil {
		return []tpl.Part[string]{}
	}
	return parts
}

func queries(qs ...tpl.Query) []tpl.Query {
	if qs == nil {
		return []tpl.Query{}
	}
	return qs
}

func TestParse(t *testing.T) {
	cases := []struct {
		name      string
		fragments []string
		expected  *tpl.Result
	}{
		{
			name:      "protocol, hostname",
			fragments: []string{"http://example.com"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name:      "scheme relative hostname",
			fragments: []string{"//example.com"},
			expected: &tpl.Result{
				Hostname: s{Value: "example.com"},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name:      "hostname, port",
			fragments: []string{"//example.com:8080"},
			expected: &tpl.Result{
				Hostname: s{Value: "example.com"},
				Port:     tpl.Static[int]{Value: 8080},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name:      "protocol, hostname, path",
			fragments: []string{"http://example.com/path/to/resource"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Paths:    paths(s{Value: "/path/to/resource"}),
				Queries:  queries(),
			},
		},
		{
			name:      "absolute path",
			fragments: []string{"/path/to/resource"},
			expected: &tpl.Result{
				Paths:   paths(s{Value: "/path/to/resource"}),
				Queries: queries(),
			},
		},
		{
			name:      "relative path",
			fragments: []string{"./path/to/resource"},
			expected: &tpl.Result{
				Paths:   paths(s{Value: "./path/to/resource"}),
				Queries: queries(),
			},
		},
		{
			name:      "protocol, hostname, port, path, query, fragment",
			fragments: []string{"http://example.com:8080/path/to/resource?query1=value1&query2=value2#test"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Port:     tpl.Static[int]{Value: 8080},
				Paths:    paths(s{Value: "/path/to/resource"}),
				Queries: queries(
					tpl.Query{Key: "query1", Value: s{Value: "value1"}},
					tpl.Query{Key: "query2", Value: s{Value: "value2"}},
				),
				Fragment: s{Value: "test"},
			},
		},
		{
			name:      "param protocol, param hostname",
			fragments: []string{"", "://", ""},
			expected: &tpl.Result{
				Protocol: p{Index: 0},
				Hostname: p{Index: 1},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name:      "param hostname, param port",
			fragments: []string{"//", ":", ""},
			expected: &tpl.Result{
				Hostname: p{Index: 0},
				Port:     tpl.Param[int]{Index: 1},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name:      "param protocol, param hostname, path, param path, path",
			fragments: []string{"", "://", "/parent/", "/child"},
			expected: &tpl.Result{
				Protocol: p{Index: 0},
				Hostname: p{Index: 1},
				Paths:    paths(s{Value: "/parent/"}, p{Index: 2}, s{Value: "/child"}),
				Queries:  queries(),
			},
		},
		{
			name:      "hostname, port, param path",
			fragments: []string{"//example.com:8000/", ""},
			expected: &tpl.Result{
				Hostname: s{Value: "example.com"},
				Port:     tpl.Static[int]{Value: 8000},
				Paths:    paths(s{Value: "/"}, p{Index: 0}),
				Queries:  queries(),
			},
		},
		{
			name:      "hostname, param port, path",
			fragments: []string{"//example.com:", "/path/to/resource"},
			expected: &tpl.Result{
				Hostname: s{Value: "example.com"},
				Port:     tpl.Param[int]{Index: 0},
				Paths:    paths(s{Value: "/path/to/resource"}),
				Queries:  queries(),
			},
		},
		{
			name:      "param query, static query, param query",
			fragments: []string{"//example.com/path?query=", "&query2=value&query3=", ""},
			expected: &tpl.Result{
				Hostname: s{Value: "example.com"},
				Paths:    paths(s{Value: "/path"}),
				Queries: queries(
					tpl.Query{Key: "query", Value: p{Index: 0}},
					tpl.Query{Key: "query2", Value: s{Value: "value"}},
					tpl.Query{Key: "query3", Value: p{Index: 1}},
				),
			},
		},
		{
			name:      "query set",
			fragments: []string{"//example.com/path?", ""},
			expected: &tpl.Result{
				Hostname: s{Value: "example.com"},
				Paths:    paths(s{Value: "/path"}),
				Queries:  queries(tpl.Query{Key: "", Value: p{Index: 0}}),
			},
		},
		{
			name:      "query set followed by keyed query",
			fragments: []string{"/search?", "&page=", ""},
			expected: &tpl.Result{
				Paths: paths(s{Value: "/search"}),
				Queries: queries(
					tpl.Query{Key: "", Value: p{Index: 0}},
					tpl.Query{Key: "page", Value: p{Index: 1}},
				),
			},
		},
		{
			name:      "param fragment",
			fragments: []string{"//example.com:8000/path#", ""},
			expected: &tpl.Result{
				Hostname: s{Value: "example.com"},
				Port:     tpl.Static[int]{Value: 8000},
				Paths:    paths(s{Value: "/path"}),
				Queries:  queries(),
				Fragment: p{Index: 0},
			},
		},
		{
			name:      "param path, static fragment",
			fragments: []string{"//example.com:8000/", "#fragment"},
			expected: &tpl.Result{
				Hostname: s{Value: "example.com"},
				Port:     tpl.Static[int]{Value: 8000},
				Paths:    paths(s{Value: "/"}, p{Index: 0}),
				Queries:  queries(),
				Fragment: s{Value: "fragment"},
			},
		},
		{
			name:      "encoded path",
			fragments: []string{"http://example.com/\U0001F419"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Paths:    paths(s{Value: "/%F0%9F%90%99"}),
				Queries:  queries(),
			},
		},
		{
			name:      "already encoded path is kept",
			fragments: []string{"/a%20b"},
			expected: &tpl.Result{
				Paths:   paths(s{Value: "/a%20b"}),
				Queries: queries(),
			},
		},
		{
			name:      "empty query values",
			fragments: []string{"/p?a=&b#top"},
			expected: &tpl.Result{
				Paths: paths(s{Value: "/p"}),
				Queries: queries(
					tpl.Query{Key: "a", Value: s{}},
					tpl.Query{Key: "b", Value: s{}},
				),
				Fragment: s{Value: "top"},
			},
		},
		{
			name:      "encoded query is decoded",
			fragments: []string{"/p?q=a%20b"},
			expected: &tpl.Result{
				Paths:   paths(s{Value: "/p"}),
				Queries: queries(tpl.Query{Key: "q", Value: s{Value: "a b"}}),
			},
		},
		{
			name:      "empty query before fragment",
			fragments: []string{"/p?#top"},
			expected: &tpl.Result{
				Paths:    paths(s{Value: "/p"}),
				Queries:  queries(),
				Fragment: s{Value: "top"},
			},
		},
		{
			name:      "fragment right after path slash",
			fragments: []string{"/#top"},
			expected: &tpl.Result{
				Paths:    paths(s{Value: "/"}),
				Queries:  queries(),
				Fragment: s{Value: "top"},
			},
		},
		{
			name:      "empty template",
			fragments: []string{""},
			expected: &tpl.Result{
				Paths:   paths(),
				Queries: queries(),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := tpl.Parse(c.fragments)
			if err != nil {
				t.Fatalf("parse %q: %v", c.fragments, err)
			}
			if !reflect.DeepEqual(result, c.expected) {
				t.Fatalf("parse %q:\n got: %s\nwant: %s", c.fragments, spew.Sdump(result), spew.Sdump(c.expected))
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	fragments := []string{"", "://api.example.com:", "/users/", "?tab=", "#", ""}

	first := tpl.MustParse(fragments...)
	for i := 0; i < 10; i++ {
		again := tpl.MustParse(fragments...)
		assert.DeepEqual(t, again, first)
	}
	assert.Equal(t, first.Placeholders(), 5)
}

func TestParseNoFragments(t *testing.T) {
	result, err := tpl.Parse(nil)
	assert.True(t, result == nil)
	assert.True(t, err != nil)
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		assert.True(t, recover() != nil)
	}()
	tpl.MustParse("://example.com")
}

func TestCloneIsIndependent(t *testing.T) {
	src := tpl.MustParse("http://example.com/a?q=1")
	clone := src.Clone()
	clone.Paths[0] = s{Value: "/b"}
	clone.Queries[0].Key = "other"

	if src.Paths[0] != (s{Value: "/a"}) || src.Queries[0].Key != "q" {
		t.Fatalf("clone shares state with source:\n%s", spew.Sdump(src))
	}
}
