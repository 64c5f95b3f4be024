package tpl_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/rurl/core/tpl"
)

func TestOverwrite(t *testing.T) {
	cases := []struct {
		name     string
		opts     tpl.Options
		expected *tpl.Result
	}{
		{
			name: "protocol",
			opts: tpl.Options{Protocol: "https"},
			expected: &tpl.Result{
				Protocol: s{Value: "https"},
				Hostname: s{Value: "example.com"},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "hostname",
			opts: tpl.Options{Hostname: "api.example.com"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "api.example.com"},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "port",
			opts: tpl.Options{Port: 8080},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Port:     tpl.Static[int]{Value: 8080},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "host and port",
			opts: tpl.Options{Hostname: "api.example.com:8080"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "api.example.com"},
				Port:     tpl.Static[int]{Value: 8080},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "protocol, host and port",
			opts: tpl.Options{Hostname: "https://api.example.com:8080"},
			expected: &tpl.Result{
				Protocol: s{Value: "https"},
				Hostname: s{Value: "api.example.com"},
				Port:     tpl.Static[int]{Value: 8080},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "explicit protocol and port win over hostname",
			opts: tpl.Options{Hostname: "https://api.example.com:8080", Protocol: "wss", Port: 9000},
			expected: &tpl.Result{
				Protocol: s{Value: "wss"},
				Hostname: s{Value: "api.example.com"},
				Port:     tpl.Static[int]{Value: 9000},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "basic auth credentials",
			opts: tpl.Options{Username: "admin-user", Password: "pAssw0rd"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Paths:    paths(),
				Queries:  queries(),
				Username: "admin-user",
				Password: "pAssw0rd",
			},
		},
		{
			name: "out of range port in hostname is ignored",
			opts: tpl.Options{Hostname: "api.example.com:99999"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "api.example.com"},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "negative port is ignored",
			opts: tpl.Options{Port: -5},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "port above 65535 is ignored",
			opts: tpl.Options{Port: 65536},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
		{
			name: "hostname without host is ignored",
			opts: tpl.Options{Hostname: "https://:8080"},
			expected: &tpl.Result{
				Protocol: s{Value: "http"},
				Hostname: s{Value: "example.com"},
				Paths:    paths(),
				Queries:  queries(),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := tpl.MustParse("http://example.com")
			result := tpl.Overwrite(src, c.opts)

			if !reflect.DeepEqual(result, c.expected) {
				t.Fatalf("overwrite %+v:\n got: %s\nwant: %s", c.opts, spew.Sdump(result), spew.Sdump(c.expected))
			}
		})
	}
}

func TestOverwriteParamParts(t *testing.T) {
	src := tpl.MustParse("", "://", ":", "/users")
	result := tpl.Overwrite(src, tpl.Options{Hostname: "api.example.com"})

	assert.True(t, result.Protocol == tpl.Part[string](p{Index: 0}))
	assert.True(t, result.Hostname == tpl.Part[string](s{Value: "api.example.com"}))
	assert.True(t, result.Port == tpl.Part[int](tpl.Param[int]{Index: 2}))
}

func TestOverwriteLeavesSourceUntouched(t *testing.T) {
	src := tpl.MustParse("http://example.com/a")
	_ = tpl.Overwrite(src, tpl.Options{Hostname: "https://other.example.com:9000", Username: "u"})

	assert.True(t, src.Protocol == tpl.Part[string](s{Value: "http"}))
	assert.True(t, src.Hostname == tpl.Part[string](s{Value: "example.com"}))
	assert.True(t, src.Port == nil)
	assert.Equal(t, src.Username, "")
}

func TestOverwriteClearsCredentials(t *testing.T) {
	src := tpl.Overwrite(tpl.MustParse("http://example.com"), tpl.Options{Username: "u", Password: "p"})
	result := tpl.Overwrite(src, tpl.Options{})

	assert.Equal(t, result.Username, "")
	assert.Equal(t, result.Password, "")
}
