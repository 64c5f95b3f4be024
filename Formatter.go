package rurl

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/rohanthewiz/rurl/consts"
	"github.com/rohanthewiz/rurl/core/cache"
	"github.com/rohanthewiz/rurl/core/tpl"
)

// ErrValueCount is returned when a pattern gets more or fewer values
// than it has placeholders.
var ErrValueCount = errors.New("value count does not match placeholder count")

type FormatterOptions struct {
	// Overrides applied to every template before rendering
	tpl.Options

	// Cache holds parsed templates. Defaults to the process-wide cache.
	Cache cache.Store

	Verbose bool
}

// Formatter renders URL templates with a fixed set of overrides.
// It is safe for concurrent use.
type Formatter struct {
	overrides tpl.Options
	cache     cache.Store
	verbose   bool
}

// NewFormatter creates a formatter.
//
// Example:
//
//	api := rurl.NewFormatter(rurl.FormatterOptions{
//	    Options: tpl.Options{Hostname: "https://api.example.com:8443"},
//	})
//	api.MustURL("//localhost/users/{}", 42) // https://api.example.com:8443/users/42
func NewFormatter(opts ...FormatterOptions) *Formatter {
	f := &Formatter{cache: cache.Shared()}

	if len(opts) == 1 {
		f.overrides = opts[0].Options
		f.verbose = opts[0].Verbose
		if opts[0].Cache != nil {
			f.cache = opts[0].Cache
		}
	}
	return f
}

// Parse returns the parsed template for fragments, from the cache when possible.
// The returned result is shared and must not be modified.
func (f *Formatter) Parse(fragments []string) (*tpl.Result, error) {
	key := cache.Key(fragments)
	if r, ok := f.cache.Get(key); ok {
		return r, nil
	}

	if f.verbose {
		log.Printf("rurl: cache miss for %q", fragments)
	}

	r, err := tpl.Parse(fragments)
	if err != nil {
		if f.verbose {
			log.Printf("rurl: %v", err)
		}
		return nil, err
	}

	f.cache.Set(key, r)
	return r, nil
}

// Format renders the template made of fragments with the given values.
// A template with N placeholders has N+1 fragments and takes N values.
func (f *Formatter) Format(fragments []string, values ...any) (string, error) {
	r, err := f.Parse(fragments)
	if err != nil {
		return "", err
	}
	return Render(tpl.Overwrite(r, f.overrides), values)
}

// MustFormat is like Format but panics on error.
func (f *Formatter) MustFormat(fragments []string, values ...any) string {
	s, err := f.Format(fragments, values...)
	if err != nil {
		panic(err)
	}
	return s
}

// URL renders a pattern in which each "{}" stands for one value.
//
// Example:
//
//	f.URL("https://{}/users/{}?tab={}", "api.example.com", 42, "posts")
func (f *Formatter) URL(pattern string, values ...any) (string, error) {
	fragments := Split(pattern)
	if len(fragments)-1 != len(values) {
		return "", fmt.Errorf("%q has %d placeholders, got %d values: %w",
			pattern, len(fragments)-1, len(values), ErrValueCount)
	}
	return f.Format(fragments, values...)
}

// MustURL is like URL but panics on error.
func (f *Formatter) MustURL(pattern string, values ...any) string {
	s, err := f.URL(pattern, values...)
	if err != nil {
		panic(err)
	}
	return s
}

// Split cuts a pattern into the literal fragments around its "{}" placeholders.
func Split(pattern string) []string {
	return strings.Split(pattern, consts.Placeholder)
}

var defaultFormatter = NewFormatter()

// Format renders fragments with the default formatter, which applies no overrides.
func Format(fragments []string, values ...any) (string, error) {
	return defaultFormatter.Format(fragments, values...)
}

// MustFormat is like Format but panics on error.
func MustFormat(fragments []string, values ...any) string {
	return defaultFormatter.MustFormat(fragments, values...)
}

// URL renders a "{}" pattern with the default formatter.
func URL(pattern string, values ...any) (string, error) {
	return defaultFormatter.URL(pattern, values...)
}

// MustURL is like URL but panics on error.
func MustURL(pattern string, values ...any) string {
	return defaultFormatter.MustURL(pattern, values...)
}
