// Command rurl renders URL templates from the command line.
//
// Usage:
//
//	rurl [-v] [-x] [-H] [-s scheme] [-h host] [-p port] [-u user] [-P password] PATTERN [VALUE...]
//	rurl [options] -f templates.yaml
//
// Each "{}" in PATTERN takes the next VALUE. Values are read as YAML,
// so 42 is a number, [a, b] a list, {page: 2} a query set and null omits a part.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/rohanthewiz/rurl"
	"github.com/rohanthewiz/rurl/core/cache"
	"github.com/rohanthewiz/rurl/explain"
)

const usage = "usage: rurl [-v] [-x] [-H] [-s scheme] [-h host] [-p port] [-u user] [-P password] (-f file | PATTERN [VALUE...])"

type cliOptions struct {
	verbose   bool
	text      bool // explain as text
	html      bool // explain as HTML
	file      string
	overrides Overrides
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	red := color.New(color.FgRed)

	opts, rest, err := readFlags(args)
	if err != nil {
		red.Fprintln(stderr, err)
		fmt.Fprintln(stderr, usage)
		return 2
	}

	var templates []Template
	if opts.file != "" {
		tf, err := LoadFile(opts.file)
		if err != nil {
			red.Fprintln(stderr, err)
			return 1
		}
		templates = tf.Templates
	} else {
		if len(rest) == 0 {
			fmt.Fprintln(stderr, usage)
			return 2
		}
		t := Template{Name: rest[0], Pattern: rest[0]}
		for _, arg := range rest[1:] {
			v, err := parseValue(arg)
			if err != nil {
				red.Fprintln(stderr, err)
				return 1
			}
			t.Values = append(t.Values, v)
		}
		templates = []Template{t}
	}

	store := cache.New()
	code := 0

	for _, t := range templates {
		if err := render(stdout, store, t, opts, len(templates) > 1); err != nil {
			red.Fprintf(stderr, "%s: %v\n", t.Name, err)
			code = 1
		}
	}
	return code
}

// readFlags parses the options and returns the remaining arguments.
func readFlags(args []string) (cliOptions, []string, error) {
	var opts cliOptions

	flags, optind, err := getopt.Getopts(args, "vxHf:s:h:p:u:P:")
	if err != nil {
		return opts, nil, err
	}

	for _, flag := range flags {
		switch flag.Option {
		case 'v':
			opts.verbose = true
		case 'x':
			opts.text = true
		case 'H':
			opts.html = true
		case 'f':
			opts.file = flag.Value
		case 's':
			opts.overrides.Protocol = flag.Value
		case 'h':
			opts.overrides.Hostname = flag.Value
		case 'p':
			port, err := strconv.Atoi(flag.Value)
			if err != nil {
				return opts, nil, fmt.Errorf("-p parameter not numeric: %q", flag.Value)
			}
			opts.overrides.Port = port
		case 'u':
			opts.overrides.Username = flag.Value
		case 'P':
			opts.overrides.Password = flag.Value
		}
	}

	return opts, args[optind:], nil
}

// render prints one template, with its explanation when asked for.
// Command line overrides win over the ones from the template file.
func render(w io.Writer, store cache.Store, t Template, opts cliOptions, named bool) error {
	f := rurl.NewFormatter(rurl.FormatterOptions{
		Options: t.Overrides.merge(opts.overrides).options(),
		Cache:   store,
		Verbose: opts.verbose,
	})

	fragments := rurl.Split(t.Pattern)
	if opts.text || opts.html {
		r, err := f.Parse(fragments)
		if err != nil {
			return err
		}
		if opts.text {
			fmt.Fprint(w, explain.Text(r))
		}
		if opts.html {
			fmt.Fprintln(w, explain.HTML(t.Name, r))
		}
	}

	s, err := f.URL(t.Pattern, t.Values...)
	if err != nil {
		return err
	}

	if named {
		fmt.Fprintf(w, "%s: ", t.Name)
	}
	color.New(color.FgGreen).Fprintln(w, s)
	return nil
}
