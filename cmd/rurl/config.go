package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rohanthewiz/rurl/core/tpl"
	"gopkg.in/yaml.v3"
)

// TemplateFile is a YAML file of named templates to render.
//
// Example:
//
//	defaults:
//	  hostname: https://api.example.com
//	templates:
//	  - name: user
//	    pattern: //localhost/users/{}
//	    values: [42]
type TemplateFile struct {
	Defaults  Overrides  `yaml:"defaults"`
	Templates []Template `yaml:"templates"`
}

type Template struct {
	Name      string    `yaml:"name"`
	Pattern   string    `yaml:"pattern"`
	Values    []any     `yaml:"values"`
	Overrides Overrides `yaml:"overrides"`
}

// Overrides mirrors tpl.Options in YAML.
type Overrides struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Protocol string `yaml:"protocol"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func (o Overrides) options() tpl.Options {
	return tpl.Options{
		Hostname: o.Hostname,
		Port:     o.Port,
		Protocol: o.Protocol,
		Username: o.Username,
		Password: o.Password,
	}
}

// merge returns o with every field that is set in over replaced.
func (o Overrides) merge(over Overrides) Overrides {
	if over.Hostname != "" {
		o.Hostname = over.Hostname
	}
	if over.Port != 0 {
		o.Port = over.Port
	}
	if over.Protocol != "" {
		o.Protocol = over.Protocol
	}
	if over.Username != "" {
		o.Username = over.Username
	}
	if over.Password != "" {
		o.Password = over.Password
	}
	return o
}

// LoadFile loads and parses a YAML template file from the given path.
func LoadFile(path string) (*TemplateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a TemplateFile.
func Parse(data []byte) (*TemplateFile, error) {
	var tf TemplateFile

	err := yaml.Unmarshal(data, &tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template YAML: %w", err)
	}

	for i, t := range tf.Templates {
		if t.Pattern == "" {
			return nil, fmt.Errorf("template %d (%s) has no pattern", i+1, t.Name)
		}
	}

	applyDefaults(&tf)

	return &tf, nil
}

// applyDefaults names unnamed templates and folds the file defaults
// into each template's overrides.
func applyDefaults(tf *TemplateFile) {
	for i := range tf.Templates {
		t := &tf.Templates[i]
		if t.Name == "" {
			t.Name = "template " + strconv.Itoa(i+1)
		}
		t.Overrides = tf.Defaults.merge(t.Overrides)
	}
}

// parseValue decodes a command line value as a YAML scalar, sequence or map,
// so "42" is a number, "[a, b]" a slice, "{page: 2}" a query set
// and "null" a nil value. An empty argument is an empty string.
func parseValue(arg string) (any, error) {
	if arg == "" {
		return "", nil
	}

	var v any
	if err := yaml.Unmarshal([]byte(arg), &v); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", arg, err)
	}
	return v, nil
}
