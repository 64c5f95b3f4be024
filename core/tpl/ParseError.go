package tpl

import (
	"strconv"
	"strings"
)

// ParseError reports a template whose layout is not a valid URL shape.
type ParseError struct {
	Region   Region
	Token    string   // offending token, empty at the end of the template
	Expected []string // tokens that would have been accepted, if known
	Msg      string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid url template: ")
	sb.WriteString(string(e.Region))
	sb.WriteString(": ")
	sb.WriteString(e.Msg)

	if e.Token == "" {
		sb.WriteString(" (at end of template")
	} else {
		sb.WriteString(" (got ")
		sb.WriteString(strconv.Quote(e.Token))
	}

	if len(e.Expected) > 0 {
		sb.WriteString(", expected one of ")
		for i, exp := range e.Expected {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(exp))
		}
	}

	sb.WriteByte(')')
	return sb.String()
}
