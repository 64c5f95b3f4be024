package tpl

import "strconv"

// Part is one component of a parsed URL template.
// It is either known when the template is parsed (Static) or
// supplied as a placeholder value when the template is rendered (Param).
// A nil Part means the component is absent from the template.
//
// Example:
//
//	Template: "https://", "/users/", ""
//	Hostname: Param[string]{Index: 0}
//	Paths:    Static[string]{Value: "/users/"}, Param[string]{Index: 1}
//
// The set of implementations is closed: consumers switch over
// Static[T] and Param[T] and nothing else.
type Part[T any] interface {
	isPart(T)
	String() string
}

// Static is a Part whose value was written literally in the template.
type Static[T any] struct {
	Value T
}

// Param is a Part resolved at render time from the placeholder at Index.
// Index is the 0-based position of the placeholder in the template.
type Param[T any] struct {
	Index int
}

func (Static[T]) isPart(T) {}
func (Param[T]) isPart(T)  {}

func (s Static[T]) String() string {
	switch v := any(s.Value).(type) {
	case string:
		return strconv.Quote(v)
	case int:
		return strconv.Itoa(v)
	}
	return "?"
}

func (p Param[T]) String() string {
	return "{" + strconv.Itoa(p.Index) + "}"
}
