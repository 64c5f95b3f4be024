package tpl

// Query is one entry of the query string.
// An empty Key marks a query-set entry: its Param value is expanded
// at render time from a whole map of keys and values.
type Query struct {
	Key   string
	Value Part[string]
}

// Result is the parsed shape of a URL template.
// A Result is never modified once Parse returns it, so it can be shared
// between goroutines and cached. Overwrite returns a modified copy.
type Result struct {
	Protocol Part[string] // scheme, without "://"
	Hostname Part[string]
	Port     Part[int]
	Paths    []Part[string] // static chunks are already percent-encoded
	Queries  []Query
	Fragment Part[string]

	// Credentials are never parsed from template text, only set by Overwrite.
	Username string
	Password string
}

// Clone returns a copy of the result that shares no slices with it.
func (r *Result) Clone() *Result {
	c := *r
	c.Paths = append(make([]Part[string], 0, len(r.Paths)), r.Paths...)
	c.Queries = append(make([]Query, 0, len(r.Queries)), r.Queries...)
	return &c
}

// Placeholders returns the number of placeholder values the result needs,
// i.e. one more than the highest Param index referenced.
func (r *Result) Placeholders() int {
	n := 0
	track := func(index int) {
		if index+1 > n {
			n = index + 1
		}
	}

	if p, ok := r.Protocol.(Param[string]); ok {
		track(p.Index)
	}
	if p, ok := r.Hostname.(Param[string]); ok {
		track(p.Index)
	}
	if p, ok := r.Port.(Param[int]); ok {
		track(p.Index)
	}
	for _, part := range r.Paths {
		if p, ok := part.(Param[string]); ok {
			track(p.Index)
		}
	}
	for _, q := range r.Queries {
		if p, ok := q.Value.(Param[string]); ok {
			track(p.Index)
		}
	}
	if p, ok := r.Fragment.(Param[string]); ok {
		track(p.Index)
	}
	return n
}
