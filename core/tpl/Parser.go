package tpl

import (
	"strconv"
	"strings"

	"github.com/rohanthewiz/rurl/consts"
)

// Parse parses a URL template into its structural Result.
// fragments holds the literal text around the placeholders, so a template
// with N placeholders has N+1 fragments (possibly empty).
//
// Example:
//
//	Template:  https://{0}/users/{1}?tab={2}
//	Fragments: "https://", "/users/", "?tab=", ""
//	Result:    Protocol: "https", Hostname: {0},
//	           Paths: "/users/", {1}, Queries: tab={2}
//
// Parsing is atomic: on error no Result is returned.
// Parsing the same fragments always yields an equal Result.
func Parse(fragments []string) (*Result, error) {
	if len(fragments) == 0 {
		return nil, &ParseError{Region: RegionTemplate, Msg: "template must have at least one fragment"}
	}

	p := parser{tokens: Stream(fragments)}
	if err := p.run(); err != nil {
		return nil, err
	}

	p.result.Paths = p.path.build()
	if p.result.Queries == nil {
		p.result.Queries = []Query{}
	}
	return &p.result, nil
}

// MustParse is like Parse but panics if the template is invalid.
func MustParse(fragments ...string) *Result {
	r, err := Parse(fragments)
	if err != nil {
		panic(err)
	}
	return r
}

// parser is a finite state machine over the token stream of one template.
// Each state method consumes the tokens of its region and returns
// the next state.
type parser struct {
	tokens []Token
	pos    int
	result Result
	path   pathBuilder
	key    string // query key waiting for its value
}

func (p *parser) run() error {
	st := stateProtocol

	for st != stateEnd {
		var err error

		switch st {
		case stateProtocol:
			st, err = p.protocol()
		case stateHostname:
			st, err = p.hostname()
		case statePort:
			st, err = p.port()
		case statePath:
			st, err = p.pathPart()
		case stateQueryKey:
			st, err = p.queryKey()
		case stateQueryValue:
			st, err = p.queryValue()
		case stateFragment:
			st, err = p.fragment()
		}

		if err != nil {
			return err
		}
	}

	// Nothing may follow the last region
	if tok, ok := p.peek(); ok {
		return p.fail(RegionTemplate, tok, "unexpected token after end of url")
	}
	return nil
}

// protocol reads an optional "scheme://" or "//" prefix.
// Templates without one, like "/users" or "./users", are read as a path.
func (p *parser) protocol() (state, error) {
	tok, ok := p.peek()
	if !ok {
		return stateEnd, nil
	}

	switch tok.Kind {
	case TokenSeparator:
		switch tok.Text {
		case consts.SchemeDelimiter:
			return stateEnd, p.fail(RegionProtocol, tok, "protocol name must not be empty")
		case consts.SchemeRelative:
			p.pos++
			return stateHostname, nil
		case consts.FwdSlash:
			return statePath, nil
		default:
			return stateEnd, p.fail(RegionProtocol, tok,
				"url must start with a scheme, a scheme relative '//' or a path",
				"scheme://", "//", "/")
		}

	default:
		// Example:
		//   tokens: "https" "://" ...
		//   tokens: {0} "://" ...
		if next, ok := p.peekAt(1); ok && next.is(consts.SchemeDelimiter) {
			p.result.Protocol = stringPart(tok)
			p.pos += 2
			return stateHostname, nil
		}
		return statePath, nil
	}
}

// hostname reads the host after "://" or "//".
// An empty hostname, as in "http:///path" or "http://:8080", is rejected.
func (p *parser) hostname() (state, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind == TokenSeparator {
		return stateEnd, p.fail(RegionHostname, tok, "hostname must not be empty")
	}

	p.result.Hostname = stringPart(tok)
	p.pos++
	return p.afterAuthority(RegionHostname)
}

// port reads the port after "host:".
// A static port must be a decimal number between 1 and 65535.
func (p *parser) port() (state, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind == TokenSeparator {
		return stateEnd, p.fail(RegionPort, tok, "port must not be empty")
	}

	if tok.Kind == TokenParam {
		p.result.Port = Param[int]{Index: tok.Index}
	} else {
		n, ok := parsePort(tok.Text)
		if !ok {
			return stateEnd, p.fail(RegionPort, tok, "port must be a number between 1 and 65535")
		}
		p.result.Port = Static[int]{Value: n}
	}

	p.pos++
	return p.afterAuthority(RegionPort)
}

// afterAuthority picks the region following a hostname or port.
//
// Example:
//
//	"//example.com:8080"   ":" → port
//	"//example.com/users"  "/" → path
//	"//example.com?q=1"    "?" → query
//	"//example.com#top"    "#" → fragment
func (p *parser) afterAuthority(region Region) (state, error) {
	tok, ok := p.peek()
	if !ok {
		return stateEnd, nil
	}

	if tok.Kind == TokenSeparator {
		switch tok.Text {
		case consts.Colon:
			if region == RegionHostname {
				p.pos++
				return statePort, nil
			}
		case consts.FwdSlash:
			return statePath, nil
		case consts.Question:
			p.pos++
			return stateQueryKey, nil
		case consts.Hash:
			p.pos++
			return stateFragment, nil
		}
	}

	if region == RegionHostname {
		return stateEnd, p.fail(region, tok, "hostname must end with ':' or '/'", ":", "/", "?", "#")
	}
	return stateEnd, p.fail(region, tok, "port must end with '/'", "/", "?", "#")
}

// pathPart reads path text up to the query or fragment.
// Slashes and literal text collect into one static part;
// each placeholder becomes its own part.
//
// Example:
//
//	tokens: "/" "users" "/" {0} "/" "posts"
//	paths:  "/users/" {0} "/posts"
func (p *parser) pathPart() (state, error) {
	for {
		tok, ok := p.peek()
		if !ok {
			return stateEnd, nil
		}

		switch tok.Kind {
		case TokenLiteral:
			// Example:
			//   "/users/{0}.json" is rejected: text after a placeholder
			//   must start a new segment.
			if p.pos > 0 && p.tokens[p.pos-1].Kind == TokenParam {
				return stateEnd, p.fail(RegionPath, tok, "path text after a placeholder must start with '/'", "/", "?", "#")
			}
			p.path.addStatic(tok.Text)

		case TokenParam:
			p.path.addParam(tok.Index)

		case TokenSeparator:
			switch tok.Text {
			case consts.FwdSlash:
				p.path.addStatic(tok.Text)
			case consts.Question:
				p.pos++
				return stateQueryKey, nil
			case consts.Hash:
				p.pos++
				return stateFragment, nil
			default:
				return stateEnd, p.fail(RegionPath, tok, "invalid character in path", "path text", "/", "?", "#")
			}
		}

		p.pos++
	}
}

// queryKey reads a query key, or a placeholder standing for a whole set of queries.
//
// Example:
//
//	"?a=1"   key "a", then "=" → value
//	"?a&b"   key "a" with an empty value, then the next key
//	"?{0}"   query-set entry
func (p *parser) queryKey() (state, error) {
	tok, ok := p.peek()
	if !ok {
		return stateEnd, nil
	}

	switch tok.Kind {
	case TokenParam:
		p.pos++
		p.addQuery("", Param[string]{Index: tok.Index})
		return p.afterQueryValue()

	case TokenLiteral:
		p.pos++
		key := decodeQuery(tok.Text)

		next, ok := p.peek()
		if !ok {
			p.addQuery(key, Static[string]{})
			return stateEnd, nil
		}

		switch {
		case next.is(consts.Equals):
			p.pos++
			p.key = key
			return stateQueryValue, nil
		case next.is(consts.Ampersand):
			p.pos++
			p.addQuery(key, Static[string]{})
			return stateQueryKey, nil
		case next.is(consts.Hash):
			p.pos++
			p.addQuery(key, Static[string]{})
			return stateFragment, nil
		}
		return stateEnd, p.fail(RegionQuery, next, "query key must be followed by '=', '&' or '#'", "=", "&", "#")

	default:
		switch tok.Text {
		case consts.Equals:
			return stateEnd, p.fail(RegionQuery, tok, "query key must not be empty")
		case consts.Ampersand:
			return stateEnd, p.fail(RegionQuery, tok, "empty query entry", "query key")
		case consts.Hash:
			// "?#top" and "?a=1&#top": nothing more in the query
			p.pos++
			return stateFragment, nil
		}
		return stateEnd, p.fail(RegionQuery, tok, "expected a query key", "query key", "#")
	}
}

// queryValue reads the value after "key=".
func (p *parser) queryValue() (state, error) {
	tok, ok := p.peek()
	if !ok {
		p.addQuery(p.key, Static[string]{})
		return stateEnd, nil
	}

	switch tok.Kind {
	case TokenLiteral:
		p.pos++
		p.addQuery(p.key, Static[string]{Value: decodeQuery(tok.Text)})
	case TokenParam:
		p.pos++
		p.addQuery(p.key, Param[string]{Index: tok.Index})
	default:
		if !tok.is(consts.Ampersand) && !tok.is(consts.Hash) {
			return stateEnd, p.fail(RegionQuery, tok, "invalid character in query value", "query value", "&", "#")
		}
		// "?a=&b=1": empty value
		p.addQuery(p.key, Static[string]{})
	}

	return p.afterQueryValue()
}

// afterQueryValue expects the end of a query entry.
func (p *parser) afterQueryValue() (state, error) {
	tok, ok := p.peek()
	if !ok {
		return stateEnd, nil
	}

	switch {
	case tok.is(consts.Ampersand):
		p.pos++
		return stateQueryKey, nil
	case tok.is(consts.Hash):
		p.pos++
		return stateFragment, nil
	}
	return stateEnd, p.fail(RegionQuery, tok, "query value must end with '&' or '#'", "&", "#")
}

// fragment reads the single literal or placeholder after "#".
// The fragment is always the last region of a URL.
func (p *parser) fragment() (state, error) {
	tok, ok := p.peek()
	if !ok {
		return stateEnd, nil
	}

	switch tok.Kind {
	case TokenLiteral:
		p.result.Fragment = Static[string]{Value: escapeStaticFragment(tok.Text)}
	case TokenParam:
		p.result.Fragment = Param[string]{Index: tok.Index}
	default:
		return stateEnd, p.fail(RegionFragment, tok, "fragment must be text or a placeholder")
	}
	p.pos++

	if next, ok := p.peek(); ok {
		return stateEnd, p.fail(RegionFragment, next, "fragment must be the last part of the url")
	}
	return stateEnd, nil
}

func (p *parser) addQuery(key string, value Part[string]) {
	p.result.Queries = append(p.result.Queries, Query{Key: key, Value: value})
}

func (p *parser) peek() (Token, bool) {
	return p.peekAt(0)
}

// peekAt returns the token n positions after the current one.
func (p *parser) peekAt(n int) (Token, bool) {
	if p.pos+n >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos+n], true
}

// fail builds the ParseError for an unexpected token.
// tok is the zero Token at the end of the template.
func (p *parser) fail(region Region, tok Token, msg string, expected ...string) error {
	return &ParseError{
		Region:   region,
		Token:    tok.String(),
		Expected: expected,
		Msg:      msg,
	}
}

// stringPart converts a literal or placeholder token to a Part.
func stringPart(tok Token) Part[string] {
	if tok.Kind == TokenParam {
		return Param[string]{Index: tok.Index}
	}
	return Static[string]{Value: tok.Text}
}

func parsePort(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < consts.MinPort || n > consts.MaxPort {
		return 0, false
	}
	return n, true
}

// pathBuilder collects path parts, merging adjacent static text.
type pathBuilder struct {
	parts   []Part[string]
	pending strings.Builder
}

func (b *pathBuilder) addStatic(s string) {
	b.pending.WriteString(s)
}

func (b *pathBuilder) addParam(index int) {
	b.flush()
	b.parts = append(b.parts, Param[string]{Index: index})
}

// flush encodes the pending static text and appends it as one part.
func (b *pathBuilder) flush() {
	if b.pending.Len() == 0 {
		return
	}
	b.parts = append(b.parts, Static[string]{Value: escapeStaticPath(b.pending.String())})
	b.pending.Reset()
}

func (b *pathBuilder) build() []Part[string] {
	b.flush()
	if b.parts == nil {
		return []Part[string]{}
	}
	return b.parts
}
