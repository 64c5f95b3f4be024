package consts

// URL separators recognized by the template tokenizer.
const (
	SchemeDelimiter = "://"
	SchemeRelative  = "//"
	Colon           = ":"
	FwdSlash        = "/"
	Question        = "?"
	Ampersand       = "&"
	Equals          = "="
	Hash            = "#"
	At              = "@"
)

const (
	RuneColon    = ':'
	RuneFwdSlash = '/'
	RuneQuestion = '?'
	RuneAmp      = '&'
	RuneEquals   = '='
	RuneHash     = '#'
	RuneAt       = '@'
)

const (
	// Placeholder marks a value position in a pattern string such as "https://{}/users/{}".
	Placeholder = "{}"

	MinPort = 1
	MaxPort = 65535
)
