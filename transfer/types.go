package transfer

import (
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the server address used when none is configured.
const DefaultBaseURL = "http://localhost:4500/"

// Operation identifies one of the remote file operations.
type Operation int

const (
	OpFetch Operation = iota
	OpCreate
	OpReplace
	OpDelete
)

// Method returns the HTTP verb for the operation.
func (o Operation) Method() string {
	switch o {
	case OpCreate:
		return http.MethodPost
	case OpReplace:
		return http.MethodPut
	case OpDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

func (o Operation) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpCreate:
		return "create"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// progressive is used in diagnostics: "Error <progressive> file: ...".
func (o Operation) progressive() string {
	switch o {
	case OpCreate:
		return "creating"
	case OpReplace:
		return "updating"
	case OpDelete:
		return "deleting"
	default:
		return "getting"
	}
}

// hasBody reports whether the operation uploads a local file.
func (o Operation) hasBody() bool {
	return o == OpCreate || o == OpReplace
}

// Credentials holds a Basic authentication pair.
type Credentials struct {
	Username string
	Password string
}

// ParseCredentials parses a "username:password" string. The string is split at
// the first colon, so passwords may contain colons. An empty string yields nil
// credentials and no error.
func ParseCredentials(s string) (*Credentials, error) {
	if s == "" {
		return nil, nil
	}
	username, password, ok := strings.Cut(s, ":")
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return &Credentials{Username: username, Password: password}, nil
}

// String returns the credentials in "username:password" form.
func (c *Credentials) String() string {
	return c.Username + ":" + c.Password
}

// Options controls how responses are displayed.
type Options struct {
	IncludeHeaders bool
	OutputPath     string
}

// Config holds the client configuration for a single invocation.
type Config struct {
	BaseURL     string
	Credentials *Credentials // nil means unauthenticated
	Options     Options
}

// WithDefaults returns a copy of the config with default values applied.
// If BaseURL is empty, it defaults to DefaultBaseURL.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if c.Credentials != nil {
		creds := *c.Credentials
		cfg.Credentials = &creds
	}
	return &cfg
}

// RequestDescriptor is everything needed to send one request.
type RequestDescriptor struct {
	Operation Operation
	Method    string
	URL       *url.URL
	Header    http.Header
	Body      []byte // nil for Get and Delete
}

// HeaderField is a single response header line.
type HeaderField struct {
	Name  string
	Value string
}

// ResponseOutcome is a fully read server response.
type ResponseOutcome struct {
	StatusCode int
	Headers    []HeaderField
	Body       []byte
}

// Successful reports whether the status code is in the 2xx range.
func (r *ResponseOutcome) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Text returns the body decoded as UTF-8. Invalid sequences are replaced with
// U+FFFD.
func (r *ResponseOutcome) Text() string {
	return strings.ToValidUTF8(string(r.Body), "\uFFFD")
}
