package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
)

// ErrorMode selects what a Client does after reporting a failure.
type ErrorMode int

const (
	// ModeReturn writes the diagnostic line and returns the error.
	ModeReturn ErrorMode = iota
	// ModeExit writes the diagnostic line and terminates with status 1.
	ModeExit
)

// Client performs file operations against a WebStore server.
type Client struct {
	config     *Config
	baseURL    *url.URL
	httpClient *http.Client
	authPolicy AuthPolicy
	errorMode  ErrorMode
	exit       func(code int)
	stdout     io.Writer
	stderr     io.Writer
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithAuthPolicy replaces DefaultAuthPolicy.
func WithAuthPolicy(policy AuthPolicy) Option {
	return func(c *Client) {
		c.authPolicy = policy
	}
}

// WithErrorMode sets the failure policy.
func WithErrorMode(mode ErrorMode) Option {
	return func(c *Client) {
		c.errorMode = mode
	}
}

// WithExitFunc sets the function called in ModeExit. Defaults to os.Exit.
func WithExitFunc(exit func(code int)) Option {
	return func(c *Client) {
		c.exit = exit
	}
}

// WithOutput sets the writers for command output and diagnostics.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Client) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new Client with the given config and options.
// The base URL is kept as given; it is not normalized.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBaseURL, cfg.BaseURL)
	}

	c := &Client{
		config:     cfg,
		baseURL:    base,
		httpClient: &http.Client{},
		authPolicy: DefaultAuthPolicy(),
		errorMode:  ModeReturn,
		exit:       os.Exit,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Get downloads remotePath. The body is written to the configured output path,
// or to localPath, or printed as text when neither is set.
func (c *Client) Get(ctx context.Context, remotePath, localPath string) error {
	return c.run(ctx, OpFetch, remotePath, localPath)
}

// Post uploads localPath as a new file at remotePath.
func (c *Client) Post(ctx context.Context, localPath, remotePath string) error {
	return c.run(ctx, OpCreate, remotePath, localPath)
}

// Put uploads localPath to remotePath, creating or replacing it.
func (c *Client) Put(ctx context.Context, localPath, remotePath string) error {
	return c.run(ctx, OpReplace, remotePath, localPath)
}

// Delete removes remotePath from the server.
func (c *Client) Delete(ctx context.Context, remotePath string) error {
	return c.run(ctx, OpDelete, remotePath, "")
}

// run executes one operation and applies the failure policy to its result.
func (c *Client) run(ctx context.Context, op Operation, remotePath, localPath string) error {
	if err := c.execute(ctx, op, remotePath, localPath); err != nil {
		return c.fail(op, err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, op Operation, remotePath, localPath string) error {
	desc, err := c.buildRequest(op, remotePath, localPath)
	if err != nil {
		return err
	}

	outcome, err := c.send(ctx, desc)
	if err != nil {
		return err
	}

	if c.config.Options.IncludeHeaders {
		c.printHeaders(outcome.Headers)
	}

	if !outcome.Successful() {
		return &HTTPError{
			StatusCode: outcome.StatusCode,
			Body:       outcome.Text(),
		}
	}

	return c.render(op, outcome, remotePath, localPath)
}

// send performs the single round trip for desc and reads the whole response.
func (c *Client) send(ctx context.Context, desc *RequestDescriptor) (*ResponseOutcome, error) {
	req, err := desc.httpRequest(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sending request",
		"op", desc.Operation.String(),
		"method", desc.Method,
		"url", desc.URL.Redacted(),
		"body_bytes", len(desc.Body),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("received response",
		"status", resp.StatusCode,
		"body_bytes", len(body),
	)

	return &ResponseOutcome{
		StatusCode: resp.StatusCode,
		Headers:    headerFields(resp.Header),
		Body:       body,
	}, nil
}

// headerFields flattens h into lines ordered by lowercased name. Repeated
// headers are joined with ", ".
func headerFields(h http.Header) []HeaderField {
	fields := make([]HeaderField, 0, len(h))
	for name, values := range h {
		fields = append(fields, HeaderField{
			Name:  strings.ToLower(name),
			Value: strings.Join(values, ", "),
		})
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields
}

// fail reports err on the diagnostic writer and applies the error mode.
func (c *Client) fail(op Operation, err error) error {
	_, _ = fmt.Fprintf(c.stderr, "Error %s file: %v\n", op.progressive(), err)

	if c.errorMode == ModeExit {
		c.exit(1)
	}
	return err
}
