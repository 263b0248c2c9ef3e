package transfer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
)

// UploadContentType is the Content-Type of every Post and Put body, whatever
// the local file name.
const UploadContentType = "application/octet-stream"

// AuthPolicy maps each operation to whether it sends the Authorization header
// when credentials are configured. Operations missing from the map are sent
// without credentials.
type AuthPolicy map[Operation]bool

// DefaultAuthPolicy returns the policy used by the WebStore server: writes and
// deletes are authenticated, reads are anonymous.
func DefaultAuthPolicy() AuthPolicy {
	return AuthPolicy{
		OpFetch:   false,
		OpCreate:  true,
		OpReplace: true,
		OpDelete:  true,
	}
}

// RequiresAuth reports whether op carries credentials under this policy.
func (p AuthPolicy) RequiresAuth(op Operation) bool {
	return p[op]
}

// ResolveURL resolves remotePath against baseURL using RFC 3986 reference
// resolution. A remote path starting with "/" replaces the base path; any
// other path is resolved relative to the base, so a base without a trailing
// slash loses its last segment.
func ResolveURL(baseURL, remotePath string) (*url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	return resolve(base, remotePath)
}

func resolve(base *url.URL, remotePath string) (*url.URL, error) {
	if remotePath == "" {
		return nil, fmt.Errorf("remote: %w", ErrEmptyPath)
	}
	ref, err := url.Parse(remotePath)
	if err != nil {
		return nil, fmt.Errorf("parse remote path: %w", err)
	}
	return base.ResolveReference(ref), nil
}

// buildRequest assembles the descriptor for one operation. For Post and Put the
// local file is read in full here, so a missing file fails before any network
// activity.
func (c *Client) buildRequest(op Operation, remotePath, localPath string) (*RequestDescriptor, error) {
	desc := &RequestDescriptor{
		Operation: op,
		Method:    op.Method(),
		Header:    make(http.Header),
	}

	if op.hasBody() {
		if localPath == "" {
			return nil, fmt.Errorf("local: %w", ErrEmptyPath)
		}
		content, err := os.ReadFile(localPath) //#nosec G304 -- localPath is user-provided input
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLocalFileNotFound, localPath, err)
		}
		desc.Body = content
		desc.Header.Set("Content-Type", UploadContentType)
	}

	target, err := resolve(c.baseURL, remotePath)
	if err != nil {
		return nil, err
	}
	desc.URL = target

	if creds := c.config.Credentials; creds != nil && c.authPolicy.RequiresAuth(op) {
		desc.Header.Set("Authorization", basicAuth(creds))
	}

	return desc, nil
}

// basicAuth returns the Authorization header value for creds.
func basicAuth(creds *Credentials) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds.String()))
}

// httpRequest converts the descriptor into an *http.Request.
func (d *RequestDescriptor) httpRequest(ctx context.Context) (*http.Request, error) {
	var req *http.Request
	var err error
	if d.Operation.hasBody() {
		req, err = http.NewRequestWithContext(ctx, d.Method, d.URL.String(), bytes.NewReader(d.Body))
	} else {
		req, err = http.NewRequestWithContext(ctx, d.Method, d.URL.String(), http.NoBody)
	}
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for name, values := range d.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	return req, nil
}
