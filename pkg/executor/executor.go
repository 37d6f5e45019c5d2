// Package executor builds and dispatches HTTP requests from stored templates:
// variable resolution, authentication, body encoding, transport, and
// response normalization.
package executor

import (
	"bytes"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/surge-http/surge/pkg/model"
	"github.com/surge-http/surge/pkg/vars"
)

// DefaultTimeout is used when the configuration does not specify one.
const DefaultTimeout = 30 * time.Second

// Executor dispatches requests over a configured HTTP client.
type Executor struct {
	client *http.Client
}

// New builds an Executor whose transport honours the configuration: timeout,
// redirect policy, TLS validation, and proxy.
func New(cfg model.Config) *Executor {
	timeout := DefaultTimeout
	if cfg.DefaultTimeout > 0 {
		timeout = time.Duration(cfg.DefaultTimeout) * time.Millisecond
	}

	transport := &http.Transport{}
	if !cfg.ValidateSSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if cfg.ProxyURL != "" {
		if proxyURL, err := url.Parse(cfg.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	if !cfg.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Executor{client: client}
}

// NewWithClient builds an Executor over a caller-supplied client. Used by
// tests and by callers that manage their own transport.
func NewWithClient(client *http.Client) *Executor {
	return &Executor{client: client}
}

// Execute runs the full pipeline for req against the merged variable map and
// returns the normalized response. Any HTTP status is a successful transport
// outcome; only the absence of a response raises an ExecutionError.
func (e *Executor) Execute(req *model.Request, v map[string]string) (*model.Response, error) {
	resolvedURL := vars.Resolve(req.URL, v)
	if strings.TrimSpace(resolvedURL) == "" {
		return nil, &ValidationError{Reason: "url is empty"}
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))

	query := make(map[string]string)
	for _, p := range req.Params {
		if p.Enabled {
			query[p.Key] = vars.Resolve(p.Value, v)
		}
	}

	headers := make(map[string]string)
	for _, h := range req.Headers {
		if h.Enabled {
			headers[h.Key] = vars.Resolve(h.Value, v)
		}
	}

	ApplyAuth(headers, query, req.Auth, v)

	var bodyReader io.Reader
	if methodCarriesBody(method) && req.Body != nil {
		encoded := EncodeBody(req.Body, v)
		if encoded.Payload != nil {
			bodyReader = bytes.NewReader(encoded.Payload)
		}
		if encoded.ContentTypeHint != "" && !hasContentType(headers) {
			headers["Content-Type"] = encoded.ContentTypeHint
		}
	}

	httpReq, err := http.NewRequest(method, resolvedURL, bodyReader)
	if err != nil {
		return nil, &ExecutionError{URL: resolvedURL, Err: err}
	}

	if len(query) > 0 {
		q := httpReq.URL.Query()
		for key, value := range query {
			q.Set(key, value)
		}
		httpReq.URL.RawQuery = q.Encode()
	}
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	startTime := time.Now()
	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &ExecutionError{URL: resolvedURL, Err: err}
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &ExecutionError{URL: resolvedURL, Err: err}
	}
	elapsed := time.Since(startTime)

	respHeaders := make(map[string]string)
	for key, values := range httpResp.Header {
		respHeaders[key] = strings.Join(values, ", ")
	}

	return &model.Response{
		Status:     httpResp.StatusCode,
		StatusText: statusText(httpResp),
		Headers:    respHeaders,
		Data:       string(bodyBytes),
		Time:       elapsed.Milliseconds(),
		Size:       int64(len(bodyBytes)),
	}, nil
}

// hasContentType reports whether a Content-Type header was explicitly set,
// case-insensitively.
func hasContentType(headers map[string]string) bool {
	for key := range headers {
		if strings.EqualFold(key, "Content-Type") {
			return true
		}
	}
	return false
}

// statusText strips the leading status code from the stdlib status line
// ("200 OK" -> "OK").
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	parts := strings.SplitN(resp.Status, " ", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return resp.Status
}
