package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bassista/go_sitework/internal/logger"
	"github.com/bassista/go_sitework/internal/metrics"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 32 << 20

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is the maximum number of requests per second; zero disables limiting.
	RateLimit float64
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

// Client issues requests against one fixed backend origin.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
}

// Request describes one backend call.
type Request struct {
	Method string
	// Path is a route template such as "/v1/get-user/{id}"; placeholders are
	// filled from Params. The template is also the metrics label.
	Path   string
	Params map[string]string
	Query  url.Values
	// Body is sent as JSON. Ignored when Form is set.
	Body   any
	Form   *Multipart
	Header http.Header
	// Auth requires a bearer token in the context.
	Auth bool
	// Field names the JSON path of the payload decoded into out; empty means
	// the whole body.
	Field string
}

// New builds a client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	c := &Client{baseURL: base, timeout: timeout, http: hc}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadURL returns the public URL of an uploaded file, e.g. kind "workThumbnail".
func (c *Client) UploadURL(kind, name string) string {
	if name == "" {
		return ""
	}
	return c.baseURL + "/uploads/" + kind + "/" + url.PathEscape(name)
}

// Do performs req and decodes the designated payload into out (which may be nil).
// Every failure is returned as *Error.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	log := logger.WithComponent("backend")

	token, hasToken := TokenFrom(ctx)
	if req.Auth && !hasToken {
		log.Debugf("%s %s: no bearer token, request not sent", req.Method, req.Path)
		return MissingToken()
	}

	target, err := c.resolve(req)
	if err != nil {
		return err
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return AsError(err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindTransport, Message: "rate limiter: " + err.Error(), Cause: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "create request: " + err.Error(), Cause: err}
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if hasToken {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.RecordBackendRequest(req.Method, req.Path, 0, time.Since(start))
		log.WithField("request_id", requestID).Warnf("%s %s: %v", req.Method, req.Path, err)
		be := AsError(err)
		if be.Kind == KindTransport && ctx.Err() == context.DeadlineExceeded {
			be.Message = "request timed out"
		}
		return be
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	duration := time.Since(start)
	metrics.RecordBackendRequest(req.Method, req.Path, resp.StatusCode, duration)
	if err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: "read response: " + err.Error(), Cause: err}
	}
	log.WithField("request_id", requestID).Debugf("%s %s -> %d in %v", req.Method, req.Path, resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: serverMessage(payload)}
	}
	if gjson.ValidBytes(payload) {
		if ok := gjson.GetBytes(payload, "success"); ok.Exists() && ok.Type == gjson.False {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: serverMessage(payload)}
		}
	}

	return decodePayload(payload, req.Field, out)
}

func (c *Client) resolve(req Request) (string, error) {
	path := req.Path
	for {
		open := strings.IndexByte(path, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(path[open:], '}')
		if end < 0 {
			return "", Validation("malformed route %q", req.Path)
		}
		key := path[open+1 : open+end]
		value := strings.TrimSpace(req.Params[key])
		if value == "" {
			return "", Validation("%s is required", key)
		}
		path = path[:open] + url.PathEscape(value) + path[open+end+1:]
	}

	target := c.baseURL + path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	return target, nil
}

func encodeBody(req Request) (io.Reader, string, error) {
	if req.Form != nil {
		var buf bytes.Buffer
		ct, err := req.Form.encode(&buf)
		if err != nil {
			return nil, "", err
		}
		return &buf, ct, nil
	}
	if req.Body == nil {
		return nil, "", nil
	}
	raw, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", Validation("encode request body: %v", err)
	}
	return bytes.NewReader(raw), "application/json", nil
}

// serverMessage extracts a human message from a failure body.
func serverMessage(payload []byte) string {
	if !gjson.ValidBytes(payload) {
		text := strings.TrimSpace(string(payload))
		if len(text) > 200 || strings.HasPrefix(text, "<") {
			return ""
		}
		return text
	}
	root := gjson.ParseBytes(payload)
	if root.Type == gjson.String {
		return root.String()
	}
	for _, key := range []string{"message", "error", "msg"} {
		if v := root.Get(key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func decodePayload(payload []byte, field string, out any) error {
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	raw := payload
	if field != "" {
		if !gjson.ValidBytes(payload) {
			return &Error{Kind: KindDecode, Message: ErrDecode.Message}
		}
		res := gjson.GetBytes(payload, field)
		if !res.Exists() || res.Type == gjson.Null {
			return nil
		}
		raw = []byte(res.Raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Message: ErrDecode.Message, Cause: err}
	}
	return nil
}
