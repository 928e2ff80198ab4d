package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/buildinfo"
	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/dmitrijs2005/zatyshok/internal/client/session"
	"github.com/dmitrijs2005/zatyshok/internal/common"
	"github.com/dmitrijs2005/zatyshok/internal/logging"
	"github.com/dmitrijs2005/zatyshok/internal/netx"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const defaultCredentialsError = "Invalid credentials"

// Options configures an HTTPClient. BaseURL and Store are required.
type Options struct {
	BaseURL  string
	AppToken string
	// Version defaults to buildinfo.Version.
	Version string
	Store   session.Store
	Logger  logging.Logger
	HTTP    *http.Client
	// Timeout bounds each call; 0 leaves the transport default.
	Timeout         time.Duration
	SerializeWrites bool

	// OnSessionExpired runs after a 401/403 cleared the session.
	OnSessionExpired func(ctx context.Context)
	// OnVersionRejected runs on a 426 response.
	OnVersionRejected func(ctx context.Context)
}

type HTTPClient struct {
	baseURL  string
	appToken string
	version  string
	store    session.Store
	log      logging.Logger
	http     *http.Client
	timeout  time.Duration
	gate     *writeGate

	onSessionExpired  func(ctx context.Context)
	onVersionRejected func(ctx context.Context)

	teardownMu sync.Mutex
}

// tornDownHeader marks a response whose rejection was already handled.
// It never leaves the process.
const tornDownHeader = "X-Zatyshok-Session-Cleared"

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	if opts.Store == nil {
		return nil, errors.New("session store is required")
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", opts.BaseURL)
	}

	c := &HTTPClient{
		baseURL:           strings.TrimRight(opts.BaseURL, "/"),
		appToken:          opts.AppToken,
		version:           opts.Version,
		store:             opts.Store,
		log:               opts.Logger,
		http:              opts.HTTP,
		timeout:           opts.Timeout,
		onSessionExpired:  opts.OnSessionExpired,
		onVersionRejected: opts.OnVersionRejected,
	}
	if c.version == "" {
		c.version = buildinfo.Version
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if opts.SerializeWrites {
		c.gate = newWriteGate()
	}
	return c, nil
}

// BuildHeaders returns the headers for an authenticated call. A missing
// session still sends an empty Authorization value; the server decides.
func (c *HTTPClient) BuildHeaders(ctx context.Context, jsonBody bool) http.Header {
	h := c.baseHeaders(jsonBody)

	token := ""
	sess, err := c.store.Get(ctx)
	if err != nil {
		c.log.Warn(ctx, "session store read failed", "error", err)
	} else if sess.Active() {
		token = common.BearerPrefix + sess.Token
	}
	h.Set(common.AuthorizationHeaderName, token)
	return h
}

func (c *HTTPClient) baseHeaders(jsonBody bool) http.Header {
	h := http.Header{}
	h.Set(common.AppTokenHeaderName, c.appToken)
	h.Set(common.AppVersionHeaderName, c.version)
	h.Set(common.RequestIDHeaderName, uuid.NewString())
	if jsonBody {
		h.Set(common.ContentTypeHeaderName, common.MIMEApplication)
	}
	return h
}

// CheckVersionError raises the version notice on 426 and reports whether
// it did.
func (c *HTTPClient) CheckVersionError(ctx context.Context, resp *http.Response) bool {
	if resp == nil || resp.StatusCode != http.StatusUpgradeRequired {
		return false
	}
	c.log.Warn(ctx, "client version rejected", "version", c.version)
	if c.onVersionRejected != nil {
		c.onVersionRejected(ctx)
	}
	return true
}

// CheckAuthError clears the session and fires the expiry hook on 401/403.
// It reports whether the response was a rejection; the teardown itself runs
// once per response.
func (c *HTTPClient) CheckAuthError(ctx context.Context, resp *http.Response) bool {
	if resp == nil {
		return false
	}
	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return false
	}
	c.teardownMu.Lock()
	if resp.Header.Get(tornDownHeader) != "" {
		c.teardownMu.Unlock()
		return true
	}
	if resp.Header == nil {
		resp.Header = http.Header{}
	}
	resp.Header.Set(tornDownHeader, "1")
	c.teardownMu.Unlock()

	c.log.Warn(ctx, "session rejected by server", "status", resp.StatusCode)
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired(ctx)
	}
	return true
}

// send issues one request and reads the whole body. Only transport
// failures are returned as errors.
func (c *HTTPClient) send(ctx context.Context, method, path string, body any, authed bool) (*http.Response, []byte, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, nil, &Error{Kind: KindTransport, Err: err}
	}
	if authed {
		req.Header = c.BuildHeaders(ctx, body != nil)
	} else {
		req.Header = c.baseHeaders(body != nil)
	}
	requestID := req.Header.Get(common.RequestIDHeaderName)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		reason := netx.Reason(err)
		c.log.Warn(ctx, "request failed",
			"method", method, "path", path, "request_id", requestID, "reason", reason, "error", err)
		return nil, nil, &Error{Kind: KindTransport, Detail: reason, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn(ctx, "reading response body failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return nil, nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Detail: netx.Reason(err), Err: err}
	}

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "request_id", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(started))
	return resp, data, nil
}

// Get fetches path and decodes it into out. It never fails: the result
// reports whether out was filled. A 426 body is still decoded.
func (c *HTTPClient) Get(ctx context.Context, path string, out any) bool {
	resp, data, err := c.send(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return false
	}
	c.CheckAuthError(ctx, resp)
	outdated := c.CheckVersionError(ctx, resp)

	if !netx.IsSuccess(resp.StatusCode) && !outdated {
		c.log.Info(ctx, "read degraded to empty", "path", path, "status", resp.StatusCode)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn(ctx, "undecodable response", "path", path, "error", err)
		return false
	}
	return true
}

// getList decodes a JSON array record by record; a record that does not
// decode is logged and skipped.
func getList[T any](ctx context.Context, c *HTTPClient, path string) []T {
	var raw []json.RawMessage
	if !c.Get(ctx, path, &raw) {
		return []T{}
	}
	out := make([]T, 0, len(raw))
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			c.log.Warn(ctx, "skipping undecodable record", "path", path, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// Post sends body as JSON and decodes the reply into out when out is not
// nil and the reply is not empty.
func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	release, err := c.gate.acquire(ctx, path)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer release()

	resp, data, err := c.send(ctx, http.MethodPost, path, body, true)
	if err != nil {
		return err
	}
	if c.CheckAuthError(ctx, resp) {
		return &Error{Kind: KindAuthRejected, Status: resp.StatusCode, Detail: errorText(data)}
	}
	outdated := c.CheckVersionError(ctx, resp)

	if !netx.IsSuccess(resp.StatusCode) && !outdated {
		return &Error{Kind: KindUnexpectedStatus, Status: resp.StatusCode, Detail: errorText(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if outdated {
			return nil
		}
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// Delete removes the resource at path. Any non-2xx status is a
// KindDeleteFailed error; a 401/403 also tears the session down.
func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	release, err := c.gate.acquire(ctx, path)
	if err != nil {
		return &Error{Kind: KindDeleteFailed, Err: err}
	}
	defer release()

	resp, data, err := c.send(ctx, http.MethodDelete, path, nil, true)
	if err != nil {
		return &Error{Kind: KindDeleteFailed, Err: err}
	}

	var cause error
	switch {
	case c.CheckAuthError(ctx, resp):
		cause = ErrAuthRejected
	case c.CheckVersionError(ctx, resp):
		cause = ErrVersionRejected
	}
	if !netx.IsSuccess(resp.StatusCode) {
		c.log.Warn(ctx, "delete failed", "path", path, "status", resp.StatusCode)
		return &Error{Kind: KindDeleteFailed, Status: resp.StatusCode, Detail: errorText(data), Err: cause}
	}
	return nil
}

func (c *HTTPClient) Calendar(ctx context.Context) []models.Entry {
	return getList[models.Entry](ctx, c, common.PathCalendar)
}

func (c *HTTPClient) Moods(ctx context.Context) []models.MoodRecord {
	return getList[models.MoodRecord](ctx, c, common.PathMoods)
}

// AddEntry posts a draft and returns the created entry when the server
// echoes it, nil otherwise.
func (c *HTTPClient) AddEntry(ctx context.Context, draft models.EntryDraft) (*models.Entry, error) {
	var raw json.RawMessage
	if err := c.Post(ctx, common.PathCalendar, draft, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var created models.Entry
	if err := json.Unmarshal(raw, &created); err != nil {
		c.log.Debug(ctx, "create reply is not an entry", "error", err)
		return nil, nil
	}
	return &created, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, id int64) error {
	return c.Delete(ctx, common.PathCalendar+"/"+strconv.FormatInt(id, 10))
}

func (c *HTTPClient) AddMood(ctx context.Context, rec models.MoodRecord) error {
	return c.Post(ctx, common.PathMoods, rec, nil)
}

// Login exchanges credentials for a session. It sends no bearer and does
// not tear anything down on 401: a rejection here means bad credentials.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.Session, error) {
	resp, data, err := c.send(ctx, http.MethodPost, common.PathLogin,
		models.Credentials{Username: username, Password: password}, false)
	if err != nil {
		return models.Session{}, err
	}
	c.CheckVersionError(ctx, resp)

	var reply struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Error    string `json:"error"`
	}
	decodeErr := json.Unmarshal(data, &reply)

	if !netx.IsSuccess(resp.StatusCode) || reply.Error != "" {
		return models.Session{}, credentialsError(resp.StatusCode, data)
	}
	if decodeErr != nil {
		return models.Session{}, &Error{Kind: KindTransport, Status: resp.StatusCode, Err: decodeErr}
	}
	if reply.Token == "" {
		return models.Session{}, &Error{Kind: KindDecode, Status: resp.StatusCode, Detail: "reply carries no token"}
	}

	sess := models.Session{Token: reply.Token, Username: reply.Username}
	if sess.Username == "" {
		sess.Username = username
	}
	return sess, nil
}

// Register creates an account and returns the server's message.
func (c *HTTPClient) Register(ctx context.Context, username, password string) (string, error) {
	resp, data, err := c.send(ctx, http.MethodPost, common.PathRegister,
		models.Credentials{Username: username, Password: password}, false)
	if err != nil {
		return "", err
	}
	c.CheckVersionError(ctx, resp)

	var reply struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	decodeErr := json.Unmarshal(data, &reply)

	if !netx.IsSuccess(resp.StatusCode) || reply.Error != "" {
		return "", credentialsError(resp.StatusCode, data)
	}
	if decodeErr != nil {
		return "", &Error{Kind: KindTransport, Status: resp.StatusCode, Err: decodeErr}
	}
	return reply.Message, nil
}

// Ping hits the root endpoint and returns its message.
func (c *HTTPClient) Ping(ctx context.Context) (string, error) {
	resp, data, err := c.send(ctx, http.MethodGet, common.PathRoot, nil, true)
	if err != nil {
		return "", err
	}
	c.CheckVersionError(ctx, resp)

	var reply models.MessageReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return "", &Error{Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return reply.Message, nil
}

// credentialsError turns a failed login/register reply into a tagged
// error. A body that is not JSON means something other than the API
// answered, which counts as unreachable.
func credentialsError(status int, data []byte) *Error {
	var reply models.ErrorReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return &Error{Kind: KindTransport, Status: status, Err: err}
	}
	detail := reply.Error
	if detail == "" {
		detail = defaultCredentialsError
	}
	return &Error{Kind: KindCredentials, Status: status, Detail: detail}
}

// errorText extracts the {error} field of a failure body.
func errorText(data []byte) string {
	var reply models.ErrorReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return ""
	}
	return reply.Error
}
