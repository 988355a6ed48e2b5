// Package backend manages the pooled HTTP session to the research data
// backend and exposes one client method per backend capability.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hetu-project/openresearch-mcp-server/internal/common"
)

// Status represents the lifecycle of the managed backend session.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

// Connection pool sizing for the backend transport.
const (
	maxIdleConns        = 100
	maxIdleConnsPerHost = 30
	idleConnTimeout     = 30 * time.Second
)

// maxErrorBodySize caps how much of an error response body is kept for
// diagnostics.
const maxErrorBodySize = 500

// maxResponseSize caps the response body to prevent OOM from unexpectedly
// large responses.
const maxResponseSize = 50 << 20 // 50MB

// Session wraps one pooled connection to the backend. It is created and
// replaced only by SessionManager; once published its pooled transport is
// safe for concurrent request issuance.
type Session struct {
	client    *http.Client
	transport *http.Transport
	createdAt time.Time
	closed    atomic.Bool
}

// newSession constructs a Session with a bounded, keep-alive connection pool.
func newSession(timeout time.Duration) *Session {
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
	}
	return &Session{
		client:    &http.Client{Transport: transport, Timeout: timeout},
		transport: transport,
		createdAt: time.Now(),
	}
}

// Closed reports whether the session has been invalidated.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// Close invalidates the session and releases its pooled connections.
// Idempotent and safe to call while requests are in flight; in-flight
// exchanges complete on their own connections.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.transport.CloseIdleConnections()
}

// Descriptor describes one HTTP exchange with the backend.
type Descriptor struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// SessionManager owns the lifecycle of the backend session: it lazily
// creates one on first use, reuses it across concurrent requests, and
// replaces it after disconnection without blocking callers on the close of
// the superseded session.
type SessionManager struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	logger    *common.Logger

	// current is read lock-free on the Connect fast path; mu serializes the
	// check-create-publish sequence so at most one session is constructed.
	mu      sync.Mutex
	current atomic.Pointer[Session]

	// generation counts session constructions over the manager's lifetime.
	generation atomic.Int64
}

// NewSessionManager creates a session manager for the given backend origin.
// No connection is established until Connect or the first Request.
func NewSessionManager(baseURL string, timeout time.Duration, userAgent string, logger *common.Logger) *SessionManager {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &SessionManager{
		baseURL:   trimTrailingSlash(baseURL),
		timeout:   timeout,
		userAgent: userAgent,
		logger:    logger,
	}
}

func trimTrailingSlash(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}

// Connect ensures a current valid session exists. When one is already open
// it returns immediately without taking the lock. Otherwise the lock is
// acquired and the condition re-checked: exactly one caller constructs the
// new session, the rest observe it after waiting on the lock. Any
// superseded session is closed in the background and never awaited.
func (m *SessionManager) Connect(ctx context.Context) error {
	if s := m.current.Load(); s != nil && !s.Closed() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check: another caller may have connected while we waited.
	if s := m.current.Load(); s != nil && !s.Closed() {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return NewError(KindConnection, "connect", "connect cancelled", err)
	}

	if _, err := url.ParseRequestURI(m.baseURL); err != nil {
		m.current.Store(nil)
		m.logger.Error().Str("base_url", m.baseURL).Str("error", err.Error()).Msg("failed to create backend session")
		return NewError(KindConnection, "connect", fmt.Sprintf("invalid backend URL %q", m.baseURL), err)
	}

	old := m.current.Load()
	m.current.Store(newSession(m.timeout))
	gen := m.generation.Add(1)

	// Superseded sessions close in the background; a slow close never
	// delays new requests.
	if old != nil && !old.Closed() {
		go old.Close()
	}

	m.logger.Info().Str("base_url", m.baseURL).Int64("generation", gen).Msg("backend session connected")
	return nil
}

// Generation returns how many sessions have been constructed over the
// manager's lifetime. Used by diagnostics and tests.
func (m *SessionManager) Generation() int64 {
	return m.generation.Load()
}

// Disconnect closes and unsets the current session. Idempotent.
func (m *SessionManager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.current.Swap(nil); s != nil {
		s.Close()
		m.logger.Info().Msg("backend session disconnected")
	}
}

// Status reports the observable session state.
func (m *SessionManager) Status() Status {
	if s := m.current.Load(); s != nil && !s.Closed() {
		return StatusConnected
	}
	// The Connecting window exists only while the creation lock is held.
	if !m.mu.TryLock() {
		return StatusConnecting
	}
	m.mu.Unlock()
	return StatusDisconnected
}

// SessionCreatedAt returns the creation time of the current session, or the
// zero time when disconnected. Used by diagnostics.
func (m *SessionManager) SessionCreatedAt() time.Time {
	if s := m.current.Load(); s != nil && !s.Closed() {
		return s.createdAt
	}
	return time.Time{}
}

// Request ensures a session exists, performs the HTTP exchange described by
// desc, and returns the raw response body. Failures are categorized:
// deadline expiry maps to KindTimeout, other transport failures to
// KindConnection, non-2xx responses to KindHTTPStatus. Individual requests
// run concurrently over the shared pooled session.
func (m *SessionManager) Request(ctx context.Context, desc Descriptor) ([]byte, error) {
	if err := m.Connect(ctx); err != nil {
		return nil, err
	}

	session := m.current.Load()
	if session == nil {
		return nil, NewError(KindConnection, "request", "no backend session", nil)
	}

	u := m.baseURL + desc.Path
	if len(desc.Query) > 0 {
		u += "?" + desc.Query.Encode()
	}

	var bodyReader io.Reader
	if desc.Body != nil {
		data, err := json.Marshal(desc.Body)
		if err != nil {
			return nil, NewError(KindDecode, "request", "failed to marshal request body", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, u, bodyReader)
	if err != nil {
		return nil, NewError(KindConnection, "request", "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", m.userAgent)

	m.logger.Debug().Str("method", desc.Method).Str("url", u).Msg("backend request")

	start := time.Now()
	resp, err := session.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		kind := KindConnection
		if isTimeout(err) {
			kind = KindTimeout
		}
		m.logger.Error().Str("method", desc.Method).Str("url", u).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("backend request failed")
		return nil, NewError(kind, "request", fmt.Sprintf("%s %s failed", desc.Method, desc.Path), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, NewError(KindConnection, "request", "failed to read response", err)
	}

	m.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("backend response")

	if resp.StatusCode >= 400 {
		detail := string(body)
		if len(detail) > maxErrorBodySize {
			detail = detail[:maxErrorBodySize]
		}
		return nil, &Error{
			Kind:    KindHTTPStatus,
			Op:      "request",
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("backend returned %d: %s", resp.StatusCode, detail),
		}
	}

	return body, nil
}

// isTimeout reports whether err is a deadline/timeout failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// decodeJSON unmarshals a backend response body, mapping failures to
// KindDecode.
func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return NewError(KindDecode, "", "invalid JSON response", err)
	}
	return nil
}
