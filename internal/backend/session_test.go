package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hetu-project/openresearch-mcp-server/internal/common"
)

func newTestManager(t *testing.T, baseURL string, timeout time.Duration) *SessionManager {
	t.Helper()
	return NewSessionManager(baseURL, timeout, "openresearch-mcp-test/0.0", common.NewSilentLogger())
}

func TestConnect_SingleConstructionUnderConcurrency(t *testing.T) {
	m := newTestManager(t, "http://localhost:9", 5*time.Second)

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.Connect(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("connect %d failed: %v", i, err)
		}
	}
	if got := m.Generation(); got != 1 {
		t.Errorf("expected exactly 1 session construction, got %d", got)
	}
	if m.Status() != StatusConnected {
		t.Errorf("expected connected status, got %s", m.Status())
	}
}

func TestConnect_IdempotentWhenConnected(t *testing.T) {
	m := newTestManager(t, "http://localhost:9", 5*time.Second)

	for i := 0; i < 5; i++ {
		if err := m.Connect(context.Background()); err != nil {
			t.Fatalf("connect %d failed: %v", i, err)
		}
	}
	if got := m.Generation(); got != 1 {
		t.Errorf("expected 1 construction after repeated connects, got %d", got)
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	m := newTestManager(t, "://not-a-url", time.Second)

	err := m.Connect(context.Background())
	if err == nil {
		t.Fatal("expected error for invalid backend URL")
	}
	if !IsKind(err, KindConnection) {
		t.Errorf("expected connection kind, got %v", err)
	}
	if m.Status() != StatusDisconnected {
		t.Errorf("expected disconnected after failed construction, got %s", m.Status())
	}

	// Each subsequent caller retries construction on its own call.
	if err := m.Connect(context.Background()); err == nil {
		t.Error("expected subsequent connect to fail again")
	}
}

func TestDisconnect_Idempotent(t *testing.T) {
	m := newTestManager(t, "http://localhost:9", time.Second)

	m.Disconnect() // never connected

	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	m.Disconnect()
	m.Disconnect()

	if m.Status() != StatusDisconnected {
		t.Errorf("expected disconnected, got %s", m.Status())
	}
}

func TestRequest_ReconnectAfterDisconnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	m := newTestManager(t, srv.URL, 5*time.Second)

	if _, err := m.Request(context.Background(), Descriptor{Method: http.MethodGet, Path: "/health"}); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if got := m.Generation(); got != 1 {
		t.Fatalf("expected 1 construction, got %d", got)
	}

	m.Disconnect()

	if _, err := m.Request(context.Background(), Descriptor{Method: http.MethodGet, Path: "/health"}); err != nil {
		t.Fatalf("request after disconnect failed: %v", err)
	}
	if got := m.Generation(); got != 2 {
		t.Errorf("expected exactly one new construction after disconnect, got %d total", got)
	}
}

func TestRequest_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m := newTestManager(t, srv.URL, 50*time.Millisecond)

	_, err := m.Request(context.Background(), Descriptor{Method: http.MethodGet, Path: "/slow"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsKind(err, KindTimeout) {
		t.Errorf("expected timeout kind, got %v", err)
	}
}

func TestRequest_TimeoutDoesNotInvalidateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(300 * time.Millisecond)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m := newTestManager(t, srv.URL, 100*time.Millisecond)

	var wg sync.WaitGroup
	var slowErr, fastErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, slowErr = m.Request(context.Background(), Descriptor{Method: http.MethodGet, Path: "/slow"})
	}()
	go func() {
		defer wg.Done()
		_, fastErr = m.Request(context.Background(), Descriptor{Method: http.MethodGet, Path: "/fast"})
	}()
	wg.Wait()

	if slowErr == nil {
		t.Error("expected slow request to time out")
	}
	if fastErr != nil {
		t.Errorf("fast request should not be affected: %v", fastErr)
	}
	if m.Status() != StatusConnected {
		t.Errorf("timeout must not invalidate the session, got %s", m.Status())
	}
	if got := m.Generation(); got != 1 {
		t.Errorf("expected no reconstruction after timeout, got %d", got)
	}
}

func TestRequest_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("service unavailable"))
	}))
	defer srv.Close()

	m := newTestManager(t, srv.URL, time.Second)

	_, err := m.Request(context.Background(), Descriptor{Method: http.MethodGet, Path: "/anything"})
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Kind != KindHTTPStatus {
		t.Errorf("expected http_status kind, got %s", e.Kind)
	}
	if e.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", e.Status)
	}
	if want := "service unavailable"; !strings.Contains(e.Message, want) {
		t.Errorf("expected message to contain %q, got %q", want, e.Message)
	}
}

func TestRequest_SendsHeaders(t *testing.T) {
	var gotUA, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCT = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m := newTestManager(t, srv.URL, time.Second)

	if _, err := m.Request(context.Background(), Descriptor{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotUA != "openresearch-mcp-test/0.0" {
		t.Errorf("expected custom user agent, got %q", gotUA)
	}
	if gotCT != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotCT)
	}
}

func TestRequest_ConcurrentOverOneSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	m := newTestManager(t, srv.URL, 5*time.Second)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Request(context.Background(), Descriptor{Method: http.MethodGet, Path: "/"})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}
	if got := m.Generation(); got != 1 {
		t.Errorf("concurrent requests must share one session, got %d constructions", got)
	}
}
