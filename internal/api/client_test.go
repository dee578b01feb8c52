// ABOUTME: Tests for the shared API client and its 401/403 interceptors
// ABOUTME: Verifies bearer injection, refresh de-duplication, and termination

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/produkportal/produk-cli/internal/session"
)

// memStore is an in-memory TokenStore for tests.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func (m *memStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *memStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

func (m *memStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]string{}
}

// recordingNavigator counts navigation side effects.
type recordingNavigator struct {
	mu        sync.Mutex
	expired   int
	forbidden int
}

func (n *recordingNavigator) SessionExpired() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.expired++
}

func (n *recordingNavigator) Forbidden() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.forbidden++
}

func (n *recordingNavigator) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.expired, n.forbidden
}

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"code":200,"message":"ok","data":{"name":"Budi"}}`)
	}))
	defer server.Close()

	tokens := newMemStore()
	tokens.Set(session.SlotAccess, "token-123")
	c := New(server.URL, tokens)

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("expected 'Bearer token-123', got %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		fmt.Fprint(w, `{"code":200,"message":"ok","data":{"name":"Budi"}}`)
	}))
	defer server.Close()

	c := New(server.URL, newMemStore())
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadHeader || gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_UnauthorizedWithoutRefreshTerminates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"code":401,"message":"unauthorized"}`)
	}))
	defer server.Close()

	tokens := newMemStore()
	tokens.Set(session.SlotAccess, "stale")
	nav := &recordingNavigator{}
	c := New(server.URL, tokens, WithNavigator(nav))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if got := tokens.Get(session.SlotAccess); got != "" {
		t.Errorf("expected access slot purged, got %q", got)
	}
	expired, _ := nav.counts()
	if expired != 1 {
		t.Errorf("expected 1 SessionExpired navigation, got %d", expired)
	}
}

func TestClient_UnauthorizedWithRefreshRejectsAndRefreshes(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/basic/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"code":401,"message":"token expired"}`)
	})
	mux.HandleFunc("/public/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		fmt.Fprint(w, `{"code":200,"message":"ok","data":{"token":{"access":"fresh","timeout":"2030-01-01T00:00:00Z"}}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokens := newMemStore()
	tokens.Set(session.SlotAccess, "stale")
	tokens.Set(session.SlotRefresh, "refresh-1")
	nav := &recordingNavigator{}
	c := New(server.URL, tokens, WithNavigator(nav))

	// The original call still fails; it is never silently retried.
	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// The refresh runs in the background and rewrites the access slot.
	waitFor(t, func() bool { return tokens.Get(session.SlotAccess) == "fresh" })
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("expected 1 refresh call, got %d", got)
	}
	if got := tokens.Get(session.SlotRefresh); got != "refresh-1" {
		t.Errorf("expected refresh token untouched, got %q", got)
	}
	if got := tokens.Get(session.SlotTimeout); got != "2030-01-01T00:00:00Z" {
		t.Errorf("expected timeout slot rewritten, got %q", got)
	}
	expired, _ := nav.counts()
	if expired != 0 {
		t.Errorf("expected no SessionExpired after successful refresh, got %d", expired)
	}
}

func TestClient_ConcurrentRefreshRunsOnce(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/public/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		fmt.Fprint(w, `{"code":200,"message":"ok","data":{"token":{"access":"fresh"}}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokens := newMemStore()
	tokens.Set(session.SlotRefresh, "refresh-1")
	c := New(server.URL, tokens)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.refreshToken("refresh-1")
		}()
	}
	wg.Wait()

	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("expected a single upstream refresh, got %d", got)
	}
}

func TestClient_FailedRefreshTerminatesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":400,"message":"invalid refresh token"}`)
	}))
	defer server.Close()

	tokens := newMemStore()
	tokens.Set(session.SlotAccess, "stale")
	tokens.Set(session.SlotRefresh, "bad")
	nav := &recordingNavigator{}
	c := New(server.URL, tokens, WithNavigator(nav))

	err := c.Refresh(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if got := tokens.Get(session.SlotRefresh); got != "" {
		t.Errorf("expected refresh slot purged, got %q", got)
	}
	expired, _ := nav.counts()
	if expired != 1 {
		t.Errorf("expected SessionExpired navigation, got %d", expired)
	}
}

func TestClient_ForbiddenNavigatesAndPreservesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"code":403,"message":"forbidden"}`)
	}))
	defer server.Close()

	tokens := newMemStore()
	tokens.Set(session.SlotAccess, "valid")
	nav := &recordingNavigator{}
	c := New(server.URL, tokens, WithNavigator(nav))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if got := tokens.Get(session.SlotAccess); got != "valid" {
		t.Errorf("expected session untouched on 403, got %q", got)
	}
	expired, forbidden := nav.counts()
	if expired != 0 || forbidden != 1 {
		t.Errorf("expected only Forbidden navigation, got expired=%d forbidden=%d", expired, forbidden)
	}
}

func TestClient_EnvelopeCodeFailureIsError(t *testing.T) {
	// HTTP 200 with a non-success envelope code still fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":422,"message":"validasi gagal","errors":["nama wajib diisi","email tidak valid"]}`)
	}))
	defer server.Close()

	c := New(server.URL, newMemStore())
	_, err := c.Me(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	msgs := apiErr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected one message per errors entry, got %v", msgs)
	}
	if msgs[0] != "nama wajib diisi" || msgs[1] != "email tidak valid" {
		t.Errorf("unexpected messages: %v", msgs)
	}
}

func TestClient_Created201IsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"code":201,"message":"created","data":{"id":7,"name":"Kopi"}}`)
	}))
	defer server.Close()

	c := New(server.URL, newMemStore())
	product, err := c.CreateProduct(context.Background(), "Kopi", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != 7 || product.Name != "Kopi" {
		t.Errorf("unexpected product: %+v", product)
	}
}

func TestClient_ListMetaAndQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"code":200,"message":"ok","data":[{"id":1,"name":"Kopi"}],"meta":{"page":2,"limit":10,"total_page":4,"total_count":38}}`)
	}))
	defer server.Close()

	c := New(server.URL, newMemStore())
	items, meta, err := c.ListProducts(context.Background(), ProductFilter{Query: "kopi susu", Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Kopi" {
		t.Errorf("unexpected items: %+v", items)
	}
	if meta == nil || meta.Page != 2 || meta.TotalPage != 4 || meta.TotalCount != 38 {
		t.Errorf("unexpected meta: %+v", meta)
	}
	if gotQuery != "limit=10&page=2&q=kopi+susu" {
		t.Errorf("unexpected query string: %q", gotQuery)
	}
}

func TestClient_LoginPersistsTokenSlots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":200,"message":"ok","data":{"token":{"access":"a1","refresh":"r1","timeout":"2030-01-01T00:00:00Z"},"user":{"name":"Budi","email":"budi@example.com"}}}`)
	}))
	defer server.Close()

	tokens := newMemStore()
	c := New(server.URL, tokens)

	auth, err := c.Login(context.Background(), "budi@example.com", "rahasia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.User.Name != "Budi" {
		t.Errorf("unexpected user: %+v", auth.User)
	}
	if tokens.Get(session.SlotAccess) != "a1" || tokens.Get(session.SlotRefresh) != "r1" {
		t.Error("expected token slots persisted after login")
	}
}

func TestClient_LogoutClearsSlots(t *testing.T) {
	tokens := newMemStore()
	tokens.Set(session.SlotAccess, "a")
	tokens.Set(session.SlotRefresh, "r")

	c := New("http://localhost:0", tokens)
	c.Logout()

	if tokens.Get(session.SlotAccess) != "" || tokens.Get(session.SlotRefresh) != "" {
		t.Error("expected all slots cleared on logout")
	}
}

func TestClient_CannotConnectError(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL, newMemStore())
	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
	if got := err.Error(); !strings.Contains(got, "cannot connect to backend") {
		t.Errorf("unexpected error message: %q", got)
	}
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
