package web

import (
	"html"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	srv, err := NewServer(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func TestIndexGet(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mini-C playground") {
		t.Error("index page missing title")
	}
}

func TestIndexPostCompiles(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	form := url.Values{"code": {"int x; x = 5 + 3;"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	// the template escapes text nodes, so match against the unescaped page
	page := html.UnescapeString(body)
	for _, want := range []string{"declare x as int", "t0 = 5 + 3", "var_decl", "NUMBER"} {
		if !strings.Contains(page, want) {
			t.Errorf("response missing %q", want)
		}
	}
	if !strings.Contains(body, "<span style=") {
		t.Error("response missing highlighted source markup")
	}
}

func TestIndexPostShowsDiagnostics(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	form := url.Values{"code": {"int x"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "syntax error at end of input") {
		t.Error("response missing the syntax diagnostic")
	}
}

func TestIndexPostTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSourceBytes = 16
	srv := newTestServer(t, cfg)

	form := url.Values{"code": {"int averylongname; int another;"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestSocketRoundTrip(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("int x; x = 1;")); err != nil {
		t.Fatalf("write: %v", err)
	}

	var reply socketResult
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(reply.Errors) != 0 {
		t.Fatalf("errors = %v", reply.Errors)
	}
	if len(reply.TAC) != 2 || reply.TAC[0] != "declare x as int" || reply.TAC[1] != "x = 1" {
		t.Errorf("tac = %v", reply.TAC)
	}
	if len(reply.Tokens) != 7 {
		t.Errorf("tokens = %v, want 7 entries", reply.Tokens)
	}
	if len(reply.Symbols) != 1 || reply.Symbols[0].Name != "x" {
		t.Errorf("symbols = %v", reply.Symbols)
	}
}

func TestSocketReportsDiagnostics(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("int 5;")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply socketResult
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(reply.Errors) != 1 || !strings.Contains(reply.Errors[0], "syntax error at token NUMBER") {
		t.Errorf("errors = %v", reply.Errors)
	}
	if len(reply.TAC) != 0 {
		t.Errorf("tac = %v, want none after a syntax error", reply.TAC)
	}
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minicc.yaml")
	if err := os.WriteFile(path, []byte("address: \":9999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Address != ":9999" {
		t.Errorf("address = %q", cfg.Address)
	}
	if cfg.MaxSourceBytes != DefaultConfig().MaxSourceBytes {
		t.Errorf("max_source_bytes = %d, want default", cfg.MaxSourceBytes)
	}
}
