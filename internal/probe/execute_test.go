package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/webvet/webvet/internal/transport"
)

func recordingServer(t *testing.T) (*httptest.Server, *http.Request, *url.Values) {
	t.Helper()
	var captured http.Request
	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		captured = *r
		form = r.PostForm
		w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)
	return server, &captured, &form
}

func sessionFor(t *testing.T, server *httptest.Server) *transport.Session {
	t.Helper()
	sess, err := transport.NewSession(server.URL+"/", transport.Options{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess
}

func TestSQLInjection_Execute(t *testing.T) {
	server, captured, form := recordingServer(t)
	sess := sessionFor(t, server)

	p := NewSQLInjection(DefaultProfile())
	payload := Payload("admin'--")

	if _, err := p.Execute(context.Background(), sess, payload); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if captured.Method != http.MethodPost || captured.URL.Path != "/login.php" {
		t.Errorf("expected POST /login.php, got %s %s", captured.Method, captured.URL.Path)
	}
	if got := form.Get("username"); got != string(payload) {
		t.Errorf("expected payload in username field, got %q", got)
	}
	if form.Get("action") != "login" || form.Get("csrf_token") != "test" {
		t.Errorf("fixed form fields missing: %v", *form)
	}
}

func TestMarkupInjection_Execute(t *testing.T) {
	server, captured, form := recordingServer(t)
	sess := sessionFor(t, server)

	p := NewMarkupInjection(DefaultProfile())
	payload := Payload("<svg onload=alert('XSS')>")

	if _, err := p.Execute(context.Background(), sess, payload); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if captured.URL.Path != "/register.php" {
		t.Errorf("expected /register.php, got %s", captured.URL.Path)
	}
	if form.Get("username") != string(payload) {
		t.Errorf("payload not in identity field: %v", *form)
	}
	if form.Get("password1") == "" || form.Get("password2") == "" {
		t.Errorf("registration fields missing: %v", *form)
	}
}

func TestRequestForgery_Execute_TokenField(t *testing.T) {
	server, _, form := recordingServer(t)
	sess := sessionFor(t, server)

	p := NewRequestForgery(DefaultProfile())

	// Empty payload omits the token field entirely.
	if _, err := p.Execute(context.Background(), sess, ""); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, present := (*form)["csrf_token"]; present {
		t.Error("token field should be omitted for the empty payload")
	}

	if _, err := p.Execute(context.Background(), sess, "invalid_token_12345"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := form.Get("csrf_token"); got != "invalid_token_12345" {
		t.Errorf("expected invalid token value, got %q", got)
	}
}

func TestAuthBypass_Execute_NoRedirectFollow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dashboard.php" {
			http.Redirect(w, r, "/login.php", http.StatusFound)
			return
		}
		w.Write([]byte("login page"))
	}))
	defer server.Close()
	sess := sessionFor(t, server)

	p := NewAuthBypass(DefaultProfile())
	resp, err := p.Execute(context.Background(), sess, p.Payloads()[0])
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("expected the raw 302, got %d", resp.StatusCode)
	}
}
