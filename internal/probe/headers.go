package probe

import (
	"context"
	"net/http"

	"github.com/webvet/webvet/internal/transport"
)

// hardeningHeaders lists the response headers every protected page
// should send. Ordered for reproducible reporting.
var hardeningHeaders = []struct {
	Name        string
	Description string
}{
	{"X-Frame-Options", "protects against clickjacking"},
	{"X-Content-Type-Options", "prevents MIME sniffing"},
	{"X-XSS-Protection", "legacy browser XSS filter"},
	{"Content-Security-Policy", "controls resource loading"},
	{"Referrer-Policy", "controls referrer information"},
}

// SecurityHeaders checks the protected endpoint for each hardening
// header, one payload per header name.
type SecurityHeaders struct {
	profile Profile
}

func NewSecurityHeaders(profile Profile) *SecurityHeaders {
	return &SecurityHeaders{profile: profile}
}

func (h *SecurityHeaders) Category() Category {
	return CategoryHeaders
}

func (h *SecurityHeaders) Payloads() []Payload {
	payloads := make([]Payload, 0, len(hardeningHeaders))
	for _, hh := range hardeningHeaders {
		payloads = append(payloads, Payload(hh.Name))
	}
	return payloads
}

func (h *SecurityHeaders) Execute(ctx context.Context, sess *transport.Session, payload Payload) (*transport.Response, error) {
	return sess.Send(ctx, http.MethodGet, h.profile.ProtectedPath, nil, transport.SendOptions{FollowRedirects: true})
}

func (h *SecurityHeaders) Classify(resp *transport.Response, payload Payload) Finding {
	name := string(payload)
	if value := resp.Header.Get(name); value != "" {
		return Finding{
			Category: CategoryHeaders,
			Verdict:  VerdictPass,
			Message:  name + ": " + value,
			Detail:   name,
		}
	}
	return Finding{
		Category: CategoryHeaders,
		Verdict:  VerdictFail,
		Message:  "missing header " + name + " (" + headerDescription(name) + ")",
		Detail:   name,
	}
}

func headerDescription(name string) string {
	for _, hh := range hardeningHeaders {
		if hh.Name == name {
			return hh.Description
		}
	}
	return "hardening header"
}
