package probe

import (
	"context"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/webvet/webvet/internal/transport"
)

var xssPayloads = []Payload{
	"<script>alert('XSS')</script>",
	"<img src=x onerror=alert('XSS')>",
	"<iframe src='javascript:alert(1)'>",
	"javascript:alert('XSS')",
	"<svg onload=alert('XSS')>",
}

// MarkupInjection submits each payload as the identity field of the
// registration form and checks how it comes back. A verbatim reflection
// is the fail signal: cheap, conservative, and explicitly not a proof
// of exploitability.
type MarkupInjection struct {
	profile Profile
}

func NewMarkupInjection(profile Profile) *MarkupInjection {
	return &MarkupInjection{profile: profile}
}

func (m *MarkupInjection) Category() Category {
	return CategoryMarkupInjection
}

func (m *MarkupInjection) Payloads() []Payload {
	return append([]Payload{}, xssPayloads...)
}

func (m *MarkupInjection) Execute(ctx context.Context, sess *transport.Session, payload Payload) (*transport.Response, error) {
	form := url.Values{
		m.profile.UsernameField: {string(payload)},
		"password1":             {"testtest123"},
		"password2":             {"testtest123"},
		m.profile.TokenField:    {"test"},
	}
	return sess.Send(ctx, http.MethodPost, m.profile.RegisterPath, form, transport.SendOptions{FollowRedirects: true})
}

func (m *MarkupInjection) Classify(resp *transport.Response, payload Payload) Finding {
	if strings.Contains(resp.Body, string(payload)) {
		return Finding{
			Category: CategoryMarkupInjection,
			Verdict:  VerdictFail,
			Message:  "payload reflected without escaping",
			Detail:   TruncatePayload(payload),
		}
	}

	// An entity-encoded reflection proves output escaping. Fall back to
	// bare "&lt;" presence: some encoders normalize quotes differently
	// but angle brackets always survive as entities.
	escaped := html.EscapeString(string(payload))
	if strings.Contains(resp.Body, escaped) || strings.Contains(resp.Body, "&lt;") {
		return Finding{
			Category: CategoryMarkupInjection,
			Verdict:  VerdictPass,
			Message:  "payload escaped in response",
			Detail:   TruncatePayload(payload),
		}
	}

	return Finding{
		Category: CategoryMarkupInjection,
		Verdict:  VerdictWarn,
		Message:  "no reflection found, escaping unverified",
		Detail:   TruncatePayload(payload),
	}
}
