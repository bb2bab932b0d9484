package probe

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/webvet/webvet/internal/transport"
)

// The empty payload omits the token field entirely; the second one
// sends a value the server cannot have issued.
var forgeryPayloads = []Payload{
	"",
	"invalid_token_12345",
}

// RequestForgery posts the login form without a valid anti-forgery
// token. If the application still shows the authenticated area, the
// token is not being checked.
type RequestForgery struct {
	profile Profile
}

func NewRequestForgery(profile Profile) *RequestForgery {
	return &RequestForgery{profile: profile}
}

func (r *RequestForgery) Category() Category {
	return CategoryRequestForgery
}

func (r *RequestForgery) Payloads() []Payload {
	return append([]Payload{}, forgeryPayloads...)
}

func (r *RequestForgery) Execute(ctx context.Context, sess *transport.Session, payload Payload) (*transport.Response, error) {
	form := url.Values{
		r.profile.UsernameField: {"testuser"},
		r.profile.PasswordField: {"testpass"},
		"action":                {"login"},
	}
	if payload != "" {
		form.Set(r.profile.TokenField, string(payload))
	}
	return sess.Send(ctx, http.MethodPost, r.profile.LoginPath, form, transport.SendOptions{FollowRedirects: true})
}

func (r *RequestForgery) Classify(resp *transport.Response, payload Payload) Finding {
	kind := "missing token"
	if payload != "" {
		kind = "invalid token"
	}

	if r.profile.ForgeryMarker != "" && strings.Contains(resp.Body, r.profile.ForgeryMarker) {
		return Finding{
			Category: CategoryRequestForgery,
			Verdict:  VerdictPass,
			Message:  "request with " + kind + " rejected by token check",
			Detail:   TruncatePayload(payload),
		}
	}
	if r.profile.successIndicated(resp.Body) {
		return Finding{
			Category: CategoryRequestForgery,
			Verdict:  VerdictFail,
			Message:  "request with " + kind + " accepted",
			Detail:   TruncatePayload(payload),
		}
	}
	return Finding{
		Category: CategoryRequestForgery,
		Verdict:  VerdictPass,
		Message:  "request with " + kind + " not accepted",
		Detail:   TruncatePayload(payload),
	}
}
