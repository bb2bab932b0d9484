package probe

import (
	"context"
	"net/http"
	"strings"

	"github.com/webvet/webvet/internal/transport"
)

// SessionCookie inspects the cookie the target issues on first contact.
// Observational: a missing Secure flag is acceptable over plain HTTP,
// so nothing here auto-fails.
type SessionCookie struct {
	profile Profile
}

func NewSessionCookie(profile Profile) *SessionCookie {
	return &SessionCookie{profile: profile}
}

func (s *SessionCookie) Category() Category {
	return CategorySessionCookie
}

func (s *SessionCookie) Payloads() []Payload {
	return []Payload{Payload(s.profile.LoginPath)}
}

func (s *SessionCookie) Execute(ctx context.Context, sess *transport.Session, payload Payload) (*transport.Response, error) {
	return sess.Send(ctx, http.MethodGet, string(payload), nil, transport.SendOptions{FollowRedirects: true})
}

func (s *SessionCookie) Classify(resp *transport.Response, payload Payload) Finding {
	cookie := findSessionCookie(resp.Cookies, s.profile.SessionCookie)
	if cookie == nil {
		return Finding{
			Category: CategorySessionCookie,
			Verdict:  VerdictWarn,
			Message:  "no session cookie issued",
			Detail:   TruncatePayload(payload),
		}
	}
	if cookie.Secure {
		return Finding{
			Category: CategorySessionCookie,
			Verdict:  VerdictPass,
			Message:  "session cookie " + cookie.Name + " carries the Secure flag",
			Detail:   TruncatePayload(payload),
		}
	}
	return Finding{
		Category: CategorySessionCookie,
		Verdict:  VerdictWarn,
		Message:  "session cookie " + cookie.Name + " lacks the Secure flag (acceptable over plain HTTP)",
		Detail:   TruncatePayload(payload),
	}
}

func findSessionCookie(cookies []*http.Cookie, nameHint string) *http.Cookie {
	for _, c := range cookies {
		if strings.Contains(c.Name, "PHPSESSID") {
			return c
		}
		if nameHint != "" && strings.Contains(strings.ToLower(c.Name), strings.ToLower(nameHint)) {
			return c
		}
	}
	return nil
}
